package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/embrylab/blastograde/internal/models"
)

// DefaultTimeout bounds one inference round trip.
const DefaultTimeout = 30 * time.Second

// HTTPOptions configures an HTTPClassifier. The map form exists so config
// files can carry classifier settings as free-form keys.
type HTTPOptions struct {
	// Endpoint is the base URL of the inference service.
	Endpoint string `mapstructure:"endpoint"`
	// TimeoutSec overrides DefaultTimeout when positive.
	TimeoutSec int `mapstructure:"timeout_seconds"`
}

// HTTPClassifier calls a remote inference service that wraps the trained
// model. The service accepts a raw image and answers with the three argmax
// grades.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClassifier creates a classifier for the given options.
func NewHTTPClassifier(opts HTTPOptions) (*HTTPClassifier, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("classifier endpoint is required")
	}
	timeout := DefaultTimeout
	if opts.TimeoutSec > 0 {
		timeout = time.Duration(opts.TimeoutSec) * time.Second
	}
	return &HTTPClassifier{
		endpoint: opts.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// NewHTTPClassifierFromMap decodes free-form option keys (as loaded from a
// config file) and builds the classifier.
func NewHTTPClassifierFromMap(params map[string]any) (*HTTPClassifier, error) {
	var opts HTTPOptions
	if err := mapstructure.Decode(params, &opts); err != nil {
		return nil, fmt.Errorf("decoding classifier options: %w", err)
	}
	return NewHTTPClassifier(opts)
}

type predictResponse struct {
	ICM int `json:"icm"`
	TE  int `json:"te"`
	Exp int `json:"exp"`
}

// Classify posts the image to the /predict endpoint and validates the
// returned grades. Any transport, decode, or range failure surfaces here —
// invalid grades never reach the interpreter.
func (c *HTTPClassifier) Classify(ctx context.Context, image []byte) (models.GradeSet, error) {
	url := c.endpoint + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return models.GradeSet{}, fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.GradeSet{}, fmt.Errorf("calling inference service: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.GradeSet{}, fmt.Errorf("reading inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.GradeSet{}, fmt.Errorf("inference service returned %d: %s", resp.StatusCode, body)
	}

	var pred predictResponse
	if err := json.Unmarshal(body, &pred); err != nil {
		return models.GradeSet{}, fmt.Errorf("decoding inference response: %w", err)
	}

	grades := models.GradeSet{ICM: pred.ICM, TE: pred.TE, Exp: pred.Exp}
	if err := grades.Validate(); err != nil {
		return models.GradeSet{}, fmt.Errorf("inference service returned out-of-range grades: %w", err)
	}
	return grades, nil
}

var _ Classifier = (*HTTPClassifier)(nil)
