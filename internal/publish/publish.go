// Package publish uploads rendered reports to Azure Blob Storage so labs
// can archive them outside the clinic workstation.
package publish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/embrylab/blastograde/internal/report"
)

// Uploader pushes report payloads into one blob container.
type Uploader struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// NewUploader creates an Uploader for the given storage account URL and
// container, authenticating with the ambient Azure credential chain
// (environment, managed identity, CLI login).
func NewUploader(serviceURL, container string, logger *slog.Logger) (*Uploader, error) {
	if serviceURL == "" || container == "" {
		return nil, fmt.Errorf("publish requires a storage account URL and container name")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving Azure credential: %w", err)
	}
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}
	return &Uploader{client: client, container: container, logger: logger}, nil
}

// Upload stores one rendered report under name, tagging it with the MIME
// type of its encoding.
func (u *Uploader) Upload(ctx context.Context, name string, payload []byte, format report.Format) error {
	u.logger.Debug("uploading report", "blob", name, "bytes", len(payload), "format", string(format))

	_, err := u.client.UploadBuffer(ctx, u.container, name, payload, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(format.ContentType()),
		},
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	u.logger.Info("report published", "blob", name, "container", u.container)
	return nil
}
