// Package history stores completed analyses in a bounded, order-preserving
// list with FIFO eviction. The store is the only mutable shared state in
// the system; implementations must be safe for concurrent callers.
package history

import (
	"errors"

	"github.com/embrylab/blastograde/internal/models"
)

// DefaultCapacity bounds the history when no capacity is configured.
const DefaultCapacity = 50

// ErrNotFound is returned when an analysis ID does not match any entry.
var ErrNotFound = errors.New("analysis not found")

// Store is the injected history interface. Append keeps insertion order and
// evicts the oldest entry once the capacity is reached; Recent returns the
// newest entries first.
type Store interface {
	Append(a models.Analysis) error
	Recent(n int) ([]models.Analysis, error)
	Get(id string) (*models.Analysis, error)
	Clear() error
}
