// Package movestore persists move-list documents.
//
// A document is the only state the viewer keeps between requests: the raw
// move text. Boards are always rebuilt from it.
package movestore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document is a stored move list.
type Document struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is implemented by every backend. Load returns (nil, nil) when the
// document does not exist; Save and Delete on a missing id return
// ErrNotFound.
type Store interface {
	Create(ctx context.Context, text string) (*Document, error)
	Load(ctx context.Context, id string) (*Document, error)
	Save(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

type staticErr string

func (e staticErr) Error() string { return string(e) }

// ErrNotFound is returned when writing to a document that does not exist.
var ErrNotFound error = staticErr("document not found")

func newID() string { return uuid.NewString() }

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }
