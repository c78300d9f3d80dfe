package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bilal-attab/tuition_manager/models"
)

// ErrInvalidDocument is returned by Import when the payload is not a usable
// backup document. State is left untouched in every error case.
var ErrInvalidDocument = errors.New("invalid backup document")

// exportDocument is the backup file shape: both collections under stable
// top-level keys.
type exportDocument struct {
	Groups   []models.Group   `json:"groups"`
	Students []models.Student `json:"students"`
}

// Export serializes the current collections as a pretty-printed JSON
// document suitable for download and later re-import.
func (r *Repository) Export() ([]byte, error) {
	r.mu.Lock()
	doc := exportDocument{
		Groups:   append([]models.Group{}, r.groups...),
		Students: append([]models.Student{}, r.students...),
	}
	r.mu.Unlock()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize backup: %w", err)
	}
	return raw, nil
}

// ExportFilename is the download name for a backup taken now.
func ExportFilename(now time.Time) string {
	return "tuition-" + now.Format("2006-01-02") + ".json"
}

// Import replaces the collections with the ones present in the document.
// Either key may be absent and the other is applied independently; a
// document carrying neither, or malformed JSON, is rejected without
// touching existing state.
func (r *Repository) Import(ctx context.Context, raw []byte) error {
	var doc struct {
		Groups   *[]models.Group   `json:"groups"`
		Students *[]models.Student `json:"students"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Groups == nil && doc.Students == nil {
		return fmt.Errorf("%w: neither groups nor students present", ErrInvalidDocument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.Groups != nil {
		r.groups = *doc.Groups
	}
	if doc.Students != nil {
		r.students = *doc.Students
	}
	r.persist(ctx)
	return nil
}
