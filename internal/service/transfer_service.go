package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tomazk/bucketlist/internal/domain"
)

// ExportVersion is the document format version stamped on exports.
const ExportVersion = "1.0"

// ExportDocument is the portable backup format: the literal and complete
// current collection, the export moment and a format version.
type ExportDocument struct {
	Items      []domain.Item `json:"items"`
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
}

// TransferService serializes the collection to a portable document and
// validates externally supplied documents back into the store.
type TransferService struct {
	store *ItemService
}

// NewTransferService creates a TransferService attached to the given store.
func NewTransferService(store *ItemService) *TransferService {
	return &TransferService{store: store}
}

// Export snapshots the complete collection as pretty-printed JSON. It is
// always the full collection, never the filtered view.
func (s *TransferService) Export() ([]byte, error) {
	items := s.store.Items()
	if items == nil {
		items = []domain.Item{}
	}

	doc := ExportDocument{
		Items:      items,
		ExportDate: time.Now().UTC(),
		Version:    ExportVersion,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export document: %w", err)
	}
	return data, nil
}

// ExportFilename returns the suggested download name, date-only.
func (s *TransferService) ExportFilename() string {
	return fmt.Sprintf("bucket-list-%s.json", time.Now().UTC().Format("2006-01-02"))
}

// Import replaces the entire collection with the document's items; it does
// not merge. The document must carry an items array; elements missing an id
// get a fresh one and all other fields pass through unmodified. Confirming
// destructive intent is the caller's job.
func (s *TransferService) Import(data []byte) ([]domain.Item, error) {
	var doc struct {
		Items *[]domain.Item `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.ErrInvalidImportDocument
	}
	if doc.Items == nil {
		return nil, domain.ErrInvalidImportDocument
	}

	items := *doc.Items
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = domain.NewID()
		}
	}

	if err := s.store.Replace(items); err != nil {
		return nil, err
	}
	return s.store.Items(), nil
}
