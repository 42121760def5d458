package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tomazk/bucketlist/internal/domain"
	"github.com/tomazk/bucketlist/internal/storage"
)

// ItemsKey is the storage key the whole collection is serialized under.
const ItemsKey = "bucketlist.items"

// DefaultMaxPhotos is the per-item photo budget.
const DefaultMaxPhotos = 3

// ItemService owns the canonical item collection. Mutations are applied in
// memory first and the full collection is persisted through the gateway
// afterwards; a failed persist keeps the in-memory change so the caller's
// edit is not silently lost, and surfaces ErrStorageWrite.
//
// A mutex serializes all operations: the HTTP layer introduces concurrent
// callers the collection's single-writer model does not otherwise allow.
type ItemService struct {
	mu        sync.Mutex
	gateway   storage.Gateway
	maxPhotos int
	items     []domain.Item
}

// NewItemService creates an ItemService backed by the given gateway.
// maxPhotos of 0 or less falls back to DefaultMaxPhotos.
func NewItemService(gateway storage.Gateway, maxPhotos int) *ItemService {
	if maxPhotos <= 0 {
		maxPhotos = DefaultMaxPhotos
	}
	return &ItemService{gateway: gateway, maxPhotos: maxPhotos}
}

// MaxPhotos returns the per-item photo budget.
func (s *ItemService) MaxPhotos() int {
	return s.maxPhotos
}

// Load reads the persisted collection. A missing key or a corrupt payload
// leaves the service with an empty collection and is never an error to the
// caller; corruption is logged as a warning.
func (s *ItemService) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.gateway.Get(ItemsKey)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read persisted items, starting with empty collection")
		s.items = nil
		return
	}
	if !ok {
		s.items = nil
		return
	}

	var items []domain.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("Persisted items are corrupt, starting with empty collection")
		s.items = nil
		return
	}
	s.items = items
}

// Create validates the draft, assigns a fresh id and creation time, appends
// the item and persists the collection.
func (s *ItemService) Create(draft domain.Draft) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if len(draft.Photos) > s.maxPhotos {
		return nil, domain.ErrPhotoLimitExceeded
	}

	item := domain.Item{
		ID:          domain.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		WhoAdded:    draft.WhoAdded,
		Location:    draft.Location,
		Photos:      append([]string{}, draft.Photos...),
		CreatedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, item)

	if err := s.persist(); err != nil {
		return nil, err
	}

	out := item.Clone()
	return &out, nil
}

// Update merges the draft over the existing item. Mutable fields are title,
// description, whoAdded, location and photos; id, createdAt and the
// completion pair are preserved.
func (s *ItemService) Update(id string, draft domain.Draft) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}

	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if len(draft.Photos) > s.maxPhotos {
		return nil, domain.ErrPhotoLimitExceeded
	}

	item := &s.items[idx]
	item.Title = draft.Title
	item.Description = draft.Description
	item.WhoAdded = draft.WhoAdded
	item.Location = draft.Location
	item.Photos = append([]string{}, draft.Photos...)

	if err := s.persist(); err != nil {
		return nil, err
	}

	out := item.Clone()
	return &out, nil
}

// Delete removes the item with the given id. Deleting a missing id returns
// ErrItemNotFound, matching Update and ToggleComplete.
func (s *ItemService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrItemNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return s.persist()
}

// ToggleComplete flips the completed flag. CompletedAt is set to now when
// the item becomes completed and cleared when it becomes active again.
func (s *ItemService) ToggleComplete(id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}

	item := &s.items[idx]
	item.Completed = !item.Completed
	if item.Completed {
		now := time.Now().UTC()
		item.CompletedAt = &now
	} else {
		item.CompletedAt = nil
	}

	if err := s.persist(); err != nil {
		return nil, err
	}

	out := item.Clone()
	return &out, nil
}

// Get returns a copy of the item with the given id.
func (s *ItemService) Get(id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}
	out := s.items[idx].Clone()
	return &out, nil
}

// Items returns a copy of the full collection in insertion order.
func (s *ItemService) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Item, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// AppendPhotos adds already-encoded photos to an item, enforcing the
// per-item budget. An empty batch is a no-op and does not persist.
func (s *ItemService) AppendPhotos(id string, photos []string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}

	item := &s.items[idx]
	if len(photos) == 0 {
		out := item.Clone()
		return &out, nil
	}
	if len(item.Photos)+len(photos) > s.maxPhotos {
		return nil, domain.ErrPhotoLimitExceeded
	}

	item.Photos = append(item.Photos, photos...)

	if err := s.persist(); err != nil {
		return nil, err
	}

	out := item.Clone()
	return &out, nil
}

// RemovePhoto drops the photo at the given position from an item.
func (s *ItemService) RemovePhoto(id string, index int) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}

	item := &s.items[idx]
	if index < 0 || index >= len(item.Photos) {
		return nil, domain.ErrPhotoNotFound
	}
	item.Photos = append(item.Photos[:index], item.Photos[index+1:]...)

	if err := s.persist(); err != nil {
		return nil, err
	}

	out := item.Clone()
	return &out, nil
}

// Replace swaps the entire collection for the given items and persists.
// Used by import; this is a wholesale replacement, not a merge.
func (s *ItemService) Replace(items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replacement := make([]domain.Item, len(items))
	for i, item := range items {
		replacement[i] = item.Clone()
	}
	s.items = replacement

	return s.persist()
}

// persist writes the full collection through the gateway. Callers hold the
// mutex. The in-memory state is already updated when this runs; on failure
// it stays updated and durability resumes on the next successful persist.
func (s *ItemService) persist() error {
	items := s.items
	if items == nil {
		items = []domain.Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	if err := s.gateway.Set(ItemsKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

func (s *ItemService) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
