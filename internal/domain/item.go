package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation constants
const (
	MaxTitleLength = 255
)

// Item is the single persisted entity: one bucket-list entry with
// metadata and optional embedded photos.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	WhoAdded    string     `json:"whoAdded"`
	Location    string     `json:"location,omitempty"`
	Photos      []string   `json:"photos"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Draft carries the caller-editable fields of an item. ID, CreatedAt and
// the completion pair are owned by the store and never appear here.
type Draft struct {
	Title       string
	Description string
	WhoAdded    string
	Location    string
	Photos      []string
}

// Normalize trims surrounding whitespace from all text fields.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.WhoAdded = strings.TrimSpace(d.WhoAdded)
	d.Location = strings.TrimSpace(d.Location)
	return d
}

// Validate checks the required-field invariants. Callers normalize first.
func (d Draft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if len(d.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if d.WhoAdded == "" {
		return ErrWhoAddedRequired
	}
	return nil
}

// Clone returns a copy that shares no mutable state with the original.
func (i Item) Clone() Item {
	c := i
	if i.Photos != nil {
		c.Photos = append([]string(nil), i.Photos...)
	}
	if i.CompletedAt != nil {
		t := *i.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// NewID returns a fresh item id. UUIDv7 combines a millisecond timestamp
// in the high bits with random bits in the rest, so ids sort roughly by
// creation time and never collide in practice.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
