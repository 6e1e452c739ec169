package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the fields shared by every aggregate root: a string GUID id,
// audit stamps, the soft-delete flag and the in-memory domain event list.
// Events are never dispatched to subscribers; the persistence layer drains
// them to the audit log after a successful commit.
type Base struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
	IsDeleted bool      `bson:"isDeleted" json:"-"`

	events []Event
}

func newBase(createdBy string) Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	}
}

func (b *Base) record(e Event) {
	b.events = append(b.events, e)
}

// Events returns the recorded domain events. The returned slice must not be
// mutated by callers.
func (b *Base) Events() []Event {
	return b.events
}

func (b *Base) ClearEvents() {
	b.events = nil
}

func (b *Base) touch(updatedBy string) {
	b.UpdatedAt = time.Now().UTC()
	if updatedBy != "" {
		b.UpdatedBy = updatedBy
	}
}
