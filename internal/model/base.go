package model

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a path parameter is not a valid ObjectID
var ErrInvalidID = errors.New("invalid ObjectId")

// Timestamps mirrors the createdAt/updatedAt pair every collection carries
type Timestamps struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Touch sets CreatedAt on first call and always bumps UpdatedAt
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// ParseID parses a hex ObjectID coming from a URL or a raw reference string
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// TimeRange is a half-open [From, To) window
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// Event is published to the broker after a mutation
type Event struct {
	Type       string      `json:"type"`
	EntityID   string      `json:"entityId"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}
