package models

import (
	"time"
)

// Category represents a content category. Categories are seeded once at
// startup and treated as immutable afterwards; article category references
// are matched by slug string, not enforced foreign keys.
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
