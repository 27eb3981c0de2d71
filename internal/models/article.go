package models

import (
	"time"
)

// Article represents a news/blog entry
type Article struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Title       string    `json:"title" db:"title"`
	Excerpt     string    `json:"excerpt" db:"excerpt"`
	Content     string    `json:"content,omitempty" db:"content"`
	DisplayDate time.Time `json:"date" db:"display_date"`
	Category    string    `json:"category" db:"category"`
	Image       string    `json:"image" db:"image"`
	Author      string    `json:"author,omitempty" db:"author"`
	Tags        []string  `json:"tags,omitempty" db:"-"` // Stored as JSONB in DB
	Published   bool      `json:"published" db:"published"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ArticleInput carries admin-supplied fields for create/update.
// Slug may be empty, in which case it is derived from the title.
type ArticleInput struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	DisplayDate time.Time `json:"date"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	Published   bool      `json:"published"`
	Featured    bool      `json:"featured"`
}
