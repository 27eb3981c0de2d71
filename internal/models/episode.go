package models

import (
	"time"
)

// GuestContact holds optional contact details for an episode guest
type GuestContact struct {
	Phone        string `json:"phone,omitempty" db:"guest_phone"`
	Email        string `json:"email,omitempty" db:"guest_email"`
	Address      string `json:"address,omitempty" db:"guest_address"`
	Website      string `json:"website,omitempty" db:"guest_website"`
	WebsiteLabel string `json:"website_label,omitempty" db:"guest_website_label"`
}

// Episode represents a podcast episode
type Episode struct {
	ID              string       `json:"id" db:"id"`
	Slug            string       `json:"slug" db:"slug"`
	Title           string       `json:"title" db:"title"`
	Guest           string       `json:"guest" db:"guest"`
	Season          int          `json:"season" db:"season"`
	Episode         int          `json:"episode" db:"episode"`
	Description     string       `json:"description" db:"description"`
	Topics          []string     `json:"topics,omitempty" db:"-"` // Stored as JSONB in DB
	Image           string       `json:"image,omitempty" db:"image"`
	SoundcloudURL   string       `json:"soundcloud,omitempty" db:"soundcloud_url"`
	YoutubeURL      string       `json:"youtube,omitempty" db:"youtube_url"`
	Headline        string       `json:"headline,omitempty" db:"headline"`
	Subheadline     string       `json:"subheadline,omitempty" db:"subheadline"`
	FullDescription string       `json:"full_description,omitempty" db:"full_description"`
	KeyInsights     []string     `json:"key_insights,omitempty" db:"-"` // Stored as JSONB in DB
	GuestContact    GuestContact `json:"guest_contact,omitempty"`
	Published       bool         `json:"published" db:"published"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// EpisodeInput carries admin-supplied fields for create/update
type EpisodeInput struct {
	Slug            string       `json:"slug"`
	Title           string       `json:"title"`
	Guest           string       `json:"guest"`
	Season          int          `json:"season"`
	Episode         int          `json:"episode"`
	Description     string       `json:"description"`
	Topics          []string     `json:"topics"`
	Image           string       `json:"image"`
	SoundcloudURL   string       `json:"soundcloud"`
	YoutubeURL      string       `json:"youtube"`
	Headline        string       `json:"headline"`
	Subheadline     string       `json:"subheadline"`
	FullDescription string       `json:"full_description"`
	KeyInsights     []string     `json:"key_insights"`
	GuestContact    GuestContact `json:"guest_contact"`
	Published       bool         `json:"published"`
}
