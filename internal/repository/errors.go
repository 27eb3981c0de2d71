package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound marks a slug or id with no matching visible record.
	// Read paths treat this as a value, never as a failure.
	ErrNotFound = errors.New("record not found")

	// ErrSlugConflict marks a write rejected because the slug is already
	// taken. The existing record is left untouched.
	ErrSlugConflict = errors.New("slug already exists")

	// ErrEpisodeNumberConflict marks an episode write rejected because the
	// season/episode pair is already taken.
	ErrEpisodeNumberConflict = errors.New("season/episode pair already exists")
)

// uniqueViolation reports whether err is a Postgres unique-constraint error
func uniqueViolation(err error) bool {
	_, ok := uniqueViolationConstraint(err)
	return ok
}

// uniqueViolationConstraint returns the name of the violated unique
// constraint when err is a Postgres unique-constraint error
func uniqueViolationConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return pqErr.Constraint, true
	}
	return "", false
}
