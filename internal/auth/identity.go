package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the learner a validated access token speaks for.
type Identity struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
