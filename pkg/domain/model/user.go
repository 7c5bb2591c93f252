package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is the class shared by all per-entity not-found errors.
// Adapters match against it with errors.Is to pick status codes.
var ErrNotFound = errors.New("not found")

var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// TimestampLayout is the wire representation of entity timestamps on both
// transports: ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	FullName  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser carries the fields a caller supplies at creation time. The
// service owns ID, IsActive default and timestamps.
type NewUser struct {
	Username string
	Email    string
	FullName string
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
	IsActive *bool
}
