package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User mirrors the account record provisioned by the external auth
// provider. Token issuance lives outside this service; we only read.
type User struct {
	Id        uuid.UUID
	Email     string
	FullName  string
	Role      UserRole
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
