// Package dao provides data access objects for use in the CommandBook server.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Gives() GiveRepository
	Close() error
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

// GiveRepository is the log of every give request that was carried out.
// Entries are never modified once created.
type GiveRepository interface {

	// Create records a new Give. The ID and Created fields are generated; all
	// others are taken from the provided Give.
	Create(ctx context.Context, g Give) (Give, error)
	GetByID(ctx context.Context, id uuid.UUID) (Give, error)

	// GetAll returns every Give in the order they were created.
	GetAll(ctx context.Context) ([]Give, error)

	// GetAllByUser returns every Give made by the given user in the order they
	// were created.
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Give, error)
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

// Permissions returns the CommandBook permission nodes granted to users with
// the role.
func (r Role) Permissions() []string {
	switch r {
	case Admin:
		return []string{"commandbook.*"}
	case Normal:
		return []string{host.PermGive}
	default:
		return nil
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

// Give is a record of items being given to players on behalf of a user.
type Give struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// Targets are the names of the players who got the items.
	Targets []string

	// Stack is the item given and the amount requested. An Amount of
	// host.Unlimited means one unlimited stack was given to each target.
	Stack host.ItemStack

	// Drop is whether the items were dropped on the ground instead of put in
	// inventories.
	Drop bool

	Created time.Time
}
