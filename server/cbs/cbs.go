// Package cbs has services for interacting with the CommandBook server backend
// decoupled from the API that accesses it.
package cbs

import (
	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/dao"
)

// DefaultHashCost is the bcrypt cost used for passwords when Service.HashCost
// is not set.
const DefaultHashCost = 14

// Service is a service for interacting with and modifying the CommandBook
// server backend. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB and a world to World before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// World is the game server that commands are run against.
	World *world.World

	// HashCost is the bcrypt cost used when hashing new passwords. If not set,
	// DefaultHashCost is used.
	HashCost int
}

func (svc Service) hashCost() int {
	if svc.HashCost < 1 {
		return DefaultHashCost
	}
	return svc.HashCost
}
