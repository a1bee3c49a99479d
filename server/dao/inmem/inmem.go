// Package inmem provides DAO repositories that keep everything in memory. All
// data is lost when the server shuts down.
package inmem

import (
	"fmt"

	"github.com/dekarrin/cmdbook/server/dao"
)

type store struct {
	users *InMemoryUsersRepository
	gives *InMemoryGivesRepository
}

func NewDatastore() dao.Store {
	return &store{
		users: NewUsersRepository(),
		gives: NewGivesRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Gives() dao.GiveRepository {
	return s.gives
}

func (s *store) Close() error {
	var err error

	if nextErr := s.users.Close(); nextErr != nil {
		err = fmt.Errorf("users: %w", nextErr)
	}
	if nextErr := s.gives.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, gives: %w", err, nextErr)
		} else {
			err = fmt.Errorf("gives: %w", nextErr)
		}
	}

	return err
}
