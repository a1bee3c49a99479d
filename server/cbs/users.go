package cbs

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/serr"
	"github.com/google/uuid"
)

// UserChange holds the account properties to change in a call to UpdateUser.
// Nil fields are left as they are.
type UserChange struct {
	Username *string
	Password *string
	Email    *string
	Role     *dao.Role
}

// GetAllUsers returns every API account.
func (svc Service) GetAllUsers(ctx context.Context) ([]dao.User, error) {
	users, err := svc.DB.Users().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("could not list users", err)
	}
	return users, nil
}

// GetUser returns the account with the given ID. The returned error will
// match serr.ErrNotFound if there is no such account.
func (svc Service) GetUser(ctx context.Context, id uuid.UUID) (dao.User, error) {
	return svc.lookupUser(ctx, id)
}

// CreateUser adds an API account. An account acts as the player with the same
// name when giving items or reading messages, so username must be usable as a
// player name and must not differ only in case from an existing username.
//
// The returned error will match serr.ErrBadArgument if an argument is not
// valid, serr.ErrAlreadyExists if the username is taken, and serr.ErrDB if
// the store failed.
func (svc Service) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	if err := svc.checkUsername(ctx, username, uuid.Nil); err != nil {
		return dao.User{}, err
	}
	addr, err := parseEmail(email)
	if err != nil {
		return dao.User{}, err
	}
	hash, err := svc.newPasswordHash(password)
	if err != nil {
		return dao.User{}, err
	}

	user, err := svc.DB.Users().Create(ctx, dao.User{
		Username: username,
		Password: hash,
		Email:    addr,
		Role:     role,
	})
	if err != nil {
		return dao.User{}, userWriteErr("could not create user", err)
	}
	return user, nil
}

// UpdateUser applies ch to the account with the given ID and returns the
// result. The same rules as CreateUser apply to a new username.
//
// The returned error will match serr.ErrNotFound if there is no such account,
// serr.ErrBadArgument if a change is not valid, serr.ErrAlreadyExists if the
// new username is taken, and serr.ErrDB if the store failed.
func (svc Service) UpdateUser(ctx context.Context, id uuid.UUID, ch UserChange) (dao.User, error) {
	user, err := svc.lookupUser(ctx, id)
	if err != nil {
		return dao.User{}, err
	}

	if ch.Username != nil && *ch.Username != user.Username {
		if err := svc.checkUsername(ctx, *ch.Username, user.ID); err != nil {
			return dao.User{}, err
		}
		user.Username = *ch.Username
	}
	if ch.Email != nil {
		if user.Email, err = parseEmail(*ch.Email); err != nil {
			return dao.User{}, err
		}
	}
	if ch.Password != nil {
		if user.Password, err = svc.newPasswordHash(*ch.Password); err != nil {
			return dao.User{}, err
		}
	}
	if ch.Role != nil {
		user.Role = *ch.Role
	}

	updated, err := svc.DB.Users().Update(ctx, id, user)
	if err != nil {
		return dao.User{}, userWriteErr("could not update user", err)
	}
	return updated, nil
}

// DeleteUser removes the account with the given ID and returns it as it was
// just before removal. Gives it made stay in the give log.
func (svc Service) DeleteUser(ctx context.Context, id uuid.UUID) (dao.User, error) {
	user, err := svc.DB.Users().Delete(ctx, id)
	if err != nil {
		return dao.User{}, userWriteErr("could not delete user", err)
	}
	return user, nil
}

// Permissions returns the CommandBook permission nodes that the role of u
// grants, with wildcards expanded.
func (svc Service) Permissions(u dao.User) []string {
	return newUserSender(u).grants()
}

func (svc Service) lookupUser(ctx context.Context, id uuid.UUID) (dao.User, error) {
	user, err := svc.DB.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.ErrNotFound
		}
		return dao.User{}, serr.WrapDB("could not get user", err)
	}
	return user, nil
}

// checkUsername returns an error if name cannot be the username of the
// account with ID self. Use uuid.Nil for an account not yet created.
func (svc Service) checkUsername(ctx context.Context, name string, self uuid.UUID) error {
	if err := world.ValidatePlayerName(name); err != nil {
		return serr.New("username: "+err.Error(), serr.ErrBadArgument)
	}

	users, err := svc.DB.Users().GetAll(ctx)
	if err != nil {
		return serr.WrapDB("could not check username", err)
	}
	for _, u := range users {
		if u.ID != self && strings.EqualFold(u.Username, name) {
			return serr.New("username is already taken by '"+u.Username+"'", serr.ErrAlreadyExists)
		}
	}
	return nil
}

func (svc Service) newPasswordHash(password string) (string, error) {
	if password == "" {
		return "", serr.New("password cannot be blank", serr.ErrBadArgument)
	}
	return svc.hashPassword(password)
}

func parseEmail(email string) (*mail.Address, error) {
	if email == "" {
		return nil, nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, serr.New("email is not valid", err, serr.ErrBadArgument)
	}
	return addr, nil
}

// userWriteErr maps an error from writing a user to the store.
func userWriteErr(msg string, err error) error {
	switch {
	case errors.Is(err, dao.ErrNotFound):
		return serr.ErrNotFound
	case errors.Is(err, dao.ErrConstraintViolation):
		return serr.New("a user with that username already exists", serr.ErrAlreadyExists)
	default:
		return serr.WrapDB(msg, err)
	}
}
