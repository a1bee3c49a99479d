package cbs

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/serr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Login checks password against the account called username and records the
// login time on it. The returned account is the one tokens should be issued
// for; its username is the name of the player it acts as.
//
// The returned error will match serr.ErrBadCredentials if there is no such
// account or the password is wrong, and serr.ErrDB if the store failed.
func (svc Service) Login(ctx context.Context, username string, password string) (dao.User, error) {
	user, err := svc.DB.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.ErrBadCredentials
		}
		return dao.User{}, serr.WrapDB("could not get user", err)
	}

	if err := checkPassword(user.Password, password); err != nil {
		return dao.User{}, err
	}

	user.LastLoginTime = time.Now()
	if user, err = svc.DB.Users().Update(ctx, user.ID, user); err != nil {
		return dao.User{}, serr.WrapDB("could not record login", err)
	}
	return user, nil
}

// Logout records a logout on the account with the given ID. Tokens issued to
// it before now stop being accepted.
//
// The returned error will match serr.ErrNotFound if there is no such account,
// and serr.ErrDB if the store failed.
func (svc Service) Logout(ctx context.Context, who uuid.UUID) (dao.User, error) {
	user, err := svc.lookupUser(ctx, who)
	if err != nil {
		return dao.User{}, err
	}

	user.LastLogoutTime = time.Now()
	if user, err = svc.DB.Users().Update(ctx, user.ID, user); err != nil {
		return dao.User{}, serr.WrapDB("could not record logout", err)
	}
	return user, nil
}

// checkPassword compares password against a stored hash as made by
// hashPassword.
func checkPassword(stored, password string) error {
	hash, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return serr.New("stored password is corrupt", err)
	}

	err = bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return serr.ErrBadCredentials
	} else if err != nil {
		return serr.New("could not check password", err)
	}
	return nil
}

// hashPassword gives the base64 bcrypt hash of password at the service's
// hash cost.
func (svc Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), svc.hashCost())
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", serr.New("password is too long", err, serr.ErrBadArgument)
	} else if err != nil {
		return "", serr.New("password could not be hashed", err)
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}
