package api

import (
	"net/http"

	"github.com/dekarrin/cmdbook/server/cbs"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/result"
	"github.com/google/uuid"
)

// mayManage returns whether user may view or change the account with the
// given ID. Admins may manage every account; everyone else only their own.
func mayManage(user dao.User, id uuid.UUID) bool {
	return user.Role == dao.Admin || user.ID == id
}

// userResponse gives the client model of u, including the permissions its
// role grants and whether the player it acts as is online.
func (api API) userResponse(u dao.User) UserModel {
	m := userModel(u)
	m.Permissions = api.Backend.Permissions(u)
	if api.Backend.World != nil {
		_, m.Online = api.Backend.World.Player(u.Username)
	}
	return m
}

// HTTPGetAllUsers returns a HandlerFunc that lists every API account. Only an
// admin may list accounts.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPGetAllUsers() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllUsers)
}

func (api API) epGetAllUsers(req *http.Request) result.Result {
	user := requireUser(req)

	if user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) list users: forbidden", user.Username, user.Role)
	}

	users, err := api.Backend.GetAllUsers(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]UserModel, len(users))
	for i := range users {
		resp[i] = api.userResponse(users[i])
	}
	return result.OK(resp, "user '%s' listed %d users", user.Username, len(resp))
}

// HTTPCreateUser returns a HandlerFunc that adds an API account. Only an admin
// may add accounts. The username must be usable as a player name, since the
// account acts as the player of that name.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreateUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateUser)
}

func (api API) epCreateUser(req *http.Request) result.Result {
	user := requireUser(req)

	if user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) create user: forbidden", user.Username, user.Role)
	}

	var createReq UserModel
	if err := parseJSON(req, &createReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	role := dao.Unverified
	if createReq.Role != "" {
		var err error
		if role, err = dao.ParseRole(createReq.Role); err != nil {
			return result.BadRequest("role: "+err.Error(), "role: %s", err.Error())
		}
	}

	created, err := api.Backend.CreateUser(req.Context(), createReq.Username, createReq.Password, createReq.Email, role)
	if err != nil {
		return commandResult(user, "create user '"+createReq.Username+"'", err)
	}

	return result.Created(api.userResponse(created), "user '%s' created user '%s' (%s)", user.Username, created.Username, created.Role)
}

// HTTPGetUser returns a HandlerFunc that gets one API account. Users may get
// their own account; admins may get any.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the account and the logged-in user of the client making the
// request.
func (api API) HTTPGetUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetUser)
}

func (api API) epGetUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := requireUser(req)

	if !mayManage(user, id) {
		return result.Forbidden("user '%s' (role %s) get user %s: forbidden", user.Username, user.Role, id)
	}

	found, err := api.Backend.GetUser(req.Context(), id)
	if err != nil {
		return commandResult(user, "get user "+id.String(), err)
	}

	return result.OK(api.userResponse(found), "user '%s' got user '%s'", user.Username, found.Username)
}

// HTTPUpdateUser returns a HandlerFunc that changes an API account. Only the
// properties present in the request are changed. Users may change their own
// account; admins may change any, and only admins may change a role.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the account and the logged-in user of the client making the
// request.
func (api API) HTTPUpdateUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateUser)
}

func (api API) epUpdateUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := requireUser(req)

	if !mayManage(user, id) {
		return result.Forbidden("user '%s' (role %s) update user %s: forbidden", user.Username, user.Role, id)
	}

	var updateReq UserUpdateRequest
	if err := parseJSON(req, &updateReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	ch := cbs.UserChange{
		Username: updateReq.Username,
		Password: updateReq.Password,
		Email:    updateReq.Email,
	}
	if updateReq.Role != nil {
		if user.Role != dao.Admin {
			return result.Forbidden("user '%s' (role %s) change role: forbidden", user.Username, user.Role)
		}
		role, err := dao.ParseRole(*updateReq.Role)
		if err != nil {
			return result.BadRequest("role: "+err.Error(), "role: %s", err.Error())
		}
		ch.Role = &role
	}

	updated, err := api.Backend.UpdateUser(req.Context(), id, ch)
	if err != nil {
		return commandResult(user, "update user "+id.String(), err)
	}

	return result.OK(api.userResponse(updated), "user '%s' updated user '%s'", user.Username, updated.Username)
}

// HTTPDeleteUser returns a HandlerFunc that removes an API account. Users may
// remove their own account; admins may remove any. The gives the account made
// stay in the give log.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the account and the logged-in user of the client making the
// request.
func (api API) HTTPDeleteUser() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteUser)
}

func (api API) epDeleteUser(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := requireUser(req)

	if !mayManage(user, id) {
		return result.Forbidden("user '%s' (role %s) delete user %s: forbidden", user.Username, user.Role, id)
	}

	deleted, err := api.Backend.DeleteUser(req.Context(), id)
	if err != nil {
		return commandResult(user, "delete user "+id.String(), err)
	}

	return result.NoContent("user '%s' deleted user '%s'", user.Username, deleted.Username)
}
