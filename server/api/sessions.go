package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/result"
	"github.com/dekarrin/cmdbook/server/serr"
	"github.com/dekarrin/cmdbook/server/token"
)

// session issues a new token for u and gives the response that carries it.
// action is used in the log message.
func (api API) session(u dao.User, action string) result.Result {
	tok, err := token.Generate(api.Secret, u)
	if err != nil {
		return result.InternalServerError("user '%s' %s: generate token: %s", u.Username, action, err.Error())
	}

	resp := LoginResponse{
		Token:       tok,
		UserID:      u.ID.String(),
		Permissions: api.Backend.Permissions(u),
	}
	return result.Created(resp, "user '%s' %s", u.Username, action)
}

// HTTPCreateLogin returns a HandlerFunc that checks a username and password
// and gives a token for the account along with the permission nodes its role
// grants.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	var loginReq LoginRequest
	if err := parseJSON(req, &loginReq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if loginReq.Username == "" || loginReq.Password == "" {
		return result.BadRequest("username and password are both required", "missing credentials")
	}

	user, err := api.Backend.Login(req.Context(), loginReq.Username, loginReq.Password)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "user '%s': %s", loginReq.Username, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return api.session(user, "logged in")
}

// HTTPCreateToken returns a HandlerFunc that gives a fresh token for the
// account the client is logged in as.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	return api.session(requireUser(req), "refreshed token")
}

// HTTPDeleteLogin returns a HandlerFunc that logs an account out, making every
// token issued to it before now invalid. Users may log out themselves; admins
// may log out anyone.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the account to log out and the logged-in user of the client making
// the request.
func (api API) HTTPDeleteLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteLogin)
}

func (api API) epDeleteLogin(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := requireUser(req)

	if !mayManage(user, id) {
		return result.Forbidden("user '%s' (role %s) log out user %s: forbidden", user.Username, user.Role, id)
	}

	loggedOut, err := api.Backend.Logout(req.Context(), id)
	if err != nil {
		return commandResult(user, "log out user "+id.String(), err)
	}

	return result.NoContent("user '%s' logged out user '%s'", user.Username, loggedOut.Username)
}
