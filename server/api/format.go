package api

import (
	"net/http"

	"github.com/dekarrin/cmdbook/server/result"
)

// HTTPCreateFormat returns a HandlerFunc that replaces the color macros in
// the given text.
func (api API) HTTPCreateFormat() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateFormat)
}

func (api API) epCreateFormat(req *http.Request) result.Result {
	var formatReq FormatRequest
	err := parseJSON(req, &formatReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	f := api.Backend.Format(req.Context(), formatReq.Text)

	resp := FormatModel{
		Text:  f.Text,
		ANSI:  f.ANSI,
		Plain: f.Plain,
	}
	return result.OK(resp, "formatted %d bytes of text", len(formatReq.Text))
}

// HTTPCreateBroadcast returns a HandlerFunc that sends a message to everyone
// in the world. The user must have the commandbook.broadcast permission.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreateBroadcast() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateBroadcast)
}

func (api API) epCreateBroadcast(req *http.Request) result.Result {
	user := requireUser(req)

	var formatReq FormatRequest
	err := parseJSON(req, &formatReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if formatReq.Text == "" {
		return result.BadRequest("text: property is empty or missing from request", "empty text")
	}

	f, err := api.Backend.Broadcast(req.Context(), user, formatReq.Text)
	if err != nil {
		return commandResult(user, "broadcast", err)
	}

	resp := FormatModel{
		Text:  f.Text,
		ANSI:  f.ANSI,
		Plain: f.Plain,
	}
	return result.Created(resp, "user '%s' broadcast a message", user.Username)
}
