package api

import (
	"net/http"
	"strconv"

	"github.com/dekarrin/cmdbook/server/result"
)

// HTTPGetTime returns a HandlerFunc that gives the time of day. If the query
// parameter t is given, the time of day at that game tick is given instead of
// the current world time.
func (api API) HTTPGetTime() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetTime)
}

func (api API) epGetTime(req *http.Request) result.Result {
	var tick *int64

	if tStr := req.URL.Query().Get("t"); tStr != "" {
		t, err := strconv.ParseInt(tStr, 10, 64)
		if err != nil {
			return result.BadRequest("t: must be a whole number of game ticks", "t: %s", err.Error())
		}
		tick = &t
	}

	t, formatted := api.Backend.GetTime(req.Context(), tick)

	resp := TimeModel{
		Tick: t,
		Time: formatted,
	}
	return result.OK(resp, "got time for tick %d", t)
}

// HTTPUpdateTime returns a HandlerFunc that sets the world time. The user must
// have the commandbook.time.set permission.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPUpdateTime() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epUpdateTime)
}

func (api API) epUpdateTime(req *http.Request) result.Result {
	user := requireUser(req)

	var setReq TimeSetRequest
	err := parseJSON(req, &setReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if setReq.Tick == nil {
		return result.BadRequest("tick: property is missing from request", "missing tick")
	}

	formatted, err := api.Backend.SetTime(req.Context(), user, *setReq.Tick)
	if err != nil {
		return commandResult(user, "set time", err)
	}

	resp := TimeModel{
		Tick: *setReq.Tick,
		Time: formatted,
	}
	return result.OK(resp, "user '%s' set time to %d", user.Username, *setReq.Tick)
}
