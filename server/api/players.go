package api

import (
	"net/http"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/server/result"
)

// HTTPGetPlayers returns a HandlerFunc that lists the players who are online.
func (api API) HTTPGetPlayers() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetPlayers)
}

func (api API) epGetPlayers(req *http.Request) result.Result {
	msg, names := api.Backend.GetPlayers(req.Context())

	resp := PlayerListModel{
		Message: msg,
		Players: names,
	}
	if resp.Players == nil {
		resp.Players = []string{}
	}
	return result.OK(resp, "got %d online players", len(names))
}

// HTTPCreatePlayer returns a HandlerFunc that puts a new player in the world.
// Only an admin user can add players.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreatePlayer() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreatePlayer)
}

func (api API) epCreatePlayer(req *http.Request) result.Result {
	user := requireUser(req)

	var joinReq PlayerModel
	err := parseJSON(req, &joinReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if joinReq.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	loc := host.Location{X: joinReq.X, Y: joinReq.Y, Z: joinReq.Z, Yaw: joinReq.Yaw}
	p, err := api.Backend.JoinPlayer(req.Context(), user, joinReq.Name, loc, joinReq.Groups...)
	if err != nil {
		return commandResult(user, "join player '"+joinReq.Name+"'", err)
	}

	resp := PlayerModel{
		URI:    PathPrefix + "/players/" + p.Name(),
		Name:   p.Name(),
		ID:     p.ID().String(),
		Groups: p.Groups(),
		X:      p.Location().X,
		Y:      p.Location().Y,
		Z:      p.Location().Z,
		Yaw:    p.Location().Yaw,
	}
	return result.Created(resp, "user '%s' added player '%s'", user.Username, p.Name())
}

// HTTPDeletePlayer returns a HandlerFunc that removes a player from the world.
// Only an admin user can remove players.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the name of the player and the logged-in user of the client making the
// request.
func (api API) HTTPDeletePlayer() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeletePlayer)
}

func (api API) epDeletePlayer(req *http.Request) result.Result {
	name := requireNameParam(req)
	user := requireUser(req)

	if err := api.Backend.LeavePlayer(req.Context(), user, name); err != nil {
		return commandResult(user, "remove player '"+name+"'", err)
	}

	return result.NoContent("user '%s' removed player '%s'", user.Username, name)
}

// HTTPGetDirection returns a HandlerFunc that gives the compass direction an
// online player is facing.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the name of the player.
func (api API) HTTPGetDirection() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetDirection)
}

func (api API) epGetDirection(req *http.Request) result.Result {
	name := requireNameParam(req)

	dir, err := api.Backend.GetDirection(req.Context(), name)
	if err != nil {
		return commandResult(requireUser(req), "get direction of '"+name+"'", err)
	}

	resp := DirectionModel{
		Player:    name,
		Direction: dir,
	}
	return result.OK(resp, "got direction of player '%s'", name)
}

// HTTPGetMessages returns a HandlerFunc that retrieves and clears the chat
// messages sent to a player. Users may only read the messages of the player
// with their own name unless they are an admin.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the name of the player and the logged-in user of the client making the
// request.
func (api API) HTTPGetMessages() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetMessages)
}

func (api API) epGetMessages(req *http.Request) result.Result {
	name := requireNameParam(req)
	user := requireUser(req)

	msgs, err := api.Backend.TakePlayerMessages(req.Context(), user, name)
	if err != nil {
		return commandResult(user, "read messages of '"+name+"'", err)
	}

	resp := MessagesModel{
		Player:   name,
		Messages: msgs,
	}
	if resp.Messages == nil {
		resp.Messages = []string{}
	}
	return result.OK(resp, "user '%s' read %d messages of player '%s'", user.Username, len(msgs), name)
}
