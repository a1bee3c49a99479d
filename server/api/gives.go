package api

import (
	"net/http"

	"github.com/dekarrin/cmdbook/internal/chat"
	"github.com/dekarrin/cmdbook/server/cbs"
	"github.com/dekarrin/cmdbook/server/result"
)

// HTTPCreateGive returns a HandlerFunc that gives items to players as the
// logged-in user and records it in the give log. Rejected requests give an
// HTTP-403 if the user lacks permission and an HTTP-400 if the request is
// invalid or asks for too much.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreateGive() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateGive)
}

func (api API) epCreateGive(req *http.Request) result.Result {
	user := requireUser(req)

	var giveReq GiveRequest
	err := parseJSON(req, &giveReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	amount := 1
	if giveReq.Amount != nil {
		amount = *giveReq.Amount
	}

	logged, msgs, err := api.Backend.Give(req.Context(), user, cbs.GiveRequest{
		Targets: giveReq.Targets,
		Item:    giveReq.Item,
		Amount:  amount,
		Drop:    giveReq.Drop,
	})
	if err != nil {
		return commandResult(user, "give", err)
	}

	resp := GiveResultModel{
		Give:     giveModel(logged),
		Messages: make([]string, len(msgs)),
	}
	for i := range msgs {
		resp.Messages[i] = chat.Strip(msgs[i])
	}

	return result.Created(resp, "user '%s' gave %s to %v", user.Username, logged.Stack, logged.Targets)
}

// HTTPGetAllGives returns a HandlerFunc that retrieves the give log. Admin
// users get every entry; all other users get only their own.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPGetAllGives() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllGives)
}

func (api API) epGetAllGives(req *http.Request) result.Result {
	user := requireUser(req)

	gives, err := api.Backend.GetGives(req.Context(), user)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]GiveModel, len(gives))
	for i := range gives {
		resp[i] = giveModel(gives[i])
	}

	return result.OK(resp, "user '%s' got %d gives", user.Username, len(resp))
}

// HTTPGetGive returns a HandlerFunc that retrieves a single entry of the give
// log. Users may only retrieve the gives they made unless they are an admin.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the give and the logged-in user of the client making the request.
func (api API) HTTPGetGive() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetGive)
}

func (api API) epGetGive(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := requireUser(req)

	g, err := api.Backend.GetGive(req.Context(), user, id)
	if err != nil {
		return commandResult(user, "get give "+id.String(), err)
	}

	return result.OK(giveModel(g), "user '%s' got give %s", user.Username, id)
}
