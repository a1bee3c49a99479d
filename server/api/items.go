package api

import (
	"net/http"

	"github.com/dekarrin/cmdbook/server/result"
)

// HTTPGetItems returns a HandlerFunc that lists the item catalog of the world,
// marking which items the client may give. Clients that are not logged in are
// given the answer for a guest.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the user of the client making the request, which may be the anonymous user.
func (api API) HTTPGetItems() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetItems)
}

func (api API) epGetItems(req *http.Request) result.Result {
	user := requireUser(req)

	items := api.Backend.GetItems(req.Context(), user)

	resp := make([]ItemModel, len(items))
	for i, it := range items {
		resp[i] = ItemModel{
			ID:          int(it.Type),
			Name:        it.Name,
			DisplayName: it.DisplayName,
			Allowed:     it.Allowed,
		}
	}
	return result.OK(resp, "user '%s' listed %d items", user.Username, len(resp))
}
