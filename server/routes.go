package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/cmdbook/server/api"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/middle"
	"github.com/dekarrin/cmdbook/server/result"
	"github.com/go-chi/chi/v5"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in route
// listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that else
		// treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

func newRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Mount(api.PathPrefix, newAPIRouter(a))

	return r
}

func newAPIRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Mount("/login", newLoginRouter(a))
	r.Mount("/tokens", newTokensRouter(a))
	r.Mount("/users", newUsersRouter(a))
	r.Mount("/info", newInfoRouter(a))
	r.Mount("/players", newPlayersRouter(a))
	r.Mount("/time", newTimeRouter(a))
	r.Mount("/format", newFormatRouter(a))
	r.Mount("/broadcasts", newBroadcastsRouter(a))
	r.Mount("/gives", newGivesRouter(a))
	r.Mount("/items", newItemsRouter(a))
	r.HandleFunc("/info/", RedirectNoTrailingSlash)
	r.HandleFunc("/time/", RedirectNoTrailingSlash)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		result.NotFound().WriteResponse(w, req)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(a.UnauthDelay)
		result.MethodNotAllowed(req).WriteResponse(w, req)
	})

	return r
}

func requireAuth(a api.API) middle.Middleware {
	return middle.RequireAuth(a.Backend.DB.Users(), a.Secret, a.UnauthDelay, dao.User{})
}

func optionalAuth(a api.API) middle.Middleware {
	return middle.OptionalAuth(a.Backend.DB.Users(), a.Secret, a.UnauthDelay, dao.User{Username: "anonymous", Role: dao.Guest})
}

func newLoginRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Post("/", a.HTTPCreateLogin())
	r.With(requireAuth(a)).Delete("/"+p("id:uuid"), a.HTTPDeleteLogin())
	r.HandleFunc("/"+p("id:uuid")+"/", RedirectNoTrailingSlash)

	return r
}

func newTokensRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(requireAuth(a)).Post("/", a.HTTPCreateToken())

	return r
}

func newUsersRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Use(requireAuth(a))

	r.Get("/", a.HTTPGetAllUsers())
	r.Post("/", a.HTTPCreateUser())

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", a.HTTPGetUser())
		r.Patch("/", a.HTTPUpdateUser())
		r.Delete("/", a.HTTPDeleteUser())
	})

	return r
}

func newInfoRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth(a)).Get("/", a.HTTPGetInfo())

	return r
}

func newPlayersRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth(a)).Get("/", a.HTTPGetPlayers())
	r.With(requireAuth(a)).Post("/", a.HTTPCreatePlayer())

	r.Route("/"+p("name"), func(r chi.Router) {
		r.With(requireAuth(a)).Delete("/", a.HTTPDeletePlayer())
		r.With(optionalAuth(a)).Get("/direction", a.HTTPGetDirection())
		r.With(requireAuth(a)).Get("/messages", a.HTTPGetMessages())
	})

	return r
}

func newTimeRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth(a)).Get("/", a.HTTPGetTime())
	r.With(requireAuth(a)).Put("/", a.HTTPUpdateTime())

	return r
}

func newFormatRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Post("/", a.HTTPCreateFormat())

	return r
}

func newBroadcastsRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(requireAuth(a)).Post("/", a.HTTPCreateBroadcast())

	return r
}

func newItemsRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.With(optionalAuth(a)).Get("/", a.HTTPGetItems())

	return r
}

func newGivesRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Use(requireAuth(a))

	r.Get("/", a.HTTPGetAllGives())
	r.Post("/", a.HTTPCreateGive())
	r.Get("/"+p("id:uuid"), a.HTTPGetGive())

	return r
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same URL as the
// request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	result.Redirection(redirPath).WriteResponse(w, req)
}
