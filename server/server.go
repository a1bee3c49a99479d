// Package server provides the CommandBook REST server, which runs CommandBook
// commands against a world on behalf of logged-in users.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/api"
	"github.com/dekarrin/cmdbook/server/cbs"
	"github.com/go-chi/chi/v5"
)

// server:
//  POST   /login                     - accepts user and password and returns a jwt.
//  DELETE /login/{id}                - ends user authentication session and invalidates its jwts.
//  POST   /tokens                    - refreshes the token without requiring credentials (requires auth)
//  POST   /users                     - create a new user account (admin auth required)
//  GET    /users                     - get all users (admin auth required)
//  GET    /users/{id}                - get info on a user (auth required)
//  PATCH  /users/{id}                - update a user (auth required)
//  DELETE /users/{id}                - delete a user (auth required)
//  GET    /info                      - get version info on the server.
//  GET    /players                   - list online players.
//  POST   /players                   - add a player to the world (admin auth required)
//  DELETE /players/{name}            - remove a player from the world (admin auth required)
//  GET    /players/{name}/direction  - get the compass direction a player faces.
//  GET    /players/{name}/messages   - read and clear a player's chat messages (auth required)
//  GET    /time                      - get the time of day, now or at ?t=TICK.
//  PUT    /time                      - set the world time (auth required)
//  POST   /format                    - replace color macros in text.
//  POST   /broadcasts                - send a message to everyone (auth required)
//  POST   /gives                     - give items to players (auth required)
//  GET    /gives                     - get the give log (auth required)
//  GET    /gives/{id}                - get an entry of the give log (auth required)

// CommandBookServer is an HTTP REST server that runs CommandBook commands
// against a world. The zero-value of a CommandBookServer should not be used
// directly; call New() to get one ready for use.
type CommandBookServer struct {
	router chi.Router
	api    api.API
}

// New creates a new CommandBookServer from the given config. Defaults are
// filled in for any unset values of cfg before it is validated.
func New(cfg Config) (CommandBookServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return CommandBookServer{}, fmt.Errorf("config: %w", err)
	}

	w, err := cfg.LoadWorld()
	if err != nil {
		return CommandBookServer{}, fmt.Errorf("world: %w", err)
	}

	return NewWithWorld(cfg, w)
}

// NewWithWorld is like New but runs commands against an existing world
// instead of the one in cfg.
func NewWithWorld(cfg Config, w *world.World) (CommandBookServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return CommandBookServer{}, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return CommandBookServer{}, fmt.Errorf("connect DB: %w", err)
	}

	srv := CommandBookServer{
		api: api.API{
			Backend: cbs.Service{
				DB:       db,
				World:    w,
				HashCost: cfg.HashCost,
			},
			UnauthDelay: cfg.UnauthDelay(),
			Secret:      cfg.TokenSecret,
		},
	}
	srv.router = newRouter(srv.api)

	return srv, nil
}

// Service returns the backend that the server uses to carry out requests.
func (srv CommandBookServer) Service() cbs.Service {
	return srv.api.Backend
}

// ServeHTTP routes the request to the API endpoint that handles it.
func (srv CommandBookServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	srv.router.ServeHTTP(w, req)
}

// Close releases the persistence layer of the server.
func (srv CommandBookServer) Close() error {
	return srv.api.Backend.DB.Close()
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost". If
// port is less than 1, it will default to 8080.
func (srv CommandBookServer) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, srv))
}
