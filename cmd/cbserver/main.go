/*
Cbserver starts a CommandBook server and begins listening for new connections.

Usage:

	cbserver [flags]
	cbserver [flags] -l [[ADDRESS]:PORT]

Once started, the CommandBook server will listen for HTTP requests and respond
to them using REST protocol. By default, it will listen on localhost:8080. This
can be changed with the --listen/-l flag (or config via environment var). The
flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the IP address preceeded by a colon, such as
":6001".

If a JWT token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but must be given via
either CLI flags or environment variable if running in production.

The flags are:

	-v, --version
		Give the current version of the CommandBook server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		CMDBOOK_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable CMDBOOK_TOKEN_SECRET. If no secret is specified or an empty
		secret is given, a random secret will be automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable CMDBOOK_DATABASE. If no DB driver
		is specified, an in-memory database is automatically selected.

	-w, --world FILE
		Run commands against the world defined in the given TOML file. If not
		given, will default to the value of environment variable CMDBOOK_WORLD,
		and if that is not given, the built-in default world is used.
*/
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/cmdbook/internal/version"
	"github.com/dekarrin/cmdbook/server"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/serr"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "CMDBOOK_LISTEN_ADDRESS"
	EnvSecret = "CMDBOOK_TOKEN_SECRET"
	EnvDB     = "CMDBOOK_DATABASE"
	EnvWorld  = "CMDBOOK_WORLD"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of CommandBook server and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
	flagWorld   = pflag.StringP("world", "w", "", "Use the world defined in the given TOML file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (CommandBook v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// get address info
	port := 0
	addr := ""
	listenAddr := envOrFlag(EnvListen, "listen", *flagListen)
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error

		addr = bindParts[0]
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	// assemble a server config
	cfg := server.Config{
		WorldFile: envOrFlag(EnvWorld, "world", *flagWorld),
	}

	if dbConnStr := envOrFlag(EnvDB, "db", *flagDB); dbConnStr != "" {
		var err error
		cfg.DB, err = server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err)
			os.Exit(1)
		}
	}

	// get token secret
	if tokSecStr := envOrFlag(EnvSecret, "secret", *flagSecret); tokSecStr != "" {
		tokSecret := []byte(tokSecStr)

		for len(tokSecret) < server.MinSecretSize {
			doubledTokSecret := make([]byte, len(tokSecret)*2)
			copy(doubledTokSecret, tokSecret)
			copy(doubledTokSecret[len(tokSecret):], tokSecret)
			tokSecret = doubledTokSecret
		}

		if len(tokSecret) > server.MaxSecretSize {
			// keys would be chopped at 64, so rather than the user thinking
			// they have more security by giving a longer key, refuse to start.
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= %d bytes\nDo -h for help.\n", len(tokSecret), server.MaxSecretSize)
			os.Exit(1)
		}
		cfg.TokenSecret = tokSecret
	} else {
		// use all 64 possible bytes if doing a generated secret
		cfg.TokenSecret = make([]byte, server.MaxSecretSize)
		_, err := rand.Read(cfg.TokenSecret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}

		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	// configuration complete, initialize the server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()
	log.Printf("DEBUG Server initialized")

	// immediately create the admin user so we have someone we can log in as.
	_, err = srv.Service().CreateUser(context.Background(), "admin", "password", "bogus@example.com", dao.Admin)
	if err != nil && !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("INFO  Added initial admin user with password 'password'...")
	}

	log.Printf("INFO  Starting CommandBook server %s...", version.ServerCurrent)
	srv.ServeForever(addr, port)
}

// envOrFlag gives the value of the named flag if it was set on the command
// line, otherwise the value of the environment variable env.
func envOrFlag(env string, flagName string, flagVal string) string {
	if pflag.Lookup(flagName).Changed {
		return flagVal
	}
	return os.Getenv(env)
}
