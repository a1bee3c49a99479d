package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/dao/inmem"
	"github.com/dekarrin/cmdbook/server/dao/sqlite"
	"golang.org/x/crypto/bcrypt"
)

// DBType is the engine that accounts and the give log are kept in.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// Token secrets must be within these sizes, in bytes.
const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

const (
	defaultUnauthDelayMillis = 1000
	defaultTokenSecret       = "DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!"
)

// ParseDBType gives the DBType named by s, ignoring case.
func ParseDBType(s string) (DBType, error) {
	switch t := DBType(strings.ToLower(s)); t {
	case DatabaseSQLite, DatabaseInMemory:
		return t, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database says where a server keeps its accounts and give log.
type Database struct {
	Type DBType

	// DataDir is the directory the SQLite files go in. Unused by other types.
	DataDir string
}

// Connect opens the store described by db. For SQLite, DataDir is created if
// it does not exist.
func (db Database) Connect() (dao.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return store, nil
}

// Validate returns an error if db cannot be connected to.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("sqlite needs a data directory")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid")
	default:
		return fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// ParseDBConnString parses a connection string as given to cbserver with
// --db. It is the engine name, followed for sqlite by a colon and the data
// directory: "inmem" or "sqlite:/var/cmdbook".
func ParseDBConnString(s string) (Database, error) {
	engine, params, _ := strings.Cut(s, ":")
	params = strings.TrimSpace(params)

	if strings.EqualFold(strings.TrimSpace(engine), DatabaseNone.String()) {
		return Database{}, fmt.Errorf("cannot specify DB engine 'none' (perhaps you wanted 'inmem'?)")
	}
	dbType, err := ParseDBType(strings.TrimSpace(engine))
	if err != nil {
		return Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	db := Database{Type: dbType}
	switch dbType {
	case DatabaseInMemory:
		if params != "" {
			return Database{}, fmt.Errorf("inmem takes no params, got %q", params)
		}
	case DatabaseSQLite:
		if params == "" {
			return Database{}, fmt.Errorf("sqlite needs a data directory after ':'")
		}
		db.DataDir = params
	}
	return db, nil
}

// Config holds everything needed to start a CommandBookServer.
type Config struct {

	// WorldFile is a TOML world file giving the groups, players, and item
	// catalog that commands run against. If blank, world.Default is used.
	WorldFile string

	// TokenSecret signs the tokens given out at login. If nil a fixed
	// development secret is used.
	TokenSecret []byte

	// DB is where accounts and the give log are kept. If not set, they are
	// kept in memory and lost at shutdown.
	DB Database

	// UnauthDelayMillis is how long to hold back a 401 or 403 response, which
	// slows down clients guessing passwords. It defaults to 1000; a negative
	// value disables the delay.
	UnauthDelayMillis int

	// HashCost is the bcrypt cost for new passwords. If 0,
	// cbs.DefaultHashCost is used.
	HashCost int
}

// UnauthDelay gives UnauthDelayMillis as a Duration, or 0 if it is not
// positive.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Duration(cfg.UnauthDelayMillis) * time.Millisecond
}

// FillDefaults returns a copy of cfg with its unset fields given their
// default values.
func (cfg Config) FillDefaults() Config {
	if cfg.TokenSecret == nil {
		cfg.TokenSecret = []byte(defaultTokenSecret)
	}
	if cfg.DB.Type == "" || cfg.DB.Type == DatabaseNone {
		cfg.DB = Database{Type: DatabaseInMemory}
	}
	if cfg.UnauthDelayMillis == 0 {
		cfg.UnauthDelayMillis = defaultUnauthDelayMillis
	}
	return cfg
}

// Validate returns an error if cfg cannot be used to start a server. Unset
// fields are errors; call it on the result of FillDefaults to allow them.
func (cfg Config) Validate() error {
	if n := len(cfg.TokenSecret); n < MinSecretSize || n > MaxSecretSize {
		return fmt.Errorf("token secret: must be %d to %d bytes, but is %d", MinSecretSize, MaxSecretSize, n)
	}
	if cfg.HashCost != 0 && (cfg.HashCost < bcrypt.MinCost || cfg.HashCost > bcrypt.MaxCost) {
		return fmt.Errorf("hash cost: must be %d to %d, but is %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.HashCost)
	}
	if cfg.WorldFile != "" {
		if info, err := os.Stat(cfg.WorldFile); err != nil {
			return fmt.Errorf("world file: %w", err)
		} else if info.IsDir() {
			return fmt.Errorf("world file: %s is a directory", cfg.WorldFile)
		}
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	return nil
}

// LoadWorld reads WorldFile, or gives the default world if it is blank.
func (cfg Config) LoadWorld() (*world.World, error) {
	if cfg.WorldFile == "" {
		return world.Default(), nil
	}
	return world.Load(cfg.WorldFile)
}
