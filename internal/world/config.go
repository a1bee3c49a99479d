package world

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/internal/util"
)

// FormatVersion is the only world file format version understood.
const FormatVersion = "CBW 1.0"

// ErrUnknownGroup is returned when a player is put in a group that is not
// defined.
var ErrUnknownGroup = errors.New("group is not defined")

// ErrInvalidName is returned when a player name cannot be used.
var ErrInvalidName = errors.New("not a valid player name")

// Config is the marshaled form of a world file. World files are TOML.
type Config struct {
	Format string `toml:"format"`

	// Time is the game tick the world starts at.
	Time int64 `toml:"time"`

	// DefaultGroup is the group that every player is in in addition to the
	// ones listed for them. It may be left empty.
	DefaultGroup string `toml:"default_group"`

	Items   ItemRules              `toml:"items"`
	Catalog []CatalogEntry         `toml:"item"`
	Groups  map[string]GroupConfig `toml:"groups"`
	Players []PlayerConfig         `toml:"player"`
}

// ItemRules restricts which items may be given. If Allow is not empty, only
// the items in it may be used. Items in Deny may never be used. Senders with
// the commandbook.override.any-item permission ignore both lists.
type ItemRules struct {
	Allow []int `toml:"allow"`
	Deny  []int `toml:"deny"`
}

// CatalogEntry is a single item in the world's item catalog.
type CatalogEntry struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

// GroupConfig lists the permission nodes of a group.
type GroupConfig struct {
	Permissions []string `toml:"permissions"`
}

// PlayerConfig is a player that is online when the world starts.
type PlayerConfig struct {
	Name   string   `toml:"name"`
	Groups []string `toml:"groups"`
	X      float64  `toml:"x"`
	Y      float64  `toml:"y"`
	Z      float64  `toml:"z"`
	Yaw    float64  `toml:"yaw"`
}

// DefaultConfig is the world used when no world file is given. It has a
// handful of players in different permission groups so that every command can
// be tried out.
func DefaultConfig() Config {
	return Config{
		Format:       FormatVersion,
		Time:         0,
		DefaultGroup: "default",
		Items: ItemRules{
			Deny: []int{7, 46, 327},
		},
		Groups: map[string]GroupConfig{
			"default": {Permissions: []string{"commandbook.give"}},
			"builder": {Permissions: []string{"commandbook.give.stacks"}},
			"admin":   {Permissions: []string{"commandbook.*"}},
		},
		Players: []PlayerConfig{
			{Name: "sk89q", Groups: []string{"admin"}, Y: 64, Yaw: 90},
			{Name: "tetsu", Groups: []string{"builder"}, X: 12, Y: 70, Z: -4, Yaw: 180},
			{Name: "guest", Y: 64, Yaw: 0},
		},
	}
}

// LoadConfig reads a world file from disk.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read world file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses the contents of a world file.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode world file: %w", err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i := range undec {
			keys[i] = undec[i].String()
		}
		return Config{}, fmt.Errorf("decode world file: unknown keys: %s", strings.Join(keys, ", "))
	}

	if cfg.Format != FormatVersion {
		return Config{}, fmt.Errorf("world file format %q is not supported; must be %q", cfg.Format, FormatVersion)
	}

	return cfg, nil
}

// Validate returns an error if the config cannot be used to build a World.
func (cfg Config) Validate() error {
	for _, name := range util.OrderedKeys(cfg.Groups) {
		if name == "" {
			return fmt.Errorf("groups: group name is empty")
		}
		for i, perm := range cfg.Groups[name].Permissions {
			if strings.TrimSpace(perm) == "" {
				return fmt.Errorf("group %q: permission[%d] is empty", name, i)
			}
		}
	}

	if cfg.DefaultGroup != "" {
		if _, ok := cfg.Groups[cfg.DefaultGroup]; !ok {
			return fmt.Errorf("default_group %q: %w", cfg.DefaultGroup, ErrUnknownGroup)
		}
	}

	seenPlayers := map[string]bool{}
	for i, p := range cfg.Players {
		if err := ValidatePlayerName(p.Name); err != nil {
			return fmt.Errorf("player[%d]: %w", i, err)
		}
		lower := strings.ToLower(p.Name)
		if seenPlayers[lower] {
			return fmt.Errorf("player[%d]: name %q is already used", i, p.Name)
		}
		seenPlayers[lower] = true

		for _, g := range p.Groups {
			if _, ok := cfg.Groups[g]; !ok {
				return fmt.Errorf("player %q: group %q: %w", p.Name, g, ErrUnknownGroup)
			}
		}
	}

	if err := cfg.catalog().validate(); err != nil {
		return fmt.Errorf("items: %w", err)
	}

	return nil
}

func (cfg Config) catalog() Catalog {
	if len(cfg.Catalog) == 0 {
		return DefaultCatalog()
	}
	cat := Catalog{}
	for _, entry := range cfg.Catalog {
		cat[host.ItemType(entry.ID)] = strings.ToLower(entry.Name)
	}
	return cat
}
