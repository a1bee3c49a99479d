// Package world is an in-memory game server that CommandBook operations can
// run against. It keeps track of the players who are online, what they are
// carrying, what has been dropped on the ground, and what each of them is
// permitted to do, and implements host.Host on top of that.
//
// A World is safe for concurrent use.
package world

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/google/uuid"
)

// consoleDisplayName is how the console is named in messages sent to players.
const consoleDisplayName = "*Console*"

// Permissible is a Sender that decides its own permissions instead of
// getting them from the groups defined in the World. Senders from outside the
// world, such as remote API users, implement it.
type Permissible interface {
	host.Sender
	HasPermission(perm string) bool
}

// Drop is a stack lying on the ground.
type Drop struct {
	Location host.Location
	Stack    host.ItemStack
}

// World is a running game server.
type World struct {
	mu sync.RWMutex

	console      *Console
	players      []*Player
	groups       map[string]*Group
	defaultGroup string
	catalog      Catalog
	allow        map[host.ItemType]bool
	deny         map[host.ItemType]bool
	drops        []Drop
	time         int64
}

// Default returns a World built from DefaultConfig.
func Default() *World {
	w, err := New(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default world config is invalid: %v", err))
	}
	return w
}

// Load reads the world file at path and builds a World from it.
func Load(path string) (*World, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	w, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// New builds a World from cfg.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		console:      &Console{},
		groups:       make(map[string]*Group),
		defaultGroup: cfg.DefaultGroup,
		catalog:      cfg.catalog(),
		allow:        make(map[host.ItemType]bool),
		deny:         make(map[host.ItemType]bool),
		time:         cfg.Time,
	}

	for name, g := range cfg.Groups {
		w.groups[name] = NewGroup(name, g.Permissions...)
	}
	for _, id := range cfg.Items.Allow {
		w.allow[host.ItemType(id)] = true
	}
	for _, id := range cfg.Items.Deny {
		w.deny[host.ItemType(id)] = true
	}
	for _, pc := range cfg.Players {
		loc := host.Location{X: pc.X, Y: pc.Y, Z: pc.Z, Yaw: pc.Yaw}
		w.players = append(w.players, newPlayer(pc.Name, loc, pc.Groups))
	}

	return w, nil
}

// Console returns the server console sender.
func (w *World) Console() *Console {
	return w.console
}

// Catalog returns the item catalog of the world.
func (w *World) Catalog() Catalog {
	return w.catalog
}

// Join adds a new player to the world. It is an error if a player of the same
// name is already online.
func (w *World) Join(name string, loc host.Location, groups ...string) (*Player, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := ValidatePlayerName(name); err != nil {
		return nil, err
	}
	for _, p := range w.players {
		if strings.EqualFold(p.name, name) {
			return nil, fmt.Errorf("player %q is already online", name)
		}
	}
	for _, g := range groups {
		if _, ok := w.groups[g]; !ok {
			return nil, fmt.Errorf("group %q: %w", g, ErrUnknownGroup)
		}
	}

	p := newPlayer(name, loc, groups)
	w.players = append(w.players, p)
	log.Printf("INFO  %s joined the game", name)
	return p, nil
}

// Leave removes the named player from the world. It returns false if no such
// player is online.
func (w *World) Leave(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, p := range w.players {
		if strings.EqualFold(p.name, name) {
			w.players = append(w.players[:i], w.players[i+1:]...)
			log.Printf("INFO  %s left the game", p.name)
			return true
		}
	}
	return false
}

// Online returns every player in the world in the order they joined.
func (w *World) Online() []host.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	online := make([]host.Player, len(w.players))
	for i := range w.players {
		online[i] = w.players[i]
	}
	return online
}

// Player returns the online player with the given name. Names are matched
// without regard to case.
func (w *World) Player(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, p := range w.players {
		if strings.EqualFold(p.name, name) {
			return p, true
		}
	}
	return nil, false
}

// MatchPlayers returns the online players named in names, in the order they
// are first named. The special name "*" matches every online player. A
// player named more than once is only returned once. If any name does not
// match a player, a command error is returned.
func (w *World) MatchPlayers(names []string) ([]host.Player, error) {
	var matched []host.Player
	seen := map[uuid.UUID]bool{}
	add := func(p host.Player) {
		if !seen[p.ID()] {
			seen[p.ID()] = true
			matched = append(matched, p)
		}
	}

	for _, n := range names {
		if n == "*" {
			for _, p := range w.Online() {
				add(p)
			}
			continue
		}
		p, ok := w.Player(n)
		if !ok {
			return nil, cberrors.Wrapf(cberrors.ErrBadArgument, "No players matched query '%s'.", n)
		}
		add(p)
	}
	return matched, nil
}

// Sender returns the sender with the given name. "CONSOLE" gives the console;
// anything else is looked up as a player.
func (w *World) Sender(name string) (host.Sender, bool) {
	if strings.EqualFold(name, w.console.Name()) {
		return w.console, true
	}
	p, ok := w.Player(name)
	if !ok {
		return nil, false
	}
	return p, true
}

// Time returns the current game tick.
func (w *World) Time() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.time
}

// SetTime sets the current game tick.
func (w *World) SetTime(t int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.time = t
}

// Drops returns every stack lying on the ground.
func (w *World) Drops() []Drop {
	w.mu.RLock()
	defer w.mu.RUnlock()
	drops := make([]Drop, len(w.drops))
	copy(drops, w.drops)
	return drops
}

// HasPermission returns whether sender has perm. The console has every
// permission. Players have the permissions of their groups plus the default
// group. Permissible senders are asked directly.
func (w *World) HasPermission(sender host.Sender, perm string) bool {
	switch s := sender.(type) {
	case *Console:
		return true
	case *Player:
		w.mu.RLock()
		defer w.mu.RUnlock()

		groups := s.groups
		if w.defaultGroup != "" {
			groups = append([]string{w.defaultGroup}, groups...)
		}
		for _, name := range groups {
			if g, ok := w.groups[name]; ok && g.Has(perm) {
				return true
			}
		}
		return false
	case Permissible:
		return s.HasPermission(perm)
	default:
		return false
	}
}

// AllowedItem returns whether sender may use items of type it.
func (w *World) AllowedItem(sender host.Sender, it host.ItemType) bool {
	if w.HasPermission(sender, host.PermOverrideAnyItem) {
		return true
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.deny[it] {
		return false
	}
	if len(w.allow) > 0 && !w.allow[it] {
		return false
	}
	return true
}

// ItemName gives the display name of an item type.
func (w *World) ItemName(it host.ItemType) string {
	return w.catalog.DisplayName(it)
}

// SenderName gives the name of the sender as shown to players.
func (w *World) SenderName(sender host.Sender) string {
	if _, ok := sender.(*Console); ok {
		return consoleDisplayName
	}
	return sender.Name()
}

// AddToInventory puts stack in the inventory of p. If it does not all fit,
// the rest is dropped at p's feet.
func (w *World) AddToInventory(p host.Player, stack host.ItemStack) {
	wp, ok := w.lookup(p)
	if !ok {
		log.Printf("WARN  cannot give %s to %q: not in this world", stack, p.Name())
		return
	}

	leftover := wp.addItem(stack)
	if leftover.Amount != 0 {
		w.DropNear(p, leftover)
	}
}

// DropNear drops stack on the ground where p is standing.
func (w *World) DropNear(p host.Player, stack host.ItemStack) {
	w.mu.Lock()
	defer w.mu.Unlock()

	loc := p.Location()
	w.drops = append(w.drops, Drop{Location: loc, Stack: stack})
}

func (w *World) lookup(p host.Player) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, wp := range w.players {
		if wp.id == p.ID() {
			return wp, true
		}
	}
	return nil, false
}
