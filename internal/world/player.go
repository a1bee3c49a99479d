package world

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/google/uuid"
)

// Player is a player connected to the World. It implements host.Player.
//
// Messages sent to a Player are held in its mailbox until they are collected
// with TakeMessages.
type Player struct {
	id     uuid.UUID
	name   string
	groups []string

	mu        sync.Mutex
	loc       host.Location
	inventory Inventory
	mailbox   []string
}

// ValidatePlayerName returns an error wrapping ErrInvalidName if name cannot
// be used for a player. Names are matched in comma-separated target lists
// where "*" means everyone, so a name may not be empty, be "*", or contain a
// comma or whitespace. "CONSOLE" is reserved in any case.
func ValidatePlayerName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "*":
		return fmt.Errorf("%w: %q matches every player", ErrInvalidName, name)
	case strings.EqualFold(name, consoleName):
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.ContainsRune(name, ','):
		return fmt.Errorf("%w: %q contains a comma", ErrInvalidName, name)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}

func newPlayer(name string, loc host.Location, groups []string) *Player {
	return &Player{
		id:     uuid.New(),
		name:   name,
		loc:    loc,
		groups: append([]string{}, groups...),
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(%q, %s)", p.name, p.id)
}

// ID returns the unique ID of the player.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Name returns the name the player logged in with.
func (p *Player) Name() string {
	return p.name
}

// Groups returns the names of the permission groups the player is in.
func (p *Player) Groups() []string {
	return append([]string{}, p.groups...)
}

// Location returns where the player is and which way they face.
func (p *Player) Location() host.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loc
}

// Face turns the player to the given yaw.
func (p *Player) Face(yaw float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loc.Yaw = yaw
}

// SendMessage puts msg in the player's mailbox.
func (p *Player) SendMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mailbox = append(p.mailbox, msg)
}

// TakeMessages removes and returns all messages in the player's mailbox.
func (p *Player) TakeMessages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.mailbox
	p.mailbox = nil
	return msgs
}

// Inventory returns a copy of the stacks in the player's inventory.
func (p *Player) Inventory() []host.ItemStack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inventory.Slots()
}

// Count returns how many items of the type the player is holding.
func (p *Player) Count(it host.ItemType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inventory.Count(it)
}

func (p *Player) addItem(stack host.ItemStack) host.ItemStack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inventory.Add(stack)
}

// consoleName is the name the console is addressed by.
const consoleName = "CONSOLE"

// Console is the server console. It may run any command, and is not present
// in the world.
type Console struct {
	mu      sync.Mutex
	mailbox []string
}

// Name returns the name of the console.
func (c *Console) Name() string {
	return consoleName
}

// SendMessage puts msg in the console's mailbox.
func (c *Console) SendMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mailbox = append(c.mailbox, msg)
}

// TakeMessages removes and returns all messages in the console's mailbox.
func (c *Console) TakeMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.mailbox
	c.mailbox = nil
	return msgs
}
