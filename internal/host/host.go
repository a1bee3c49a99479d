// Package host defines the capabilities that CommandBook operations require
// from the game server they run inside of. Nothing in this package does any
// work on its own; a host implementation such as the one in package world
// provides the inventories, players, and permission checks.
package host

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

const (
	// StackSize is the maximum number of items that fit in a single inventory
	// slot.
	StackSize = 64

	// MaxStacks is the most stacks that may be given in one request.
	MaxStacks = 5

	// Unlimited is the item amount that marks a stack as never running out.
	Unlimited = -1
)

// Permission nodes checked by CommandBook operations.
const (
	PermGive                = "commandbook.give"
	PermGiveOther           = "commandbook.give.other"
	PermTimeSet             = "commandbook.time.set"
	PermBroadcast           = "commandbook.broadcast"
	PermGiveInfinite        = "commandbook.give.infinite"
	PermGiveStacks          = "commandbook.give.stacks"
	PermGiveStacksUnlimited = "commandbook.give.stacks.unlimited"
	PermOverrideAnyItem     = "commandbook.override.any-item"
)

// Permissions returns every permission node checked by CommandBook
// operations.
func Permissions() []string {
	return []string{
		PermGive,
		PermGiveOther,
		PermGiveInfinite,
		PermGiveStacks,
		PermGiveStacksUnlimited,
		PermOverrideAnyItem,
		PermTimeSet,
		PermBroadcast,
	}
}

// ItemType is the numeric ID of a kind of item.
type ItemType int

func (it ItemType) String() string {
	return fmt.Sprintf("#%d", int(it))
}

// ItemStack is a quantity of one type of item. An Amount of Unlimited means
// the stack never depletes.
type ItemStack struct {
	Type   ItemType
	Amount int
}

func (s ItemStack) String() string {
	if s.Amount == Unlimited {
		return fmt.Sprintf("ItemStack(%s x inf)", s.Type)
	}
	return fmt.Sprintf("ItemStack(%s x %d)", s.Type, s.Amount)
}

// MarshalBinary encodes the stack as a REZI byte sequence.
func (s ItemStack) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(int(s.Type))...)
	data = append(data, rezi.EncInt(s.Amount)...)
	return data, nil
}

// UnmarshalBinary decodes a stack created with MarshalBinary.
func (s *ItemStack) UnmarshalBinary(data []byte) error {
	typeID, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}
	data = data[n:]

	amount, _, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}

	s.Type = ItemType(typeID)
	s.Amount = amount
	return nil
}

// Location is a position and facing in the world.
type Location struct {
	X, Y, Z float64

	// Yaw is the horizontal facing of an entity, in degrees. It is not
	// restricted to any range.
	Yaw float64
}

// MessageSink is anything that can have a chat message sent to it.
type MessageSink interface {
	SendMessage(msg string)
}

// Sender is an entity that issues commands, either a Player or the server
// console.
type Sender interface {
	MessageSink

	// Name is the unique name of the sender.
	Name() string
}

// Player is a Sender who is present in the world.
type Player interface {
	Sender

	ID() uuid.UUID
	Location() Location
}

// Host is the set of capabilities a game server provides to CommandBook
// operations.
type Host interface {
	// HasPermission returns whether sender has been granted the permission
	// node perm.
	HasPermission(sender Sender, perm string) bool

	// AllowedItem returns whether sender may use items of type it.
	AllowedItem(sender Sender, it ItemType) bool

	// ItemName gives the display name of an item type.
	ItemName(it ItemType) string

	// SenderName gives the display name of a sender.
	SenderName(sender Sender) string

	// AddToInventory puts the stack into the player's inventory.
	AddToInventory(p Player, stack ItemStack)

	// DropNear drops the stack on the ground at the player's location.
	DropNear(p Player, stack ItemStack)
}

// SamePlayer returns whether the sender s is the player p.
func SamePlayer(s Sender, p Player) bool {
	sp, ok := s.(Player)
	if !ok {
		return false
	}
	return sp.ID() == p.ID()
}
