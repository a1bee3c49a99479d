// Package give carries out requests to hand items out to players.
package give

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/chat"
	"github.com/dekarrin/cmdbook/internal/host"
)

const (
	msgBadAmount      = "Invalid item amount!"
	msgTooMany        = "More than 5 stacks is too excessive."
	msgItemNotAllowed = "You are not allowed to use that item."
	msgNoPermission   = "You don't have permission to do that."
)

// Item gives amt of item to every player in targets on behalf of sender. If
// amt is host.Unlimited, each target gets a single stack that never runs out.
// If drop is true the items are dropped on the ground at each target's
// location instead of being put in their inventory.
//
// The request is checked in full before anything is given. If it is rejected,
// the returned error is a cberrors command error and no target has received
// anything. The Amount of item is overwritten with the size of each stack as
// it is handed out.
//
// Every target is told what they got. If sender is not one of the targets,
// sender is also told that the items were given.
func Item(sender host.Sender, item *host.ItemStack, amt int, targets []host.Player, h host.Host, drop bool) error {
	if err := Check(sender, item.Type, amt, h); err != nil {
		return err
	}

	amtText := strconv.Itoa(amt)
	if amt == host.Unlimited {
		amtText = "an infinite stack of"
	}
	itemName := h.ItemName(item.Type)

	// is the sender also receiving items?
	included := false

	for _, p := range targets {
		for _, amount := range Stacks(amt) {
			item.Amount = amount
			if drop {
				h.DropNear(p, *item)
			} else {
				h.AddToInventory(p, *item)
			}
		}

		if host.SamePlayer(sender, p) {
			p.SendMessage(fmt.Sprintf("%sYou've been given %s %s.", chat.Yellow, amtText, itemName))
			included = true
		} else {
			p.SendMessage(fmt.Sprintf("%sGiven from %s: %s %s.", chat.Yellow, h.SenderName(sender), amtText, itemName))
		}
	}

	// let the sender know something happened even though they got nothing
	if !included {
		sender.SendMessage(fmt.Sprintf("%s%s %s has been given.", chat.Yellow, amtText, itemName))
	}

	return nil
}

// Check returns the error that Item would reject a request with, or nil if
// sender may give amt items of type it.
func Check(sender host.Sender, it host.ItemType, amt int, h host.Host) error {
	if !h.AllowedItem(sender, it) {
		return cberrors.Permission(msgItemNotAllowed)
	}

	switch {
	case amt == 0 || amt < host.Unlimited:
		return cberrors.BadArgument(msgBadAmount)
	case amt == host.Unlimited:
		if !h.HasPermission(sender, host.PermGiveInfinite) {
			return cberrors.Permission(msgNoPermission)
		}
	case amt > host.StackSize*host.MaxStacks:
		// the unlimited-stacks node is consulted but never honored; more than
		// five stacks is refused no matter what.
		// TODO: decide whether commandbook.give.stacks.unlimited should lift
		// the five stack cap and return a permission error when it is absent.
		_ = h.HasPermission(sender, host.PermGiveStacksUnlimited)
		return cberrors.Limit(msgTooMany)
	case amt > host.StackSize:
		if !h.HasPermission(sender, host.PermGiveStacks) {
			return cberrors.Permission(msgNoPermission)
		}
	}

	return nil
}

// Stacks splits amt into the stack sizes it is given out in. Every stack is
// host.StackSize except for the last, which holds the remainder. An amt of
// host.Unlimited gives a single unlimited stack. Any other amt less than 1
// gives no stacks.
func Stacks(amt int) []int {
	if amt == host.Unlimited {
		return []int{host.Unlimited}
	}

	var stacks []int
	for left := amt; left > 0; {
		given := left
		if given > host.StackSize {
			given = host.StackSize
		}
		stacks = append(stacks, given)
		left -= given
	}
	return stacks
}
