package world

import (
	"github.com/dekarrin/cmdbook/internal/host"
)

// InventorySize is the number of slots in a player inventory.
const InventorySize = 36

// Inventory is an ordered set of slots that each hold up to one stack. Empty
// slots are not stored.
type Inventory struct {
	slots []host.ItemStack
}

// Add puts stack into the inventory. Partial stacks of the same type are
// topped up first, then new slots are used. Whatever does not fit is returned
// as the leftover; its Amount is 0 if everything fit.
//
// An unlimited stack always takes a slot of its own.
func (inv *Inventory) Add(stack host.ItemStack) (leftover host.ItemStack) {
	leftover = host.ItemStack{Type: stack.Type}

	if stack.Amount == host.Unlimited {
		if len(inv.slots) >= InventorySize {
			return stack
		}
		inv.slots = append(inv.slots, stack)
		return leftover
	}

	left := stack.Amount
	for i := range inv.slots {
		if left < 1 {
			break
		}
		s := &inv.slots[i]
		if s.Type != stack.Type || s.Amount == host.Unlimited || s.Amount >= host.StackSize {
			continue
		}
		room := host.StackSize - s.Amount
		if room > left {
			room = left
		}
		s.Amount += room
		left -= room
	}

	for left > 0 && len(inv.slots) < InventorySize {
		amt := left
		if amt > host.StackSize {
			amt = host.StackSize
		}
		inv.slots = append(inv.slots, host.ItemStack{Type: stack.Type, Amount: amt})
		left -= amt
	}

	leftover.Amount = left
	return leftover
}

// Count returns how many of an item type the inventory holds. If any stack of
// that type is unlimited, host.Unlimited is returned.
func (inv *Inventory) Count(it host.ItemType) int {
	total := 0
	for _, s := range inv.slots {
		if s.Type != it {
			continue
		}
		if s.Amount == host.Unlimited {
			return host.Unlimited
		}
		total += s.Amount
	}
	return total
}

// Slots returns a copy of the occupied slots in order.
func (inv *Inventory) Slots() []host.ItemStack {
	cp := make([]host.ItemStack, len(inv.slots))
	copy(cp, inv.slots)
	return cp
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}
