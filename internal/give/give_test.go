package give

import (
	"testing"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePlayer struct {
	id   uuid.UUID
	name string
	msgs []string
}

func newFakePlayer(name string) *fakePlayer {
	return &fakePlayer{id: uuid.New(), name: name}
}

func (fp *fakePlayer) SendMessage(msg string)  { fp.msgs = append(fp.msgs, msg) }
func (fp *fakePlayer) Name() string            { return fp.name }
func (fp *fakePlayer) ID() uuid.UUID           { return fp.id }
func (fp *fakePlayer) Location() host.Location { return host.Location{} }

type fakeConsole struct {
	msgs []string
}

func (fc *fakeConsole) SendMessage(msg string) { fc.msgs = append(fc.msgs, msg) }
func (fc *fakeConsole) Name() string           { return "CONSOLE" }

type delivery struct {
	to    string
	stack host.ItemStack
}

type fakeHost struct {
	perms        map[string]bool
	disallowed   map[host.ItemType]bool
	checkedPerms []string
	added        []delivery
	dropped      []delivery
}

func newFakeHost(perms ...string) *fakeHost {
	fh := &fakeHost{
		perms:      map[string]bool{},
		disallowed: map[host.ItemType]bool{},
	}
	for _, p := range perms {
		fh.perms[p] = true
	}
	return fh
}

func (fh *fakeHost) HasPermission(sender host.Sender, perm string) bool {
	fh.checkedPerms = append(fh.checkedPerms, perm)
	return fh.perms[perm]
}

func (fh *fakeHost) AllowedItem(sender host.Sender, it host.ItemType) bool {
	return !fh.disallowed[it]
}

func (fh *fakeHost) ItemName(it host.ItemType) string {
	if it == 264 {
		return "Diamond"
	}
	return "Dirt"
}

func (fh *fakeHost) SenderName(sender host.Sender) string {
	return sender.Name()
}

func (fh *fakeHost) AddToInventory(p host.Player, stack host.ItemStack) {
	fh.added = append(fh.added, delivery{to: p.Name(), stack: stack})
}

func (fh *fakeHost) DropNear(p host.Player, stack host.ItemStack) {
	fh.dropped = append(fh.dropped, delivery{to: p.Name(), stack: stack})
}

func Test_Item_rejections(t *testing.T) {
	allPerms := []string{host.PermGiveInfinite, host.PermGiveStacks, host.PermGiveStacksUnlimited}

	testCases := []struct {
		name       string
		amt        int
		perms      []string
		disallow   bool
		expectMsg  string
		expectKind error
	}{
		{
			name:       "zero amount",
			amt:        0,
			perms:      allPerms,
			expectMsg:  "Invalid item amount!",
			expectKind: cberrors.ErrBadArgument,
		},
		{
			name:       "below unlimited",
			amt:        -2,
			perms:      allPerms,
			expectMsg:  "Invalid item amount!",
			expectKind: cberrors.ErrBadArgument,
		},
		{
			name:       "unlimited without permission",
			amt:        -1,
			perms:      []string{host.PermGiveStacks},
			expectMsg:  "You don't have permission to do that.",
			expectKind: cberrors.ErrPermission,
		},
		{
			name:       "more than a stack without permission",
			amt:        65,
			expectMsg:  "You don't have permission to do that.",
			expectKind: cberrors.ErrPermission,
		},
		{
			name:       "more than five stacks with every permission",
			amt:        400,
			perms:      allPerms,
			expectMsg:  "More than 5 stacks is too excessive.",
			expectKind: cberrors.ErrLimit,
		},
		{
			name:       "more than five stacks without permission",
			amt:        400,
			expectMsg:  "More than 5 stacks is too excessive.",
			expectKind: cberrors.ErrLimit,
		},
		{
			name:       "one over five stacks",
			amt:        321,
			perms:      allPerms,
			expectMsg:  "More than 5 stacks is too excessive.",
			expectKind: cberrors.ErrLimit,
		},
		{
			name:       "disallowed item is checked first",
			amt:        0,
			perms:      allPerms,
			disallow:   true,
			expectMsg:  "You are not allowed to use that item.",
			expectKind: cberrors.ErrPermission,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			h := newFakeHost(tc.perms...)
			if tc.disallow {
				h.disallowed[3] = true
			}
			sender := newFakePlayer("sender")
			other := newFakePlayer("other")
			stack := &host.ItemStack{Type: 3}

			err := Item(sender, stack, tc.amt, []host.Player{sender, other}, h, false)

			assert.Error(err)
			assert.True(cberrors.IsCommand(err))
			assert.ErrorIs(err, tc.expectKind)
			assert.Equal(tc.expectMsg, cberrors.Message(err))
			assert.Empty(h.added)
			assert.Empty(h.dropped)
			assert.Empty(sender.msgs)
			assert.Empty(other.msgs)
		})
	}
}

func Test_Item_overFiveStacksConsultsPermission(t *testing.T) {
	assert := assert.New(t)

	h := newFakeHost()
	sender := newFakePlayer("sender")

	err := Item(sender, &host.ItemStack{Type: 3}, 400, []host.Player{sender}, h, false)

	assert.ErrorIs(err, cberrors.ErrLimit)
	assert.Equal([]string{host.PermGiveStacksUnlimited}, h.checkedPerms)
}

func Test_Item_selfGive(t *testing.T) {
	assert := assert.New(t)

	h := newFakeHost()
	sender := newFakePlayer("sk89q")
	stack := &host.ItemStack{Type: 264}

	err := Item(sender, stack, 64, []host.Player{sender}, h, false)

	assert.NoError(err)
	assert.Equal([]delivery{{to: "sk89q", stack: host.ItemStack{Type: 264, Amount: 64}}}, h.added)
	assert.Empty(h.dropped)
	assert.Equal([]string{"§eYou've been given 64 Diamond."}, sender.msgs)
}

func Test_Item_stackSplitting(t *testing.T) {
	testCases := []struct {
		name   string
		amt    int
		expect []int
	}{
		{name: "one", amt: 1, expect: []int{1}},
		{name: "exactly a stack", amt: 64, expect: []int{64}},
		{name: "just over a stack", amt: 65, expect: []int{64, 1}},
		{name: "two and a half stacks", amt: 160, expect: []int{64, 64, 32}},
		{name: "five stacks", amt: 320, expect: []int{64, 64, 64, 64, 64}},
		{name: "unlimited", amt: -1, expect: []int{-1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			h := newFakeHost(host.PermGiveStacks, host.PermGiveInfinite)
			sender := &fakeConsole{}
			target := newFakePlayer("target")

			err := Item(sender, &host.ItemStack{Type: 3}, tc.amt, []host.Player{target}, h, false)

			assert.NoError(err)
			var actual []int
			for _, d := range h.added {
				assert.Equal("target", d.to)
				assert.Equal(host.ItemType(3), d.stack.Type)
				actual = append(actual, d.stack.Amount)
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Item_notifications(t *testing.T) {
	assert := assert.New(t)

	h := newFakeHost(host.PermGiveInfinite)
	console := &fakeConsole{}
	alice := newFakePlayer("alice")
	bob := newFakePlayer("bob")

	err := Item(console, &host.ItemStack{Type: 264}, -1, []host.Player{alice, bob}, h, true)

	assert.NoError(err)
	assert.Empty(h.added)
	assert.Equal([]delivery{
		{to: "alice", stack: host.ItemStack{Type: 264, Amount: -1}},
		{to: "bob", stack: host.ItemStack{Type: 264, Amount: -1}},
	}, h.dropped)
	assert.Equal([]string{"§eGiven from CONSOLE: an infinite stack of Diamond."}, alice.msgs)
	assert.Equal([]string{"§eGiven from CONSOLE: an infinite stack of Diamond."}, bob.msgs)
	assert.Equal([]string{"§ean infinite stack of Diamond has been given."}, console.msgs)
}

func Test_Item_senderAmongTargets(t *testing.T) {
	assert := assert.New(t)

	h := newFakeHost()
	alice := newFakePlayer("alice")
	bob := newFakePlayer("bob")

	err := Item(alice, &host.ItemStack{Type: 3}, 5, []host.Player{bob, alice}, h, false)

	assert.NoError(err)
	assert.Equal([]string{"§eYou've been given 5 Dirt."}, alice.msgs)
	assert.Equal([]string{"§eGiven from alice: 5 Dirt."}, bob.msgs)
}

func Test_Item_noTargets(t *testing.T) {
	assert := assert.New(t)

	h := newFakeHost()
	console := &fakeConsole{}

	err := Item(console, &host.ItemStack{Type: 3}, 5, nil, h, false)

	assert.NoError(err)
	assert.Empty(h.added)
	assert.Equal([]string{"§e5 Dirt has been given."}, console.msgs)
}

func Test_Stacks(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(Stacks(0))
	assert.Nil(Stacks(-5))
	assert.Equal([]int{64, 64}, Stacks(128))
}
