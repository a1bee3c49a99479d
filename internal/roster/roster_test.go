package roster

import (
	"testing"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type namedPlayer string

func (np namedPlayer) SendMessage(string)      {}
func (np namedPlayer) Name() string            { return string(np) }
func (np namedPlayer) ID() uuid.UUID           { return uuid.NewSHA1(uuid.Nil, []byte(np)) }
func (np namedPlayer) Location() host.Location { return host.Location{} }

type recordingSink struct {
	msgs []string
}

func (rs *recordingSink) SendMessage(msg string) {
	rs.msgs = append(rs.msgs, msg)
}

func Test_SendOnlineList(t *testing.T) {
	testCases := []struct {
		name   string
		online []host.Player
		expect string
	}{
		{
			name:   "nobody online",
			online: nil,
			expect: "0 players are online.",
		},
		{
			name:   "empty slice",
			online: []host.Player{},
			expect: "0 players are online.",
		},
		{
			name:   "one player",
			online: []host.Player{namedPlayer("sk89q")},
			expect: "§7Online (§71§7): §fsk89q",
		},
		{
			name:   "three players in order",
			online: []host.Player{namedPlayer("zed"), namedPlayer("amy"), namedPlayer("Bob")},
			expect: "§7Online (§73§7): §fzed, amy, Bob",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			sink := &recordingSink{}

			SendOnlineList(tc.online, sink)

			if assert.Len(sink.msgs, 1) {
				assert.Equal(tc.expect, sink.msgs[0])
			}
		})
	}
}
