package command

import (
	"errors"
	"testing"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Command
		expectErr bool
	}{
		{name: "blank", input: "   ", expect: Command{}},
		{name: "who", input: "who", expect: Command{Verb: "WHO"}},
		{name: "who alias", input: "LIST", expect: Command{Verb: "WHO"}},
		{name: "who with args", input: "online now", expectErr: true},
		{name: "quit alias", input: "bye", expect: Command{Verb: "QUIT"}},
		{name: "help with topic", input: "? give", expect: Command{Verb: "HELP", Text: "give"}},
		{name: "time", input: "time", expect: Command{Verb: "TIME"}},
		{name: "time of tick", input: "time 13000", expect: Command{Verb: "TIME", Text: "13000"}},
		{name: "time of negative tick", input: "time -1000", expect: Command{Verb: "TIME", Text: "-1000"}},
		{name: "time set", input: "time set 6000", expect: Command{Verb: "TIME", Subverb: "SET", Text: "6000"}},
		{name: "set time alias", input: "set time 0", expect: Command{Verb: "TIME", Subverb: "SET", Text: "0"}},
		{name: "time set without tick", input: "time set", expectErr: true},
		{name: "time not a number", input: "time noon", expectErr: true},
		{name: "compass", input: "compass", expect: Command{Verb: "COMPASS"}},
		{name: "compass of player", input: "dir sk89q", expect: Command{Verb: "COMPASS", Targets: []string{"sk89q"}}},
		{name: "compass of two players", input: "compass a b", expectErr: true},
		{name: "inventory", input: "inv Tetsu", expect: Command{Verb: "INVENTORY", Targets: []string{"Tetsu"}}},
		{name: "say keeps spacing and case", input: "broadcast `rHello,  World", expect: Command{Verb: "SAY", Text: "`rHello,  World"}},
		{name: "say nothing", input: "say", expectErr: true},
		{name: "as", input: "sudo Guest", expect: Command{Verb: "AS", Targets: []string{"Guest"}}},
		{name: "as nobody", input: "as", expectErr: true},
		{name: "face", input: "turn -90.5", expect: Command{Verb: "FACE", Text: "-90.5"}},
		{name: "face not a number", input: "face north", expectErr: true},
		{name: "unknown verb", input: "JUMP high", expectErr: true},
		{
			name:   "item defaults to one",
			input:  "item diamond",
			expect: Command{Verb: "ITEM", Item: "diamond", Amount: 1},
		},
		{
			name:   "item alias with amount",
			input:  "i 264 32",
			expect: Command{Verb: "ITEM", Item: "264", Amount: 32},
		},
		{
			name:   "item infinite",
			input:  "item torch inf",
			expect: Command{Verb: "ITEM", Item: "torch", Amount: -1},
		},
		{
			name:   "item -1 is not a flag",
			input:  "item torch -1",
			expect: Command{Verb: "ITEM", Item: "torch", Amount: -1},
		},
		{
			name:   "item negative amount is kept for checking later",
			input:  "item torch -5",
			expect: Command{Verb: "ITEM", Item: "torch", Amount: -5},
		},
		{
			name:   "item drop short flag",
			input:  "item -d stone 10",
			expect: Command{Verb: "ITEM", Item: "stone", Amount: 10, Drop: true},
		},
		{
			name:   "give to several players",
			input:  "give sk89q,Tetsu dirt 3",
			expect: Command{Verb: "GIVE", Targets: []string{"sk89q", "Tetsu"}, Item: "dirt", Amount: 3},
		},
		{
			name:   "give to everyone with long drop flag after args",
			input:  "give * bread 2 --drop",
			expect: Command{Verb: "GIVE", Targets: []string{"*"}, Item: "bread", Amount: 2, Drop: true},
		},
		{name: "give without item", input: "give sk89q", expectErr: true},
		{name: "give with only commas", input: "give ,, dirt", expectErr: true},
		{name: "give bad amount", input: "give sk89q dirt lots", expectErr: true},
		{name: "give too many args", input: "give sk89q dirt 1 2", expectErr: true},
		{name: "give unknown flag", input: "give -x sk89q dirt", expectErr: true},
		{name: "item without item", input: "item -d", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.input)
			if tc.expectErr {
				assert.Error(err)
				assert.True(errors.Is(err, cberrors.ErrBadArgument))
				assert.NotEmpty(cberrors.Message(err))
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_expandVerb(t *testing.T) {
	testCases := []struct {
		name       string
		tokens     []string
		expectVerb []string
		expectRest []string
	}{
		{
			name:       "no alias",
			tokens:     []string{"give", "Bob", "dirt"},
			expectVerb: []string{"GIVE"},
			expectRest: []string{"Bob", "dirt"},
		},
		{
			name:       "single word alias",
			tokens:     []string{"I", "Dirt"},
			expectVerb: []string{"ITEM"},
			expectRest: []string{"Dirt"},
		},
		{
			name:       "two word alias expanding to two words",
			tokens:     []string{"Set", "Time", "100"},
			expectVerb: []string{"TIME", "SET"},
			expectRest: []string{"100"},
		},
		{
			name:       "only verb",
			tokens:     []string{"who"},
			expectVerb: []string{"WHO"},
			expectRest: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			verb, rest := expandVerb(tc.tokens, 2)

			assert.Equal(tc.expectVerb, verb)
			assert.Equal(tc.expectRest, rest)
		})
	}
}
