package cmdbook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/cmdbook/internal/command"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Engine_RunUntilQuit(t *testing.T) {
	assert := assert.New(t)

	script := strings.Join([]string{
		"who",
		"time 13000",
		"as guest",
		"item diamond 3",
		"inv",
		"give sk89q dirt 1",
		"jump",
		"as console",
		"give * torch 400",
		"give tetsu,sk89q bread 65",
		"say `rHi all",
		"quit",
		"who",
	}, "\n")

	var out bytes.Buffer
	eng, err := New(strings.NewReader(script), &out, "", "", true)
	require.NoError(t, err)

	err = eng.RunUntilQuit()
	require.NoError(t, err)
	require.NoError(t, eng.Close())

	output := out.String()
	assert.Contains(output, "(direct input mode)")
	assert.Contains(output, "Online (3): sk89q, tetsu, guest")
	assert.Contains(output, "Time: 21:00 (9:00 pm)")
	assert.Contains(output, "You are now acting as guest.")
	assert.Contains(output, "You've been given 3 Diamond.")
	assert.Contains(output, "guest is carrying:")
	assert.Contains(output, "You don't have permission to do that.")
	assert.Contains(output, "Try HELP for valid commands")
	assert.Contains(output, "More than 5 stacks is too excessive.")
	assert.Contains(output, "[to tetsu] Given from *Console*: 65 Bread.")
	assert.Contains(output, "65 Bread has been given.")
	assert.Contains(output, "[to guest] Hi all")
	assert.True(strings.HasSuffix(output, "Goodbye\n"))
	assert.NotContains(output, "§")

	// nothing after QUIT is run
	assert.Equal(1, strings.Count(output, "Online (3)"))

	tetsu, ok := eng.World().Player("tetsu")
	require.True(t, ok)
	assert.Equal(65, tetsu.Count(297))
	assert.Equal(0, tetsu.Count(50))

	guest, ok := eng.World().Player("guest")
	require.True(t, ok)
	assert.Equal(3, guest.Count(264))
}

func Test_Engine_RunUntilQuit_EndOfInput(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	eng, err := New(strings.NewReader("time set 6000"), &out, "", "", true)
	if !assert.NoError(err) {
		return
	}

	err = eng.RunUntilQuit()
	assert.NoError(err)
	assert.Equal(int64(6000), eng.World().Time())
	assert.Contains(out.String(), "Time set to 14:00 (2:00 pm).")
}

func Test_Engine_Execute(t *testing.T) {
	testCases := []struct {
		name      string
		as        string
		cmd       string
		expect    string
		expectErr bool
	}{
		{name: "help", cmd: "help", expect: "Here are the commands you can use:"},
		{name: "compass from console needs a player", cmd: "compass", expectErr: true},
		{name: "compass of unknown player", cmd: "compass nobody", expectErr: true},
		{name: "face as console", cmd: "face 90", expectErr: true},
		{name: "face as player", as: "guest", cmd: "face 90", expect: "guest is now facing North."},
		{name: "item as console", cmd: "item dirt", expectErr: true},
		{name: "item that is denied", as: "guest", cmd: "item tnt", expectErr: true},
		{name: "item that is unknown", as: "guest", cmd: "item unobtainium", expectErr: true},
		{name: "too many for guest", as: "guest", cmd: "item dirt 65", expectErr: true},
		{name: "stacks for builder", as: "tetsu", cmd: "item dirt 65"},
		{name: "admin ignores deny list", as: "sk89q", cmd: "item tnt inf"},
		{name: "drop", cmd: "give -d guest stone 2", expect: "Dropped at the feet of guest."},
		{name: "give to unknown", cmd: "give nobody stone", expectErr: true},
		{name: "as unknown", cmd: "as nobody", expectErr: true},
		{name: "guest cannot broadcast", as: "guest", cmd: "say hi", expectErr: true},
		{name: "guest cannot set time", as: "guest", cmd: "time set 0", expectErr: true},
		{name: "empty inventory", cmd: "inventory tetsu", expect: "tetsu is not carrying anything."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			eng, err := New(strings.NewReader(""), &bytes.Buffer{}, "", "", true)
			if !assert.NoError(err) {
				return
			}

			if tc.as != "" {
				s, ok := eng.World().Sender(tc.as)
				if !assert.True(ok) {
					return
				}
				eng.sender = s
			}

			cmd, err := command.Parse(tc.cmd)
			if !assert.NoError(err) {
				return
			}

			actual, err := eng.Execute(cmd)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Contains(actual, tc.expect)
		})
	}
}

func Test_Engine_Execute_drop(t *testing.T) {
	assert := assert.New(t)

	eng, err := New(strings.NewReader(""), &bytes.Buffer{}, "", "", true)
	if !assert.NoError(err) {
		return
	}

	cmd, err := command.Parse("give -d guest stone 70")
	if !assert.NoError(err) {
		return
	}
	_, err = eng.Execute(cmd)
	assert.NoError(err)

	drops := eng.World().Drops()
	if assert.Len(drops, 2) {
		assert.Equal(host.ItemStack{Type: 1, Amount: 64}, drops[0].Stack)
		assert.Equal(host.ItemStack{Type: 1, Amount: 6}, drops[1].Stack)
	}
}
