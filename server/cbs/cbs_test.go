package cbs

import (
	"context"
	"testing"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/dao/inmem"
	"github.com/dekarrin/cmdbook/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() Service {
	return Service{
		DB:       inmem.NewDatastore(),
		World:    world.Default(),
		HashCost: bcrypt.MinCost,
	}
}

func Test_Service_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateUser(ctx, "sk89q", "hunter2", "sk89q@example.com", dao.Admin)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		username  string
		password  string
		expectErr error
	}{
		{name: "correct", username: "sk89q", password: "hunter2"},
		{name: "wrong password", username: "sk89q", password: "hunter3", expectErr: serr.ErrBadCredentials},
		{name: "no such user", username: "notch", password: "hunter2", expectErr: serr.ErrBadCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			user, err := svc.Login(ctx, tc.username, tc.password)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(created.ID, user.ID)
			assert.False(user.LastLoginTime.IsZero())
		})
	}
}

func Test_Service_CreateUser(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		username  string
		password  string
		email     string
		expectErr error
	}{
		{name: "valid", username: "tetsu", password: "pw"},
		{name: "valid with email", username: "tetsu", password: "pw", email: "tetsu@example.com"},
		{name: "blank username", password: "pw", expectErr: serr.ErrBadArgument},
		{name: "blank password", username: "tetsu", expectErr: serr.ErrBadArgument},
		{name: "bad email", username: "tetsu", password: "pw", email: "not an email", expectErr: serr.ErrBadArgument},
		{name: "duplicate", username: "sk89q", password: "pw", expectErr: serr.ErrAlreadyExists},
		{name: "duplicate in other case", username: "SK89Q", password: "pw", expectErr: serr.ErrAlreadyExists},
		{name: "name with comma", username: "a,b", password: "pw", expectErr: serr.ErrBadArgument},
		{name: "name with space", username: "te tsu", password: "pw", expectErr: serr.ErrBadArgument},
		{name: "console name", username: "console", password: "pw", expectErr: serr.ErrBadArgument},
		{name: "wildcard name", username: "*", password: "pw", expectErr: serr.ErrBadArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			svc := newTestService()
			_, err := svc.CreateUser(ctx, "sk89q", "pw", "", dao.Admin)
			require.NoError(t, err)

			user, err := svc.CreateUser(ctx, tc.username, tc.password, tc.email, dao.Normal)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.username, user.Username)
			assert.NotEqual(tc.password, user.Password)
			if tc.email != "" && assert.NotNil(user.Email) {
				assert.Equal(tc.email, user.Email.Address)
			}
		})
	}
}

func Test_Service_UpdateUser(t *testing.T) {
	str := func(s string) *string { return &s }
	normal := dao.Normal

	testCases := []struct {
		name        string
		change      UserChange
		expectErr   error
		expectName  string
		expectLogin string
	}{
		{name: "nothing", expectName: "tetsu", expectLogin: "old"},
		{name: "password", change: UserChange{Password: str("new")}, expectName: "tetsu", expectLogin: "new"},
		{name: "rename", change: UserChange{Username: str("Tetsu_2")}, expectName: "Tetsu_2", expectLogin: "old"},
		{name: "change case of own name", change: UserChange{Username: str("TETSU")}, expectName: "TETSU", expectLogin: "old"},
		{name: "role", change: UserChange{Role: &normal}, expectName: "tetsu", expectLogin: "old"},
		{name: "name taken in other case", change: UserChange{Username: str("SK89Q")}, expectErr: serr.ErrAlreadyExists},
		{name: "name with comma", change: UserChange{Username: str("a,b")}, expectErr: serr.ErrBadArgument},
		{name: "name with space", change: UserChange{Username: str("te tsu")}, expectErr: serr.ErrBadArgument},
		{name: "blank password", change: UserChange{Password: str("")}, expectErr: serr.ErrBadArgument},
		{name: "bad email", change: UserChange{Email: str("nope")}, expectErr: serr.ErrBadArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()

			svc := newTestService()
			_, err := svc.CreateUser(ctx, "sk89q", "pw", "", dao.Admin)
			require.NoError(t, err)
			user, err := svc.CreateUser(ctx, "tetsu", "old", "", dao.Unverified)
			require.NoError(t, err)

			updated, err := svc.UpdateUser(ctx, user.ID, tc.change)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)

				unchanged, err := svc.GetUser(ctx, user.ID)
				require.NoError(t, err)
				assert.Equal("tetsu", unchanged.Username)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(user.ID, updated.ID)
			assert.Equal(tc.expectName, updated.Username)
			if tc.change.Role != nil {
				assert.Equal(*tc.change.Role, updated.Role)
			}

			_, err = svc.Login(ctx, tc.expectName, tc.expectLogin)
			assert.NoError(err)
		})
	}

	t.Run("no such user", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.UpdateUser(context.Background(), uuid.New(), UserChange{})
		assert.ErrorIs(t, err, serr.ErrNotFound)
	})
}

func Test_Service_DeleteUser(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	user, err := svc.CreateUser(ctx, "tetsu", "pw", "", dao.Normal)
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal("tetsu", deleted.Username)

	_, err = svc.GetUser(ctx, user.ID)
	assert.ErrorIs(err, serr.ErrNotFound)
	_, err = svc.DeleteUser(ctx, user.ID)
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_Permissions(t *testing.T) {
	testCases := []struct {
		name   string
		role   dao.Role
		expect []string
	}{
		{name: "admin", role: dao.Admin, expect: host.Permissions()},
		{name: "normal", role: dao.Normal, expect: []string{host.PermGive}},
		{name: "unverified", role: dao.Unverified, expect: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService()
			actual := svc.Permissions(dao.User{Username: "tetsu", Role: tc.role})
			assert.ElementsMatch(t, tc.expect, actual)
		})
	}
}

func Test_Service_GetItems(t *testing.T) {
	testCases := []struct {
		name        string
		role        dao.Role
		expectTNT   bool
		expectBread bool
	}{
		{name: "guest", role: dao.Guest, expectBread: true},
		{name: "normal", role: dao.Normal, expectBread: true},
		{name: "admin overrides deny list", role: dao.Admin, expectTNT: true, expectBread: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()

			items := svc.GetItems(context.Background(), dao.User{Username: "api", Role: tc.role})
			if !assert.Len(items, len(world.DefaultCatalog())) {
				return
			}
			assert.Equal(host.ItemType(1), items[0].Type)
			assert.Equal("Stone", items[0].DisplayName)

			for _, it := range items {
				switch it.Name {
				case "tnt":
					assert.Equal(tc.expectTNT, it.Allowed)
				case "bread":
					assert.Equal(tc.expectBread, it.Allowed)
				}
			}
		})
	}
}

func Test_Service_Give(t *testing.T) {
	inf := host.Unlimited

	testCases := []struct {
		name           string
		role           dao.Role
		username       string
		req            GiveRequest
		expectErr      error
		expectMsg      string
		expectTargets  []string
		expectMessages []string
	}{
		{
			name:           "admin gives to everyone",
			role:           dao.Admin,
			username:       "admin",
			req:            GiveRequest{Targets: []string{"*"}, Item: "dirt", Amount: 2},
			expectTargets:  []string{"sk89q", "tetsu", "guest"},
			expectMessages: []string{"§e2 Dirt has been given."},
		},
		{
			name:           "admin gives infinite",
			role:           dao.Admin,
			username:       "admin",
			req:            GiveRequest{Targets: []string{"tetsu"}, Item: "torch", Amount: inf},
			expectTargets:  []string{"tetsu"},
			expectMessages: []string{"§ean infinite stack of Torch has been given."},
		},
		{
			name:           "normal user gives to own player",
			role:           dao.Normal,
			username:       "guest",
			req:            GiveRequest{Targets: []string{"guest"}, Item: "stone", Amount: 1},
			expectTargets:  []string{"guest"},
			expectMessages: []string{"§e1 Stone has been given."},
		},
		{
			name:      "normal user cannot give to others",
			role:      dao.Normal,
			username:  "guest",
			req:       GiveRequest{Targets: []string{"tetsu"}, Item: "stone", Amount: 1},
			expectErr: serr.ErrPermissions,
			expectMsg: "You don't have permission to do that.",
		},
		{
			name:      "guest role cannot give",
			role:      dao.Guest,
			username:  "guest",
			req:       GiveRequest{Targets: []string{"guest"}, Item: "stone", Amount: 1},
			expectErr: serr.ErrPermissions,
		},
		{
			name:      "too many",
			role:      dao.Admin,
			username:  "admin",
			req:       GiveRequest{Targets: []string{"tetsu"}, Item: "stone", Amount: 321},
			expectErr: serr.ErrBadArgument,
			expectMsg: "More than 5 stacks is too excessive.",
		},
		{
			name:      "bad amount",
			role:      dao.Admin,
			username:  "admin",
			req:       GiveRequest{Targets: []string{"tetsu"}, Item: "stone", Amount: 0},
			expectErr: serr.ErrBadArgument,
			expectMsg: "Invalid item amount!",
		},
		{
			name:      "unknown player",
			role:      dao.Admin,
			username:  "admin",
			req:       GiveRequest{Targets: []string{"notch"}, Item: "stone", Amount: 1},
			expectErr: serr.ErrBadArgument,
			expectMsg: "No players matched query 'notch'.",
		},
		{
			name:      "no targets",
			role:      dao.Admin,
			username:  "admin",
			req:       GiveRequest{Item: "stone", Amount: 1},
			expectErr: serr.ErrBadArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()

			svc := newTestService()
			user, err := svc.CreateUser(ctx, tc.username, "pw", "", tc.role)
			require.NoError(t, err)

			logged, msgs, err := svc.Give(ctx, user, tc.req)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				if tc.expectMsg != "" {
					assert.Equal(tc.expectMsg, cberrors.Message(err))
				}

				all, err := svc.DB.Gives().GetAll(ctx)
				assert.NoError(err)
				assert.Empty(all)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectTargets, logged.Targets)
			assert.Equal(user.ID, logged.UserID)
			assert.Equal(tc.req.Amount, logged.Stack.Amount)
			assert.Equal(tc.expectMessages, msgs)
		})
	}
}

func Test_Service_GetGives(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	svc := newTestService()

	admin, err := svc.CreateUser(ctx, "admin", "pw", "", dao.Admin)
	require.NoError(t, err)
	guest, err := svc.CreateUser(ctx, "guest", "pw", "", dao.Normal)
	require.NoError(t, err)

	_, _, err = svc.Give(ctx, admin, GiveRequest{Targets: []string{"tetsu"}, Item: "dirt", Amount: 1})
	require.NoError(t, err)
	_, _, err = svc.Give(ctx, guest, GiveRequest{Targets: []string{"guest"}, Item: "dirt", Amount: 1})
	require.NoError(t, err)

	all, err := svc.GetGives(ctx, admin)
	assert.NoError(err)
	assert.Len(all, 2)

	mine, err := svc.GetGives(ctx, guest)
	assert.NoError(err)
	if assert.Len(mine, 1) {
		assert.Equal([]string{"guest"}, mine[0].Targets)
	}
}

func Test_Service_World(t *testing.T) {
	ctx := context.Background()

	t.Run("players", func(t *testing.T) {
		svc := newTestService()
		msg, names := svc.GetPlayers(ctx)
		assert.Equal(t, []string{"sk89q", "tetsu", "guest"}, names)
		assert.Contains(t, msg, "sk89q, tetsu, guest")
	})

	t.Run("direction", func(t *testing.T) {
		svc := newTestService()
		dir, err := svc.GetDirection(ctx, "sk89q")
		assert.NoError(t, err)
		assert.Equal(t, "North", dir)

		_, err = svc.GetDirection(ctx, "notch")
		assert.ErrorIs(t, err, serr.ErrNotFound)
	})

	t.Run("time", func(t *testing.T) {
		svc := newTestService()
		tick := int64(13000)
		actualTick, formatted := svc.GetTime(ctx, &tick)
		assert.Equal(t, tick, actualTick)
		assert.Equal(t, "21:00 (9:00 pm)", formatted)

		_, formatted = svc.GetTime(ctx, nil)
		assert.Equal(t, "08:00 (8:00 am)", formatted)
	})

	t.Run("set time needs permission", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.SetTime(ctx, dao.User{Username: "guest", Role: dao.Normal}, 6000)
		assert.ErrorIs(t, err, serr.ErrPermissions)

		formatted, err := svc.SetTime(ctx, dao.User{Username: "admin", Role: dao.Admin}, 6000)
		assert.NoError(t, err)
		assert.Equal(t, "14:00 (2:00 pm)", formatted)
		assert.Equal(t, int64(6000), svc.World.Time())
	})

	t.Run("format", func(t *testing.T) {
		svc := newTestService()
		f := svc.Format(ctx, "`rHello `bworld")
		assert.Equal(t, "§cHello §9world", f.Text)
		assert.Equal(t, "Hello world", f.Plain)
	})

	t.Run("broadcast", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Broadcast(ctx, dao.User{Username: "guest", Role: dao.Normal}, "hi")
		assert.ErrorIs(t, err, serr.ErrPermissions)

		_, err = svc.Broadcast(ctx, dao.User{Username: "admin", Role: dao.Admin}, "`yhi")
		assert.NoError(t, err)

		msgs, err := svc.TakePlayerMessages(ctx, dao.User{Username: "guest", Role: dao.Normal}, "guest")
		assert.NoError(t, err)
		assert.Equal(t, []string{"§ehi"}, msgs)

		_, err = svc.TakePlayerMessages(ctx, dao.User{Username: "guest", Role: dao.Normal}, "tetsu")
		assert.ErrorIs(t, err, serr.ErrPermissions)
	})

	t.Run("join and leave", func(t *testing.T) {
		svc := newTestService()
		admin := dao.User{Username: "admin", Role: dao.Admin}

		_, err := svc.JoinPlayer(ctx, dao.User{Username: "guest", Role: dao.Normal}, "notch", host.Location{})
		assert.ErrorIs(t, err, serr.ErrPermissions)

		_, err = svc.JoinPlayer(ctx, admin, "notch", host.Location{Yaw: 180}, "builder")
		assert.NoError(t, err)
		_, err = svc.JoinPlayer(ctx, admin, "Notch", host.Location{})
		assert.ErrorIs(t, err, serr.ErrAlreadyExists)
		_, err = svc.JoinPlayer(ctx, admin, "jeb", host.Location{}, "nosuchgroup")
		assert.ErrorIs(t, err, serr.ErrBadArgument)
		_, err = svc.JoinPlayer(ctx, admin, "a,b", host.Location{})
		assert.ErrorIs(t, err, serr.ErrBadArgument)
		_, err = svc.JoinPlayer(ctx, admin, "*", host.Location{})
		assert.ErrorIs(t, err, serr.ErrBadArgument)

		assert.NoError(t, svc.LeavePlayer(ctx, admin, "notch"))
		assert.ErrorIs(t, svc.LeavePlayer(ctx, admin, "notch"), serr.ErrNotFound)
	})
}
