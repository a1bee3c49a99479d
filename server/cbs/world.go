package cbs

import (
	"context"
	"log"
	"strings"

	"github.com/dekarrin/cmdbook/internal/chat"
	"github.com/dekarrin/cmdbook/internal/clock"
	"github.com/dekarrin/cmdbook/internal/compass"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/internal/roster"
	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/serr"
)

// Formatted is text with color macros replaced, in each of the forms a client
// might want to show it in.
type Formatted struct {
	// Text has the color codes used in chat.
	Text string

	// ANSI has the color codes converted to terminal escape sequences.
	ANSI string

	// Plain has all color codes removed.
	Plain string
}

// GetPlayers returns the online list message along with the names of every
// online player in the order they joined.
func (svc Service) GetPlayers(ctx context.Context) (string, []string) {
	online := svc.World.Online()

	names := make([]string, len(online))
	for i := range online {
		names[i] = online[i].Name()
	}

	return roster.OnlineList(online), names
}

// JoinPlayer puts a new player in the world as the given user. Only users
// with every permission may add players.
//
// The returned error, if non-nil, will match serr.ErrPermissions if the user
// is not allowed, serr.ErrAlreadyExists if a player of that name is online,
// and serr.ErrBadArgument if the name or groups are not valid.
func (svc Service) JoinPlayer(ctx context.Context, u dao.User, name string, loc host.Location, groups ...string) (*world.Player, error) {
	if u.Role != dao.Admin {
		return nil, serr.ErrPermissions
	}
	if name == "" {
		return nil, serr.New("name cannot be blank", serr.ErrBadArgument)
	}
	if _, ok := svc.World.Player(name); ok {
		return nil, serr.New("a player with that name is already online", serr.ErrAlreadyExists)
	}

	p, err := svc.World.Join(name, loc, groups...)
	if err != nil {
		return nil, serr.New(err.Error(), serr.ErrBadArgument)
	}
	return p, nil
}

// LeavePlayer removes the named player from the world. Only admins may remove
// players.
func (svc Service) LeavePlayer(ctx context.Context, u dao.User, name string) error {
	if u.Role != dao.Admin {
		return serr.ErrPermissions
	}
	if !svc.World.Leave(name) {
		return serr.ErrNotFound
	}
	return nil
}

// GetDirection returns the compass direction that the named player is facing.
//
// The returned error, if non-nil, will match serr.ErrNotFound if the player is
// not online.
func (svc Service) GetDirection(ctx context.Context, name string) (string, error) {
	p, ok := svc.World.Player(name)
	if !ok {
		return "", serr.ErrNotFound
	}

	dir, ok := compass.PlayerDirection(p)
	if !ok {
		return "", serr.New(p.Name()+" is not facing any direction", serr.ErrBadArgument)
	}
	return dir, nil
}

// TakePlayerMessages returns and clears every chat message sent to the named
// player. Admins may read anyone's messages; other users may only read those
// of the player with the same name as them.
func (svc Service) TakePlayerMessages(ctx context.Context, u dao.User, name string) ([]string, error) {
	p, ok := svc.World.Player(name)
	if !ok {
		return nil, serr.ErrNotFound
	}
	if u.Role != dao.Admin && !strings.EqualFold(u.Username, p.Name()) {
		return nil, serr.ErrPermissions
	}

	return p.TakeMessages(), nil
}

// GetTime returns the game tick and its formatted time of day. If tick is nil,
// the current world time is used.
func (svc Service) GetTime(ctx context.Context, tick *int64) (int64, string) {
	t := svc.World.Time()
	if tick != nil {
		t = *tick
	}
	return t, clock.TimeString(t)
}

// SetTime sets the world time as the given user and returns the formatted new
// time. The user's role must grant commandbook.time.set.
func (svc Service) SetTime(ctx context.Context, u dao.User, tick int64) (string, error) {
	if !svc.World.HasPermission(newUserSender(u), host.PermTimeSet) {
		return "", serr.ErrPermissions
	}

	svc.World.SetTime(tick)
	return clock.TimeString(tick), nil
}

// Format replaces the color macros in text.
func (svc Service) Format(ctx context.Context, text string) Formatted {
	colored := chat.ReplaceMacros(text)
	return Formatted{
		Text:  colored,
		ANSI:  chat.ToANSI(colored),
		Plain: chat.Strip(colored),
	}
}

// Broadcast sends a message with its color macros replaced to every player
// and the console as the given user. The user's role must grant
// commandbook.broadcast.
func (svc Service) Broadcast(ctx context.Context, u dao.User, text string) (Formatted, error) {
	if !svc.World.HasPermission(newUserSender(u), host.PermBroadcast) {
		return Formatted{}, serr.ErrPermissions
	}

	f := svc.Format(ctx, text)
	for _, p := range svc.World.Online() {
		p.SendMessage(f.Text)
	}
	svc.World.Console().SendMessage(f.Text)

	// nobody reads the console mailbox on the server; it goes to the log.
	for _, msg := range svc.World.Console().TakeMessages() {
		log.Printf("INFO  [CONSOLE] %s", chat.Strip(msg))
	}
	return f, nil
}
