package cbs

import (
	"sync"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/cmdbook/server/dao"
)

// userSender is a logged-in API user acting as a command sender. It is not in
// the world; its permissions come from the user's role and the messages sent
// to it are kept so they can be returned to the client.
type userSender struct {
	user  dao.User
	perms *world.Group

	mu   sync.Mutex
	msgs []string
}

func newUserSender(u dao.User) *userSender {
	return &userSender{
		user:  u,
		perms: world.NewGroup("role:"+u.Role.String(), u.Role.Permissions()...),
	}
}

func (us *userSender) Name() string {
	return us.user.Username
}

func (us *userSender) SendMessage(msg string) {
	us.mu.Lock()
	defer us.mu.Unlock()
	us.msgs = append(us.msgs, msg)
}

func (us *userSender) HasPermission(perm string) bool {
	return us.perms.Has(perm)
}

// grants returns the nodes of host.Permissions that the user has.
func (us *userSender) grants() []string {
	var granted []string
	for _, perm := range host.Permissions() {
		if us.HasPermission(perm) {
			granted = append(granted, perm)
		}
	}
	return granted
}

// takeMessages returns every message sent so far and clears them.
func (us *userSender) takeMessages() []string {
	us.mu.Lock()
	defer us.mu.Unlock()
	msgs := us.msgs
	us.msgs = nil
	return msgs
}

var _ world.Permissible = (*userSender)(nil)
