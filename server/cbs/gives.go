package cbs

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/give"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/dekarrin/cmdbook/server/serr"
	"github.com/google/uuid"
)

// GiveRequest is a request to hand out items to players.
type GiveRequest struct {
	// Targets are the names of the players to give to. "*" is every online
	// player.
	Targets []string

	// Item is the name or numeric ID of the item.
	Item string

	// Amount is how many to give. host.Unlimited gives one stack that never
	// runs out.
	Amount int

	// Drop is whether to drop the items at the targets' feet instead of
	// putting them in their inventories.
	Drop bool
}

// Give runs a give request as the given user and records it in the give log.
// The messages the user would have been sent in game are returned along with
// the log entry.
//
// A user counts as the player with the same name for the purposes of giving
// to themself; giving to any other player requires commandbook.give.other.
//
// The returned error, if non-nil, will match serr.ErrPermissions if the user
// is not allowed to make the request and serr.ErrBadArgument if the request
// is invalid or exceeds the give limits. In both of those cases the error also
// wraps the command error, and cberrors.Message gives the text to show to the
// user. If the error occured due to an unexpected problem with the DB, it will
// match serr.ErrDB; the items will have been given in that case.
func (svc Service) Give(ctx context.Context, u dao.User, gr GiveRequest) (dao.Give, []string, error) {
	sender := newUserSender(u)

	if !svc.World.HasPermission(sender, host.PermGive) {
		return dao.Give{}, nil, commandErr(cberrors.Permission("You don't have permission to do that."))
	}
	if len(gr.Targets) == 0 {
		return dao.Give{}, nil, commandErr(cberrors.BadArgument("No players were named."))
	}

	targets, err := svc.World.MatchPlayers(gr.Targets)
	if err != nil {
		return dao.Give{}, nil, commandErr(err)
	}
	if len(targets) == 0 {
		return dao.Give{}, nil, commandErr(cberrors.BadArgument("No players matched query '*'."))
	}

	names := make([]string, len(targets))
	for i, p := range targets {
		names[i] = p.Name()
		if !strings.EqualFold(p.Name(), u.Username) && !svc.World.HasPermission(sender, host.PermGiveOther) {
			return dao.Give{}, nil, commandErr(cberrors.Permission("You don't have permission to do that."))
		}
	}

	it, err := svc.World.Catalog().Lookup(gr.Item)
	if err != nil {
		return dao.Give{}, nil, commandErr(err)
	}

	stack := &host.ItemStack{Type: it}
	if err := give.Item(sender, stack, gr.Amount, targets, svc.World, gr.Drop); err != nil {
		return dao.Give{}, nil, commandErr(err)
	}

	logged, err := svc.DB.Gives().Create(ctx, dao.Give{
		UserID:  u.ID,
		Targets: names,
		Stack:   host.ItemStack{Type: it, Amount: gr.Amount},
		Drop:    gr.Drop,
	})
	if err != nil {
		return dao.Give{}, sender.takeMessages(), serr.WrapDB("could not record give", err)
	}

	return logged, sender.takeMessages(), nil
}

// GetGives returns the give log. Admins get every entry; everyone else only
// gets the gives they made.
func (svc Service) GetGives(ctx context.Context, u dao.User) ([]dao.Give, error) {
	var gives []dao.Give
	var err error

	if u.Role == dao.Admin {
		gives, err = svc.DB.Gives().GetAll(ctx)
	} else {
		gives, err = svc.DB.Gives().GetAllByUser(ctx, u.ID)
	}
	if err != nil {
		return nil, serr.WrapDB("could not get gives", err)
	}

	return gives, nil
}

// commandErr converts a rejected command into a service error. Anything that
// is not a command error is passed through unchanged.
func commandErr(err error) error {
	if !cberrors.IsCommand(err) {
		return err
	}

	msg := cberrors.Message(err)
	if errors.Is(err, cberrors.ErrPermission) {
		return serr.New(msg, err, serr.ErrPermissions)
	}
	return serr.New(msg, err, serr.ErrBadArgument)
}

// GetGive returns the entry of the give log with the given ID. Users other
// than admins may only get the gives they made.
//
// The returned error, if non-nil, will match serr.ErrNotFound if there is no
// such entry and serr.ErrPermissions if the user may not see it.
func (svc Service) GetGive(ctx context.Context, u dao.User, id uuid.UUID) (dao.Give, error) {
	g, err := svc.DB.Gives().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Give{}, serr.ErrNotFound
		}
		return dao.Give{}, serr.WrapDB("could not get give", err)
	}

	if u.Role != dao.Admin && g.UserID != u.ID {
		return dao.Give{}, serr.ErrPermissions
	}
	return g, nil
}
