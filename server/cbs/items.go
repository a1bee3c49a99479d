package cbs

import (
	"context"

	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/server/dao"
)

// Item is one entry of the world's item catalog as seen by a user.
type Item struct {
	Type host.ItemType

	// Name is the name the item is given by in a give request.
	Name string

	// DisplayName is the name used in chat messages.
	DisplayName string

	// Allowed is whether the user may give the item.
	Allowed bool
}

// GetItems returns every item in the catalog, in order of item type.
func (svc Service) GetItems(ctx context.Context, u dao.User) []Item {
	cat := svc.World.Catalog()
	sender := newUserSender(u)

	types := cat.Types()
	items := make([]Item, len(types))
	for i, it := range types {
		items[i] = Item{
			Type:        it,
			Name:        cat[it],
			DisplayName: cat.DisplayName(it),
			Allowed:     svc.World.AllowedItem(sender, it),
		}
	}
	return items
}
