package world

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/host"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Catalog maps item type IDs to their names. Names are lower case with words
// separated by underscores, such as "diamond_sword".
type Catalog map[host.ItemType]string

// DefaultCatalog returns the items known when a world file does not list any.
func DefaultCatalog() Catalog {
	return Catalog{
		1:   "stone",
		2:   "grass",
		3:   "dirt",
		4:   "cobblestone",
		5:   "wood",
		7:   "bedrock",
		12:  "sand",
		46:  "tnt",
		50:  "torch",
		264: "diamond",
		276: "diamond_sword",
		278: "diamond_pickaxe",
		280: "stick",
		297: "bread",
		325: "bucket",
		327: "lava_bucket",
	}
}

// DisplayName gives the name of an item as it is shown to players, for
// instance "Diamond Sword". Unknown items are shown by their ID.
func (c Catalog) DisplayName(it host.ItemType) string {
	name, ok := c[it]
	if !ok {
		return it.String()
	}

	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(name, "_", " "))
}

// Lookup finds the item type referred to by s. s may be the numeric ID of the
// item or its name; names are matched without regard to case and spaces may be
// used in place of underscores.
func (c Catalog) Lookup(s string) (host.ItemType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, cberrors.BadArgument("You need to say what item you want.")
	}

	if id, err := strconv.Atoi(s); err == nil {
		it := host.ItemType(id)
		if _, ok := c[it]; !ok {
			return 0, cberrors.Wrapf(cberrors.ErrBadArgument, "Unknown item ID '%d'.", id)
		}
		return it, nil
	}

	want := strings.ReplaceAll(strings.ToLower(s), " ", "_")
	for it, name := range c {
		if name == want {
			return it, nil
		}
	}

	return 0, cberrors.Wrapf(cberrors.ErrBadArgument, "Unknown item '%s'.", s)
}

// Types returns every item type in the catalog in ascending order.
func (c Catalog) Types() []host.ItemType {
	types := make([]host.ItemType, 0, len(c))
	for it := range c {
		types = append(types, it)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}

func (c Catalog) validate() error {
	seen := map[string]host.ItemType{}
	for it, name := range c {
		if name == "" {
			return fmt.Errorf("item %s: name is empty", it)
		}
		if strings.ContainsAny(name, " \t") {
			return fmt.Errorf("item %s: name %q contains whitespace", it, name)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("item %s: name %q already used by item %s", it, name, other)
		}
		seen[name] = it
	}
	return nil
}
