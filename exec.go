package cmdbook

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/chat"
	"github.com/dekarrin/cmdbook/internal/clock"
	"github.com/dekarrin/cmdbook/internal/command"
	"github.com/dekarrin/cmdbook/internal/compass"
	"github.com/dekarrin/cmdbook/internal/give"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/internal/roster"
	"github.com/dekarrin/cmdbook/internal/util"
	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/rosed"
)

var commandHelp = [][2]string{
	{"AS/SUDO", "act as a player, or as CONSOLE"},
	{"COMPASS/DIR [player]", "show which way you or a player is facing"},
	{"FACE/TURN yaw", "turn to face the given yaw, in degrees"},
	{"GIVE [-d] players item [amount]", "give items to players; players are separated by commas and * is everyone. Use INF for an unlimited stack and -d to drop the items instead"},
	{"HELP/?", "show this help"},
	{"INVENTORY/INV [player]", "show what you or a player is carrying"},
	{"ITEM/I [-d] item [amount]", "give items to yourself"},
	{"QUIT/BYE", "leave the console"},
	{"SAY/BROADCAST text", "send a message to everyone; `r style color macros are replaced"},
	{"TIME [SET] [tick]", "show the time of day now or at a tick, or set the world time"},
	{"WHO/LIST", "list the players who are online"},
}

// Execute runs a single command as the current sender and returns any output
// meant for the console user. Messages sent to the sender or to players are
// not included; they are held in mailboxes until delivered.
//
// If the command is rejected, the returned error will be a cberrors command
// error.
func (eng *Engine) Execute(cmd command.Command) (string, error) {
	switch cmd.Verb {
	case "HELP":
		return eng.executeHelp()
	case "WHO":
		roster.SendOnlineList(eng.world.Online(), eng.sender)
		return "", nil
	case "TIME":
		return eng.executeTime(cmd)
	case "COMPASS":
		return eng.executeCompass(cmd)
	case "FACE":
		return eng.executeFace(cmd)
	case "SAY":
		return eng.executeSay(cmd)
	case "AS":
		return eng.executeAs(cmd)
	case "INVENTORY":
		return eng.executeInventory(cmd)
	case "ITEM", "GIVE":
		return eng.executeGive(cmd)
	default:
		return "", cberrors.Wrapf(cberrors.ErrBadArgument, "I don't know how to %s", cmd.Verb)
	}
}

func (eng *Engine) executeHelp() (string, error) {
	output := rosed.Edit("").WithOptions(
		textFormatOptions.
			WithNoTrailingLineSeparators(true)).
		Insert(rosed.End, "Here are the commands you can use:\n").
		InsertDefinitionsTable(rosed.End, commandHelp, consoleOutputWidth).String()

	return output, nil
}

func (eng *Engine) executeTime(cmd command.Command) (string, error) {
	t := eng.world.Time()
	if cmd.Text != "" {
		var err error
		t, err = strconv.ParseInt(cmd.Text, 10, 64)
		if err != nil {
			return "", cberrors.Wrapf(cberrors.ErrBadArgument, "'%s' is not a game tick", cmd.Text)
		}
	}

	if cmd.Subverb == "SET" {
		if !eng.world.HasPermission(eng.sender, host.PermTimeSet) {
			return "", cberrors.Permission("You don't have permission to do that.")
		}
		eng.world.SetTime(t)
		eng.sender.SendMessage(fmt.Sprintf("%sTime set to %s.", chat.Yellow, clock.TimeString(t)))
		return "", nil
	}

	eng.sender.SendMessage(fmt.Sprintf("%sTime: %s", chat.Yellow, clock.TimeString(t)))
	return "", nil
}

func (eng *Engine) executeCompass(cmd command.Command) (string, error) {
	p, err := eng.targetPlayer(cmd.Targets)
	if err != nil {
		return "", err
	}

	dir, ok := compass.PlayerDirection(p)
	if !ok {
		return "", cberrors.Commandf("%s is not facing any direction.", p.Name())
	}

	if host.SamePlayer(eng.sender, p) {
		eng.sender.SendMessage(fmt.Sprintf("%sYour direction: %s", chat.Yellow, dir))
	} else {
		eng.sender.SendMessage(fmt.Sprintf("%s%s's direction: %s", chat.Yellow, p.Name(), dir))
	}
	return "", nil
}

func (eng *Engine) executeFace(cmd command.Command) (string, error) {
	p, ok := eng.sender.(*world.Player)
	if !ok {
		return "", cberrors.BadArgument("Only players can turn; use AS to act as one first.")
	}

	yaw, err := strconv.ParseFloat(cmd.Text, 64)
	if err != nil {
		return "", cberrors.Wrapf(cberrors.ErrBadArgument, "'%s' is not a number of degrees", cmd.Text)
	}
	p.Face(yaw)

	dir, _ := compass.PlayerDirection(p)
	return fmt.Sprintf("%s is now facing %s.", p.Name(), dir), nil
}

func (eng *Engine) executeSay(cmd command.Command) (string, error) {
	if !eng.world.HasPermission(eng.sender, host.PermBroadcast) {
		return "", cberrors.Permission("You don't have permission to do that.")
	}

	msg := chat.ReplaceMacros(cmd.Text)
	for _, p := range eng.world.Online() {
		p.SendMessage(msg)
	}
	eng.world.Console().SendMessage(msg)
	return "", nil
}

func (eng *Engine) executeAs(cmd command.Command) (string, error) {
	s, ok := eng.world.Sender(cmd.Targets[0])
	if !ok {
		return "", cberrors.Wrapf(cberrors.ErrBadArgument, "No players matched query '%s'.", cmd.Targets[0])
	}
	eng.sender = s
	return fmt.Sprintf("You are now acting as %s.", s.Name()), nil
}

func (eng *Engine) executeInventory(cmd command.Command) (string, error) {
	p, err := eng.targetPlayer(cmd.Targets)
	if err != nil {
		return "", err
	}
	wp := p.(*world.Player)

	slots := wp.Inventory()
	if len(slots) == 0 {
		return fmt.Sprintf("%s is not carrying anything.", wp.Name()), nil
	}

	data := [][]string{{"Slot", "Item", "Amount"}}
	for i, s := range slots {
		amt := strconv.Itoa(s.Amount)
		if s.Amount == host.Unlimited {
			amt = "infinite"
		}
		data = append(data, []string{strconv.Itoa(i + 1), eng.world.ItemName(s.Type), amt})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	output := rosed.Edit(wp.Name()+" is carrying:\n").
		InsertTableOpts(rosed.End, data, consoleOutputWidth, tableOpts).
		String()

	return output, nil
}

func (eng *Engine) executeGive(cmd command.Command) (string, error) {
	if !eng.world.HasPermission(eng.sender, host.PermGive) {
		return "", cberrors.Permission("You don't have permission to do that.")
	}

	var targets []host.Player
	if cmd.Verb == "ITEM" {
		p, ok := eng.sender.(host.Player)
		if !ok {
			return "", cberrors.BadArgument("Only players can receive items; use GIVE to give them to somebody.")
		}
		targets = []host.Player{p}
	} else {
		var err error
		targets, err = eng.world.MatchPlayers(cmd.Targets)
		if err != nil {
			return "", err
		}
		if len(targets) == 0 {
			return "", cberrors.BadArgument("No players matched query '*'.")
		}

		for _, p := range targets {
			if !host.SamePlayer(eng.sender, p) && !eng.world.HasPermission(eng.sender, host.PermGiveOther) {
				return "", cberrors.Permission("You don't have permission to do that.")
			}
		}
	}

	it, err := eng.world.Catalog().Lookup(cmd.Item)
	if err != nil {
		return "", err
	}

	item := &host.ItemStack{Type: it}
	if err := give.Item(eng.sender, item, cmd.Amount, targets, eng.world, cmd.Drop); err != nil {
		return "", err
	}

	if cmd.Drop {
		names := make([]string, len(targets))
		for i := range targets {
			names[i] = targets[i].Name()
		}
		return "Dropped at the feet of " + util.MakeTextList(names) + ".", nil
	}
	return "", nil
}

// targetPlayer gives the single player named in targets, or the sender if
// targets is empty and the sender is a player.
func (eng *Engine) targetPlayer(targets []string) (host.Player, error) {
	if len(targets) == 0 {
		p, ok := eng.sender.(host.Player)
		if !ok {
			return nil, cberrors.BadArgument("The console is not in the world; name a player.")
		}
		return p, nil
	}

	p, ok := eng.world.Player(targets[0])
	if !ok {
		return nil, cberrors.Wrapf(cberrors.ErrBadArgument, "No players matched query '%s'.", targets[0])
	}
	return p, nil
}
