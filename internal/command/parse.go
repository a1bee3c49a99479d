package command

import (
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/spf13/pflag"
)

var (
	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase.
	VerbAliases map[string]string = map[string]string{
		"I":         "ITEM",
		"LIST":      "WHO",
		"ONLINE":    "WHO",
		"PLAYERS":   "WHO",
		"SET TIME":  "TIME SET",
		"DIR":       "COMPASS",
		"DIRECTION": "COMPASS",
		"BROADCAST": "SAY",
		"SUDO":      "AS",
		"TURN":      "FACE",
		"INVEN":     "INVENTORY",
		"INV":       "INVENTORY",
		"BYE":       "QUIT",
		"EXIT":      "QUIT",
		"?":         "HELP",
		"/?":        "HELP",
		"-H":        "HELP",
		"H":         "HELP",
	}
)

// infiniteWords are amounts that mean an unlimited stack.
var infiniteWords = map[string]bool{
	"INF":      true,
	"INFINITE": true,
	"-1":       true,
}

// Parse parses a command from the given text. If it cannot, a non-nil error
// is returned; it will be a cberrors command error with a message suitable for
// showing to the user.
//
// If an empty string or a string composed only of whitespace is passed in, nil
// error is returned and a zero value for Command will be returned.
func Parse(toParse string) (Command, error) {
	var parsedCmd Command

	// case is preserved for arguments, verbs are matched upper case
	casedTokens := strings.Fields(toParse)
	if len(casedTokens) < 1 {
		return parsedCmd, nil
	}

	verbTokens, args := expandVerb(casedTokens, 2)
	parsedCmd.Verb = verbTokens[0]
	args = append(verbTokens[1:], args...)

	originalVerb := casedTokens[0]

	switch parsedCmd.Verb {
	case "HELP":
		// help takes an optional argument
		parsedCmd.Text = strings.Join(args, " ")
	case "WHO", "QUIT":
		if len(args) > 0 {
			errMsg := "You can't %s *something*; type %s by itself"
			return parsedCmd, cberrors.Wrapf(cberrors.ErrBadArgument, errMsg, originalVerb, originalVerb)
		}
	case "TIME":
		if len(args) > 0 && strings.ToUpper(args[0]) == "SET" {
			parsedCmd.Subverb = "SET"
			args = args[1:]
			if len(args) < 1 {
				return parsedCmd, cberrors.BadArgument("I don't know what time you want to set it to")
			}
		}
		if len(args) > 1 {
			return parsedCmd, cberrors.BadArgument("TIME takes only a single game tick")
		}
		if len(args) == 1 {
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return parsedCmd, cberrors.Wrapf(cberrors.ErrBadArgument, "'%s' is not a game tick; it must be a whole number", args[0])
			}
			parsedCmd.Text = args[0]
		}
	case "COMPASS", "INVENTORY":
		if len(args) > 1 {
			return parsedCmd, cberrors.Wrapf(cberrors.ErrBadArgument, "%s takes at most one player", originalVerb)
		}
		if len(args) > 0 {
			parsedCmd.Targets = args
		}
	case "SAY":
		if len(args) < 1 {
			return parsedCmd, cberrors.BadArgument("I don't know what you want to say")
		}
		// keep the spacing the user typed
		verbEnd := strings.Index(toParse, originalVerb) + len(originalVerb)
		parsedCmd.Text = strings.TrimSpace(toParse[verbEnd:])
	case "AS":
		if len(args) != 1 {
			return parsedCmd, cberrors.BadArgument("I need exactly one player (or CONSOLE) to act as")
		}
		parsedCmd.Targets = args
	case "FACE":
		if len(args) != 1 {
			return parsedCmd, cberrors.BadArgument("I need exactly one yaw, in degrees, to face")
		}
		if _, err := strconv.ParseFloat(args[0], 64); err != nil {
			return parsedCmd, cberrors.Wrapf(cberrors.ErrBadArgument, "'%s' is not a number of degrees", args[0])
		}
		parsedCmd.Text = args[0]
	case "ITEM", "GIVE":
		return parseGive(parsedCmd, args)
	default:
		return parsedCmd, cberrors.Wrapf(cberrors.ErrBadArgument, "I don't know what you mean by %q", originalVerb)
	}

	return parsedCmd, nil
}

// parseGive parses the arguments of ITEM and GIVE:
//
//	ITEM [-d] ITEM [AMOUNT]
//	GIVE [-d] PLAYER[,PLAYER...] ITEM [AMOUNT]
func parseGive(cmd Command, args []string) (Command, error) {
	flags := pflag.NewFlagSet(strings.ToLower(cmd.Verb), pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	drop := flags.BoolP("drop", "d", false, "drop the items on the ground")

	// negative amounts look like flags to pflag, so only give it the tokens
	// that are not numbers.
	var flagArgs, positional []string
	for _, a := range args {
		if len(a) > 1 && strings.HasPrefix(a, "-") {
			if _, err := strconv.Atoi(a); err != nil {
				flagArgs = append(flagArgs, a)
				continue
			}
		}
		positional = append(positional, a)
	}

	if err := flags.Parse(flagArgs); err != nil {
		return cmd, cberrors.Wrap(cberrors.ErrBadArgument, "Unknown option; the only option is -d to drop the items", err.Error())
	}
	cmd.Drop = *drop

	if cmd.Verb == "GIVE" {
		if len(positional) < 2 {
			return cmd, cberrors.BadArgument("I need to know who to give what to")
		}
		for _, name := range strings.Split(positional[0], ",") {
			if name != "" {
				cmd.Targets = append(cmd.Targets, name)
			}
		}
		if len(cmd.Targets) < 1 {
			return cmd, cberrors.BadArgument("I need to know who to give it to")
		}
		positional = positional[1:]
	}

	if len(positional) < 1 {
		return cmd, cberrors.BadArgument("I don't know what item you want")
	}
	if len(positional) > 2 {
		return cmd, cberrors.Wrapf(cberrors.ErrBadArgument, "I don't know what you mean by %q", strings.Join(positional[2:], " "))
	}

	cmd.Item = positional[0]
	cmd.Amount = 1
	if len(positional) == 2 {
		amt, err := parseAmount(positional[1])
		if err != nil {
			return cmd, err
		}
		cmd.Amount = amt
	}

	return cmd, nil
}

func parseAmount(s string) (int, error) {
	if infiniteWords[strings.ToUpper(s)] {
		return -1, nil
	}
	amt, err := strconv.Atoi(s)
	if err != nil {
		return 0, cberrors.Wrapf(cberrors.ErrBadArgument, "'%s' is not an amount; use a number or INF", s)
	}
	return amt, nil
}

// expandVerb runs alias expansion on the verb at the start of tokens. Aliases
// up to aliasLimit words long are supported. The returned verb tokens are the
// upper case canonical verb followed by any words the alias expands to; rest
// is the remaining tokens with their case untouched.
//
// Aliases will not be multi-expanded; that is, expansion is not applied to the
// results of an expansion.
func expandVerb(tokens []string, aliasLimit int) (verb []string, rest []string) {
	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	// longest alias wins
	for curLimit := aliasLimit; curLimit >= 1; curLimit-- {
		checkStr := strings.ToUpper(strings.Join(tokens[:curLimit], " "))
		if expansion, ok := VerbAliases[checkStr]; ok {
			return strings.Fields(expansion), tokens[curLimit:]
		}
	}

	return []string{strings.ToUpper(tokens[0])}, tokens[1:]
}
