// Package chat handles the color codes used in in-game chat messages. Colors
// are written as a section sign followed by a single code character, which is
// what game clients interpret. Users type them more easily as macros: a
// backtick followed by a letter or digit.
//
// The macros are:
//
//	`r red            `R dark red
//	`y yellow         `Y gold
//	`g green          `G dark green
//	`c aqua           `C dark aqua
//	`b blue           `B dark blue
//	`p light purple   `P dark purple
//	`0 black          `1 dark gray
//	`2 gray           `w white
//
// Lowercase letters are the lighter shades, uppercase are the darker ones.
package chat

import (
	"strings"
)

// Color is a chat color control sequence.
type Color string

// Escape is the character that starts every color sequence.
const Escape = '§'

const (
	Black       Color = "§0"
	DarkBlue    Color = "§1"
	DarkGreen   Color = "§2"
	DarkAqua    Color = "§3"
	DarkRed     Color = "§4"
	DarkPurple  Color = "§5"
	Gold        Color = "§6"
	Gray        Color = "§7"
	DarkGray    Color = "§8"
	Blue        Color = "§9"
	Green       Color = "§a"
	Aqua        Color = "§b"
	Red         Color = "§c"
	LightPurple Color = "§d"
	Yellow      Color = "§e"
	White       Color = "§f"
)

func (c Color) String() string {
	return string(c)
}

// Code returns the single character that identifies the color.
func (c Color) Code() byte {
	if len(c) < 1 {
		return 0
	}
	return c[len(c)-1]
}

var macros = map[string]Color{
	"`r": Red,
	"`R": DarkRed,
	"`y": Yellow,
	"`Y": Gold,
	"`g": Green,
	"`G": DarkGreen,
	"`c": Aqua,
	"`C": DarkAqua,
	"`b": Blue,
	"`B": DarkBlue,
	"`p": LightPurple,
	"`P": DarkPurple,
	"`0": Black,
	"`1": DarkGray,
	"`2": Gray,
	"`w": White,
}

var macroReplacer = newMacroReplacer()

func newMacroReplacer() *strings.Replacer {
	var oldnew []string
	for macro, c := range macros {
		oldnew = append(oldnew, macro, string(c))
	}
	return strings.NewReplacer(oldnew...)
}

// Macros returns a copy of the table of color macros.
func Macros() map[string]Color {
	m := make(map[string]Color, len(macros))
	for k, v := range macros {
		m[k] = v
	}
	return m
}

// ReplaceMacros replaces every color macro in s with its color sequence.
// Sequences that are not macros are left as-is.
func ReplaceMacros(s string) string {
	return macroReplacer.Replace(s)
}

// Strip removes all color sequences from s.
func Strip(s string) string {
	if !strings.ContainsRune(s, Escape) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == Escape && i+1 < len(runes) {
			i++
			continue
		}
		sb.WriteRune(runes[i])
	}

	return sb.String()
}
