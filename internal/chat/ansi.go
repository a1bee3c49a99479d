package chat

import "strings"

// ANSIReset is the escape sequence that returns a terminal to its default
// colors.
const ANSIReset = "\033[0m"

var ansiCodes = map[byte]string{
	'0': "\033[0;30m",
	'1': "\033[0;34m",
	'2': "\033[0;32m",
	'3': "\033[0;36m",
	'4': "\033[0;31m",
	'5': "\033[0;35m",
	'6': "\033[0;33m",
	'7': "\033[0;37m",
	'8': "\033[0;1;30m",
	'9': "\033[0;1;34m",
	'a': "\033[0;1;32m",
	'b': "\033[0;1;36m",
	'c': "\033[0;1;31m",
	'd': "\033[0;1;35m",
	'e': "\033[0;1;33m",
	'f': "\033[0;1;37m",
}

// ToANSI converts chat color sequences in s to the ANSI escape sequences a
// terminal understands. Unknown color codes are dropped. If any color was
// emitted, a reset is appended at the end.
func ToANSI(s string) string {
	if !strings.ContainsRune(s, Escape) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 16)

	colored := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == Escape && i+1 < len(runes) {
			i++
			if runes[i] < 128 {
				if ansi, ok := ansiCodes[byte(runes[i])]; ok {
					sb.WriteString(ansi)
					colored = true
				}
			}
			continue
		}
		sb.WriteRune(runes[i])
	}

	if colored {
		sb.WriteString(ANSIReset)
	}

	return sb.String()
}
