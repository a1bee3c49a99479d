// Package input contains identifiers used in getting CommandBook console
// command input from a CLI or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is the prompt shown by an InteractiveCommandReader when none
// is set.
const DefaultPrompt = "> "

// DirectCommandReader implements command.Reader and reads commands from any
// generic input stream directly. It can be used generically with any io.Reader
// but does not sanitize the input of control and escape sequences.
//
// DirectCommandReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectCommandReader struct {
	r *bufio.Reader
}

// InteractiveCommandReader implements command.Reader and reads commands from
// stdin using a go implementation of the GNU Readline library. This keeps input
// clear of all typing and editing escape sequences and enables the use of
// command history and tab completion of verbs. This should in general only be
// used when directly connecting to a TTY for input.
//
// InteractiveCommandReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl *readline.Instance
}

// Completion is a word that the interactive reader can tab-complete, along
// with the words that can come after it.
type Completion struct {
	Word string
	Next []Completion
}

// NewDirectReader creates a new DirectCommandReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveCommandReader and initializes
// readline. Verbs in completions can be tab-completed at the start of a line.
// If historyFile is not empty, command history is kept in it between sessions.
// The returned InteractiveCommandReader must have Close() called on it before
// disposal to properly teardown readline resources.
func NewInteractiveReader(historyFile string, completions ...Completion) (*InteractiveCommandReader, error) {
	var items []readline.PrefixCompleterInterface
	for _, c := range completions {
		items = append(items, completerItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{rl: rl}, nil
}

func completerItem(c Completion) readline.PrefixCompleterInterface {
	var children []readline.PrefixCompleterInterface
	for _, n := range c.Next {
		children = append(children, completerItem(n))
	}
	return readline.PcItem(c.Word, children...)
}

// Close cleans up resources associated with the DirectCommandReader.
func (dcr *DirectCommandReader) Close() error {
	// DirectCommandReader does not create resources, but callers should treat
	// it as though it must have Close called on it.
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveCommandReader.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

// ReadCommand reads the next line from the stream. The returned string will
// only be empty if there is an error reading input, otherwise this function is
// blocked on until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dcr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadCommand reads the next command from stdin. The returned string will only
// be empty if there is an error, otherwise this function is blocked on until a
// line consisting of more than empty or whitespace-only input is read.
//
// An interrupt (Ctrl-C) on an empty line is reported as io.EOF so the console
// can shut down. If any other error occurs, the returned string will be empty
// and error will be that error.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = icr.rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return "", io.EOF
			}
			line = ""
			continue
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// SetPrompt updates the prompt to the given text.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.rl.SetPrompt(p)
}
