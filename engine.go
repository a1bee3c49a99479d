// Package cmdbook contains a CLI-driven console for running CommandBook
// commands against a simulated game server until the user quits.
package cmdbook

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/cmdbook/internal/cberrors"
	"github.com/dekarrin/cmdbook/internal/chat"
	"github.com/dekarrin/cmdbook/internal/command"
	"github.com/dekarrin/cmdbook/internal/host"
	"github.com/dekarrin/cmdbook/internal/input"
	"github.com/dekarrin/cmdbook/internal/world"
	"github.com/dekarrin/rosed"
)

// Engine contains the things needed to run a console from an interactive
// shell attached to an input stream and an output stream.
type Engine struct {
	world       *world.World
	sender      host.Sender
	in          command.Reader
	out         *bufio.Writer
	ansi        bool
	forceDirect bool
	running     bool
}

const consoleOutputWidth = 80

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	ParagraphSeparator: "\n",
	IndentStr:          "  ",
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout. If
// worldFilePath is empty, the built-in default world is used. historyFile is
// only used when reading interactively, and may be empty to not keep history.
//
// Color codes are shown as ANSI escapes when reading interactively and are
// stripped otherwise.
func New(inputStream io.Reader, outputStream io.Writer, worldFilePath string, historyFile string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	var w *world.World
	if worldFilePath == "" {
		w = world.Default()
	} else {
		var err error
		w, err = world.Load(worldFilePath)
		if err != nil {
			return nil, err
		}
	}

	eng := &Engine{
		world:       w,
		sender:      w.Console(),
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader(historyFile, completions()...)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
		eng.ansi = true
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// World returns the world that the engine runs commands against.
func (eng *Engine) World() *world.World {
	return eng.world
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and running them
// until the QUIT command is received or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Welcome to the CommandBook console\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "==================================\n"
	introMsg += "\n"
	introMsg += fmt.Sprintf("You are acting as %s. Type HELP for a list of commands.\n", eng.sender.Name())

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmd, err := command.Get(eng.in, eng.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		if cmd.Verb == "QUIT" {
			eng.running = false
			break
		}

		output, err := eng.Execute(cmd)
		if err != nil {
			if !cberrors.IsCommand(err) {
				return err
			}
			output = wrap(chat.Red.String() + cberrors.Message(err))
		}

		if output != "" {
			if err := eng.write(eng.render(output) + "\n"); err != nil {
				return err
			}
		}
		if err := eng.deliverMail(); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// deliverMail writes out every message that has been sent to the console or
// to a player. Messages to the acting sender are shown as-is; those for
// anybody else are marked with who they were sent to.
func (eng *Engine) deliverMail() error {
	var sb strings.Builder

	for _, msg := range eng.world.Console().TakeMessages() {
		if eng.sender != host.Sender(eng.world.Console()) {
			sb.WriteString("[to CONSOLE] ")
		}
		sb.WriteString(eng.render(wrap(msg)))
		sb.WriteRune('\n')
	}

	for _, p := range eng.world.Online() {
		wp := p.(*world.Player)
		for _, msg := range wp.TakeMessages() {
			if !host.SamePlayer(eng.sender, wp) {
				sb.WriteString("[to " + wp.Name() + "] ")
			}
			sb.WriteString(eng.render(wrap(msg)))
			sb.WriteRune('\n')
		}
	}

	if sb.Len() == 0 {
		return nil
	}
	return eng.write(sb.String())
}

// wrap wraps s to the console width.
func wrap(s string) string {
	return rosed.Edit(s).WrapOpts(consoleOutputWidth, textFormatOptions).String()
}

// render converts the color codes in s for display.
func (eng *Engine) render(s string) string {
	if eng.ansi {
		return chat.ToANSI(s)
	}
	return chat.Strip(s)
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func completions() []input.Completion {
	var comps []input.Completion
	for _, h := range commandHelp {
		verb := strings.Fields(h[0])[0]
		for _, v := range strings.Split(verb, "/") {
			c := input.Completion{Word: v}
			if v == "TIME" {
				c.Next = []input.Completion{{Word: "SET"}}
			}
			comps = append(comps, c)
		}
	}
	return comps
}
