/*
Cbi starts an interactive CommandBook console session.

It reads in a world file describing the players who are online and what they
are allowed to do, then reads commands from stdin and runs them against that
world as the server console, printing every message that results to stdout,
until input ends or the "QUIT" command is given.

Usage:

	cbi [flags]

The flags are:

	-v, --version
		Give the current version of the CommandBook console and then exit.

	-w, --world FILE
		Use the provided TOML world file. If not given, a built-in world with
		a few players in different permission groups is used.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

	--history FILE
		Keep the command history of interactive sessions in FILE.

Once a session has started, the user input will be parsed for CommandBook
commands. For an explanation of the commands, type "HELP" once in a session. To
exit the console, type "QUIT".
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/cmdbook"
	"github.com/dekarrin/cmdbook/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitConsoleError indicates an unsuccessful program execution due to a
	// problem while running commands.
	ExitConsoleError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode    int = ExitSuccess
	flagVersion       = pflag.BoolP("version", "v", false, "Give the current version of the CommandBook console and then exit.")
	flagWorld         = pflag.StringP("world", "w", "", "Use the given TOML world file instead of the built-in world.")
	flagDirect        = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagHistoryFile   = pflag.String("history", "", "Keep interactive command history in the given file.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	eng, initErr := cmdbook.New(os.Stdin, os.Stdout, *flagWorld, *flagHistoryFile, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConsoleError
		return
	}
}
