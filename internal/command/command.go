// Package command defines console command data types and handles parsing of
// commands from input sources.
package command

// Command is a valid command received from a console input source.
type Command struct {

	// Verb is the canonical name of the command being invoked, such as "GIVE",
	// "WHO", "TIME", or "QUIT". Some verbs have shorthand forms which are
	// typed differently, for instance "LIST" could be typed instead of "WHO",
	// and for all those cases they would result in a Command with a verb of
	// WHO.
	Verb string

	// Subverb is a second keyword that changes what the verb does, such as the
	// SET in "TIME SET 6000". It is upper case.
	Subverb string

	// Targets are the names of the players the command acts on, with case
	// preserved. "*" stands for everyone online.
	Targets []string

	// Item is the name or ID of the item for GIVE and ITEM commands.
	Item string

	// Amount is how many of Item to give. -1 means an unlimited stack.
	Amount int

	// Drop is whether items are to be dropped on the ground instead of being
	// put in inventories.
	Drop bool

	// Text is the free-form argument of the command, with case preserved. It
	// is the message for SAY, the tick for TIME, and the yaw for FACE.
	Text string
}
