// Package cberrors holds the error returned when a command is rejected.
package cberrors

import (
	"errors"
	"fmt"
)

var (
	// ErrBadArgument is a cause of rejections due to malformed or out of range
	// command arguments.
	ErrBadArgument = errors.New("invalid argument")

	// ErrPermission is a cause of rejections due to the sender lacking a
	// permission or using a disallowed item.
	ErrPermission = errors.New("permission denied")

	// ErrLimit is a cause of rejections due to a request exceeding a hard
	// policy limit that no permission lifts.
	ErrLimit = errors.New("limit exceeded")
)

// commandError is an error caused by a command that cannot be carried out.
// Either the arguments were bad, the sender is not permitted to do it, or it
// asks for more than is allowed.
//
// commandError includes a human-readable message to show to the sender as
// well as a typical more technical "error message" style message.
type commandError struct {
	msg   string
	human string
	wrap  error
}

func (e *commandError) Error() string {
	return e.msg
}

// SenderMessage shows the message that should be sent to the command sender
// to describe the error.
func (e *commandError) SenderMessage() string {
	return e.human
}

// Unwrap gives the error that the commandError wraps, if it wraps one.
func (e *commandError) Unwrap() error {
	return e.wrap
}

// Command returns a new command error that has both the message to show the
// sender and the technical description of the error.
func Command(human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("command rejected: %q", human)
	}
	return &commandError{
		msg:   technical,
		human: human,
	}
}

// Commandf returns a new command error that has a message to show to the
// sender and an automatically generated Error() description.
func Commandf(humanFormat string, a ...interface{}) error {
	return Command(fmt.Sprintf(humanFormat, a...), "")
}

// Wrap returns a new command error that has both the message to show the
// sender and the technical description of the error, and that wraps the given
// error. Wrapping one of ErrBadArgument, ErrPermission, or ErrLimit is how
// callers mark the kind of rejection.
func Wrap(e error, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("command rejected: %q", human)
		if e != nil {
			technical += ": " + e.Error()
		}
	}
	return &commandError{
		msg:   technical,
		human: human,
		wrap:  e,
	}
}

// Wrapf returns a new command error that wraps e and has a message to show to
// the sender built from the format and its arguments.
func Wrapf(e error, humanFormat string, a ...interface{}) error {
	return Wrap(e, fmt.Sprintf(humanFormat, a...), "")
}

// BadArgument returns a command error caused by ErrBadArgument.
func BadArgument(human string) error {
	return Wrap(ErrBadArgument, human, "")
}

// Permission returns a command error caused by ErrPermission.
func Permission(human string) error {
	return Wrap(ErrPermission, human, "")
}

// Limit returns a command error caused by ErrLimit.
func Limit(human string) error {
	return Wrap(ErrLimit, human, "")
}

// IsCommand returns whether err is or wraps a command error.
func IsCommand(err error) bool {
	var cmdErr *commandError
	return errors.As(err, &cmdErr)
}

// Message gets the message to display to the sender for the given error. If
// err is or wraps a command error, its sender message is returned. Otherwise,
// err.Error() is returned.
func Message(err error) string {
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		return cmdErr.SenderMessage()
	}
	return err.Error()
}
