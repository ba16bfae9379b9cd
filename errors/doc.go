/*
Package errors provides the error kinds used across the custody module.

Every error returned by a component wraps one root error declared with
Register. Callers test the kind with Is:

	if vault.ErrAlreadyClaimed.Is(err) {
		...
	}

Root errors shared by all packages live here. x/vault, x/cash and x/sigs
register their own, each in a separate code range.

Wrap attaches a stack trace the first time an error is wrapped. Formatting
an error shows it:

	%s   the message only
	%v   the message and the [file:line] where the error was created
	%+v  the message and the full stack trace

Info converts an error into a code and a message safe to show outside of
the process.
*/
package errors
