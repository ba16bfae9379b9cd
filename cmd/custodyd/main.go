package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// commands is a register of all available commands. The name is matched
// with the first argument given to the program.
//
// A command function takes input and output streams and the command line
// arguments without the program and the command name. It parses the
// arguments itself.
//
// Every command that changes the state opens the store, runs a single
// vault operation and commits a new version only if that operation
// succeeded. A pipeline of commands builds a whole distribution:
//
//   $ custodyd init --genesis genesis.json
//   $ custodyd approve --key alice.key --amount 100
//   $ custodyd deposit --key alice.key --amount 100
//   $ custodyd start --key brand.key
//   $ custodyd claim --key alice.key
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"approve": cmdApprove,
	"audit":   cmdAudit,
	"claim":   cmdClaim,
	"deposit": cmdDeposit,
	"init":    cmdInit,
	"keyaddr": cmdKeyaddr,
	"keygen":  cmdKeygen,
	"query":   cmdQuery,
	"start":   cmdStart,
	"version": cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s manages a deposit and claim custody vault.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> --help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		code, log := errors.Info(err, os.Getenv("CUSTODY_DEBUG") != "")
		fmt.Fprintf(os.Stderr, "error %d: %s\n", code, log)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, custody.Version())
	return err
}
