package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string, done bool) error
	Delete(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context) error
	Passwd(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, add, show <id>, done <id>, undo <id>, delete <id>, profile, rename, passwd, logout, exit"
)

// runREPL reads commands from in until EOF or exit. Handler errors are
// reported to out and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "todo%s> ", statusFn())
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "add":
			cmdErr = a.Add(ctx)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "done":
			cmdErr = a.Done(ctx, args, true)
		case "undo":
			cmdErr = a.Done(ctx, args, false)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "rename":
			cmdErr = a.Rename(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
		if cmdErr != nil {
			fmt.Fprintln(out, describeError(cmdErr))
		}
	}
}
