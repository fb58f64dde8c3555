// Package cmd adapts plain option-struct functions into mitchellh/cli
// commands, with go-flags doing the option parsing.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/cli"
	"golang.org/x/sys/unix"
)

type command[O any] struct {
	name, syn string
	f         func(context.Context, O) error

	opts   O
	parser *flags.Parser
}

// New wraps f as a CLI command. O must be a struct; its go-flags tags define
// the command's options and positional arguments.
func New[O any](name, syn string, f func(context.Context, O) error) cli.CommandFactory {
	return func() (cli.Command, error) {
		c := &command[O]{
			name: name,
			syn:  syn,
			f:    f,
		}

		parser := flags.NewNamedParser(name, flags.Default)
		parser.ShortDescription = syn
		parser.LongDescription = syn

		_, err := parser.AddGroup("Application Options", "", &c.opts)
		if err != nil {
			return nil, err
		}

		c.parser = parser

		return c, nil
	}
}

func (c *command[O]) Help() string {
	var buf bytes.Buffer
	c.parser.WriteHelp(&buf)
	return buf.String()
}

func (c *command[O]) Synopsis() string {
	return c.syn
}

func (c *command[O]) Run(args []string) int {
	_, err := c.parser.ParseArgs(args)
	if err != nil {
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelOnSignal(cancel, os.Interrupt, unix.SIGQUIT, unix.SIGTERM)

	err = c.f(ctx, c.opts)
	if err != nil {
		fmt.Printf("! Error: %+v\n", err)
		return 1
	}

	return 0
}

func cancelOnSignal(cancel func(), signals ...os.Signal) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, signals...)

	go func() {
		for range c {
			cancel()
		}
	}()
}
