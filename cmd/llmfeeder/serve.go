package main

import (
	"fmt"

	"github.com/fwojciec/llmfeeder"
)

// Run executes the serve command. Stdout carries the native messaging
// stream, so diagnostics only ever go to stderr.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := deps.Host.Serve(deps.Ctx, deps.Stdin, deps.Stdout); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}
	return nil
}
