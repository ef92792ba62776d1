// Command formkit is the CLI entry point for the form schema toolkit.
package main

import "github.com/goliatone/go-formkit/internal/cli"

func main() {
	cli.Execute()
}
