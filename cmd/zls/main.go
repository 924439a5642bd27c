// Command zls is the process entrypoint: a cobra command tree with the
// LSP server itself as the root command's default action, plus
// "version" and "graph" subcommands for debugging a store outside of an
// editor session.
//
// Grounded on the teacher's main.go for the logging-setup-then-RunStdio
// shape (commonlog.Configure, then server.RunStdio), upgraded to cobra
// subcommands per LegacyCodeHQ-sanity's cmd/root.go + cmd/graph.go.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
