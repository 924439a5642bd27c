package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"zls/internal/ctranslate"
	"zls/internal/depgraph"
	"zls/internal/devviz"
	"zls/internal/store"
)

type graphOptions struct {
	root   string
	format string
	watch  bool
	addr   string
}

// newGraphCmd builds the "zls graph" debug command: open every .zig file
// under a directory into a scratch store and render its reference graph.
// Grounded on LegacyCodeHQ-sanity's cmd/graph (format flag, DOT/JSON
// output) and cmd/watch (signal.NotifyContext blocking loop for --watch).
func newGraphCmd() *cobra.Command {
	opts := &graphOptions{format: "dot", addr: "127.0.0.1:4900"}

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Render the document store's reference graph for a directory of Zig sources",
		Long: `Open every .zig file under path into a scratch document store and
print its handle/build-file reference graph. Since no Zig grammar ships
in this module, no imports are discovered: the graph shows the opened
documents and, when a compiler path is configured, their build-file
associations; this command is a debugging aid, not a substitute for
running the server against a real client.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.root = "."
			if len(args) == 1 {
				opts.root = args[0]
			}
			return runGraph(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format (dot, json)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "serve a live-updating graph over websocket instead of printing once")
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "loopback address to serve --watch on")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions) error {
	root, err := filepath.Abs(opts.root)
	if err != nil {
		return fmt.Errorf("zls graph: resolving %q: %w", opts.root, err)
	}

	defaults, err := loadStoreConfig()
	if err != nil {
		return fmt.Errorf("zls graph: loading configuration: %w", err)
	}

	s := store.New(store.Config{
		ZigExePath:      defaults.ZigExePath,
		ZigLibPath:      defaults.ZigLibPath,
		BuildRunnerPath: defaults.BuildRunnerPath,
		GlobalCachePath: defaults.GlobalCachePath,
		BuiltinPath:     defaults.BuiltinPath,
	}, buildCollaborators(), ctranslate.NewTranslator(ctranslate.ShellTranslate, cImportCache))
	defer s.Deinit()

	if err := openTree(s, root); err != nil {
		return err
	}

	if opts.watch {
		return watchGraph(cmd, s, opts.addr)
	}

	return printGraph(cmd, s, opts.format)
}

// openTree opens every .zig file under root into s, so the resulting
// graph reflects a directory's full reference structure rather than one
// document's isolated view.
func openTree(s *store.Store, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".zig" {
			return nil
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("zls graph: reading %s: %w", path, err)
		}
		if _, err := s.Open("file://"+path, string(text)); err != nil {
			return fmt.Errorf("zls graph: opening %s: %w", path, err)
		}
		return nil
	})
}

func printGraph(cmd *cobra.Command, s *store.Store, format string) error {
	snap, err := depgraph.Build(s)
	if err != nil {
		return err
	}

	if cyclic, err := depgraph.HasUnexpectedCycle(snap); err == nil && cyclic {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: unexpected import cycle detected")
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := depgraph.JSON(snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "dot":
		fmt.Fprintln(cmd.OutOrStdout(), depgraph.DOT(snap))
	default:
		return fmt.Errorf("zls graph: unknown format %q (want dot or json)", format)
	}
	return nil
}

func watchGraph(cmd *cobra.Command, s *store.Store, addr string) error {
	hub := devviz.NewHub(s)
	url, err := hub.Serve(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving live graph at %s\n", url)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()
	return nil
}
