package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"zls/internal/config"
	"zls/internal/ctranslate"
	"zls/internal/lspserver"
	"zls/internal/syntax"
)

// version is set via build-time ldflags (-X main.version=...).
var version = "(dev) v0.0.0"

var (
	configPath   string
	logfilePath  string
	cImportCache int
	verbosity    int
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zls",
		Short: "A language server for Zig build graphs",
		Long: `zls runs as an LSP server over stdio, maintaining an in-memory
document store keyed on build.zig package graphs rather than a single
project root.

Run with no subcommand to start the server. Use "zls graph" to inspect a
store's reference graph outside of an editor session.`,
		RunE: runServer,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "zls.json", "path to a JSON configuration overlay")
	cmd.PersistentFlags().StringVar(&logfilePath, "logfile", "", "path to a log file (stderr only if unset)")
	cmd.PersistentFlags().IntVar(&verbosity, "verbosity", 1, "commonlog verbosity level")
	cmd.PersistentFlags().IntVar(&cImportCache, "c-import-cache", 256, "number of translated C-imports to keep cached")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGraphCmd())

	return cmd
}

// setupLogging mirrors the teacher's main.go: commonlog feeds glsp's own
// diagnostics, while the stdlib logger is redirected to logfilePath when
// one is given (and discarded otherwise) so stdout stays clean for the
// LSP transport. logrus is not redirected here and keeps writing to its
// default output, stderr.
func setupLogging() (func(), error) {
	_ = godotenv.Load()

	if logfilePath == "" {
		log.SetOutput(io.Discard)
		commonlog.Configure(verbosity, nil)
		return func() {}, nil
	}

	f, err := os.OpenFile(logfilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("zls: opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Llongfile)
	commonlog.Configure(verbosity, &logfilePath)
	return func() { f.Close() }, nil
}

// buildCollaborators returns the parser/scope-analyzer pair the store
// needs as external collaborators. No Zig tree-sitter grammar ships in
// this module (out of scope, same as the store's own syntax package
// doc, whose NewIncrementalParser explicitly requires a real
// *sitter.Language from any caller that actually invokes Parse), so
// Parse here never touches tree-sitter at all: it returns an empty tree
// and every collector reports nothing found. The store still functions
// on that stand-in (manual text tracking, open/close/refresh all work)
// but gets no parse-derived completions or import graph until a caller
// with a real grammar supplies it via syntax.NewIncrementalParser.
func buildCollaborators() syntax.Collaborators {
	return syntax.Collaborators{
		Parse:           func([]byte) (syntax.Tree, error) { return emptyTree{}, nil },
		MakeScope:       func(syntax.Tree) (syntax.Scope, error) { return emptyScope{}, nil },
		CollectImports:  func(syntax.Tree) []string { return nil },
		CollectCImport:  func(syntax.Tree) []syntax.NodeIndex { return nil },
		ConvertCInclude: func(syntax.Tree, syntax.NodeIndex) (string, bool) { return "", false },
	}
}

// emptyTree is the degenerate syntax.Tree buildCollaborators uses in the
// absence of a real grammar.
type emptyTree struct{}

func (emptyTree) Close() {}

// emptyScope is the degenerate syntax.Scope buildCollaborators uses in
// the absence of a real grammar: no tags are ever known, so no
// completions are ever produced.
type emptyScope struct{}

func (emptyScope) Close()                                    {}
func (emptyScope) ErrorCompletions() []syntax.CompletionItem { return nil }
func (emptyScope) EnumCompletions() []syntax.CompletionItem  { return nil }

func loadStoreConfig() (config.Values, error) {
	return config.Load(configPath)
}

func newTranslator(cfg config.Values) *ctranslate.Translator {
	_ = cfg // ZigExePath is read per-call via ctranslate.Config at Translate time, not captured here.
	return ctranslate.NewTranslator(ctranslate.ShellTranslate, cImportCache)
}

func runServer(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	log.Println("starting zls")

	cfg, err := loadStoreConfig()
	if err != nil {
		return fmt.Errorf("zls: loading configuration: %w", err)
	}

	srv, err := lspserver.NewServer(buildCollaborators(), newTranslator(cfg))
	if err != nil {
		return fmt.Errorf("zls: creating server: %w", err)
	}

	return srv.RunStdio()
}
