package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zls/internal/ctranslate"
	"zls/internal/depgraph"
	"zls/internal/store"
)

func TestOpenTreeOpensEveryZigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.zig"), []byte("const x = 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.zig"), []byte("const y = 2;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("not zig"), 0o644))

	s := store.New(store.Config{}, buildCollaborators(), ctranslate.NewTranslator(ctranslate.ShellTranslate, 16))
	defer s.Deinit()

	require.NoError(t, openTree(s, dir))

	snap, err := depgraph.Build(s)
	require.NoError(t, err)
	assert.Len(t, snap.Vertices, 2)
}
