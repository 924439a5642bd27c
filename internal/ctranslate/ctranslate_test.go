package ctranslate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zls/internal/ctranslate"
)

func TestTranslateCachesByHash(t *testing.T) {
	calls := 0
	raw := func(hash [16]byte, cfg ctranslate.Config, includeDirs []string, source string) ([]byte, bool, error) {
		calls++
		return []byte("pub const x = 1;\n"), false, nil
	}
	tr := ctranslate.NewTranslator(raw, 8)

	hash := [16]byte{1, 2, 3}
	r1, err := tr.Translate(hash, ctranslate.Config{}, nil, "#include <stdio.h>\n")
	require.NoError(t, err)
	require.NotNil(t, r1)
	assert.True(t, ctranslate.IsSynthetic(r1.URI))

	r2, err := tr.Translate(hash, ctranslate.Config{}, nil, "#include <stdio.h>\n")
	require.NoError(t, err)
	require.NotNil(t, r2)
	assert.Equal(t, r1.URI, r2.URI, "cache hit should reuse the same synthetic URI")
	assert.Equal(t, 1, calls, "second call with the same hash should not invoke the raw translator")

	content, ok := tr.Open(r1.URI)
	require.True(t, ok)
	assert.Equal(t, "pub const x = 1;\n", string(content))
}

func TestTranslateAbsentReturnsNil(t *testing.T) {
	raw := func(hash [16]byte, cfg ctranslate.Config, includeDirs []string, source string) ([]byte, bool, error) {
		return nil, true, nil
	}
	tr := ctranslate.NewTranslator(raw, 8)
	result, err := tr.Translate([16]byte{9}, ctranslate.Config{}, nil, "#pragma unsupported\n")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDupeIsIndependentCopy(t *testing.T) {
	r := &ctranslate.Result{URI: "zls-translate-c://abc"}
	d := r.Dupe()
	require.NotNil(t, d)
	assert.Equal(t, r.URI, d.URI)
	d.URI = "changed"
	assert.Equal(t, "zls-translate-c://abc", r.URI, "Dupe must not alias the original")
}
