package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlayNonEmptyPrefersOverride(t *testing.T) {
	dst := "default"

	overlayNonEmpty(&dst, "")
	assert.Equal(t, "default", dst)

	overlayNonEmpty(&dst, "override")
	assert.Equal(t, "override", dst)
}
