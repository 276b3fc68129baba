package wiring_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loru/internal/app"
	_ "go.trai.ch/loru/internal/wiring"
)

// TestGraph_ResolvesComponents builds the full node graph the binary uses.
// graft.AssertDepsValid cannot check this graph: it infers dependency IDs from the
// package of the requested type, and every port lives in the shared ports package.
func TestGraph_ResolvesComponents(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("LORU_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	graft.DefaultCache().Clear()
	t.Cleanup(graft.DefaultCache().Clear)

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)

	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
	require.NotNil(t, components.Shutdown)
	assert.NoError(t, components.Shutdown(context.Background()))
}
