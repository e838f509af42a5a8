package sopclient_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestPrefs_DefaultsAndPersistence(t *testing.T) {
	dir := t.TempDir()

	p, err := sopclient.NewPrefs(dir)
	require.NoError(t, err)
	assert.Equal(t, sopclient.ThemeLight, p.Theme())
	assert.False(t, p.SidebarCollapsed())

	require.NoError(t, p.SetTheme(sopclient.ThemeDark))
	require.NoError(t, p.SetSidebarCollapsed(true))

	// a fresh store over the same dir rehydrates
	p2, err := sopclient.NewPrefs(dir)
	require.NoError(t, err)
	assert.Equal(t, sopclient.ThemeDark, p2.Theme())
	assert.True(t, p2.SidebarCollapsed())
}

func TestPrefs_UnknownThemeNormalizesToLight(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genxsop-ui.json"),
		[]byte(`{"theme":"solarized","sidebar_collapsed":true}`), 0o600))

	p, err := sopclient.NewPrefs(dir)
	require.NoError(t, err)
	assert.Equal(t, sopclient.ThemeLight, p.Theme())
	assert.True(t, p.SidebarCollapsed())
}

func TestPrefs_CorruptFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genxsop-ui.json"), []byte("{oops"), 0o600))

	p, err := sopclient.NewPrefs(dir)
	require.NoError(t, err)
	assert.Equal(t, sopclient.ThemeLight, p.Theme())
	assert.False(t, p.SidebarCollapsed())
}
