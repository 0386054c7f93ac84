package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/marquee/internal/marquee"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MARQUEE_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "left", cfg.Marquee.Direction)
	require.Equal(t, 120.0, cfg.Marquee.AnimationDuration)
	require.Equal(t, 500, cfg.Marquee.TransitionDuration)
	require.Equal(t, "h1", cfg.Marquee.TextElementType)
	require.True(t, cfg.Marquee.PauseOnHover)
	require.Equal(t, "mixed", cfg.Demo.Dataset)
	require.Equal(t, filepath.Join(home, ".local", "share", "marquee", "marquee.db"), cfg.Database.Path)
	require.Empty(t, cfg.Log.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "marquee.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[marquee]
direction = "up"
animation_duration = 60
animation_delay = 1.5
transition_duration = 250
pause_on_click = true
text_element_type = "h3"

[demo]
dataset = "text"
`), 0o600))
	t.Setenv("MARQUEE_CONFIG", path)
	t.Setenv("MARQUEE_MARQUEE_GAP", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "up", cfg.Marquee.Direction)
	require.Equal(t, 4, cfg.Marquee.Gap)
	require.Equal(t, "text", cfg.Demo.Dataset)

	opts := cfg.Marquee.Options()
	require.Equal(t, marquee.Up, opts.Direction)
	require.Equal(t, 60.0, opts.AnimationDuration)
	require.Equal(t, 1500*time.Millisecond, opts.AnimationDelay)
	require.Equal(t, 250*time.Millisecond, opts.TransitionDuration)
	require.True(t, opts.PauseOnClick)
	require.Equal(t, "h3", opts.TextElementType)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]struct {
		body string
		want error
	}{
		"direction": {"[marquee]\ndirection = \"sideways\"\n", ErrInvalidDirection},
		"element":   {"[marquee]\ntext_element_type = \"h7\"\n", ErrInvalidTextElement},
		"dataset":   {"[demo]\ndataset = \"videos\"\n", ErrInvalidDataset},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o600))
			t.Setenv("MARQUEE_CONFIG", path)

			_, err := Load()
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadReportsMalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[marquee\n"), 0o600))
	t.Setenv("MARQUEE_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("MARQUEE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Marquee.Direction = "down"
	cfg.Marquee.PauseOnClick = true
	cfg.Demo.Dataset = "images"
	require.NoError(t, Save(cfg))
	require.Equal(t, path, Path())

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "down", got.Marquee.Direction)
	require.True(t, got.Marquee.PauseOnClick)
	require.Equal(t, "images", got.Demo.Dataset)
	require.Equal(t, cfg.Database.Path, got.Database.Path)
}
