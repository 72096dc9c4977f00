package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/portfolio-field/internal/field"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Field, cfg.Field)
	assert.Equal(t, field.DefaultParams(), cfg.FieldParams())
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
field:
  density_divisor: 10000
  link_distance: 90
  accent: "#00ff00"
stream:
  fps: 30
contact:
  service_id: svc_file
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.FieldParams()
	assert.Equal(t, 10000.0, p.DensityDivisor)
	assert.Equal(t, 90.0, p.LinkDistance)
	assert.Equal(t, 120.0, p.RepulsionRadius, "unset keys keep defaults")
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, p.Accent)
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
	assert.Equal(t, "svc_file", cfg.Contact.ServiceID)
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("EMAILJS_SERVICE_ID", "svc_env")
	t.Setenv("EMAILJS_PUBLIC_KEY", "pk_env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "svc_env", cfg.Contact.ServiceID)
	assert.Equal(t, "pk_env", cfg.Contact.PublicKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"divisor":  func(c *Config) { c.Field.DensityDivisor = 0 },
		"radius":   func(c *Config) { c.Field.RepulsionRadius = -1 },
		"link":     func(c *Config) { c.Field.LinkDistance = 0 },
		"accent":   func(c *Config) { c.Field.Accent = "orange" },
		"window":   func(c *Config) { c.Window.Width = 0 },
		"fps":      func(c *Config) { c.Stream.FPS = 0 },
		"timeout":  func(c *Config) { c.Contact.Timeout = "soon" },
		"negative": func(c *Config) { c.Field.DensitySpan = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field: [oops"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Window.ShowStats = true
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, got.Window.ShowStats)
}

func TestParseColorFallback(t *testing.T) {
	fb := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	assert.Equal(t, fb, ParseColor("not-a-colour", fb))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x6b, A: 0xff}, ParseColor("#ff6b00", fb))
}
