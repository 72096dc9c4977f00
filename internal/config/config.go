package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/portfolio-field/internal/field"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Portfolio Field - Space: pause, T: theme, P: projects, O: open, F: stats, Esc/Q: quit"

	TPS            = 60
	FrameRingSize  = 240
	OverlayPadding = 12

	DefaultProjectsPath = "assets/data/projects.json"
	DefaultEmailJSURL   = "https://api.emailjs.com"
	DefaultStreamAddr   = "127.0.0.1:8080"
	AppName             = "portfolio-field"
)

// Config holds every tunable of the application.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Field    FieldConfig    `yaml:"field"`
	Projects ProjectsConfig `yaml:"projects"`
	Contact  ContactConfig  `yaml:"contact"`
	Stream   StreamConfig   `yaml:"stream"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	Resizable bool `yaml:"resizable"`
	ShowStats bool `yaml:"show_stats"`
}

// FieldConfig mirrors field.Params with YAML-friendly types.
type FieldConfig struct {
	DensityDivisor  float64 `yaml:"density_divisor"`
	RepulsionRadius float64 `yaml:"repulsion_radius"`
	LinkDistance    float64 `yaml:"link_distance"`
	LineWidth       float64 `yaml:"line_width"`
	MaxSize         float64 `yaml:"max_size"`
	VelocityMin     float64 `yaml:"velocity_min"`
	VelocitySpan    float64 `yaml:"velocity_span"`
	DensityMin      float64 `yaml:"density_min"`
	DensitySpan     float64 `yaml:"density_span"`
	Accent          string  `yaml:"accent"`
}

type ProjectsConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type ContactConfig struct {
	BaseURL           string `yaml:"base_url"`
	ServiceID         string `yaml:"service_id"`
	TemplateOwner     string `yaml:"template_owner"`
	TemplateAutoReply string `yaml:"template_autoreply"`
	PublicKey         string `yaml:"public_key"`
	PrivateKey        string `yaml:"private_key"`
	Timeout           string `yaml:"timeout"`
}

type StreamConfig struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	p := field.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Resizable: true,
		},
		Field: FieldConfig{
			DensityDivisor:  p.DensityDivisor,
			RepulsionRadius: p.RepulsionRadius,
			LinkDistance:    p.LinkDistance,
			LineWidth:       p.LineWidth,
			MaxSize:         p.MaxSize,
			VelocityMin:     p.VelocityMin,
			VelocitySpan:    p.VelocitySpan,
			DensityMin:      p.DensityMin,
			DensitySpan:     p.DensitySpan,
			Accent:          "#ff6b00",
		},
		Projects: ProjectsConfig{
			Path:  DefaultProjectsPath,
			Watch: true,
		},
		Contact: ContactConfig{
			BaseURL: DefaultEmailJSURL,
			Timeout: "15s",
		},
		Stream: StreamConfig{
			Addr: DefaultStreamAddr,
			FPS:  TPS,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML config from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"EMAILJS_SERVICE_ID", &c.Contact.ServiceID},
		{"EMAILJS_TEMPLATE_OWNER", &c.Contact.TemplateOwner},
		{"EMAILJS_TEMPLATE_AUTOREPLY", &c.Contact.TemplateAutoReply},
		{"EMAILJS_PUBLIC_KEY", &c.Contact.PublicKey},
		{"EMAILJS_PRIVATE_KEY", &c.Contact.PrivateKey},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks the values the simulation cannot run without.
func (c *Config) Validate() error {
	f := c.Field
	if f.DensityDivisor <= 0 {
		return fmt.Errorf("field.density_divisor must be positive, got %v", f.DensityDivisor)
	}
	if f.RepulsionRadius <= 0 {
		return fmt.Errorf("field.repulsion_radius must be positive, got %v", f.RepulsionRadius)
	}
	if f.LinkDistance <= 0 {
		return fmt.Errorf("field.link_distance must be positive, got %v", f.LinkDistance)
	}
	if f.MaxSize < 0 || f.VelocitySpan < 0 || f.DensitySpan < 0 {
		return fmt.Errorf("field ranges must not be negative")
	}
	if _, err := colorful.Hex(f.Accent); err != nil {
		return fmt.Errorf("field.accent %q: %w", f.Accent, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Stream.FPS <= 0 {
		return fmt.Errorf("stream.fps must be positive, got %d", c.Stream.FPS)
	}
	if _, err := time.ParseDuration(c.Contact.Timeout); err != nil {
		return fmt.Errorf("contact.timeout %q: %w", c.Contact.Timeout, err)
	}
	return nil
}

// FieldParams converts the field section for the simulation.
func (c *Config) FieldParams() field.Params {
	f := c.Field
	return field.Params{
		DensityDivisor:  f.DensityDivisor,
		RepulsionRadius: f.RepulsionRadius,
		LinkDistance:    f.LinkDistance,
		LineWidth:       f.LineWidth,
		MaxSize:         f.MaxSize,
		VelocityMin:     f.VelocityMin,
		VelocitySpan:    f.VelocitySpan,
		DensityMin:      f.DensityMin,
		DensitySpan:     f.DensitySpan,
		Accent:          ParseColor(f.Accent, field.DefaultParams().Accent),
	}
}

// ContactTimeout returns the HTTP timeout for the email API.
func (c *Config) ContactTimeout() time.Duration {
	d, err := time.ParseDuration(c.Contact.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// FrameInterval is the headless frame period for the stream server.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Stream.FPS)
}

// ParseColor parses a hex colour like "#ff6b00", returning fallback when the
// value is not valid.
func ParseColor(hex string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// StateDir is where per-user state such as the theme flag lives.
func StateDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}
