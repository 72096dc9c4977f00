// Package theme keeps the light/dark flag of the page and persists it
// between runs.
package theme

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Palette is what the host paints around the particle field. The field keeps
// its own accent in both themes. Colours are alpha-premultiplied.
type Palette struct {
	Background color.RGBA
	Text       color.RGBA
	Panel      color.RGBA
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) Palette() Palette {
	if t == Dark {
		return Palette{
			Background: color.RGBA{R: 0x0d, G: 0x0d, B: 0x12, A: 0xff},
			Text:       color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
			Panel:      color.RGBA{R: 0x14, G: 0x19, B: 0x23, A: 0xc8},
		}
	}
	return Palette{
		Background: color.RGBA{R: 0xf5, G: 0xf5, B: 0xf7, A: 0xff},
		Text:       color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff},
		Panel:      color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xd0},
	}
}

// Parse maps a stored value to a theme. Only an explicit "dark" is dark.
func Parse(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

type state struct {
	Theme string `yaml:"theme"`
}

// Store persists the theme flag in a small YAML file.
type Store struct {
	path string
}

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "state.yaml")}
}

func (s *Store) Path() string { return s.path }

// Load returns the saved theme, or Light when nothing was saved yet.
func (s *Store) Load() (Theme, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Light, nil
		}
		return Light, fmt.Errorf("read theme state: %w", err)
	}
	var st state
	if err := yaml.Unmarshal(data, &st); err != nil {
		return Light, fmt.Errorf("parse theme state: %w", err)
	}
	return Parse(st.Theme), nil
}

func (s *Store) Save(t Theme) error {
	data, err := yaml.Marshal(state{Theme: string(t)})
	if err != nil {
		return fmt.Errorf("marshal theme state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write theme state: %w", err)
	}
	return nil
}
