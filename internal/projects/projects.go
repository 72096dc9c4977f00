// Package projects loads the portfolio's project list from a static JSON file.
package projects

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Project is one card of the projects section.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Demo        string   `json:"demo,omitempty"`
	Source      string   `json:"source,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// HasDemo reports whether a live demo link should be shown.
func (p Project) HasDemo() bool { return strings.TrimSpace(p.Demo) != "" }

func (p Project) HasSource() bool { return strings.TrimSpace(p.Source) != "" }

// Load reads and validates the project list at path.
func Load(path string) ([]Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Parse decodes a JSON array of projects.
func Parse(r io.Reader) ([]Project, error) {
	var list []Project
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	for i := range list {
		p := &list[i]
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("project %d: missing name", i)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return list, nil
}
