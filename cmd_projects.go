package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/portfolio-field/internal/projects"
)

var projectsFile string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the portfolio projects",
	RunE:  runProjects,
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsFile, "file", "f", "", "projects JSON (default from config)")
}

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b00")).Bold(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98"))
	linkStyle   = lipgloss.NewStyle().Underline(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff6b00")).
			Padding(0, 1).
			Width(72)
)

func runProjects(cmd *cobra.Command, args []string) error {
	path := projectsFile
	if path == "" {
		path = cfg.Projects.Path
	}
	list, err := projects.Load(path)
	if err != nil {
		return err
	}
	renderProjects(cmd.OutOrStdout(), list)
	return nil
}

func renderProjects(w io.Writer, list []projects.Project) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}
	for _, p := range list {
		var b strings.Builder
		b.WriteString(accentStyle.Render(p.Name))
		if len(p.Tags) > 0 {
			b.WriteString("  " + tagStyle.Render(strings.Join(p.Tags, " · ")))
		}
		if p.Description != "" {
			b.WriteString("\n" + p.Description)
		}
		if p.HasDemo() {
			b.WriteString("\nLive Demo: " + linkStyle.Render(p.Demo))
		}
		if p.HasSource() {
			b.WriteString("\nGit: " + linkStyle.Render(p.Source))
		}
		fmt.Fprintln(w, cardStyle.Render(b.String()))
	}
}
