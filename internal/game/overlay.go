package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/portfolio-field/internal/config"
	"github.com/iburimskiy/portfolio-field/internal/projects"
	"github.com/iburimskiy/portfolio-field/internal/theme"
)

const (
	lineHeight    = 16
	charWidth     = 7 // basicfont.Face7x13
	panelWidth    = 420
	maxPanelLines = 24
)

var overlayFace = text.NewGoXFace(basicfont.Face7x13)

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, overlayFace, op)
}

func (g *Game) statusLine() string {
	s := g.clock.Stats()
	line := fmt.Sprintf("fps %.1f  p95 %s  particles %d  up %s  theme %s",
		s.FPS, s.P95.Round(100*time.Microsecond), g.field.Len(),
		formatDuration(time.Since(g.started)), g.theme)
	if g.paused {
		line += "  [paused]"
	}
	if g.lastErr != nil {
		line += " | Error: " + g.lastErr.Error()
	}
	return line
}

func (g *Game) drawStats(dst *ebiten.Image, palette theme.Palette) {
	drawText(dst, g.statusLine(), config.OverlayPadding, config.OverlayPadding, palette.Text)
}

// projectLines lays out the project panel as plain text rows.
func projectLines(list []projects.Project, loadErr error, width int) []string {
	if loadErr != nil {
		return []string{"Unable to load projects right now."}
	}
	if len(list) == 0 {
		return []string{"No projects yet. Press O to open a projects file."}
	}
	cols := width / charWidth
	var lines []string
	for _, p := range list {
		title := p.Name
		if tags := joinTags(p.Tags); tags != "" {
			title += " " + tags
		}
		lines = append(lines, truncate(title, cols))
		if p.Description != "" {
			lines = append(lines, "  "+truncate(p.Description, cols-2))
		}
		var links string
		if p.HasDemo() {
			links += "  demo: " + p.Demo
		}
		if p.HasSource() {
			links += "  code: " + p.Source
		}
		if links != "" {
			lines = append(lines, truncate(links, cols))
		}
		if len(lines) >= maxPanelLines {
			return append(lines[:maxPanelLines-1], "...")
		}
	}
	return lines
}

func (g *Game) drawProjects(dst *ebiten.Image, palette theme.Palette) {
	list, err := g.projectsSnapshot()
	lines := projectLines(list, err, panelWidth-2*config.OverlayPadding)

	x := float32(dst.Bounds().Dx() - panelWidth - config.OverlayPadding)
	y := float32(config.OverlayPadding * 3)
	h := float32(len(lines)*lineHeight + 2*config.OverlayPadding + lineHeight)
	vector.DrawFilledRect(dst, x, y, panelWidth, h, palette.Panel, false)
	vector.StrokeRect(dst, x, y, panelWidth, h, 1, g.field.Params().Accent, false)

	tx := int(x) + config.OverlayPadding
	ty := int(y) + config.OverlayPadding
	drawText(dst, "Projects", tx, ty, g.field.Params().Accent)
	for i, l := range lines {
		drawText(dst, l, tx, ty+(i+1)*lineHeight, palette.Text)
	}
}
