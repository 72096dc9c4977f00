package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/portfolio-field/internal/projects"
)

func TestFrameClockStats(t *testing.T) {
	c := newFrameClock(8)
	assert.Equal(t, frameStats{}, c.Stats())

	start := time.Unix(0, 0)
	for i := 0; i <= 10; i++ {
		c.Mark(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}

	samples := c.snapshot(100)
	require.Len(t, samples, 8, "ring keeps only the newest entries")
	s := c.Stats()
	assert.InDelta(t, 50.0, s.FPS, 1e-6)
	assert.Equal(t, 20*time.Millisecond, s.P95)
}

func TestFrameClockSnapshotOrder(t *testing.T) {
	c := newFrameClock(3)
	for _, d := range []float64{1, 2, 3, 4} {
		c.push(d)
	}
	assert.Equal(t, []float64{2, 3, 4}, c.snapshot(3))
	assert.Equal(t, []float64{3, 4}, c.snapshot(2))
}

func TestPointerInside(t *testing.T) {
	assert.True(t, pointerInside(0, 0, 100, 50, true))
	assert.True(t, pointerInside(99, 49, 100, 50, true))
	assert.False(t, pointerInside(100, 10, 100, 50, true))
	assert.False(t, pointerInside(-1, 10, 100, 50, true))
	assert.False(t, pointerInside(10, 10, 100, 50, false), "unfocused window clears the pointer")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "61:01", formatDuration(time.Hour+time.Minute+time.Second))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestProjectLines(t *testing.T) {
	lines := projectLines(nil, errors.New("boom"), 400)
	assert.Equal(t, []string{"Unable to load projects right now."}, lines)

	lines = projectLines(nil, nil, 400)
	assert.Len(t, lines, 1)

	list := []projects.Project{{
		Name:        "Field",
		Description: "Particles",
		Tags:        []string{"Go", "Ebitengine"},
		Source:      "https://example.com/field",
	}}
	lines = projectLines(list, nil, 400)
	require.Len(t, lines, 3)
	assert.Equal(t, "Field [Go, Ebitengine]", lines[0])
	assert.Equal(t, "  Particles", lines[1])
	assert.True(t, strings.Contains(lines[2], "code: https://example.com/field"))

	var many []projects.Project
	for i := 0; i < 40; i++ {
		many = append(many, projects.Project{Name: "p"})
	}
	assert.Len(t, projectLines(many, nil, 400), maxPanelLines)
}
