package game

import (
	"errors"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/portfolio-field/internal/projects"
)

type dialogResult struct {
	path string
	list []projects.Project
	err  error
}

// openProjectsDialog asks for a projects JSON file. The native dialog blocks,
// so it runs off the game loop and the result is picked up by collectDialog.
func (g *Game) openProjectsDialog() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		filename, err := zenity.SelectFile(
			zenity.Title("Open Projects File"),
			zenity.FileFilters{{
				Name:     "Projects",
				Patterns: []string{"*.json"},
			}},
		)
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				err = nil
			}
			g.dialogs <- dialogResult{err: err}
			return
		}
		list, err := projects.Load(filename)
		g.dialogs <- dialogResult{path: filename, list: list, err: err}
	}()
}

func (g *Game) collectDialog() {
	select {
	case res := <-g.dialogs:
		g.dialogOpen = false
		if res.err != nil {
			g.lastErr = res.err
			g.logger.Warn("projects file not loaded", zap.Error(res.err))
			return
		}
		if res.path == "" {
			return
		}
		g.SetProjects(res.list, nil)
		g.showProjects = true
		g.lastErr = nil
		g.logger.Info("projects loaded", zap.String("path", res.path), zap.Int("count", len(res.list)))
	default:
	}
}
