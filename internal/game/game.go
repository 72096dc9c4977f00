// Package game hosts the particle field in a desktop window.
package game

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/portfolio-field/internal/config"
	"github.com/iburimskiy/portfolio-field/internal/field"
	"github.com/iburimskiy/portfolio-field/internal/projects"
	"github.com/iburimskiy/portfolio-field/internal/theme"
)

type Options struct {
	Config     *config.Config
	Field      *field.Field
	Theme      theme.Theme
	ThemeStore *theme.Store
	Projects   []projects.Project
	// ProjectsErr is shown instead of the list when loading failed.
	ProjectsErr error
	Logger      *zap.Logger
}

type Game struct {
	cfg    *config.Config
	field  *field.Field
	store  *theme.Store
	logger *zap.Logger

	// viewport
	layoutW, layoutH int
	layer            *ebiten.Image

	// input edge detection
	prevKey map[ebiten.Key]bool

	// overlays
	theme        theme.Theme
	showProjects bool
	showStats    bool
	clock        *frameClock
	started      time.Time

	projMu      sync.Mutex
	projectList []projects.Project
	projectsErr error
	dialogs     chan dialogResult
	dialogOpen  bool

	// state
	paused  bool
	stopped atomic.Bool
	lastErr error
}

func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	f := opts.Field
	if f == nil {
		f = field.New(cfg.FieldParams(), nil)
	}
	return &Game{
		cfg:         cfg,
		field:       f,
		store:       opts.ThemeStore,
		logger:      logger,
		prevKey:     map[ebiten.Key]bool{},
		theme:       opts.Theme,
		showStats:   cfg.Window.ShowStats,
		clock:       newFrameClock(config.FrameRingSize),
		started:     time.Now(),
		projectList: opts.Projects,
		projectsErr: opts.ProjectsErr,
		dialogs:     make(chan dialogResult, 1),
	}
}

// Stop ends the animation: the next Update returns ebiten.Termination.
func (g *Game) Stop() { g.stopped.Store(true) }

func (g *Game) Stopped() bool { return g.stopped.Load() }

// SetProjects replaces the project overlay. Safe to call from any goroutine.
func (g *Game) SetProjects(list []projects.Project, err error) {
	g.projMu.Lock()
	defer g.projMu.Unlock()
	if err != nil {
		g.projectsErr = err
		return
	}
	g.projectList = list
	g.projectsErr = nil
}

func (g *Game) projectsSnapshot() ([]projects.Project, error) {
	g.projMu.Lock()
	defer g.projMu.Unlock()
	return g.projectList, g.projectsErr
}

func (g *Game) Update() error {
	if g.stopped.Load() {
		return ebiten.Termination
	}
	g.clock.Mark(time.Now())

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.Stop()
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyT) {
		g.toggleTheme()
	}
	if justPressed(ebiten.KeyP) {
		g.showProjects = !g.showProjects
	}
	if justPressed(ebiten.KeyF) {
		g.showStats = !g.showStats
	}
	if justPressed(ebiten.KeyO) {
		g.openProjectsDialog()
	}
	g.collectDialog()

	// Any change of the window size regenerates the field.
	if w, h := g.field.Size(); w != g.layoutW || h != g.layoutH {
		g.field.Resize(g.layoutW, g.layoutH)
		g.logger.Debug("viewport resized",
			zap.Int("width", g.layoutW),
			zap.Int("height", g.layoutH),
			zap.Int("particles", g.field.Len()))
	}

	mouseX, mouseY := ebiten.CursorPosition()
	if pointerInside(mouseX, mouseY, g.layoutW, g.layoutH, ebiten.IsFocused()) {
		g.field.SetPointer(float64(mouseX), float64(mouseY))
	} else {
		g.field.ClearPointer()
	}

	if !g.paused {
		g.field.Tick()
	}
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	palette := g.theme.Palette()
	dst.Fill(palette.Background)

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if g.layer == nil || g.layer.Bounds().Dx() != w || g.layer.Bounds().Dy() != h {
		if g.layer != nil {
			g.layer.Deallocate()
		}
		g.layer = ebiten.NewImage(w, h)
	}
	g.field.Render(screen{img: g.layer})
	dst.DrawImage(g.layer, nil)

	if g.showProjects {
		g.drawProjects(dst, palette)
	}
	if g.showStats {
		g.drawStats(dst, palette)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layoutW = max(outsideWidth, 1)
	g.layoutH = max(outsideHeight, 1)
	return g.layoutW, g.layoutH
}

func (g *Game) toggleTheme() {
	g.theme = g.theme.Toggle()
	if g.store == nil {
		return
	}
	if err := g.store.Save(g.theme); err != nil {
		g.lastErr = err
		g.logger.Warn("theme not saved", zap.Error(err))
	}
}

// Run opens the window and blocks until the game stops. A host without a
// display fails here once instead of inside the frame loop.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	if g.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	g.logger.Info("window closed", zap.Duration("uptime", time.Since(g.started)))
	return nil
}
