package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/starfall/config"
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/render"
	"github.com/milk9111/starfall/ecs/system"
	"github.com/milk9111/starfall/input"
	"github.com/milk9111/starfall/prefabs"
	"github.com/milk9111/starfall/scene"
	"github.com/milk9111/starfall/ui"
)

type GameOptions struct {
	Config config.Config
	Logger *log.Logger
	Seed   uint64
	Watch  bool
	Debug  bool
}

type Game struct {
	cfg    config.Config
	logger *log.Logger
	debug  bool
	seed   uint64

	input        *input.Adapter
	touch        *input.TouchControls
	disposeTouch func()

	scene    *scene.Controller
	textures *render.Registry
	renderer *system.RenderSystem
	overlay  *ui.GameOverOverlay
	watcher  *prefabs.Watcher
}

func NewGame(opts GameOptions) (*Game, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var keyboard input.Keyboard
	if cfg.Input.Keyboard {
		keyboard = input.EbitenKeyboard{}
	}
	g := &Game{
		cfg:      cfg,
		logger:   logger,
		debug:    opts.Debug,
		seed:     opts.Seed,
		input:    input.NewAdapter(keyboard, nil),
		textures: render.NewRegistry(),
		overlay:  ui.NewGameOverOverlay(cfg.Window.Width, cfg.Window.Height),
	}

	if cfg.Input.Touch {
		g.touch = input.NewTouchControls(float64(cfg.Window.Width), float64(cfg.Window.Height))
		g.disposeTouch = g.touch.BindIntent(g.input.Touch())
	}

	renderer, err := system.NewRenderSystem(g.textures)
	if err != nil {
		return nil, err
	}
	g.renderer = renderer

	if err := g.loadScene(); err != nil {
		return nil, err
	}
	if err := g.scene.Preload(g.textures); err != nil {
		return nil, err
	}
	if err := g.textures.Err(); err != nil {
		return nil, fmt.Errorf("game: load textures: %w", err)
	}
	if err := g.scene.Create(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(watchDirs()...)
		if err != nil {
			return nil, fmt.Errorf("game: watch prefabs: %w", err)
		}
		g.watcher = w
		logger.Info("watching prefabs for changes")
	}

	return g, nil
}

func watchDirs() []string {
	var dirs []string
	for _, dir := range []string{"prefabs", "prefabs/scripts"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (g *Game) loadScene() error {
	opts := scene.DefaultOptions()
	opts.Width = float64(g.cfg.Window.Width)
	opts.Height = float64(g.cfg.Window.Height)
	opts.GravityY = g.cfg.Physics.GravityY
	opts.TPS = g.cfg.Physics.TPS
	opts.Iterations = g.cfg.Physics.Iterations
	opts.Seed = g.seed

	sc, err := scene.New(opts, g.input, g.overlay, g.logger)
	if err != nil {
		return err
	}
	g.scene = sc
	return nil
}

// reload swaps in a scene built from the prefabs currently on disk. A broken
// edit keeps the running scene.
func (g *Game) reload(changed []string) {
	g.logger.Info("prefabs changed, rebuilding scene", "files", changed)
	prev := g.scene
	if err := g.loadScene(); err != nil {
		g.logger.Error("reload scene", "err", err)
		g.scene = prev
		return
	}
	g.overlay.Hide()
	if err := g.scene.Create(); err != nil {
		g.logger.Error("create scene", "err", err)
		g.scene = prev
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			g.logger.Warn("prefab watcher", "err", err)
		}
	default:
	}
	if changed := g.watcher.Drain(); len(changed) > 0 {
		g.reload(changed)
	}
}

func (g *Game) logEvents() {
	for _, evt := range g.scene.Events() {
		switch evt.Type {
		case ecs.EventGameOver:
			g.logger.Info("game over", "score", evt.Value)
		case ecs.EventHazardSpawned:
			g.logger.Debug("hazard spawned", "hazards", evt.Value)
		case ecs.EventPickupsRespawned:
			g.logger.Debug("pickups respawned", "count", evt.Value)
		default:
			g.logger.Debug("event", "type", evt.Type, "entity", evt.Entity)
		}
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if g.touch != nil {
		g.touch.Update(input.EbitenPointers())
	}

	if g.scene.State() == scene.StateGameOver && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.overlay.Restart()
	}

	g.scene.Update()
	g.overlay.Update()
	g.logEvents()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.scene.World(), screen)

	if g.touch != nil {
		ui.DrawTouchControls(screen, g.touch)
	}
	g.overlay.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f  score: %d  hazards: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.scene.Score(), g.scene.HazardCount()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.disposeTouch != nil {
		g.disposeTouch()
		g.disposeTouch = nil
	}
	if g.watcher != nil {
		err := g.watcher.Close()
		g.watcher = nil
		return err
	}
	return nil
}
