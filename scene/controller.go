// Package scene drives the single play scene: it builds the level, reacts to
// pickup and hazard contacts, and moves between loading, playing and game
// over.
package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/starfall/assets"
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"github.com/milk9111/starfall/ecs/entity"
	"github.com/milk9111/starfall/ecs/system"
	"github.com/milk9111/starfall/input"
	"github.com/milk9111/starfall/prefabs"
)

// Overlay is the dialogue shown on game over.
type Overlay interface {
	Show(onRestart func())
	Hide()
	Visible() bool
}

// Options sizes the playfield and the physics step.
type Options struct {
	Width      float64
	Height     float64
	GravityY   float64
	TPS        int
	Iterations int
	SceneFile  string
	// Seed fixes hazard and bounce randomness; 0 picks a random seed.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		GravityY:   300,
		TPS:        60,
		Iterations: 10,
		SceneFile:  "scene.yaml",
	}
}

// Controller owns the scene state. The zero value is not usable; use New.
type Controller struct {
	opts    Options
	spec    prefabs.SceneSpec
	catalog prefabs.Catalog
	hazards prefabs.HazardPolicy
	input   input.Source
	overlay Overlay
	logger  *log.Logger
	rng     *rand.Rand
	state   state
}

// New loads the scene layout, its prefabs and the hazard policy. Later builds
// reuse them, so edits on disk only apply to a new Controller. src and overlay
// may be nil.
func New(opts Options, src input.Source, overlay Overlay, logger *log.Logger) (*Controller, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("scene: invalid playfield %vx%v", opts.Width, opts.Height)
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.SceneFile == "" {
		opts.SceneFile = "scene.yaml"
	}

	spec, err := prefabs.LoadSceneSpec(opts.SceneFile)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	catalog, err := prefabs.LoadCatalog(spec.Prefabs.Names()...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	policy := prefabs.DefaultHazardPolicy()
	if spec.Hazards.Script != "" {
		policy, err = prefabs.LoadHazardPolicy(spec.Hazards.Script)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	if logger == nil {
		logger = log.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Controller{
		opts:    opts,
		spec:    spec,
		catalog: catalog,
		hazards: policy,
		input:   src,
		overlay: overlay,
		logger:  logger,
		rng:     rand.New(rand.NewPCG(seed, seed)),
		state:   loading{},
	}, nil
}

// Preload requests every manifest entry from loader.
func (c *Controller) Preload(loader assets.ResourceLoader) error {
	if loader == nil {
		return errors.New("scene: preload: nil loader")
	}
	m, err := assets.DefaultManifest()
	if err != nil {
		return fmt.Errorf("scene: preload: %w", err)
	}
	assets.Load(loader, m)
	return nil
}

// Create builds a fresh session and enters Playing.
func (c *Controller) Create() error {
	s, err := c.build()
	if err != nil {
		c.state = loading{}
		return err
	}
	c.state = playing{s}
	c.logger.Debug("scene created", "pickups", system.ActivePickups(s.world), "hazard_cap", c.hazards.MaxActive)
	return nil
}

// Restart rebuilds the scene from scratch and hides the overlay. If the
// rebuild fails the current state is kept, and a game over shows the overlay
// again.
func (c *Controller) Restart() error {
	s, err := c.build()
	if err != nil {
		if _, over := c.state.(gameOver); over {
			c.showOverlay()
		}
		return err
	}
	if c.overlay != nil {
		c.overlay.Hide()
	}
	c.state = playing{s}
	c.logger.Debug("scene restarted")
	return nil
}

func (c *Controller) showOverlay() {
	if c.overlay == nil {
		return
	}
	c.overlay.Show(func() {
		if err := c.Restart(); err != nil {
			c.logger.Error("restart", "err", err)
		}
	})
}

// Update advances one frame. Before Create it only logs a warning.
func (c *Controller) Update() {
	switch st := c.state.(type) {
	case playing:
		st.scheduler.Update(st.world)
	case gameOver:
		st.animation.Update(st.world)
	default:
		c.logger.Warn("scene update before create")
	}
}

func (c *Controller) State() State {
	return c.state.kind()
}

func (c *Controller) Score() int {
	if s := c.state.current(); s != nil {
		return s.score
	}
	return 0
}

// World returns the ECS world of the current session, or nil while loading.
func (c *Controller) World() *ecs.World {
	if s := c.state.current(); s != nil {
		return s.world
	}
	return nil
}

func (c *Controller) Player() (ecs.Entity, bool) {
	if s := c.state.current(); s != nil {
		return s.player, true
	}
	return 0, false
}

func (c *Controller) Physics() *system.PhysicsSystem {
	if s := c.state.current(); s != nil {
		return s.physics
	}
	return nil
}

func (c *Controller) ActivePickups() int {
	if w := c.World(); w != nil {
		return system.ActivePickups(w)
	}
	return 0
}

func (c *Controller) HazardCount() int {
	if w := c.World(); w != nil {
		return system.HazardCount(w)
	}
	return 0
}

// Events drains the gameplay events raised since the last call.
func (c *Controller) Events() []ecs.Event {
	if w := c.World(); w != nil {
		return w.Events().Drain()
	}
	return nil
}

func (c *Controller) build() (*session, error) {
	w := ecs.NewWorld()
	ps := system.NewPhysicsSystem(c.opts.GravityY, c.opts.TPS, c.opts.Iterations)

	cached := entity.FromCatalog(c.catalog)

	if _, err := entity.LoadLevelToWorld(w, c.spec, c.opts.Width, c.opts.Height, cached); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	player, err := entity.NewPlayerAt(w, c.spec.Prefabs.Player, c.spec.Player.X, c.spec.Player.Y, cached)
	if err != nil {
		return nil, fmt.Errorf("scene: player: %w", err)
	}

	p := c.spec.Pickups
	for i := 0; i < p.Count; i++ {
		e, err := entity.NewPickupAt(w, c.spec.Prefabs.Pickup, p.StartX+float64(i)*p.StepX, p.Y, cached)
		if err != nil {
			return nil, fmt.Errorf("scene: pickup %d: %w", i, err)
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			body.Elasticity = p.BounceMin + c.rng.Float64()*(p.BounceMax-p.BounceMin)
		}
	}

	label := c.spec.ScoreLabel
	if _, err := entity.NewScoreLabel(w, c.spec.Prefabs.ScoreLabel, label.X, label.Y, fmt.Sprintf(label.Format, 0), cached); err != nil {
		return nil, fmt.Errorf("scene: score label: %w", err)
	}

	s := &session{
		world:     w,
		physics:   ps,
		player:    player,
		animation: system.NewAnimationSystem(c.opts.TPS),
	}
	s.scheduler = ecs.NewScheduler(
		system.NewPlayerControllerSystem(c.input, ps),
		ps,
		s.animation,
	)

	ps.Collider(component.GroupPlayer, component.GroupPlatform, nil)
	ps.Collider(component.GroupPickup, component.GroupPlatform, nil)
	ps.Collider(component.GroupHazard, component.GroupPlatform, nil)
	ps.Overlap(component.GroupPlayer, component.GroupPickup, func(a, b ecs.Entity) { c.collect(s, a, b) })
	ps.Collider(component.GroupPlayer, component.GroupHazard, func(a, b ecs.Entity) { c.hit(s, a, b) })
	ps.Ignore(component.GroupPickup, component.GroupPickup)
	ps.Ignore(component.GroupPickup, component.GroupHazard)
	ps.Ignore(component.GroupHazard, component.GroupHazard)
	ps.Sync(w)

	return s, nil
}
