package scene

import (
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/system"
)

type State int

const (
	StateLoading State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// session is everything that only exists once the scene has been created.
type session struct {
	world     *ecs.World
	physics   *system.PhysicsSystem
	scheduler *ecs.Scheduler
	animation *system.AnimationSystem
	player    ecs.Entity
	score     int
}

// state is one of loading, playing or gameOver. Only the latter two carry a
// session.
type state interface {
	kind() State
	current() *session
}

type loading struct{}

func (loading) kind() State       { return StateLoading }
func (loading) current() *session { return nil }

type playing struct{ *session }

func (playing) kind() State         { return StatePlaying }
func (p playing) current() *session { return p.session }

type gameOver struct{ *session }

func (gameOver) kind() State         { return StateGameOver }
func (g gameOver) current() *session { return g.session }
