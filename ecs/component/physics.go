package component

import "github.com/jakecoffman/cp"

// BodyGroup selects which collision registrations apply to a body.
type BodyGroup string

const (
	GroupPlatform BodyGroup = "platform"
	GroupPlayer   BodyGroup = "player"
	GroupPickup   BodyGroup = "pickup"
	GroupHazard   BodyGroup = "hazard"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The body is centered on the entity Transform.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Group              BodyGroup
	Width              float64
	Height             float64
	Mass               float64
	Friction           float64
	Elasticity         float64
	GravityY           float64 // added on top of world gravity
	NoGravity          bool
	Static             bool
	CollideWorldBounds bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
