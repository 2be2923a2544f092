package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

const (
	collisionTypePlatform cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypePickup
	collisionTypeHazard
	collisionTypePlayerGround
	collisionTypeBounds
)

const (
	categoryPlatform uint = 1 << iota
	categoryPlayer
	categoryPickup
	categoryHazard
	categoryGroundSensor
	categoryBounds
)

// PairFunc receives the two entities of a contact in registration order.
type PairFunc func(a, b ecs.Entity)

type pairMode int

const (
	pairCollide pairMode = iota + 1
	pairOverlap
)

type groupPair struct {
	a component.BodyGroup
	b component.BodyGroup
}

type pairRule struct {
	mode pairMode
	fn   PairFunc
}

type contact struct {
	pair groupPair
	a    ecs.Entity
	b    ecs.Entity
}

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space. Bodies
// only interact when a Collider or Overlap rule names both of their groups.
type PhysicsSystem struct {
	space      *cp.Space
	dt         float64
	paused     bool
	boundsDone bool

	entities     map[ecs.Entity]*bodyInfo
	shapes       map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool

	rules    map[groupPair]pairRule
	handlers map[groupPair]bool
	contacts []contact
	seen     map[contact]struct{}
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	group       component.BodyGroup
	static      bool
	bounds      bool
	disabled    bool
	worldBounds bool
}

// NewPhysicsSystem creates a space with downward gravity stepped at 1/tps.
func NewPhysicsSystem(gravityY float64, tps int, iterations int) *PhysicsSystem {
	if tps <= 0 {
		tps = 60
	}
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = uint(iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: gravityY})
	ps := &PhysicsSystem{
		space:        space,
		dt:           1.0 / float64(tps),
		entities:     make(map[ecs.Entity]*bodyInfo),
		shapes:       make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
		rules:        make(map[groupPair]pairRule),
		handlers:     make(map[groupPair]bool),
		seen:         make(map[contact]struct{}),
	}
	ps.installGroundHandlers()
	return ps
}

// Collider makes bodies of groups a and b block each other. fn may be nil.
func (ps *PhysicsSystem) Collider(a, b component.BodyGroup, fn PairFunc) {
	ps.register(a, b, pairRule{mode: pairCollide, fn: fn})
}

// Overlap reports contacts between groups a and b without resolving them.
func (ps *PhysicsSystem) Overlap(a, b component.BodyGroup, fn PairFunc) {
	ps.register(a, b, pairRule{mode: pairOverlap, fn: fn})
}

// Ignore removes any rule between groups a and b.
func (ps *PhysicsSystem) Ignore(a, b component.BodyGroup) {
	if ps == nil {
		return
	}
	delete(ps.rules, groupPair{a: a, b: b})
	delete(ps.rules, groupPair{a: b, b: a})
	ps.refreshFilters()
}

func (ps *PhysicsSystem) register(a, b component.BodyGroup, rule pairRule) {
	if ps == nil {
		return
	}
	delete(ps.rules, groupPair{a: b, b: a})
	key := groupPair{a: a, b: b}
	ps.rules[key] = rule
	ps.ensureHandler(key)
	ps.refreshFilters()
}

func (ps *PhysicsSystem) Pause() {
	if ps != nil {
		ps.paused = true
	}
}

func (ps *PhysicsSystem) Resume() {
	if ps != nil {
		ps.paused = false
	}
}

func (ps *PhysicsSystem) Paused() bool {
	return ps != nil && ps.paused
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.paused {
		return
	}

	ps.Sync(w)
	ps.resetPlayerContacts(w)
	ps.contacts = ps.contacts[:0]
	clear(ps.seen)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
	ps.dispatch(w)
}

// Sync creates bodies for new PhysicsBody components, removes bodies of
// destroyed entities and adds the world-bound segments once.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
}

// Disable removes e's body from the simulation until Enable is called.
func (ps *PhysicsSystem) Disable(w *ecs.World, e ecs.Entity) {
	if ps == nil {
		return
	}
	info := ps.entities[e]
	if info == nil || info.disabled || info.static {
		return
	}
	for _, shape := range info.shapes {
		ps.space.RemoveShape(shape)
	}
	ps.space.RemoveBody(info.body)
	info.disabled = true
	delete(ps.grounded, e)
}

// Enable puts a disabled body back at (x, y) with zero velocity.
func (ps *PhysicsSystem) Enable(w *ecs.World, e ecs.Entity, x, y float64) {
	if ps == nil {
		return
	}
	info := ps.entities[e]
	if info == nil || info.static {
		return
	}
	info.body.SetPosition(cp.Vector{X: x, Y: y})
	info.body.SetVelocity(0, 0)
	if info.disabled {
		ps.space.AddBody(info.body)
		for _, shape := range info.shapes {
			ps.space.AddShape(shape)
		}
		info.disabled = false
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = x
		t.Y = y
	}
}

// Enabled reports whether e has a body taking part in the simulation.
func (ps *PhysicsSystem) Enabled(e ecs.Entity) bool {
	if ps == nil {
		return false
	}
	info := ps.entities[e]
	return info != nil && !info.disabled
}

func (ps *PhysicsSystem) SetVelocity(e ecs.Entity, vx, vy float64) {
	if ps == nil {
		return
	}
	if info := ps.entities[e]; info != nil && !info.static {
		info.body.SetVelocity(vx, vy)
	}
}

func (ps *PhysicsSystem) Velocity(e ecs.Entity) (float64, float64) {
	if ps == nil {
		return 0, 0
	}
	info := ps.entities[e]
	if info == nil || info.static {
		return 0, 0
	}
	v := info.body.Velocity()
	return v.X, v.Y
}

func collisionTypeFor(group component.BodyGroup) cp.CollisionType {
	switch group {
	case component.GroupPlatform:
		return collisionTypePlatform
	case component.GroupPlayer:
		return collisionTypePlayer
	case component.GroupPickup:
		return collisionTypePickup
	case component.GroupHazard:
		return collisionTypeHazard
	}
	return 0
}

func categoryFor(group component.BodyGroup) uint {
	switch group {
	case component.GroupPlatform:
		return categoryPlatform
	case component.GroupPlayer:
		return categoryPlayer
	case component.GroupPickup:
		return categoryPickup
	case component.GroupHazard:
		return categoryHazard
	}
	return 0
}

// maskFor returns the categories a group accepts contacts with.
func (ps *PhysicsSystem) maskFor(group component.BodyGroup, worldBounds bool) uint {
	var mask uint
	for pair := range ps.rules {
		switch group {
		case pair.a:
			mask |= categoryFor(pair.b)
		case pair.b:
			mask |= categoryFor(pair.a)
		}
	}
	if group == component.GroupPlatform {
		mask |= categoryGroundSensor
	}
	if worldBounds {
		mask |= categoryBounds
	}
	return mask
}

func (ps *PhysicsSystem) filterFor(info *bodyInfo) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: categoryFor(info.group),
		Mask:       ps.maskFor(info.group, info.worldBounds),
	}
}

func (ps *PhysicsSystem) refreshFilters() {
	for _, info := range ps.entities {
		if info.bounds || info.mainShape == nil {
			continue
		}
		info.mainShape.SetFilter(ps.filterFor(info))
	}
}

func (ps *PhysicsSystem) ensureHandler(pair groupPair) {
	if ps.handlers[pair] {
		return
	}
	handler := ps.space.NewCollisionHandler(collisionTypeFor(pair.a), collisionTypeFor(pair.b))
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		// The rule may have been replaced since the handler was installed.
		rule, ok := sys.rules[pair]
		if !ok {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		sys.record(pair, shapeA, shapeB)
		return rule.mode == pairCollide
	}
	ps.handlers[pair] = true
}

func (ps *PhysicsSystem) installGroundHandlers() {
	for _, solid := range []cp.CollisionType{collisionTypePlatform, collisionTypeBounds} {
		groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, solid)
		groundHandler.UserData = ps
		groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			playerEntity, okA := sys.groundShapes[shapeA]
			if !okA {
				var okB bool
				playerEntity, okB = sys.groundShapes[shapeB]
				if !okB {
					return true
				}
			}

			n := arb.Normal()
			if !okA {
				n = n.Neg()
			}
			// Only count as grounded when the surface lies below the player.
			if n.Y <= 0.5 {
				return true
			}
			sys.grounded[playerEntity] = true
			return true
		}
	}
}

func (ps *PhysicsSystem) record(pair groupPair, shapeA, shapeB *cp.Shape) {
	ea, okA := ps.shapes[shapeA]
	eb, okB := ps.shapes[shapeB]
	if !okA || !okB {
		return
	}
	if ps.entities[ea].group != pair.a {
		ea, eb = eb, ea
	}
	c := contact{pair: pair, a: ea, b: eb}
	if _, dup := ps.seen[c]; dup {
		return
	}
	ps.seen[c] = struct{}{}
	ps.contacts = append(ps.contacts, c)
}

// dispatch runs contact callbacks after the step so they may freely disable
// bodies, spawn entities or pause the system.
func (ps *PhysicsSystem) dispatch(w *ecs.World) {
	contacts := append([]contact(nil), ps.contacts...)
	for _, c := range contacts {
		rule, ok := ps.rules[c.pair]
		if !ok || rule.fn == nil {
			continue
		}
		if !w.IsAlive(c.a) || !w.IsAlive(c.b) {
			continue
		}
		if !ps.Enabled(c.a) || !ps.Enabled(c.b) {
			continue
		}
		rule.fn(c.a, c.b)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, isPlayer)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapes[shape] = e
		}
		if info.groundShape != nil {
			delete(ps.shapes, info.groundShape)
			ps.groundShapes[info.groundShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
	}

	info := &bodyInfo{
		group:       bodyComp.Group,
		static:      bodyComp.Static,
		worldBounds: bodyComp.CollideWorldBounds,
	}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeFor(bodyComp.Group))
		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		shape.SetFilter(ps.filterFor(info))
		ps.space.AddShape(shape)
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Infinite moment keeps arcade bodies upright.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(0)

	switch {
	case bodyComp.NoGravity:
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	case bodyComp.GravityY != 0:
		extra := bodyComp.GravityY
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{X: gravity.X, Y: gravity.Y + extra}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeFor(bodyComp.Group))

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}
	shape.SetFilter(ps.filterFor(info))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	if isPlayer {
		groundShape := ps.createGroundSensor(width, height, body)
		ps.space.AddShape(groundShape)
		info.groundShape = groundShape
		info.shapes = append(info.shapes, groundShape)
	}

	return info
}

func (ps *PhysicsSystem) createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	groundShape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: categoryGroundSensor,
		Mask:       categoryPlatform | categoryBounds,
	})
	return groundShape
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.boundsDone {
		return
	}
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, bounds: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeBounds)
		shape.SetFilter(cp.ShapeFilter{
			Group:      cp.NO_GROUP,
			Categories: categoryBounds,
			Mask:       cp.ALL_CATEGORIES,
		})
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
	ps.boundsDone = true
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	clear(ps.grounded)
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, _ *component.PlayerCollision) {
		ps.grounded[e] = false
	})
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, grounded := range ps.grounded {
		if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
			pc.Grounded = grounded
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil || info.static || info.disabled {
			return
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) {
			if info.bounds && ecs.Has(w, e, component.LevelBoundsComponent.Kind()) {
				continue
			}
			if !info.bounds && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				continue
			}
		}

		for _, shape := range info.shapes {
			if !info.disabled {
				ps.space.RemoveShape(shape)
			}
			delete(ps.shapes, shape)
			delete(ps.groundShapes, shape)
		}
		if !info.static && !info.disabled {
			ps.space.RemoveBody(info.body)
		}
		if info.bounds {
			ps.boundsDone = false
		}

		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
