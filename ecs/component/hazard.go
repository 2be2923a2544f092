package component

// Hazard marks an entity that ends the session on contact with the player.
type Hazard struct{}

var HazardComponent = NewComponent[Hazard]()
