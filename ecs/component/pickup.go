package component

// Pickup is a collectible. HomeX is where it reappears when the set refills.
type Pickup struct {
	HomeX  float64
	Active bool
}

var PickupComponent = NewComponent[Pickup]()
