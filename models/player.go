package models

// PlayerLocation is the wire form of a player's position on the town map.
// InteractableID is set while the player stands inside an interactable area.
type PlayerLocation struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Rotation       string  `json:"rotation"`
	Moving         bool    `json:"moving"`
	InteractableID string  `json:"interactableID,omitempty"`
}

// Player is the serializable snapshot of a connected player, broadcast on
// playerJoined / playerMoved / playerDisconnect events.
type Player struct {
	ID       string         `json:"id"`
	UserName string         `json:"userName"`
	Location PlayerLocation `json:"location"`
}

// BoundingBox is the immutable rectangle an interactable area occupies on the map.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the given location falls inside the box.
func (b BoundingBox) Contains(loc PlayerLocation) bool {
	return loc.X >= b.X && loc.X <= b.X+b.Width &&
		loc.Y >= b.Y && loc.Y <= b.Y+b.Height
}
