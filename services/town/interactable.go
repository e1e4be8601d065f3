package town

import (
	"log"

	"Townsquare/models"
)

// Broadcaster is a town's handle on its room of connected clients. Emits are
// fire-and-forget, at-most-once; a client that misses one is only healed by
// the snapshot it receives when it rejoins.
type Broadcaster interface {
	Emit(event string, payload interface{})
	// DisconnectSockets drops every client connection in the room.
	DisconnectSockets()
}

// Area is implemented by every interactable region in a town. ToModel must be
// a pure snapshot; UpdateModel must not broadcast (the orchestrator decides
// when to re-broadcast).
type Area interface {
	ID() string
	Kind() models.InteractableKind
	BoundingBox() models.BoundingBox
	OccupantsByID() []string
	Contains(loc models.PlayerLocation) bool
	Add(p *Player)
	Remove(p *Player)
	ToModel() models.Interactable
	UpdateModel(m models.Interactable) error
	// Active reports whether the area carries state beyond its occupants, i.e.
	// whether a "create" request for its ID must be rejected.
	Active() bool
}

// InteractableArea is the occupancy-tracking base embedded by every concrete
// area kind. Occupant order is arrival order.
type InteractableArea struct {
	id        string
	box       models.BoundingBox
	occupants []*Player
	bus       Broadcaster
}

func newInteractableArea(id string, box models.BoundingBox, bus Broadcaster) InteractableArea {
	return InteractableArea{id: id, box: box, bus: bus}
}

func (a *InteractableArea) ID() string { return a.id }

func (a *InteractableArea) BoundingBox() models.BoundingBox { return a.box }

// OccupantsByID returns the IDs of the players inside this area, in arrival order.
func (a *InteractableArea) OccupantsByID() []string {
	ids := make([]string, len(a.occupants))
	for i, p := range a.occupants {
		ids[i] = p.ID
	}
	return ids
}

// hasOccupant reports whether the given player is currently inside this area.
func (a *InteractableArea) hasOccupant(playerID string) bool {
	for _, p := range a.occupants {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// Contains reports whether a location falls inside this area's bounding box.
func (a *InteractableArea) Contains(loc models.PlayerLocation) bool {
	return a.box.Contains(loc)
}

// Add places a player inside this area and announces the location change.
// The caller must ensure the player is not already in any area.
func (a *InteractableArea) Add(p *Player) {
	a.occupants = append(a.occupants, p)
	p.Location.InteractableID = a.id
	a.bus.Emit("playerMoved", p.ToModel())
}

// Remove takes a player out of this area and announces the location change.
// Removing a player that is not present is a logged no-op, so duplicate leave
// events are harmless. Returns whether the player was present.
func (a *InteractableArea) Remove(p *Player) bool {
	for i, occ := range a.occupants {
		if occ.ID == p.ID {
			a.occupants = append(a.occupants[:i], a.occupants[i+1:]...)
			p.Location.InteractableID = ""
			a.bus.Emit("playerMoved", p.ToModel())
			return true
		}
	}
	log.Printf("[AREA] remove: player %s not in area %s, ignoring", p.ID, a.id)
	return false
}

// emitAreaChanged broadcasts a full-model replacement for this area. There is
// no delta protocol; every mutation pushes the whole snapshot.
func (a *InteractableArea) emitAreaChanged(m models.Interactable) {
	a.bus.Emit("interactableUpdate", m)
}
