package town

import (
	town_constants "Townsquare/constants/town"
	"Townsquare/models"

	"github.com/google/uuid"
)

// Player is a connected user's session record. The Town's registry owns the
// only mutable copy; areas refer to players by ID and never outlive them.
type Player struct {
	ID           string
	UserName     string
	Location     models.PlayerLocation
	SessionToken string
}

// NewPlayer creates a player with a fresh unique ID at the spawn point.
func NewPlayer(userName string) *Player {
	return &Player{
		ID:       uuid.NewString(),
		UserName: userName,
		Location: models.PlayerLocation{
			X:        town_constants.SpawnX,
			Y:        town_constants.SpawnY,
			Rotation: "front",
		},
	}
}

// ToModel produces the serializable snapshot of this player.
func (p *Player) ToModel() models.Player {
	return models.Player{
		ID:       p.ID,
		UserName: p.UserName,
		Location: p.Location,
	}
}
