package town_constants

// MaxPlayersPerTown is the default town capacity; joins beyond it are rejected.
const MaxPlayersPerTown = 50

// Players spawn at a fixed point outside every interactable area.
const (
	SpawnX = 128
	SpawnY = 128
)
