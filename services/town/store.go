package town

import (
	"log"
	"sync"

	"Townsquare/models"

	"github.com/google/uuid"
)

// BroadcasterFactory builds the room-scoped broadcaster for a new town.
type BroadcasterFactory func(townID string) Broadcaster

// Store is the in-memory registry of every live town in this process. Towns
// are ephemeral: they exist from creation until deleted and never touch disk.
type Store struct {
	mu    sync.RWMutex
	towns map[string]*Town

	newBroadcaster BroadcasterFactory
	resolver       VideoResolver
	jwtSecret      []byte
}

// NewStore builds an empty town registry.
func NewStore(factory BroadcasterFactory, resolver VideoResolver, jwtSecret []byte) *Store {
	return &Store{
		towns:          make(map[string]*Town),
		newBroadcaster: factory,
		resolver:       resolver,
		jwtSecret:      jwtSecret,
	}
}

// CreateTown builds a town from the stock map and returns its ID together
// with the generated update password. The password is returned exactly once;
// only its bcrypt hash is kept.
func (s *Store) CreateTown(params models.TownCreateParams) (models.TownCreateResponse, error) {
	townID := uuid.NewString()
	password := uuid.NewString()

	t, err := New(Config{
		ID:               townID,
		FriendlyName:     params.FriendlyName,
		IsPubliclyListed: params.IsPubliclyListed,
		UpdatePassword:   password,
		MapObjects:       DefaultMapObjects(),
		Broadcaster:      s.newBroadcaster(townID),
		Resolver:         s.resolver,
		JWTSecret:        s.jwtSecret,
	})
	if err != nil {
		return models.TownCreateResponse{}, err
	}

	s.mu.Lock()
	s.towns[townID] = t
	s.mu.Unlock()

	log.Printf("[TOWN] created town %s (%q, public=%v)", townID, params.FriendlyName, params.IsPubliclyListed)
	return models.TownCreateResponse{TownID: townID, TownUpdatePassword: password}, nil
}

// Get resolves a town by ID.
func (s *Store) Get(townID string) (*Town, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.towns[townID]
	if !ok {
		return nil, ErrTownNotFound
	}
	return t, nil
}

// ListTowns returns the summaries of every publicly listed town.
func (s *Store) ListTowns() []models.TownSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TownSummary, 0, len(s.towns))
	for _, t := range s.towns {
		if t.IsPubliclyListed() {
			out = append(out, t.Summary())
		}
	}
	return out
}

// UpdateTown applies a password-protected settings change and broadcasts it.
func (s *Store) UpdateTown(townID, password string, update models.TownSettingsUpdate) error {
	t, err := s.Get(townID)
	if err != nil {
		return err
	}
	if !t.CheckPassword(password) {
		return ErrBadPassword
	}
	t.UpdateSettings(update)
	return nil
}

// DeleteTown tears a town down: every client in the room is told the town is
// closing, then the town is dropped from the registry.
func (s *Store) DeleteTown(townID, password string) error {
	t, err := s.Get(townID)
	if err != nil {
		return err
	}
	if !t.CheckPassword(password) {
		return ErrBadPassword
	}

	s.mu.Lock()
	delete(s.towns, townID)
	s.mu.Unlock()

	t.Close()
	log.Printf("[TOWN] deleted town %s", townID)
	return nil
}
