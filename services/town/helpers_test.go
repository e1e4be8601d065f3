package town

import (
	"sync"
	"testing"

	"Townsquare/models"

	"github.com/stretchr/testify/require"
)

// recordingBroadcaster captures every emitted event so tests can assert on
// the broadcast traffic, newest last.
type recordingBroadcaster struct {
	mu          sync.Mutex
	events      []emittedEvent
	disconnects int
}

type emittedEvent struct {
	name    string
	payload interface{}
}

func (b *recordingBroadcaster) Emit(event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, emittedEvent{name: event, payload: payload})
}

// lastEvent returns the payload of the most recent emission of the named
// event, and whether one happened at all.
func (b *recordingBroadcaster) lastEvent(event string) (interface{}, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].name == event {
			return b.events[i].payload, true
		}
	}
	return nil, false
}

func (b *recordingBroadcaster) DisconnectSockets() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnects++
}

func (b *recordingBroadcaster) disconnectCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disconnects
}

func (b *recordingBroadcaster) countEvents(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.name == event {
			n++
		}
	}
	return n
}

// stubResolver resolves only the URLs it was seeded with; everything else is
// a not-found, like a real metadata lookup for a bogus URL.
type stubResolver struct {
	details map[string]VideoDetails
}

func (r stubResolver) VideoDetails(url string) (*VideoDetails, error) {
	d, ok := r.details[url]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return &d, nil
}

// resolverFunc lets a test hook arbitrary behavior into the metadata fetch,
// which runs outside the town lock.
type resolverFunc func(url string) (*VideoDetails, error)

func (f resolverFunc) VideoDetails(url string) (*VideoDetails, error) { return f(url) }

const testJWTSecret = "test-secret"

func newTestTown(t *testing.T, bus *recordingBroadcaster, resolver VideoResolver) *Town {
	t.Helper()
	if resolver == nil {
		resolver = stubResolver{}
	}
	tn, err := New(Config{
		ID:               "test-town",
		FriendlyName:     "Test Town",
		IsPubliclyListed: true,
		UpdatePassword:   "hunter2",
		MapObjects:       DefaultMapObjects(),
		Broadcaster:      bus,
		Resolver:         resolver,
		JWTSecret:        []byte(testJWTSecret),
	})
	require.NoError(t, err)
	return tn
}

func testMapObject(name, kind string) MapObject {
	return MapObject{Name: name, Type: kind, X: 100, Y: 100, Width: 100, Height: 100}
}

func areaModelByID(t *testing.T, tn *Town, id string) models.Interactable {
	t.Helper()
	for _, m := range tn.Interactables() {
		if m.InteractableID() == id {
			return m
		}
	}
	t.Fatalf("no area %s in town %s", id, tn.ID())
	return nil
}
