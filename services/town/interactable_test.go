package town

import (
	"testing"

	"Townsquare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConversation(t *testing.T, bus *recordingBroadcaster) *ConversationArea {
	t.Helper()
	area, err := NewConversationArea(testMapObject("conversation1", "ConversationArea"), bus)
	require.NoError(t, err)
	return area
}

func TestAddTracksOccupancyAndLocation(t *testing.T) {
	bus := &recordingBroadcaster{}
	area := newTestConversation(t, bus)

	p1 := NewPlayer("alice")
	p2 := NewPlayer("bob")
	area.Add(p1)
	area.Add(p2)

	assert.Equal(t, []string{p1.ID, p2.ID}, area.OccupantsByID())
	assert.Equal(t, "conversation1", p1.Location.InteractableID)
	assert.Equal(t, "conversation1", p2.Location.InteractableID)

	payload, ok := bus.lastEvent("playerMoved")
	require.True(t, ok)
	moved := payload.(models.Player)
	assert.Equal(t, p2.ID, moved.ID)
	assert.Equal(t, "conversation1", moved.Location.InteractableID)
}

func TestRemoveClearsLocationAndAnnounces(t *testing.T) {
	bus := &recordingBroadcaster{}
	area := newTestConversation(t, bus)

	p1 := NewPlayer("alice")
	p2 := NewPlayer("bob")
	area.Add(p1)
	area.Add(p2)

	area.Remove(p1)

	assert.Equal(t, []string{p2.ID}, area.OccupantsByID())
	assert.Empty(t, p1.Location.InteractableID)

	payload, ok := bus.lastEvent("playerMoved")
	require.True(t, ok)
	moved := payload.(models.Player)
	assert.Empty(t, moved.Location.InteractableID)
}

func TestRemoveAbsentPlayerIsANoOp(t *testing.T) {
	bus := &recordingBroadcaster{}
	area := newTestConversation(t, bus)

	p1 := NewPlayer("alice")
	area.Add(p1)

	stranger := NewPlayer("stranger")
	before := bus.countEvents("interactableUpdate")
	area.Remove(stranger)

	assert.Equal(t, []string{p1.ID}, area.OccupantsByID())
	assert.Equal(t, before, bus.countEvents("interactableUpdate"))

	// Duplicate leave events for a real occupant are harmless too.
	area.Remove(p1)
	area.Remove(p1)
	assert.Empty(t, area.OccupantsByID())
}

func TestConversationTopicResetsOnVacancy(t *testing.T) {
	bus := &recordingBroadcaster{}
	area := newTestConversation(t, bus)

	p1 := NewPlayer("alice")
	area.Add(p1)
	require.NoError(t, area.UpdateModel(models.ConversationAreaModel{
		Kind: models.KindConversation, ID: "conversation1", Topic: "lunch plans",
	}))
	assert.True(t, area.Active())

	area.Remove(p1)

	assert.Empty(t, area.Topic())
	assert.False(t, area.Active())
}

func TestBoundingBoxContains(t *testing.T) {
	bus := &recordingBroadcaster{}
	area := newTestConversation(t, bus)

	assert.True(t, area.Contains(models.PlayerLocation{X: 150, Y: 150}))
	assert.True(t, area.Contains(models.PlayerLocation{X: 100, Y: 100}))
	assert.True(t, area.Contains(models.PlayerLocation{X: 200, Y: 200}))
	assert.False(t, area.Contains(models.PlayerLocation{X: 99, Y: 150}))
	assert.False(t, area.Contains(models.PlayerLocation{X: 150, Y: 201}))
}

func TestViewingAreaResetsOnVacancy(t *testing.T) {
	bus := &recordingBroadcaster{}
	area, err := NewViewingArea(testMapObject("viewing1", "ViewingArea"), bus)
	require.NoError(t, err)

	p1 := NewPlayer("alice")
	area.Add(p1)
	require.NoError(t, area.UpdateModel(models.ViewingAreaModel{
		Kind: models.KindViewing, ID: "viewing1", Video: "https://youtu.be/abc", IsPlaying: true, ElapsedTimeSec: 17,
	}))

	area.Remove(p1)

	model := area.ToModel().(models.ViewingAreaModel)
	assert.Empty(t, model.Video)
	assert.False(t, model.IsPlaying)
	assert.Zero(t, model.ElapsedTimeSec)
}
