package town

import (
	"fmt"

	"Townsquare/models"
)

// ViewingArea is a region where players watch a looping video together without
// a host. Playback state resets when the last occupant leaves.
type ViewingArea struct {
	InteractableArea
	video          string
	isPlaying      bool
	elapsedTimeSec float64
}

// NewViewingArea builds an inactive viewing area from a map object.
func NewViewingArea(obj MapObject, bus Broadcaster) (*ViewingArea, error) {
	box, err := obj.boundingBox()
	if err != nil {
		return nil, fmt.Errorf("viewing area %s: %w", obj.Name, err)
	}
	return &ViewingArea{InteractableArea: newInteractableArea(obj.Name, box, bus)}, nil
}

func (a *ViewingArea) Kind() models.InteractableKind { return models.KindViewing }

func (a *ViewingArea) Video() string { return a.video }

func (a *ViewingArea) Active() bool { return a.video != "" }

// Remove resets the video when the last occupant leaves, then broadcasts.
func (a *ViewingArea) Remove(p *Player) {
	if !a.InteractableArea.Remove(p) {
		return
	}
	if len(a.occupants) == 0 {
		a.video = ""
		a.isPlaying = false
		a.elapsedTimeSec = 0
	}
	a.emitAreaChanged(a.ToModel())
}

// ToModel produces the serializable snapshot of this viewing area.
func (a *ViewingArea) ToModel() models.Interactable {
	return models.ViewingAreaModel{
		Kind:           models.KindViewing,
		ID:             a.id,
		Video:          a.video,
		IsPlaying:      a.isPlaying,
		ElapsedTimeSec: a.elapsedTimeSec,
	}
}

// UpdateModel overwrites the playback fields from a caller-supplied snapshot.
// It does not broadcast.
func (a *ViewingArea) UpdateModel(m models.Interactable) error {
	model, ok := m.(models.ViewingAreaModel)
	if !ok {
		return ErrAreaNotFound
	}
	a.video = model.Video
	a.isPlaying = model.IsPlaying
	a.elapsedTimeSec = model.ElapsedTimeSec
	return nil
}
