package town

import (
	"fmt"

	"Townsquare/models"
)

// PosterSessionArea is a region where players view a poster image and star it.
// There is no active poster session without a viewer: title, image and stars
// all reset when the last occupant leaves.
type PosterSessionArea struct {
	InteractableArea
	title         string
	imageContents string
	stars         int
	// starredBy tracks who starred the current poster, so a player cannot
	// star the same poster twice. Resets with the poster itself.
	starredBy map[string]struct{}
}

// NewPosterSessionArea builds an inactive poster session area from a map object.
func NewPosterSessionArea(obj MapObject, bus Broadcaster) (*PosterSessionArea, error) {
	box, err := obj.boundingBox()
	if err != nil {
		return nil, fmt.Errorf("poster session area %s: %w", obj.Name, err)
	}
	return &PosterSessionArea{
		InteractableArea: newInteractableArea(obj.Name, box, bus),
		starredBy:        make(map[string]struct{}),
	}, nil
}

func (a *PosterSessionArea) Kind() models.InteractableKind { return models.KindPoster }

func (a *PosterSessionArea) Title() string { return a.title }

func (a *PosterSessionArea) Stars() int { return a.stars }

// ImageContents returns the current poster image, empty if none is set.
func (a *PosterSessionArea) ImageContents() string { return a.imageContents }

func (a *PosterSessionArea) Active() bool { return a.imageContents != "" }

// Remove clears the poster, title and stars when the last occupant leaves,
// then broadcasts.
func (a *PosterSessionArea) Remove(p *Player) {
	if !a.InteractableArea.Remove(p) {
		return
	}
	if len(a.occupants) == 0 {
		a.title = ""
		a.imageContents = ""
		a.stars = 0
		a.starredBy = make(map[string]struct{})
	}
	a.emitAreaChanged(a.ToModel())
}

// IncrementStars adds one star from the given player and returns the new
// count. Fails if no poster image is set, or if the player already starred
// the current poster.
func (a *PosterSessionArea) IncrementStars(playerID string) (int, error) {
	if a.imageContents == "" {
		return 0, ErrNoPosterImage
	}
	if _, ok := a.starredBy[playerID]; ok {
		return 0, ErrAlreadyStarred
	}
	a.starredBy[playerID] = struct{}{}
	a.stars++
	return a.stars, nil
}

// ToModel produces the serializable snapshot of this poster session area.
func (a *PosterSessionArea) ToModel() models.Interactable {
	return models.PosterSessionAreaModel{
		Kind:          models.KindPoster,
		ID:            a.id,
		Title:         a.title,
		ImageContents: a.imageContents,
		Stars:         a.stars,
	}
}

// UpdateModel overwrites title, image and stars from a caller-supplied
// snapshot. Replacing the image starts a fresh star ledger. It does not
// broadcast.
func (a *PosterSessionArea) UpdateModel(m models.Interactable) error {
	model, ok := m.(models.PosterSessionAreaModel)
	if !ok {
		return ErrAreaNotFound
	}
	if model.ImageContents != a.imageContents {
		a.starredBy = make(map[string]struct{})
	}
	a.title = model.Title
	a.imageContents = model.ImageContents
	a.stars = model.Stars
	return nil
}
