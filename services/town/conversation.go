package town

import (
	"fmt"

	"Townsquare/models"
)

// ConversationArea is a region where players gather around a topic. The topic
// clears when the last occupant leaves.
type ConversationArea struct {
	InteractableArea
	topic string
}

// NewConversationArea builds an inactive conversation area from a map object.
func NewConversationArea(obj MapObject, bus Broadcaster) (*ConversationArea, error) {
	box, err := obj.boundingBox()
	if err != nil {
		return nil, fmt.Errorf("conversation area %s: %w", obj.Name, err)
	}
	return &ConversationArea{InteractableArea: newInteractableArea(obj.Name, box, bus)}, nil
}

func (a *ConversationArea) Kind() models.InteractableKind { return models.KindConversation }

func (a *ConversationArea) Topic() string { return a.topic }

func (a *ConversationArea) Active() bool { return a.topic != "" }

// Remove clears the topic when the last occupant leaves, then broadcasts.
func (a *ConversationArea) Remove(p *Player) {
	if !a.InteractableArea.Remove(p) {
		return
	}
	if len(a.occupants) == 0 {
		a.topic = ""
	}
	a.emitAreaChanged(a.ToModel())
}

// ToModel produces the serializable snapshot of this conversation area.
func (a *ConversationArea) ToModel() models.Interactable {
	return models.ConversationAreaModel{
		Kind:          models.KindConversation,
		ID:            a.id,
		Topic:         a.topic,
		OccupantsByID: a.OccupantsByID(),
	}
}

// UpdateModel overwrites the topic from a caller-supplied snapshot. It does
// not broadcast.
func (a *ConversationArea) UpdateModel(m models.Interactable) error {
	model, ok := m.(models.ConversationAreaModel)
	if !ok {
		return ErrAreaNotFound
	}
	a.topic = model.Topic
	return nil
}
