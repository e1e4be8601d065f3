package models

import (
	"encoding/json"
	"fmt"
)

// InteractableKind discriminates the wire form of every area model. Clients and
// the server switch on it exhaustively instead of guessing from field shapes.
type InteractableKind string

const (
	KindConversation  InteractableKind = "conversation"
	KindViewing       InteractableKind = "viewing"
	KindPoster        InteractableKind = "poster"
	KindWatchTogether InteractableKind = "watchTogether"
)

// Interactable is implemented by every area model that can cross the wire.
type Interactable interface {
	InteractableID() string
	InteractableKind() InteractableKind
}

// Video is the shared playback state of a watch-together video.
type Video struct {
	Title          string  `json:"title"`
	Thumbnail      string  `json:"thumbnail"`
	URL            string  `json:"url"`
	DurationSec    int     `json:"durationSec"`
	UserID         string  `json:"userID"`
	Pause          bool    `json:"pause"`
	Speed          float64 `json:"speed"`
	ElapsedTimeSec float64 `json:"elapsedTimeSec"`
}

// ConversationAreaModel is the snapshot of a conversation area.
type ConversationAreaModel struct {
	Kind          InteractableKind `json:"kind"`
	ID            string           `json:"id"`
	Topic         string           `json:"topic,omitempty"`
	OccupantsByID []string         `json:"occupantsByID"`
}

func (m ConversationAreaModel) InteractableID() string { return m.ID }
func (m ConversationAreaModel) InteractableKind() InteractableKind { return KindConversation }

// ViewingAreaModel is the snapshot of a solo-viewing area.
type ViewingAreaModel struct {
	Kind           InteractableKind `json:"kind"`
	ID             string           `json:"id"`
	Video          string           `json:"video,omitempty"`
	IsPlaying      bool             `json:"isPlaying"`
	ElapsedTimeSec float64          `json:"elapsedTimeSec"`
}

func (m ViewingAreaModel) InteractableID() string { return m.ID }
func (m ViewingAreaModel) InteractableKind() InteractableKind { return KindViewing }

// PosterSessionAreaModel is the snapshot of a poster session area.
type PosterSessionAreaModel struct {
	Kind          InteractableKind `json:"kind"`
	ID            string           `json:"id"`
	Title         string           `json:"title,omitempty"`
	ImageContents string           `json:"imageContents,omitempty"`
	Stars         int              `json:"stars"`
}

func (m PosterSessionAreaModel) InteractableID() string { return m.ID }
func (m PosterSessionAreaModel) InteractableKind() InteractableKind { return KindPoster }

// WatchTogetherAreaModel is the snapshot of a watch-together area.
type WatchTogetherAreaModel struct {
	Kind     InteractableKind `json:"kind"`
	ID       string           `json:"id"`
	HostID   string           `json:"hostID,omitempty"`
	Video    *Video           `json:"video,omitempty"`
	PlayList []Video          `json:"playList"`
}

func (m WatchTogetherAreaModel) InteractableID() string { return m.ID }
func (m WatchTogetherAreaModel) InteractableKind() InteractableKind { return KindWatchTogether }

// UnmarshalInteractable decodes an area model from its wire form, dispatching
// on the kind discriminant.
func UnmarshalInteractable(data []byte) (Interactable, error) {
	var probe struct {
		Kind InteractableKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Kind {
	case KindConversation:
		var m ConversationAreaModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindViewing:
		var m ViewingAreaModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindPoster:
		var m PosterSessionAreaModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindWatchTogether:
		var m WatchTogetherAreaModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown interactable kind %q", probe.Kind)
	}
}
