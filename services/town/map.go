package town

import (
	"errors"
	"fmt"

	"Townsquare/models"
)

// MapObject is one rectangle from the town map's object layer, in the shape a
// Tiled export produces. Type selects the area kind.
type MapObject struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var errMissingGeometry = errors.New("map object is missing width/height")

func (o MapObject) boundingBox() (models.BoundingBox, error) {
	if o.Width == 0 || o.Height == 0 {
		return models.BoundingBox{}, errMissingGeometry
	}
	return models.BoundingBox{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}, nil
}

// DefaultMapObjects is the object layer of the stock town map.
func DefaultMapObjects() []MapObject {
	return []MapObject{
		{Name: "conversation1", Type: "ConversationArea", X: 320, Y: 64, Width: 160, Height: 128},
		{Name: "conversation2", Type: "ConversationArea", X: 640, Y: 64, Width: 160, Height: 128},
		{Name: "viewing1", Type: "ViewingArea", X: 320, Y: 320, Width: 192, Height: 128},
		{Name: "poster1", Type: "PosterSessionArea", X: 640, Y: 320, Width: 160, Height: 96},
		{Name: "poster2", Type: "PosterSessionArea", X: 640, Y: 480, Width: 160, Height: 96},
		{Name: "watch1", Type: "WatchTogetherArea", X: 320, Y: 640, Width: 256, Height: 160},
	}
}

// buildAreas constructs one area per map object. Any malformed object aborts
// town initialization.
func buildAreas(objects []MapObject, bus Broadcaster) ([]Area, error) {
	areas := make([]Area, 0, len(objects))
	seen := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		if _, dup := seen[obj.Name]; dup {
			return nil, fmt.Errorf("duplicate map object name %s", obj.Name)
		}
		seen[obj.Name] = struct{}{}

		var (
			area Area
			err  error
		)
		switch obj.Type {
		case "ConversationArea":
			area, err = NewConversationArea(obj, bus)
		case "ViewingArea":
			area, err = NewViewingArea(obj, bus)
		case "PosterSessionArea":
			area, err = NewPosterSessionArea(obj, bus)
		case "WatchTogetherArea":
			area, err = NewWatchTogetherArea(obj, bus)
		default:
			return nil, fmt.Errorf("unknown map object type %s for %s", obj.Type, obj.Name)
		}
		if err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}
	return areas, nil
}
