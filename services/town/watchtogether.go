package town

import (
	"fmt"
	"math/rand"

	"Townsquare/models"
)

// VideoDetails is the metadata a resolver returns for a playlist URL.
type VideoDetails struct {
	Title       string
	Thumbnail   string
	DurationSec int
}

// VideoResolver turns a video URL into real metadata, or fails with
// ErrVideoNotFound when the reference is malformed or nonexistent.
type VideoResolver interface {
	VideoDetails(url string) (*VideoDetails, error)
}

// WatchTogetherArea is a region where occupants watch a shared video under an
// elected host. The first occupant becomes host; when the host leaves, a new
// host is drawn uniformly at random from the remaining occupants; when the
// area empties, host, video and playlist all reset.
type WatchTogetherArea struct {
	InteractableArea
	hostID   string
	video    *models.Video
	playList []models.Video
}

// NewWatchTogetherArea builds an empty watch-together area from a map object.
func NewWatchTogetherArea(obj MapObject, bus Broadcaster) (*WatchTogetherArea, error) {
	box, err := obj.boundingBox()
	if err != nil {
		return nil, fmt.Errorf("watch together area %s: %w", obj.Name, err)
	}
	return &WatchTogetherArea{InteractableArea: newInteractableArea(obj.Name, box, bus)}, nil
}

func (a *WatchTogetherArea) Kind() models.InteractableKind { return models.KindWatchTogether }

// HostID returns the current host's player ID, empty if the area has no host.
func (a *WatchTogetherArea) HostID() string { return a.hostID }

// Video returns a copy of the currently-playing video, nil if none.
func (a *WatchTogetherArea) Video() *models.Video {
	if a.video == nil {
		return nil
	}
	v := *a.video
	return &v
}

// PlayList returns a copy of the queued videos, front first. Never nil, so an
// empty playlist serializes as [].
func (a *WatchTogetherArea) PlayList() []models.Video {
	out := make([]models.Video, len(a.playList))
	copy(out, a.playList)
	return out
}

func (a *WatchTogetherArea) Active() bool { return a.hostID != "" || a.video != nil }

// Add places a player in the area; the first occupant becomes host.
func (a *WatchTogetherArea) Add(p *Player) {
	a.InteractableArea.Add(p)
	if a.hostID == "" {
		a.hostID = p.ID
		a.emitAreaChanged(a.ToModel())
	}
}

// Remove takes a player out of the area. A departing host hands off to a
// random remaining occupant; the last departure resets the whole area.
func (a *WatchTogetherArea) Remove(p *Player) {
	if !a.InteractableArea.Remove(p) {
		return
	}
	switch {
	case len(a.occupants) == 0:
		a.hostID = ""
		a.video = nil
		a.playList = nil
		a.emitAreaChanged(a.ToModel())
	case a.hostID == p.ID:
		a.hostID = a.occupants[rand.Intn(len(a.occupants))].ID
		a.emitAreaChanged(a.ToModel())
	default:
		a.emitAreaChanged(a.ToModel())
	}
}

// PushToPlaylist appends a resolved video to the tail of the playlist with
// fresh playback state and returns it. Append order is the caller's resolve
// completion order, not submission order.
func (a *WatchTogetherArea) PushToPlaylist(url, userID string, details VideoDetails) models.Video {
	video := models.Video{
		Title:       details.Title,
		Thumbnail:   details.Thumbnail,
		URL:         url,
		DurationSec: details.DurationSec,
		UserID:      userID,
		Pause:       true,
		Speed:       1,
	}
	a.playList = append(a.playList, video)
	return video
}

// PlayNext promotes the head of the playlist to the current video and reports
// whether anything was queued. An empty playlist clears the current video.
func (a *WatchTogetherArea) PlayNext() bool {
	if len(a.playList) == 0 {
		a.video = nil
		return false
	}
	next := a.playList[0]
	a.playList = a.playList[1:]
	a.video = &next
	return true
}

// UpdateVideo overwrites the current video's mutable playback fields. Fails
// if no video is playing.
func (a *WatchTogetherArea) UpdateVideo(v models.Video) error {
	if a.video == nil {
		return ErrNoVideo
	}
	a.video.Pause = v.Pause
	a.video.Speed = v.Speed
	a.video.ElapsedTimeSec = v.ElapsedTimeSec
	return nil
}

// ToModel produces the serializable snapshot of this watch-together area.
func (a *WatchTogetherArea) ToModel() models.Interactable {
	return models.WatchTogetherAreaModel{
		Kind:     models.KindWatchTogether,
		ID:       a.id,
		HostID:   a.hostID,
		Video:    a.Video(),
		PlayList: a.PlayList(),
	}
}

// UpdateModel overwrites host, video and playlist from a caller-supplied
// snapshot. The host must be a current occupant; election stays server-owned.
// It does not broadcast.
func (a *WatchTogetherArea) UpdateModel(m models.Interactable) error {
	model, ok := m.(models.WatchTogetherAreaModel)
	if !ok {
		return ErrAreaNotFound
	}
	if model.HostID != "" && !a.hasOccupant(model.HostID) {
		return ErrPlayerNotFound
	}
	a.hostID = model.HostID
	if model.Video != nil {
		v := *model.Video
		a.video = &v
	} else {
		a.video = nil
	}
	a.playList = append([]models.Video(nil), model.PlayList...)
	return nil
}
