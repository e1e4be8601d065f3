package town

import "errors"

var (
	// ErrTownNotFound is returned when a town ID does not resolve.
	ErrTownNotFound = errors.New("town not found")
	// ErrTownFull is returned when a join would exceed the town's capacity.
	ErrTownFull = errors.New("town is at capacity")
	// ErrBadPassword is returned when the town update password does not match.
	ErrBadPassword = errors.New("invalid town update password")

	// ErrAreaNotFound is returned when an area ID does not resolve, or resolves
	// to an area of a different kind than the operation expects.
	ErrAreaNotFound = errors.New("interactable area not found")
	// ErrAreaActive is returned when creating an area whose ID already carries
	// active state.
	ErrAreaActive = errors.New("interactable area already has active state")
	// ErrAreaInactive is returned when an area-create request carries no state
	// to activate the area with.
	ErrAreaInactive = errors.New("area create request carries no active state")

	// ErrPlayerNotFound is returned when a player or session token does not
	// resolve to a connected player.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrNoPosterImage is returned when starring a poster session that has no
	// image set.
	ErrNoPosterImage = errors.New("no poster image to star")
	// ErrAlreadyStarred is returned when a player stars the same poster twice.
	ErrAlreadyStarred = errors.New("player has already starred this poster")

	// ErrNoVideo is returned when updating playback with no current video.
	ErrNoVideo = errors.New("no video is currently playing")
	// ErrVideoNotFound is returned when a playlist URL does not resolve to a
	// real video.
	ErrVideoNotFound = errors.New("video not found")
	// ErrNotHost is returned when a playback mutation comes from a player other
	// than the area's elected host.
	ErrNotHost = errors.New("only the host may control playback")
	// ErrNoHost is returned when a playlist push targets an area with no host.
	ErrNoHost = errors.New("watch together area has no host")
)
