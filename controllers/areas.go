package controllers

import (
	"errors"
	"log"
	"net/http"

	"Townsquare/models"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
)

// resolveTown looks the town up from the townID path param. Writes the error
// response itself when the town does not exist.
func resolveTown(c *gin.Context, store *town.Store) (*town.Town, bool) {
	t, err := store.Get(c.Param("townID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Town not found"})
		return nil, false
	}
	return t, true
}

// sessionPlayer resolves the caller's X-Session-Token header against the
// town's live sessions. Writes the error response itself on failure.
func sessionPlayer(c *gin.Context, t *town.Town) (*town.Player, bool) {
	player, err := t.PlayerBySessionToken(c.GetHeader("X-Session-Token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
		return nil, false
	}
	return player, true
}

// areaError maps a core error to the matching HTTP response.
func areaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, town.ErrAreaNotFound), errors.Is(err, town.ErrVideoNotFound),
		errors.Is(err, town.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, town.ErrNotHost):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, town.ErrAreaActive), errors.Is(err, town.ErrAreaInactive),
		errors.Is(err, town.ErrNoPosterImage), errors.Is(err, town.ErrAlreadyStarred),
		errors.Is(err, town.ErrNoVideo), errors.Is(err, town.ErrNoHost):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[AREA-ERROR] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// createArea is the shared body of the four area-create endpoints: bind the
// model, stamp the kind discriminant and hand it to the town.
func createArea(store *town.Store, kind models.InteractableKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		if _, ok := sessionPlayer(c, t); !ok {
			return
		}

		var model models.Interactable
		switch kind {
		case models.KindConversation:
			var m models.ConversationAreaModel
			if err := c.ShouldBindJSON(&m); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid area payload"})
				return
			}
			m.Kind = kind
			model = m
		case models.KindViewing:
			var m models.ViewingAreaModel
			if err := c.ShouldBindJSON(&m); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid area payload"})
				return
			}
			m.Kind = kind
			model = m
		case models.KindPoster:
			var m models.PosterSessionAreaModel
			if err := c.ShouldBindJSON(&m); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid area payload"})
				return
			}
			m.Kind = kind
			model = m
		case models.KindWatchTogether:
			var m models.WatchTogetherAreaModel
			if err := c.ShouldBindJSON(&m); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid area payload"})
				return
			}
			m.Kind = kind
			model = m
		}

		if err := t.AddArea(model); err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Area created"})
	}
}

// @Summary Creates a conversation area
// @Tags areas
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town"
// @Param X-Session-Token header string true "Session token issued at join"
// @Param body body models.ConversationAreaModel true "The new conversation area"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /towns/{townID}/conversationArea [post]
func CreateConversationArea(store *town.Store) gin.HandlerFunc {
	return createArea(store, models.KindConversation)
}

// @Summary Creates a viewing area
// @Tags areas
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town"
// @Param X-Session-Token header string true "Session token issued at join"
// @Param body body models.ViewingAreaModel true "The new viewing area"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /towns/{townID}/viewingArea [post]
func CreateViewingArea(store *town.Store) gin.HandlerFunc {
	return createArea(store, models.KindViewing)
}

// @Summary Creates a poster session area
// @Tags areas
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town"
// @Param X-Session-Token header string true "Session token issued at join"
// @Param body body models.PosterSessionAreaModel true "The new poster session area"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /towns/{townID}/posterSessionArea [post]
func CreatePosterSessionArea(store *town.Store) gin.HandlerFunc {
	return createArea(store, models.KindPoster)
}

// @Summary Creates a watch together area
// @Tags areas
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town"
// @Param X-Session-Token header string true "Session token issued at join"
// @Param body body models.WatchTogetherAreaModel true "The new watch together area"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /towns/{townID}/watchTogetherArea [post]
func CreateWatchTogetherArea(store *town.Store) gin.HandlerFunc {
	return createArea(store, models.KindWatchTogether)
}

// @Summary Gets a poster session's image contents
// @Tags areas
// @Produce json
// @Param townID path string true "ID of the town"
// @Param posterSessionId path string true "Interactable ID of the poster session"
// @Param X-Session-Token header string true "Session token issued at join"
// @Success 200 {string} string
// @Failure 404 {object} object{error=string}
// @Router /towns/{townID}/{posterSessionId}/imageContents [patch]
func GetPosterAreaImageContents(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		if _, ok := sessionPlayer(c, t); !ok {
			return
		}
		image, err := t.PosterImageContents(c.Param("interactableID"))
		if err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, image)
	}
}

// @Summary Stars a poster session
// @Description Increments the star count by one, as long as a poster image is set. Each player may star a poster once. Returns the new number of stars.
// @Tags areas
// @Produce json
// @Param townID path string true "ID of the town"
// @Param posterSessionId path string true "Interactable ID of the poster session"
// @Param X-Session-Token header string true "Session token issued at join"
// @Success 200 {integer} int
// @Failure 400 {object} object{error=string}
// @Router /towns/{townID}/{posterSessionId}/incStars [patch]
func IncrementPosterAreaStars(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		player, ok := sessionPlayer(c, t)
		if !ok {
			return
		}
		stars, err := t.IncrementPosterStars(player.ID, c.Param("interactableID"))
		if err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, stars)
	}
}

// @Summary Updates the playback state of a watch together area's current video
// @Description Only the elected host may mutate shared playback state.
// @Tags areas
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town"
// @Param watchTogetherId path string true "Interactable ID of the watch together area"
// @Param X-Session-Token header string true "Session token issued at join"
// @Param body body object{video=models.Video} true "The updated playback state"
// @Success 200 {object} models.Video
// @Failure 403 {object} object{error=string}
// @Router /towns/{townID}/{watchTogetherId}/updateVideoInfo [patch]
func UpdateWatchTogetherVideo(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		player, ok := sessionPlayer(c, t)
		if !ok {
			return
		}
		var body struct {
			Video models.Video `json:"video"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video payload"})
			return
		}
		video, err := t.UpdateWatchTogetherVideo(player.ID, c.Param("interactableID"), body.Video)
		if err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// @Summary Gets the host ID of a watch together area
// @Tags areas
// @Produce json
// @Param townID path string true "ID of the town"
// @Param watchTogetherId path string true "Interactable ID of the watch together area"
// @Param X-Session-Token header string true "Session token issued at join"
// @Success 200 {string} string
// @Failure 404 {object} object{error=string}
// @Router /towns/{townID}/{watchTogetherId}/hostID [patch]
func GetWatchTogetherHostID(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		if _, ok := sessionPlayer(c, t); !ok {
			return
		}
		hostID, err := t.WatchTogetherHost(c.Param("interactableID"))
		if err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, hostID)
	}
}

// @Summary Pushes a video onto a watch together area's playlist
// @Description Resolves the URL to real video metadata and appends it to the playlist tail with fresh playback state.
// @Tags areas
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town"
// @Param watchTogetherId path string true "Interactable ID of the watch together area"
// @Param X-Session-Token header string true "Session token issued at join"
// @Param body body object{url=string} true "The video URL"
// @Success 200 {object} models.Video
// @Failure 404 {object} object{error=string}
// @Router /towns/{townID}/{watchTogetherId}/addVideotoPlaylist [post]
func PushWatchTogetherPlayList(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		player, ok := sessionPlayer(c, t)
		if !ok {
			return
		}
		var body struct {
			URL string `json:"url"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playlist payload"})
			return
		}
		video, err := t.PushToPlaylist(player.ID, c.Param("interactableID"), body.URL)
		if err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// @Summary Plays the next video in a watch together area
// @Description Promotes the head of the playlist to the current video. Returns false when the playlist was empty.
// @Tags areas
// @Produce json
// @Param townID path string true "ID of the town"
// @Param watchTogetherId path string true "Interactable ID of the watch together area"
// @Param X-Session-Token header string true "Session token issued at join"
// @Success 200 {boolean} bool
// @Failure 404 {object} object{error=string}
// @Router /towns/{townID}/{watchTogetherId}/playNext [patch]
func WatchTogetherPlayNext(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTown(c, store)
		if !ok {
			return
		}
		if _, ok := sessionPlayer(c, t); !ok {
			return
		}
		played, err := t.PlayNext(c.Param("interactableID"))
		if err != nil {
			areaError(c, err)
			return
		}
		c.JSON(http.StatusOK, played)
	}
}
