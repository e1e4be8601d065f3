package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Townsquare/models"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopBroadcaster struct{}

func (noopBroadcaster) Emit(event string, payload interface{}) {}

func (noopBroadcaster) DisconnectSockets() {}

type stubResolver struct {
	details map[string]town.VideoDetails
}

func (r stubResolver) VideoDetails(url string) (*town.VideoDetails, error) {
	d, ok := r.details[url]
	if !ok {
		return nil, town.ErrVideoNotFound
	}
	return &d, nil
}

func setupTestRouter(resolver town.VideoResolver) (*gin.Engine, *town.Store) {
	gin.SetMode(gin.TestMode)
	if resolver == nil {
		resolver = stubResolver{}
	}
	store := town.NewStore(func(townID string) town.Broadcaster {
		return noopBroadcaster{}
	}, resolver, []byte("route-test-secret"))
	router := gin.New()
	SetupRoutes(router, store)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// createTownAndJoin provisions a town through the API and a player directly
// through the core, returning the pieces the area endpoints need.
func createTownAndJoin(t *testing.T, router *gin.Engine, store *town.Store) (townID, password, sessionToken string, player *town.Player) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/towns", models.TownCreateParams{
		FriendlyName:     "Route Test Town",
		IsPubliclyListed: true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.TownCreateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	tn, err := store.Get(created.TownID)
	require.NoError(t, err)
	player, joinResp, err := tn.Join("alice")
	require.NoError(t, err)

	return created.TownID, created.TownUpdatePassword, joinResp.SessionToken, player
}

func TestPingRoute(t *testing.T) {
	router, _ := setupTestRouter(nil)

	w := doJSON(t, router, http.MethodGet, "/ping", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "pong"}`, w.Body.String())
}

func TestCreateTownValidation(t *testing.T) {
	router, _ := setupTestRouter(nil)

	// friendlyName is required.
	w := doJSON(t, router, http.MethodPost, "/towns", map[string]interface{}{
		"isPubliclyListed": true,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndListTowns(t *testing.T) {
	router, _ := setupTestRouter(nil)

	w := doJSON(t, router, http.MethodPost, "/towns", models.TownCreateParams{
		FriendlyName:     "Listed",
		IsPubliclyListed: true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var created models.TownCreateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.TownID)
	assert.NotEmpty(t, created.TownUpdatePassword)

	w = doJSON(t, router, http.MethodPost, "/towns", models.TownCreateParams{
		FriendlyName:     "Unlisted",
		IsPubliclyListed: false,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/towns", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.TownSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.TownID, listed[0].TownID)
}

func TestUpdateTownRoute(t *testing.T) {
	router, store := setupTestRouter(nil)
	townID, password, _, _ := createTownAndJoin(t, router, store)

	update := map[string]interface{}{"friendlyName": "Renamed"}

	w := doJSON(t, router, http.MethodPatch, "/towns/"+townID, update, map[string]string{
		"X-Town-Password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/towns/no-such-town", update, map[string]string{
		"X-Town-Password": password,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID, update, map[string]string{
		"X-Town-Password": password,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	tn, err := store.Get(townID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", tn.Summary().FriendlyName)
}

func TestDeleteTownRoute(t *testing.T) {
	router, store := setupTestRouter(nil)
	townID, password, _, _ := createTownAndJoin(t, router, store)

	w := doJSON(t, router, http.MethodDelete, "/towns/"+townID, nil, map[string]string{
		"X-Town-Password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/towns/"+townID, nil, map[string]string{
		"X-Town-Password": password,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := store.Get(townID)
	assert.ErrorIs(t, err, town.ErrTownNotFound)
}

func TestAreaEndpointsRequireSession(t *testing.T) {
	router, store := setupTestRouter(nil)
	townID, _, _, _ := createTownAndJoin(t, router, store)

	w := doJSON(t, router, http.MethodPost, "/towns/"+townID+"/conversationArea", models.ConversationAreaModel{
		ID: "conversation1", Topic: "secrets",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/poster1/incStars", nil, map[string]string{
		"X-Session-Token": "forged",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConversationAreaCreateRoute(t *testing.T) {
	router, store := setupTestRouter(nil)
	townID, _, token, _ := createTownAndJoin(t, router, store)
	auth := map[string]string{"X-Session-Token": token}

	// No topic, no area.
	w := doJSON(t, router, http.MethodPost, "/towns/"+townID+"/conversationArea", models.ConversationAreaModel{
		ID: "conversation1",
	}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/towns/"+townID+"/conversationArea", models.ConversationAreaModel{
		ID: "conversation1", Topic: "standup",
	}, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	// Already active now.
	w = doJSON(t, router, http.MethodPost, "/towns/"+townID+"/conversationArea", models.ConversationAreaModel{
		ID: "conversation1", Topic: "other",
	}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPosterSessionRoutes(t *testing.T) {
	router, store := setupTestRouter(nil)
	townID, _, token, _ := createTownAndJoin(t, router, store)
	auth := map[string]string{"X-Session-Token": token}

	// Starring before any poster exists must fail.
	w := doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/poster1/incStars", nil, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/towns/"+townID+"/posterSessionArea", models.PosterSessionAreaModel{
		ID: "poster1", Title: "Research", ImageContents: "base64stuff",
	}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/poster1/imageContents", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"base64stuff"`, w.Body.String())

	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/poster1/incStars", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())

	// Same player cannot star twice.
	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/poster1/incStars", nil, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Not a poster session area.
	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/watch1/incStars", nil, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchTogetherRoutes(t *testing.T) {
	resolver := stubResolver{details: map[string]town.VideoDetails{
		"https://youtu.be/abc": {Title: "Queued", DurationSec: 120},
	}}
	router, store := setupTestRouter(resolver)
	townID, _, token, player := createTownAndJoin(t, router, store)
	auth := map[string]string{"X-Session-Token": token}

	tn, err := store.Get(townID)
	require.NoError(t, err)
	require.NoError(t, tn.UpdatePlayerLocation(player.ID, models.PlayerLocation{
		X: 340, Y: 660, InteractableID: "watch1",
	}))

	w := doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/watch1/hostID", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"`+player.ID+`"`, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/towns/"+townID+"/watch1/addVideotoPlaylist", map[string]string{
		"url": "https://youtu.be/bogus",
	}, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/towns/"+townID+"/watch1/addVideotoPlaylist", map[string]string{
		"url": "https://youtu.be/abc",
	}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var queued models.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queued))
	assert.Equal(t, "Queued", queued.Title)
	assert.True(t, queued.Pause)

	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/watch1/playNext", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())

	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/watch1/updateVideoInfo", map[string]interface{}{
		"video": models.Video{Pause: false, Speed: 1.5, ElapsedTimeSec: 10},
	}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.Pause)
	assert.Equal(t, 1.5, updated.Speed)
	assert.Equal(t, "Queued", updated.Title)

	// Playlist is drained, so the current video clears.
	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/watch1/playNext", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Body.String())

	// A second joiner is not the host and may not rewrite playback.
	_, guestJoin, err := tn.Join("guest")
	require.NoError(t, err)
	w = doJSON(t, router, http.MethodPatch, "/towns/"+townID+"/watch1/updateVideoInfo", map[string]interface{}{
		"video": models.Video{Pause: true},
	}, map[string]string{"X-Session-Token": guestJoin.SessionToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAreaRoutesUnknownTown(t *testing.T) {
	router, _ := setupTestRouter(nil)

	w := doJSON(t, router, http.MethodPatch, "/towns/no-such-town/poster1/incStars", nil, map[string]string{
		"X-Session-Token": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
