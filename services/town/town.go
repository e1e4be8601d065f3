package town

import (
	"fmt"
	"log"
	"sync"
	"time"

	town_constants "Townsquare/constants/town"
	"Townsquare/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Config carries everything needed to construct a Town.
type Config struct {
	ID               string
	FriendlyName     string
	IsPubliclyListed bool
	Capacity         int
	UpdatePassword   string
	MapObjects       []MapObject
	Broadcaster      Broadcaster
	Resolver         VideoResolver
	JWTSecret        []byte
}

// Town owns the players and interactable areas of one virtual town. Every
// mutation happens under the town's mutex, which is the Go rendition of the
// source system's run-to-completion event loop: mutations on the same town
// never interleave, and distinct towns never contend.
type Town struct {
	mu sync.Mutex

	id               string
	friendlyName     string
	isPubliclyListed bool
	capacity         int
	passwordHash     []byte

	players []*Player
	areas   []Area

	bus       Broadcaster
	resolver  VideoResolver
	jwtSecret []byte
}

// New builds a town and its areas from map data. A malformed map object
// aborts construction.
func New(cfg Config) (*Town, error) {
	areas, err := buildAreas(cfg.MapObjects, cfg.Broadcaster)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.UpdatePassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing town password: %w", err)
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = town_constants.MaxPlayersPerTown
	}
	return &Town{
		id:               cfg.ID,
		friendlyName:     cfg.FriendlyName,
		isPubliclyListed: cfg.IsPubliclyListed,
		capacity:         capacity,
		passwordHash:     hash,
		areas:            areas,
		bus:              cfg.Broadcaster,
		resolver:         cfg.Resolver,
		jwtSecret:        cfg.JWTSecret,
	}, nil
}

func (t *Town) ID() string { return t.id }

// Summary returns this town's public listing entry.
func (t *Town) Summary() models.TownSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.TownSummary{
		TownID:           t.id,
		FriendlyName:     t.friendlyName,
		CurrentOccupancy: len(t.players),
		MaximumOccupancy: t.capacity,
	}
}

// IsPubliclyListed reports whether this town appears in the public listing.
func (t *Town) IsPubliclyListed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isPubliclyListed
}

// Occupancy returns the number of connected players.
func (t *Town) Occupancy() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.players)
}

// CheckPassword reports whether the supplied password matches the town's
// update password.
func (t *Town) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(t.passwordHash, []byte(password)) == nil
}

// Join admits a new player, issues their session token, announces them to the
// room and returns the full-state snapshot the client needs to initialize.
func (t *Town) Join(userName string) (*Player, models.TownJoinResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.players) >= t.capacity {
		return nil, models.TownJoinResponse{}, ErrTownFull
	}

	player := NewPlayer(userName)
	token, err := t.issueSessionToken(player.ID)
	if err != nil {
		return nil, models.TownJoinResponse{}, err
	}
	player.SessionToken = token
	t.players = append(t.players, player)

	t.bus.Emit("playerJoined", player.ToModel())
	log.Printf("[JOIN] player %s (%s) joined town %s", player.UserName, player.ID, t.id)

	return player, models.TownJoinResponse{
		UserID:           player.ID,
		SessionToken:     token,
		FriendlyName:     t.friendlyName,
		IsPubliclyListed: t.isPubliclyListed,
		CurrentPlayers:   t.playerModels(),
		Interactables:    t.interactableModels(),
	}, nil
}

// Leave disconnects a player: removes them from whatever area they occupy,
// drops them from the roster and announces the departure. Unknown players are
// a logged no-op, so duplicate disconnect events are harmless.
func (t *Town) Leave(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	player := t.playerByID(playerID)
	if player == nil {
		log.Printf("[DISCONNECT] player %s not in town %s, ignoring", playerID, t.id)
		return
	}
	if player.Location.InteractableID != "" {
		if area := t.areaByID(player.Location.InteractableID); area != nil {
			area.Remove(player)
		}
	}
	for i, p := range t.players {
		if p.ID == playerID {
			t.players = append(t.players[:i], t.players[i+1:]...)
			break
		}
	}
	t.bus.Emit("playerDisconnect", player.ToModel())
	log.Printf("[DISCONNECT] player %s left town %s", playerID, t.id)
}

// UpdatePlayerLocation moves a player and reconciles area occupancy with the
// new location: leaving an area triggers its removal logic, entering one
// triggers its add logic, and either way every client hears about the move.
func (t *Town) UpdatePlayerLocation(playerID string, loc models.PlayerLocation) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player := t.playerByID(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}

	prev := player.Location.InteractableID
	next := loc.InteractableID

	// Resolve the destination before touching anything, so an unknown area ID
	// leaves the player exactly where they were.
	var nextArea Area
	if next != "" && next != prev {
		if nextArea = t.areaByID(next); nextArea == nil {
			return ErrAreaNotFound
		}
	}

	player.Location.X = loc.X
	player.Location.Y = loc.Y
	player.Location.Rotation = loc.Rotation
	player.Location.Moving = loc.Moving

	if prev == next {
		t.bus.Emit("playerMoved", player.ToModel())
		return nil
	}
	if prev != "" {
		if area := t.areaByID(prev); area != nil {
			area.Remove(player)
		}
	}
	if nextArea != nil {
		nextArea.Add(player)
	}
	return nil
}

// UpdateInteractable overwrites an area's mutable state from a client-supplied
// snapshot and re-broadcasts the result. Watch-together playback state may
// only be rewritten by the area's current host.
func (t *Town) UpdateInteractable(callerID string, m models.Interactable) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	area := t.areaByID(m.InteractableID())
	if area == nil || area.Kind() != m.InteractableKind() {
		return ErrAreaNotFound
	}
	if wt, ok := area.(*WatchTogetherArea); ok && wt.HostID() != "" && wt.HostID() != callerID {
		return ErrNotHost
	}
	if err := area.UpdateModel(m); err != nil {
		return err
	}
	t.bus.Emit("interactableUpdate", area.ToModel())
	return nil
}

// AddArea activates a map-declared area with the supplied starting state.
// Fails if the ID is unknown, the kinds disagree, or the area already has
// active state. Players already standing inside the bounding box become the
// initial occupants.
func (t *Town) AddArea(m models.Interactable) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	area := t.areaByID(m.InteractableID())
	if area == nil || area.Kind() != m.InteractableKind() {
		return ErrAreaNotFound
	}
	if area.Active() {
		return ErrAreaActive
	}
	switch model := m.(type) {
	case models.ConversationAreaModel:
		if model.Topic == "" {
			return ErrAreaInactive
		}
	case models.ViewingAreaModel:
		if model.Video == "" {
			return ErrAreaInactive
		}
	case models.PosterSessionAreaModel:
		if model.ImageContents == "" {
			return ErrAreaInactive
		}
	}
	if err := area.UpdateModel(m); err != nil {
		return err
	}
	for _, p := range t.players {
		if p.Location.InteractableID == "" && area.Contains(p.Location) {
			area.Add(p)
		}
	}
	t.bus.Emit("interactableUpdate", area.ToModel())
	log.Printf("[AREA] activated %s %s in town %s", area.Kind(), area.ID(), t.id)
	return nil
}

// IncrementPosterStars stars a poster on behalf of a player and broadcasts
// the new count.
func (t *Town) IncrementPosterStars(callerID, areaID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	poster, err := t.posterByID(areaID)
	if err != nil {
		return 0, err
	}
	stars, err := poster.IncrementStars(callerID)
	if err != nil {
		return 0, err
	}
	t.bus.Emit("interactableUpdate", poster.ToModel())
	return stars, nil
}

// PosterImageContents returns a poster area's current image, empty if none.
func (t *Town) PosterImageContents(areaID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	poster, err := t.posterByID(areaID)
	if err != nil {
		return "", err
	}
	return poster.ImageContents(), nil
}

// WatchTogetherHost returns the host player ID of a watch-together area,
// empty if the area is vacant.
func (t *Town) WatchTogetherHost(areaID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.watchTogetherByID(areaID)
	if err != nil {
		return "", err
	}
	return area.HostID(), nil
}

// PushToPlaylist resolves a video URL and appends it to a watch-together
// area's playlist. The metadata fetch runs outside the town lock, so two
// concurrent pushes both succeed but append in resolve-completion order;
// that race is inherited from the source system and deliberate.
func (t *Town) PushToPlaylist(callerID, areaID, url string) (models.Video, error) {
	t.mu.Lock()
	area, err := t.watchTogetherByID(areaID)
	if err != nil {
		t.mu.Unlock()
		return models.Video{}, err
	}
	if area.HostID() == "" {
		t.mu.Unlock()
		return models.Video{}, ErrNoHost
	}
	t.mu.Unlock()

	details, err := t.resolver.VideoDetails(url)
	if err != nil {
		return models.Video{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// The area may have emptied and reset while the fetch was in flight, in
	// which case the push must not revive its playlist.
	area, err = t.watchTogetherByID(areaID)
	if err != nil {
		return models.Video{}, err
	}
	if area.HostID() == "" {
		return models.Video{}, ErrNoHost
	}
	video := area.PushToPlaylist(url, callerID, *details)
	t.bus.Emit("interactableUpdate", area.ToModel())
	return video, nil
}

// PlayNext promotes the head of a watch-together playlist to the current
// video, broadcasts the result and reports whether anything was queued.
func (t *Town) PlayNext(areaID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.watchTogetherByID(areaID)
	if err != nil {
		return false, err
	}
	played := area.PlayNext()
	t.bus.Emit("interactableUpdate", area.ToModel())
	return played, nil
}

// UpdateWatchTogetherVideo overwrites the current video's playback fields and
// broadcasts. Only the elected host may mutate shared playback.
func (t *Town) UpdateWatchTogetherVideo(callerID, areaID string, v models.Video) (models.Video, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, err := t.watchTogetherByID(areaID)
	if err != nil {
		return models.Video{}, err
	}
	if area.HostID() != callerID {
		return models.Video{}, ErrNotHost
	}
	if err := area.UpdateVideo(v); err != nil {
		return models.Video{}, err
	}
	t.bus.Emit("interactableUpdate", area.ToModel())
	return *area.Video(), nil
}

// ChatMessage relays a chat message to every client in the town room.
func (t *Town) ChatMessage(msg models.ChatMessage) {
	t.bus.Emit("chatMessage", msg)
}

// UpdateSettings applies a settings change and broadcasts the new values.
func (t *Town) UpdateSettings(update models.TownSettingsUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if update.FriendlyName != nil {
		t.friendlyName = *update.FriendlyName
	}
	if update.IsPubliclyListed != nil {
		t.isPubliclyListed = *update.IsPubliclyListed
	}
	t.bus.Emit("townSettingsUpdated", models.TownSettings{
		FriendlyName:     t.friendlyName,
		IsPubliclyListed: t.isPubliclyListed,
	})
}

// Close announces that the town is being torn down, then drops every client
// connection in the room so no handler can keep mutating a deleted town.
func (t *Town) Close() {
	t.bus.Emit("townClosing", nil)
	t.bus.DisconnectSockets()
	log.Printf("[TOWN] town %s closing", t.id)
}

// PlayerBySessionToken resolves a session token to the connected player it
// was issued to. The token must carry a valid signature for this town and
// still belong to a live session.
func (t *Town) PlayerBySessionToken(token string) (*Player, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrPlayerNotFound
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if townID, _ := claims["town"].(string); townID != t.id {
		return nil, ErrPlayerNotFound
	}
	playerID, _ := claims["sub"].(string)

	t.mu.Lock()
	defer t.mu.Unlock()
	player := t.playerByID(playerID)
	if player == nil || player.SessionToken != token {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// Players returns a snapshot of the current roster.
func (t *Town) Players() []models.Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playerModels()
}

// Interactables returns a snapshot of every area's model.
func (t *Town) Interactables() []models.Interactable {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interactableModels()
}

func (t *Town) playerModels() []models.Player {
	out := make([]models.Player, len(t.players))
	for i, p := range t.players {
		out[i] = p.ToModel()
	}
	return out
}

func (t *Town) interactableModels() []models.Interactable {
	out := make([]models.Interactable, len(t.areas))
	for i, a := range t.areas {
		out[i] = a.ToModel()
	}
	return out
}

func (t *Town) playerByID(id string) *Player {
	for _, p := range t.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (t *Town) areaByID(id string) Area {
	for _, a := range t.areas {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

func (t *Town) posterByID(id string) (*PosterSessionArea, error) {
	area := t.areaByID(id)
	poster, ok := area.(*PosterSessionArea)
	if !ok {
		return nil, ErrAreaNotFound
	}
	return poster, nil
}

func (t *Town) watchTogetherByID(id string) (*WatchTogetherArea, error) {
	area := t.areaByID(id)
	wt, ok := area.(*WatchTogetherArea)
	if !ok {
		return nil, ErrAreaNotFound
	}
	return wt, nil
}

func (t *Town) issueSessionToken(playerID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  playerID,
		"town": t.id,
		"iat":  time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}
