package models

// TownSummary is one entry of the public town listing.
type TownSummary struct {
	TownID           string `json:"townID"`
	FriendlyName     string `json:"friendlyName"`
	CurrentOccupancy int    `json:"currentOccupancy"`
	MaximumOccupancy int    `json:"maximumOccupancy"`
}

// TownCreateParams is the request body for creating a town.
type TownCreateParams struct {
	FriendlyName     string `json:"friendlyName" binding:"required"`
	IsPubliclyListed bool   `json:"isPubliclyListed"`
}

// TownCreateResponse carries the new town's ID and the one-time update password.
type TownCreateResponse struct {
	TownID             string `json:"townID"`
	TownUpdatePassword string `json:"townUpdatePassword"`
}

// TownSettingsUpdate holds the mutable town settings; nil fields are left unchanged.
type TownSettingsUpdate struct {
	FriendlyName     *string `json:"friendlyName"`
	IsPubliclyListed *bool   `json:"isPubliclyListed"`
}

// TownSettings is the broadcast form of a settings change.
type TownSettings struct {
	FriendlyName     string `json:"friendlyName"`
	IsPubliclyListed bool   `json:"isPubliclyListed"`
}

// ChatMessage is relayed verbatim to every client in the town room.
type ChatMessage struct {
	Author      string `json:"author"`
	SID         string `json:"sid"`
	Body        string `json:"body"`
	DateCreated string `json:"dateCreated"`
}

// TownJoinResponse is the initialize payload a client receives right after the
// socket handshake succeeds. It is the only full-state snapshot a client ever
// gets; everything afterwards arrives as incremental broadcasts.
type TownJoinResponse struct {
	UserID           string         `json:"userID"`
	SessionToken     string         `json:"sessionToken"`
	FriendlyName     string         `json:"friendlyName"`
	IsPubliclyListed bool           `json:"isPubliclyListed"`
	CurrentPlayers   []Player       `json:"currentPlayers"`
	Interactables    []Interactable `json:"interactables"`
}
