package game

import "time"

// RoomState is the round state machine's current state, also shown as
// the room's status in the public listing.
type RoomState string

const (
	StateWaiting    RoomState = "waiting"
	StatePlaying    RoomState = "playing"
	StateValidating RoomState = "validating"
	StateGameOver   RoomState = "gameover"
)

// RoomSettings is what the owner provides on createRoom and
// ownerUpdateRoomSettings. The password never leaves the server.
type RoomSettings struct {
	Name        string   `json:"name"`
	Private     bool     `json:"private"`
	Password    string   `json:"-"`
	Categories  []string `json:"categories"`
	MaxPlayers  int      `json:"max_players"`
	TotalRounds int      `json:"total_rounds"`
}

// RoomSummary is the sanitized projection used for the public room
// listing. It deliberately carries no password, category list or
// participant identities.
type RoomSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"max_players"`
	Private    bool      `json:"private"`
	Status     RoomState `json:"status"`
}

// RoundResults is the scoring output for one round: per-participant
// per-category points plus per-participant totals. It stays attached
// to the room until the next round starts so reconnecting players can
// still see it.
type RoundResults struct {
	Round  int                       `json:"round"`
	Letter string                    `json:"letter"`
	Scores map[string]map[string]int `json:"scores"`
	Totals map[string]int            `json:"totals"`
}

// SystemMessage is one entry in a room's bounded chat/system history.
// System entries (joins, leaves, settings changes, round markers) have
// System set and no author.
type SystemMessage struct {
	Author   string    `json:"author,omitempty"`
	Text     string    `json:"text"`
	Mentions []string  `json:"mentions,omitempty"`
	System   bool      `json:"system"`
	SentAt   time.Time `json:"sent_at"`
}
