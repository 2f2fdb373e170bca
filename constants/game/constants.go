package game_constants

import "time"

const MaxGameRounds = 15
const MinPlayersToStart = 2

// Category list limits for a room
const (
	MinCategories     = 1
	MaxCategories     = 15
	MaxCategoryLength = 15
)

// Scoring constants
const (
	UniqueAnswerScore    = 10
	DuplicateAnswerScore = 5
)

// Bounded chat/system-message history per room (FIFO eviction)
const MaxChatHistory = 50

// Default timings, overridable through STOP_ROUND_SECONDS and
// STOP_GRACE_SECONDS (see config package)
const (
	DefaultRoundDuration = 60 * time.Second
	DefaultGracePeriod   = 5 * time.Second
)

// RoundLetters is the alphabet the round letter is drawn from.
// K, W and Y are left out because they have almost no dictionary
// presence in Portuguese, where the game comes from. This is
// configuration, not a rule of the game.
const RoundLetters = "ABCDEFGHIJLMNOPQRSTUVXZ"

// SupportedRoomSizes lists the max-participant values a room can be
// created or updated with (what the frontend shows in the selector).
var SupportedRoomSizes = []int{2, 3, 4, 5, 6, 8, 10}

// PlayerColors is the pool of display colors assigned to participants
// in join order. Reused modulo the pool size if a room somehow gets
// more participants than colors.
var PlayerColors = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#008080",
}
