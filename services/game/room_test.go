package game

import (
	"Stop/config"
	game_models "Stop/models/game"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBroadcaster records every emission so tests can assert on the
// outbound event stream without a socket.io server.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	Target  string // room id, player id or "*" for ToAll
	Event   string
	Payload interface{}
}

func (f *fakeBroadcaster) ToRoom(roomID, event string, payload interface{}) {
	f.record(roomID, event, payload)
}

func (f *fakeBroadcaster) ToPlayer(playerID, event string, payload interface{}) {
	f.record(playerID, event, payload)
}

func (f *fakeBroadcaster) ToAll(event string, payload interface{}) {
	f.record("*", event, payload)
}

func (f *fakeBroadcaster) record(target, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emittedEvent{Target: target, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

func testConfig() *config.Config {
	return &config.Config{
		RoundDuration: 40 * time.Millisecond,
		GracePeriod:   30 * time.Millisecond,
	}
}

func newTestRoom(t *testing.T, settings game_models.RoomSettings) (*Registry, *Room, *fakeBroadcaster) {
	t.Helper()
	fake := &fakeBroadcaster{}
	registry := NewRegistry(fake, testConfig())
	room, err := registry.CreateRoom("owner", "Alice", settings)
	require.NoError(t, err)
	return registry, room, fake
}

func joinPlayer(t *testing.T, room *Room, id, name string) {
	t.Helper()
	require.NoError(t, room.CanJoin(id, ""))
	require.NoError(t, room.EstablishSession(id, name))
}

// participant returns the live record; only safe once no timer is in
// flight for it.
func (r *Room) participant(id string) *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findParticipantLocked(id)
}

func (r *Room) state() game_models.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.State
}

func startedRoom(t *testing.T, settings game_models.RoomSettings) (*Registry, *Room, *fakeBroadcaster) {
	t.Helper()
	registry, room, fake := newTestRoom(t, settings)
	joinPlayer(t, room, "bob", "Bob")
	require.NoError(t, room.ToggleReady("bob"))
	require.NoError(t, room.StartGame("owner"))
	return registry, room, fake
}

// validAnswer builds an answer starting with the round's current letter.
func validAnswer(room *Room, suffix string) string {
	return strings.ToLower(room.CurrentLetter) + suffix
}

func TestCreateRoomRegistersReadyOwner(t *testing.T) {
	_, room, _ := newTestRoom(t, validSettings())

	owner := room.participant("owner")
	require.NotNil(t, owner)
	assert.True(t, owner.Ready)
	assert.False(t, owner.Spectator)
	assert.Equal(t, game_models.StateWaiting, room.state())
}

func TestCreateRoomRejectsBadSettings(t *testing.T) {
	fake := &fakeBroadcaster{}
	registry := NewRegistry(fake, testConfig())

	settings := validSettings()
	settings.Categories = nil

	_, err := registry.CreateRoom("owner", "Alice", settings)

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, registry.ListRooms())
}

func TestJoinGate(t *testing.T) {
	_, room, _ := newTestRoom(t, game_models.RoomSettings{
		Name:        "Privada",
		Private:     true,
		Password:    "segredo",
		Categories:  []string{"Fruta"},
		MaxPlayers:  2,
		TotalRounds: 3,
	})

	assert.Equal(t, KindAuthorization, KindOf(room.CanJoin("bob", "errada")))
	require.NoError(t, room.CanJoin("bob", "segredo"))
	require.NoError(t, room.EstablishSession("bob", "Bob"))

	// Room is now at capacity for new joiners
	assert.Equal(t, KindCapacity, KindOf(room.CanJoin("carol", "segredo")))

	// Existing participants always get through, even full
	assert.NoError(t, room.CanJoin("bob", "segredo"))
}

func TestStartGameGate(t *testing.T) {
	_, room, _ := newTestRoom(t, validSettings())

	// Not enough players
	assert.Equal(t, KindStateConflict, KindOf(room.StartGame("owner")))

	joinPlayer(t, room, "bob", "Bob")

	// Bob is not ready yet
	assert.Equal(t, KindStateConflict, KindOf(room.StartGame("owner")))

	// Only the owner can start
	require.NoError(t, room.ToggleReady("bob"))
	assert.Equal(t, KindAuthorization, KindOf(room.StartGame("bob")))

	require.NoError(t, room.StartGame("owner"))
	assert.Equal(t, game_models.StatePlaying, room.state())
	assert.Equal(t, 1, room.CurrentRound)
	assert.Contains(t, "ABCDEFGHIJLMNOPQRSTUVXZ", room.CurrentLetter)

	// Readiness was cleared for the round
	assert.False(t, room.participant("bob").Ready)
}

func TestStopTransitionFirstSignalWins(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())

	require.NoError(t, room.PressStop("bob"))
	assert.Equal(t, game_models.StateValidating, room.state())

	// Redundant stop is ignored, not an error
	require.NoError(t, room.PressStop("owner"))
	assert.Equal(t, 1, fake.count("roundEnd"))

	// The stale round timer must not fire a second roundEnd
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, fake.count("roundEnd"))
}

func TestRoundTimerEndsRound(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, game_models.StateValidating, room.state())
	assert.Equal(t, 1, fake.count("roundEnd"))
}

func TestSubmitAnswersOutsideValidating(t *testing.T) {
	_, room, _ := newTestRoom(t, validSettings())
	joinPlayer(t, room, "bob", "Bob")

	err := room.SubmitAnswers("bob", map[string]string{"Fruta": "Banana"})
	assert.Equal(t, KindStateConflict, KindOf(err))
}

func TestScoringRunsOnceWhenAllSubmitted(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())
	require.NoError(t, room.PressStop("owner"))

	answer := validAnswer(room, "anana")
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": answer, "Cor": ""}))
	assert.Equal(t, 0, fake.count("roundResults"))

	// Submitting twice is a silent no-op while the round is still open
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": "other"}))
	assert.Equal(t, 0, fake.count("roundResults"))

	require.NoError(t, room.SubmitAnswers("bob", map[string]string{"Fruta": answer, "Cor": ""}))
	assert.Equal(t, 1, fake.count("roundResults"))
	assert.Equal(t, game_models.StateWaiting, room.state())

	// Duplicate answers collide: 5 points each, empty scores 0
	assert.Equal(t, 5, room.participant("owner").Score)
	assert.Equal(t, 5, room.participant("bob").Score)

	// Owner auto-ready, others not
	assert.True(t, room.participant("owner").Ready)
	assert.False(t, room.participant("bob").Ready)

	// Once scored the room has left Validating, so late submissions fail
	err := room.SubmitAnswers("bob", map[string]string{"Fruta": answer})
	assert.Equal(t, KindStateConflict, KindOf(err))
	assert.Equal(t, 1, fake.count("roundResults"))
}

func TestLateJoinerIsSpectator(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())

	// joinRoom gate keeps new joiners out of an active round
	assert.Equal(t, KindStateConflict, KindOf(room.CanJoin("carol", "")))

	// but a session arriving anyway (reload after expired record) is
	// admitted as spectator
	require.NoError(t, room.EstablishSession("carol", "Carol"))
	carol := room.participant("carol")
	require.NotNil(t, carol)
	assert.True(t, carol.Spectator)

	// Spectators cannot stop the round nor block completeness
	assert.Equal(t, KindStateConflict, KindOf(room.PressStop("carol")))

	require.NoError(t, room.PressStop("owner"))
	answer := validAnswer(room, "ola")
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": answer}))
	require.NoError(t, room.SubmitAnswers("bob", map[string]string{"Fruta": ""}))

	assert.Equal(t, 1, fake.count("roundResults"))
	_, inResults := room.LastResults.Totals["carol"]
	assert.False(t, inResults)

	// Spectators become fully eligible once the next round starts
	require.NoError(t, room.ToggleReady("bob"))
	require.NoError(t, room.ToggleReady("carol"))
	require.NoError(t, room.StartGame("owner"))
	assert.False(t, room.participant("carol").Spectator)
}

func TestReconnectBeforeGracePreservesState(t *testing.T) {
	_, room, _ := startedRoom(t, validSettings())
	require.NoError(t, room.PressStop("owner"))

	answer := validAnswer(room, "anana")
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": answer}))
	require.NoError(t, room.SubmitAnswers("bob", map[string]string{"Fruta": validAnswer(room, "ergamota")}))

	scoreBefore := room.participant("bob").Score
	require.Greater(t, scoreBefore, 0)

	room.HandleDisconnect("bob")
	require.NoError(t, room.EstablishSession("bob", "Bob"))

	// Wait past the grace period: the cancelled timer must not remove him
	time.Sleep(80 * time.Millisecond)

	bob := room.participant("bob")
	require.NotNil(t, bob)
	assert.True(t, bob.Connected)
	assert.Equal(t, scoreBefore, bob.Score)
}

func TestDisconnectTimeoutRemovesParticipant(t *testing.T) {
	_, room, _ := newTestRoom(t, validSettings())
	joinPlayer(t, room, "bob", "Bob")

	room.HandleDisconnect("bob")
	time.Sleep(100 * time.Millisecond)

	assert.Nil(t, room.participant("bob"))
}

func TestDisconnectDuringValidatingRetriggersCompleteness(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())
	require.NoError(t, room.PressStop("owner"))

	answer := validAnswer(room, "anana")
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": answer}))
	assert.Equal(t, 0, fake.count("roundResults"))

	// Bob never answers and times out; his removal completes the round
	room.HandleDisconnect("bob")
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, fake.count("roundResults"))
	assert.Equal(t, game_models.StateWaiting, room.state())
	_, bobScored := room.LastResults.Totals["bob"]
	assert.False(t, bobScored)
}

func TestDisconnectedParticipantDoesNotBlockCompleteness(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())
	require.NoError(t, room.PressStop("owner"))

	// Bob drops first, then the last connected player submits: scoring
	// runs with Bob still present, holding zero scores.
	room.HandleDisconnect("bob")
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": validAnswer(room, "anana")}))

	assert.Equal(t, 1, fake.count("roundResults"))
	assert.Equal(t, 0, room.LastResults.Totals["bob"])
}

func TestOwnerDisconnectDestroysRoom(t *testing.T) {
	registry, room, fake := newTestRoom(t, validSettings())
	joinPlayer(t, room, "bob", "Bob")

	room.HandleDisconnect("owner")
	time.Sleep(100 * time.Millisecond)

	_, err := registry.GetRoom(room.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, 1, fake.count("ownerDestroyedRoom"))
}

func TestInvalidateAnswerIsIdempotent(t *testing.T) {
	_, room, fake := startedRoom(t, validSettings())
	require.NoError(t, room.PressStop("owner"))

	answer := validAnswer(room, "anana")
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": answer}))
	require.NoError(t, room.SubmitAnswers("bob", map[string]string{"Fruta": answer}))

	require.Equal(t, 5, room.LastResults.Scores["bob"]["Fruta"])
	scoreBefore := room.participant("bob").Score
	resultsBefore := fake.count("roundResults")

	// Only the owner may invalidate
	assert.Equal(t, KindAuthorization, KindOf(room.InvalidateAnswer("bob", "owner", "Fruta")))

	require.NoError(t, room.InvalidateAnswer("owner", "bob", "Fruta"))
	assert.Equal(t, 0, room.LastResults.Scores["bob"]["Fruta"])
	assert.Equal(t, scoreBefore-5, room.participant("bob").Score)
	assert.Equal(t, scoreBefore-5, room.LastResults.Totals["bob"])
	assert.Equal(t, resultsBefore+1, fake.count("roundResults"))

	// Repeating on an already-zeroed cell changes nothing
	require.NoError(t, room.InvalidateAnswer("owner", "bob", "Fruta"))
	assert.Equal(t, scoreBefore-5, room.participant("bob").Score)
	assert.Equal(t, resultsBefore+1, fake.count("roundResults"))
}

func TestFinalRoundLeadsToGameOverAndNewGame(t *testing.T) {
	settings := validSettings()
	settings.TotalRounds = 1
	_, room, fake := startedRoom(t, settings)

	require.NoError(t, room.PressStop("owner"))
	require.NoError(t, room.SubmitAnswers("owner", map[string]string{"Fruta": validAnswer(room, "anana")}))
	require.NoError(t, room.SubmitAnswers("bob", map[string]string{"Fruta": ""}))

	require.Equal(t, game_models.StateWaiting, room.state())
	require.Greater(t, room.participant("owner").Score, room.participant("bob").Score)

	// The owner's next start is redirected to game-over processing
	require.NoError(t, room.StartGame("owner"))
	assert.Equal(t, game_models.StateGameOver, room.state())
	assert.Equal(t, 1, fake.count("gameOver"))
	assert.Equal(t, 1, room.participant("owner").GamesWon)

	// New game resets scores and rounds but keeps the win counter
	assert.Equal(t, KindAuthorization, KindOf(room.RequestNewGame("bob")))
	require.NoError(t, room.RequestNewGame("owner"))
	assert.Equal(t, game_models.StateWaiting, room.state())
	assert.Equal(t, 0, room.CurrentRound)
	assert.Equal(t, 0, room.participant("owner").Score)
	assert.Equal(t, 1, room.participant("owner").GamesWon)
	assert.True(t, room.participant("owner").Ready)
	assert.False(t, room.participant("bob").Ready)
}

func TestUpdateSettings(t *testing.T) {
	_, room, fake := newTestRoom(t, validSettings())
	joinPlayer(t, room, "bob", "Bob")

	// Non-owner rejected
	err := room.UpdateSettings("bob", validSettings())
	assert.Equal(t, KindAuthorization, KindOf(err))

	// Capacity cannot drop below the current participant count
	joinPlayer(t, room, "carol", "Carol")
	shrunk := validSettings()
	shrunk.MaxPlayers = 2
	assert.Equal(t, KindValidation, KindOf(room.UpdateSettings("owner", shrunk)))

	// Going private without a password fails when none was ever set
	private := validSettings()
	private.Private = true
	assert.Equal(t, KindValidation, KindOf(room.UpdateSettings("owner", private)))

	// A valid diff is applied atomically
	changed := validSettings()
	changed.Name = "Sala nova"
	changed.TotalRounds = 5
	messagesBefore := fake.count("newStopMessage")
	require.NoError(t, room.UpdateSettings("owner", changed))
	assert.Equal(t, "Sala nova", room.Name)
	assert.Equal(t, 5, room.TotalRounds)
	// One system message per changed field (name + round count)
	assert.Equal(t, messagesBefore+2, fake.count("newStopMessage"))

	// No changes outside Waiting
	require.NoError(t, room.ToggleReady("bob"))
	require.NoError(t, room.ToggleReady("carol"))
	require.NoError(t, room.StartGame("owner"))
	assert.Equal(t, KindStateConflict, KindOf(room.UpdateSettings("owner", changed)))
}

func TestChatHistoryIsBounded(t *testing.T) {
	_, room, _ := newTestRoom(t, validSettings())

	for i := 0; i < 60; i++ {
		require.NoError(t, room.AddChatMessage("owner", "mensagem", nil))
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	assert.Len(t, room.messages, 50)
	// The creation system message was evicted first
	assert.False(t, room.messages[0].System)
}
