package game

import (
	"Stop/config"
	game_constants "Stop/constants/game"
	game_models "Stop/models/game"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Room is one instance of the game. Every state-mutating operation
// takes the room mutex and runs to completion before the next event is
// processed; timer callbacks re-enter through the same mutex and are
// ignored when the epoch they were scheduled for has been superseded.
//
// Lock discipline: registry-level work (public listing refresh, room
// destruction) is never done while holding the room mutex.
type Room struct {
	mu       sync.Mutex
	registry *Registry

	ID          string
	Name        string
	OwnerID     string
	Private     bool
	password    string
	Categories  []string
	MaxPlayers  int
	TotalRounds int

	State         game_models.RoomState
	CurrentRound  int
	CurrentLetter string
	RoundDeadline time.Time
	LastResults   *game_models.RoundResults

	participants []*Participant
	round        *roundData
	messages     []game_models.SystemMessage

	epoch      int
	roundTimer *time.Timer
	destroyed  bool

	roundDuration time.Duration
	gracePeriod   time.Duration
}

// Participant is a player's persistent identity inside a room. It
// survives reconnects; only its Connected flag tracks the transient
// connection.
type Participant struct {
	ID          string
	DisplayName string
	Color       string
	Connected   bool
	Score       int
	Ready       bool
	Spectator   bool
	GamesWon    int

	removalTimer *time.Timer
}

// roundData only exists while the room is Playing or Validating and is
// thrown away when a new round starts.
type roundData struct {
	answers   map[string]map[string]string
	submitted map[string]bool
	eligible  map[string]bool
	stoppedBy string
	scored    bool
}

func newRoom(registry *Registry, id, ownerID, ownerName string,
	settings game_models.RoomSettings, cfg *config.Config) *Room {

	room := &Room{
		registry:      registry,
		ID:            id,
		Name:          settings.Name,
		OwnerID:       ownerID,
		Private:       settings.Private,
		password:      settings.Password,
		Categories:    settings.Categories,
		MaxPlayers:    settings.MaxPlayers,
		TotalRounds:   settings.TotalRounds,
		State:         game_models.StateWaiting,
		roundDuration: cfg.RoundDuration,
		gracePeriod:   cfg.GracePeriod,
	}

	owner := &Participant{
		ID:          ownerID,
		DisplayName: ownerName,
		Color:       game_constants.PlayerColors[0],
		Connected:   true,
		Ready:       true,
	}
	room.participants = append(room.participants, owner)
	room.appendSystemMessageLocked(fmt.Sprintf("%s created the room", ownerName))

	return room
}

// ---------------------------------------------------------------
// Join / session / disconnect
// ---------------------------------------------------------------

// CanJoin is the joinRoom gate. Existing participants (reconnects) are
// always let through; new joiners are checked against password,
// capacity and the room state.
func (r *Room) CanJoin(playerID, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	if r.findParticipantLocked(playerID) != nil {
		return nil
	}
	if r.Private && password != r.password {
		return ErrAuthorization("wrong password")
	}
	if len(r.participants) >= r.MaxPlayers {
		return ErrCapacity("room is full")
	}
	if r.State != game_models.StateWaiting {
		return ErrStateConflict("a game is already in progress in this room")
	}
	return nil
}

// EstablishSession is the idempotent playerReady handshake. A known
// participant id is a reconnect: the pending removal timer is
// cancelled and score/readiness/spectator state kept. An unknown id is
// a first join, admitted as spectator if a round is underway. Either
// way the caller gets the full room snapshot and everyone gets the
// refreshed participant list.
func (r *Room) EstablishSession(playerID, displayName string) error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return ErrNotFound("room %s no longer exists", r.ID)
	}

	participant := r.findParticipantLocked(playerID)
	if participant != nil {
		if participant.removalTimer != nil {
			participant.removalTimer.Stop()
			participant.removalTimer = nil
		}
		if !participant.Connected {
			log.Printf("[SESSION] %s reconnected to room %s", participant.DisplayName, r.ID)
		}
		participant.Connected = true
		if displayName != "" {
			participant.DisplayName = displayName
		}
	} else {
		if len(r.participants) >= r.MaxPlayers {
			r.mu.Unlock()
			return ErrCapacity("room is full")
		}
		participant = &Participant{
			ID:          playerID,
			DisplayName: displayName,
			Color:       r.nextColorLocked(),
			Connected:   true,
		}
		if r.State != game_models.StateWaiting {
			participant.Spectator = true
			r.appendSystemMessageLocked(fmt.Sprintf("%s joined as a spectator", displayName))
		} else {
			r.appendSystemMessageLocked(fmt.Sprintf("%s joined the room", displayName))
		}
		r.participants = append(r.participants, participant)
		log.Printf("[SESSION] %s joined room %s (spectator: %v)",
			displayName, r.ID, participant.Spectator)
	}

	r.emitToPlayerLocked(playerID, "roomInfo", r.roomInfoLocked())
	r.emitToPlayerLocked(playerID, "stopChatHistory", gin.H{
		"room_id":  r.ID,
		"messages": append([]game_models.SystemMessage(nil), r.messages...),
	})
	r.emitPlayerListLocked()
	r.emitOwnerCanStartLocked()
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
	return nil
}

// HandleDisconnect marks the participant disconnected and arms the
// grace-period timer. Reconnecting before it fires cancels it; firing
// with no reconnection removes the participant, or destroys the whole
// room if the owner is the one who is gone.
func (r *Room) HandleDisconnect(playerID string) {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	participant := r.findParticipantLocked(playerID)
	if participant == nil {
		r.mu.Unlock()
		return
	}

	participant.Connected = false
	if participant.removalTimer != nil {
		participant.removalTimer.Stop()
	}
	participant.removalTimer = time.AfterFunc(r.gracePeriod, func() {
		r.finalizeDisconnect(playerID)
	})

	log.Printf("[DISCONNECT] %s lost connection to room %s, grace period %s",
		participant.DisplayName, r.ID, r.gracePeriod)

	r.emitPlayerListLocked()
	r.mu.Unlock()
}

// finalizeDisconnect runs when the grace period expires. A reconnect
// in the meantime makes it a no-op.
func (r *Room) finalizeDisconnect(playerID string) {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	participant := r.findParticipantLocked(playerID)
	if participant == nil || participant.Connected {
		r.mu.Unlock()
		return
	}

	if playerID == r.OwnerID {
		r.mu.Unlock()
		log.Printf("[DISCONNECT] Owner of room %s did not come back, destroying room", r.ID)
		r.registry.DestroyRoom(r.ID, true)
		return
	}

	r.removeParticipantLocked(participant)
	if r.State == game_models.StateValidating {
		r.maybeScoreLocked()
	}
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
}

func (r *Room) removeParticipantLocked(participant *Participant) {
	for i, p := range r.participants {
		if p.ID == participant.ID {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			break
		}
	}
	if participant.removalTimer != nil {
		participant.removalTimer.Stop()
		participant.removalTimer = nil
	}
	log.Printf("[DISCONNECT] %s removed from room %s", participant.DisplayName, r.ID)
	r.appendSystemMessageLocked(fmt.Sprintf("%s left the room", participant.DisplayName))
	r.emitPlayerListLocked()
	r.emitOwnerCanStartLocked()
}

// ---------------------------------------------------------------
// Waiting: readiness and start
// ---------------------------------------------------------------

func (r *Room) ToggleReady(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	participant := r.findParticipantLocked(playerID)
	if participant == nil {
		return ErrNotFound("you are not in this room")
	}
	if r.State != game_models.StateWaiting {
		return ErrStateConflict("readiness can only be changed while waiting")
	}

	participant.Ready = !participant.Ready
	r.emitPlayerListLocked()
	r.emitOwnerCanStartLocked()
	return nil
}

// StartGame is the owner's start/advance action. From Waiting it either
// starts the next round or, when all rounds have been played, runs the
// terminal game-over processing instead.
func (r *Room) StartGame(playerID string) error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	if playerID != r.OwnerID {
		r.mu.Unlock()
		return ErrAuthorization("only the room owner can start the game")
	}
	if r.State != game_models.StateWaiting {
		r.mu.Unlock()
		return ErrStateConflict("the game can only be started while waiting")
	}

	if r.CurrentRound >= r.TotalRounds {
		r.finishGameLocked()
		r.mu.Unlock()
		r.registry.BroadcastRoomList()
		return nil
	}

	if len(r.participants) < game_constants.MinPlayersToStart {
		r.mu.Unlock()
		return ErrStateConflict("at least %d players are needed to start",
			game_constants.MinPlayersToStart)
	}
	for _, p := range r.participants {
		if !p.Ready {
			r.mu.Unlock()
			return ErrStateConflict("%s is not ready yet", p.DisplayName)
		}
	}

	r.startRoundLocked()
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
	return nil
}

func (r *Room) startRoundLocked() {
	r.CurrentRound++
	r.CurrentLetter = drawLetter()
	r.LastResults = nil
	r.round = &roundData{
		answers:   make(map[string]map[string]string),
		submitted: make(map[string]bool),
		eligible:  make(map[string]bool),
	}

	// Spectators present at round start become fully eligible players.
	for _, p := range r.participants {
		p.Ready = false
		p.Spectator = false
		r.round.eligible[p.ID] = true
	}

	r.State = game_models.StatePlaying
	r.epoch++
	epoch := r.epoch
	r.RoundDeadline = time.Now().Add(r.roundDuration)

	if r.roundTimer != nil {
		r.roundTimer.Stop()
	}
	r.roundTimer = time.AfterFunc(r.roundDuration, func() {
		r.roundTimeout(epoch)
	})

	log.Printf("[ROUND-START] Room %s round %d/%d with letter %s",
		r.ID, r.CurrentRound, r.TotalRounds, r.CurrentLetter)

	r.appendSystemMessageLocked(fmt.Sprintf("Round %d started with the letter %s",
		r.CurrentRound, r.CurrentLetter))
	r.emitToRoomLocked("roundStart", gin.H{
		"room_id":          r.ID,
		"round":            r.CurrentRound,
		"total_rounds":     r.TotalRounds,
		"letter":           r.CurrentLetter,
		"categories":       r.Categories,
		"duration_seconds": int(r.roundDuration.Seconds()),
		"ends_at":          r.RoundDeadline.Format(time.RFC3339),
	})
}

// ---------------------------------------------------------------
// Playing: stop signal and round timer
// ---------------------------------------------------------------

// roundTimeout fires when the round duration elapses. The epoch guard
// turns a stale timer racing a newer round into a no-op.
func (r *Room) roundTimeout(epoch int) {
	r.mu.Lock()
	if r.destroyed || epoch != r.epoch || r.State != game_models.StatePlaying {
		r.mu.Unlock()
		return
	}
	log.Printf("[ROUND-TIMEOUT] Room %s round %d ran out of time", r.ID, r.CurrentRound)
	r.endRoundLocked("")
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
}

// PressStop moves Playing to Validating. The first signal wins;
// redundant signals arriving after the transition are ignored.
func (r *Room) PressStop(playerID string) error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	participant := r.findParticipantLocked(playerID)
	if participant == nil {
		r.mu.Unlock()
		return ErrNotFound("you are not in this room")
	}
	if r.State == game_models.StateValidating {
		// Someone else stopped first.
		r.mu.Unlock()
		return nil
	}
	if r.State != game_models.StatePlaying {
		r.mu.Unlock()
		return ErrStateConflict("no round is in progress")
	}
	if participant.Spectator {
		r.mu.Unlock()
		return ErrStateConflict("spectators cannot stop the round")
	}

	log.Printf("[ROUND-STOP] %s pressed stop in room %s", participant.DisplayName, r.ID)
	r.endRoundLocked(playerID)
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
	return nil
}

func (r *Room) endRoundLocked(stoppedBy string) {
	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}
	r.epoch++
	r.State = game_models.StateValidating
	r.round.stoppedBy = stoppedBy

	stoppedByName := ""
	if stoppedBy != "" {
		if p := r.findParticipantLocked(stoppedBy); p != nil {
			stoppedByName = p.DisplayName
		}
		r.appendSystemMessageLocked(fmt.Sprintf("%s shouted Stop!", stoppedByName))
	} else {
		r.appendSystemMessageLocked("Time is up!")
	}

	r.emitToRoomLocked("roundEnd", gin.H{
		"room_id":         r.ID,
		"round":           r.CurrentRound,
		"stopped_by":      stoppedBy,
		"stopped_by_name": stoppedByName,
	})
}

// ---------------------------------------------------------------
// Validating: answer collection and scoring
// ---------------------------------------------------------------

// SubmitAnswers stores one participant's answer set and re-evaluates
// round completeness. Submitting twice is a no-op.
func (r *Room) SubmitAnswers(playerID string, answers map[string]string) error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	participant := r.findParticipantLocked(playerID)
	if participant == nil {
		r.mu.Unlock()
		return ErrNotFound("you are not in this room")
	}
	if r.State != game_models.StateValidating {
		r.mu.Unlock()
		return ErrStateConflict("answers can only be submitted after the round is stopped")
	}
	if r.round == nil || !r.round.eligible[playerID] {
		r.mu.Unlock()
		return ErrStateConflict("you are not part of the current round")
	}
	if r.round.submitted[playerID] {
		r.mu.Unlock()
		return nil
	}

	copied := make(map[string]string, len(answers))
	for category, text := range answers {
		copied[category] = text
	}
	r.round.answers[playerID] = copied
	r.round.submitted[playerID] = true

	log.Printf("[ANSWERS] %s submitted answers for room %s round %d",
		participant.DisplayName, r.ID, r.CurrentRound)

	scored := r.maybeScoreLocked()
	r.mu.Unlock()

	if scored {
		r.registry.BroadcastRoomList()
	}
	return nil
}

// maybeScoreLocked runs the scoring engine once every eligible,
// currently-connected participant has submitted. Called after every
// submission and after every removal during Validating; the scored
// flag guarantees a round is never scored twice.
func (r *Room) maybeScoreLocked() bool {
	if r.State != game_models.StateValidating || r.round == nil || r.round.scored {
		return false
	}
	for _, p := range r.participants {
		if r.round.eligible[p.ID] && p.Connected && !r.round.submitted[p.ID] {
			return false
		}
	}
	r.scoreRoundLocked()
	return true
}

func (r *Room) scoreRoundLocked() {
	eligible := make([]string, 0, len(r.participants))
	for _, p := range r.participants {
		if r.round.eligible[p.ID] {
			eligible = append(eligible, p.ID)
		}
	}

	scores, totals := ScoreRound(r.Categories, r.CurrentLetter, r.round.answers, eligible)

	for _, p := range r.participants {
		p.Score += totals[p.ID]
	}

	r.LastResults = &game_models.RoundResults{
		Round:  r.CurrentRound,
		Letter: r.CurrentLetter,
		Scores: scores,
		Totals: totals,
	}
	r.round.scored = true
	r.State = game_models.StateWaiting

	// Owner is ready for the next round by default, everyone else not.
	for _, p := range r.participants {
		p.Ready = p.ID == r.OwnerID
	}

	log.Printf("[SCORING] Room %s round %d scored (%d participants)",
		r.ID, r.CurrentRound, len(eligible))

	r.emitRoundResultsLocked()
	r.emitPlayerListLocked()
	r.emitOwnerCanStartLocked()
}

// InvalidateAnswer zeroes a single participant's single-category score
// after results are shown. The only post-hoc mutation path; repeating
// it on an already-zeroed cell is a no-op.
func (r *Room) InvalidateAnswer(requesterID, targetID, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	if requesterID != r.OwnerID {
		return ErrAuthorization("only the room owner can invalidate answers")
	}
	if r.LastResults == nil {
		return ErrStateConflict("there are no results to invalidate")
	}
	categoryScores, ok := r.LastResults.Scores[targetID]
	if !ok {
		return ErrNotFound("no scored answers for that player")
	}
	points, ok := categoryScores[category]
	if !ok {
		return ErrNotFound("unknown category %q", category)
	}
	if points == 0 {
		return nil
	}

	categoryScores[category] = 0
	r.LastResults.Totals[targetID] -= points
	if p := r.findParticipantLocked(targetID); p != nil {
		p.Score -= points
		r.appendSystemMessageLocked(fmt.Sprintf("The owner invalidated %s's answer for %s",
			p.DisplayName, category))
	}

	log.Printf("[SCORING] Room %s: invalidated %s/%s (-%d points)",
		r.ID, targetID, category, points)

	r.emitRoundResultsLocked()
	r.emitPlayerListLocked()
	return nil
}

// ---------------------------------------------------------------
// Game over / new game
// ---------------------------------------------------------------

// finishGameLocked runs the terminal processing: the first participant
// holding the highest cumulative score wins (documented tie-break, not
// a fairness guarantee) and has their games-won counter incremented.
func (r *Room) finishGameLocked() {
	var winner *Participant
	for _, p := range r.participants {
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}

	r.State = game_models.StateGameOver
	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}
	r.epoch++

	payload := gin.H{
		"room_id": r.ID,
		"players": r.playerListLocked(),
	}
	if winner != nil {
		winner.GamesWon++
		payload["winner_id"] = winner.ID
		payload["winner_name"] = winner.DisplayName
		payload["winner_games_won"] = winner.GamesWon
		r.appendSystemMessageLocked(fmt.Sprintf("%s won the game with %d points!",
			winner.DisplayName, winner.Score))
		log.Printf("[GAME-END] Room %s: %s won with %d points", r.ID, winner.DisplayName, winner.Score)
	}

	r.emitToRoomLocked("gameOver", payload)
}

// RequestNewGame resets scores, round counter and spectator flags and
// returns the room to Waiting. Games-won counters survive the reset.
func (r *Room) RequestNewGame(playerID string) error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	if playerID != r.OwnerID {
		r.mu.Unlock()
		return ErrAuthorization("only the room owner can start a new game")
	}
	if r.State != game_models.StateGameOver {
		r.mu.Unlock()
		return ErrStateConflict("a new game can only be started after the current one ends")
	}

	for _, p := range r.participants {
		p.Score = 0
		p.Spectator = false
		p.Ready = p.ID == r.OwnerID
	}
	r.CurrentRound = 0
	r.CurrentLetter = ""
	r.LastResults = nil
	r.round = nil
	r.State = game_models.StateWaiting
	r.epoch++

	log.Printf("[NEW-GAME] Room %s reset for a new game", r.ID)
	r.appendSystemMessageLocked("A new game is starting")

	r.emitToRoomLocked("roomInfo", r.roomInfoLocked())
	r.emitPlayerListLocked()
	r.emitOwnerCanStartLocked()
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
	return nil
}

// ---------------------------------------------------------------
// Settings
// ---------------------------------------------------------------

// UpdateSettings is the owner-only mutation path, valid only while
// Waiting. Either every check passes and the whole diff is applied, or
// nothing changes.
func (r *Room) UpdateSettings(playerID string, settings game_models.RoomSettings) error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	if playerID != r.OwnerID {
		r.mu.Unlock()
		return ErrAuthorization("only the room owner can change the settings")
	}
	if r.State != game_models.StateWaiting {
		r.mu.Unlock()
		return ErrStateConflict("settings can only be changed between games")
	}

	// Going private without a password is fine only if one is already set.
	if settings.Private && settings.Password == "" {
		settings.Password = r.password
	}
	if err := ValidateSettings(&settings); err != nil {
		r.mu.Unlock()
		return err
	}
	if settings.MaxPlayers < len(r.participants) {
		r.mu.Unlock()
		return ErrValidation("max players cannot be lower than the current %d participants",
			len(r.participants))
	}

	if settings.Name != r.Name {
		r.appendSystemMessageLocked(fmt.Sprintf("The room was renamed to %q", settings.Name))
	}
	if settings.TotalRounds != r.TotalRounds {
		r.appendSystemMessageLocked(fmt.Sprintf("The game now has %d rounds", settings.TotalRounds))
	}
	if settings.MaxPlayers != r.MaxPlayers {
		r.appendSystemMessageLocked(fmt.Sprintf("The room now fits %d players", settings.MaxPlayers))
	}
	if settings.Private != r.Private {
		if settings.Private {
			r.appendSystemMessageLocked("The room is now private")
		} else {
			r.appendSystemMessageLocked("The room is now public")
		}
	}

	r.Name = settings.Name
	r.Private = settings.Private
	r.password = settings.Password
	r.Categories = settings.Categories
	r.MaxPlayers = settings.MaxPlayers
	r.TotalRounds = settings.TotalRounds

	log.Printf("[SETTINGS] Room %s settings updated by owner", r.ID)

	r.emitToRoomLocked("roomInfo", r.roomInfoLocked())
	r.mu.Unlock()

	r.registry.BroadcastRoomList()
	return nil
}

// ---------------------------------------------------------------
// Chat / system messages
// ---------------------------------------------------------------

func (r *Room) AddChatMessage(playerID, text string, mentions []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrNotFound("room %s no longer exists", r.ID)
	}
	participant := r.findParticipantLocked(playerID)
	if participant == nil {
		return ErrNotFound("you are not in this room")
	}
	if text == "" {
		return ErrValidation("message cannot be empty")
	}

	message := game_models.SystemMessage{
		Author:   participant.DisplayName,
		Text:     text,
		Mentions: mentions,
		SentAt:   time.Now(),
	}
	r.appendMessageLocked(message)
	return nil
}

func (r *Room) appendSystemMessageLocked(text string) {
	r.appendMessageLocked(game_models.SystemMessage{
		Text:   text,
		System: true,
		SentAt: time.Now(),
	})
}

func (r *Room) appendMessageLocked(message game_models.SystemMessage) {
	r.messages = append(r.messages, message)
	if len(r.messages) > game_constants.MaxChatHistory {
		r.messages = r.messages[len(r.messages)-game_constants.MaxChatHistory:]
	}
	r.emitToRoomLocked("newStopMessage", gin.H{"room_id": r.ID, "message": message})
}

// ---------------------------------------------------------------
// Snapshots and helpers
// ---------------------------------------------------------------

func (r *Room) Summary() game_models.RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return game_models.RoomSummary{
		ID:         r.ID,
		Name:       r.Name,
		Players:    len(r.participants),
		MaxPlayers: r.MaxPlayers,
		Private:    r.Private,
		Status:     r.State,
	}
}

func (r *Room) HasParticipant(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findParticipantLocked(playerID) != nil
}

func (r *Room) findParticipantLocked(playerID string) *Participant {
	for _, p := range r.participants {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) nextColorLocked() string {
	used := make(map[string]bool, len(r.participants))
	for _, p := range r.participants {
		used[p.Color] = true
	}
	for _, color := range game_constants.PlayerColors {
		if !used[color] {
			return color
		}
	}
	return game_constants.PlayerColors[len(r.participants)%len(game_constants.PlayerColors)]
}

func (r *Room) canStartLocked() bool {
	if r.State != game_models.StateWaiting {
		return false
	}
	if r.CurrentRound >= r.TotalRounds && r.CurrentRound > 0 {
		// The owner's next start triggers game-over processing.
		return true
	}
	if len(r.participants) < game_constants.MinPlayersToStart {
		return false
	}
	for _, p := range r.participants {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (r *Room) roomInfoLocked() gin.H {
	ownerName := ""
	if owner := r.findParticipantLocked(r.OwnerID); owner != nil {
		ownerName = owner.DisplayName
	}
	info := gin.H{
		"id":             r.ID,
		"name":           r.Name,
		"owner_id":       r.OwnerID,
		"owner_name":     ownerName,
		"private":        r.Private,
		"categories":     r.Categories,
		"max_players":    r.MaxPlayers,
		"total_rounds":   r.TotalRounds,
		"state":          r.State,
		"current_round":  r.CurrentRound,
		"current_letter": r.CurrentLetter,
	}
	if r.State == game_models.StatePlaying {
		remaining := int(time.Until(r.RoundDeadline).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		info["remaining_seconds"] = remaining
	}
	if r.LastResults != nil {
		info["last_results"] = r.LastResults
	}
	return info
}

func (r *Room) playerListLocked() []gin.H {
	players := make([]gin.H, 0, len(r.participants))
	for _, p := range r.participants {
		players = append(players, gin.H{
			"id":        p.ID,
			"name":      p.DisplayName,
			"color":     p.Color,
			"score":     p.Score,
			"ready":     p.Ready,
			"spectator": p.Spectator,
			"connected": p.Connected,
			"games_won": p.GamesWon,
			"is_owner":  p.ID == r.OwnerID,
		})
	}
	return players
}

func (r *Room) emitPlayerListLocked() {
	r.emitToRoomLocked("updatePlayerList", gin.H{
		"room_id": r.ID,
		"players": r.playerListLocked(),
	})
}

func (r *Room) emitOwnerCanStartLocked() {
	r.emitToPlayerLocked(r.OwnerID, "ownerCanStart", gin.H{
		"room_id":   r.ID,
		"can_start": r.canStartLocked(),
	})
}

func (r *Room) emitRoundResultsLocked() {
	r.emitToRoomLocked("roundResults", gin.H{
		"room_id": r.ID,
		"results": r.LastResults,
	})
}

func (r *Room) emitToRoomLocked(event string, payload interface{}) {
	r.registry.sio.ToRoom(r.ID, event, payload)
}

func (r *Room) emitToPlayerLocked(playerID, event string, payload interface{}) {
	r.registry.sio.ToPlayer(playerID, event, payload)
}

// shutdown releases every timer the room holds. Called by the registry
// with the room already removed from the table.
func (r *Room) shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyed = true
	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}
	for _, p := range r.participants {
		if p.removalTimer != nil {
			p.removalTimer.Stop()
			p.removalTimer = nil
		}
	}
}

func drawLetter() string {
	letters := game_constants.RoundLetters
	return string(letters[rand.Intn(len(letters))])
}
