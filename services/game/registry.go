package game

import (
	"Stop/config"
	game_models "Stop/models/game"
	"log"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Registry owns every active room. All creation, lookup, listing and
// destruction goes through it; nothing else holds the room table.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	sio   Broadcaster
	cfg   *config.Config
}

func NewRegistry(sio Broadcaster, cfg *config.Config) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		sio:   sio,
		cfg:   cfg,
	}
}

// CreateRoom validates the settings, creates the room in the Waiting
// state with the owner registered as a ready, non-spectating
// participant, and refreshes the public listing. Nothing is mutated if
// validation fails.
func (reg *Registry) CreateRoom(ownerID, ownerName string, settings game_models.RoomSettings) (*Room, error) {
	if err := ValidateSettings(&settings); err != nil {
		return nil, err
	}

	room := newRoom(reg, uuid.NewString(), ownerID, ownerName, settings, reg.cfg)

	reg.mu.Lock()
	reg.rooms[room.ID] = room
	reg.mu.Unlock()

	log.Printf("[ROOM-CREATE] Room %s (%q) created by %s", room.ID, room.Name, ownerName)

	reg.BroadcastRoomList()
	return room, nil
}

func (reg *Registry) GetRoom(roomID string) (*Room, error) {
	reg.mu.RLock()
	room, ok := reg.rooms[roomID]
	reg.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound("room %s not found", roomID)
	}
	return room, nil
}

// DestroyRoom removes the room from the table and releases its timer
// state. With byOwnerLoss set, remaining members are told the room was
// closed because its owner left. Destroying an already-destroyed room
// is a no-op.
func (reg *Registry) DestroyRoom(roomID string, byOwnerLoss bool) {
	reg.mu.Lock()
	room, ok := reg.rooms[roomID]
	if ok {
		delete(reg.rooms, roomID)
	}
	reg.mu.Unlock()

	if !ok {
		return
	}

	room.shutdown()
	log.Printf("[ROOM-DESTROY] Room %s destroyed (owner loss: %v)", roomID, byOwnerLoss)

	if byOwnerLoss {
		reg.sio.ToRoom(roomID, "ownerDestroyedRoom", gin.H{
			"room_id": roomID,
			"message": "The room was closed because its owner left",
		})
	}

	reg.BroadcastRoomList()
}

// ListRooms materializes the sanitized public listing, sorted by name
// so the projection is stable.
func (reg *Registry) ListRooms() []game_models.RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	summaries := make([]game_models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, room.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

func (reg *Registry) BroadcastRoomList() {
	reg.sio.ToAll("updateRoomList", gin.H{"rooms": reg.ListRooms()})
}

// RoomsWithParticipant returns the rooms that currently hold a
// participant record for the given player. Used on connection loss,
// where only the player id is known.
func (reg *Registry) RoomsWithParticipant(playerID string) []*Room {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	var result []*Room
	for _, room := range rooms {
		if room.HasParticipant(playerID) {
			result = append(result, room)
		}
	}
	return result
}
