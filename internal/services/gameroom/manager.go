//START OF FILE kingbandits/internal/services/gameroom/manager.go
package gameroom

import (
	"sort"

	"kingbandits/internal/game/room"

	"go.uber.org/zap"
)

// Registry maps room identifiers to rooms. A room is created on its first
// join and deleted when its last player leaves. It is owned by the Hub loop
// and is not safe for concurrent use.
type Registry struct {
	rooms   map[string]*room.Room
	options []room.Option
	log     *zap.Logger
}

// NewRegistry builds an empty registry. opts are applied to every new room.
func NewRegistry(logger *zap.Logger, opts ...room.Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		rooms:   make(map[string]*room.Room),
		options: opts,
		log:     logger.Named("registry"),
	}
}

// GetOrCreate returns the room for id, creating it with a fresh deck.
func (rg *Registry) GetOrCreate(id string) *room.Room {
	if rm, ok := rg.rooms[id]; ok {
		return rm
	}
	rm := room.New(id, rg.options...)
	rg.rooms[id] = rm
	rg.log.Info("room created", zap.String("room", id), zap.Int("rooms", len(rg.rooms)))
	return rm
}

func (rg *Registry) Get(id string) (*room.Room, bool) {
	rm, ok := rg.rooms[id]
	return rm, ok
}

// Join seats playerID in roomID. A room that cannot take the player is left as it was.
func (rg *Registry) Join(roomID, playerID, name string) (*room.Room, error) {
	_, existed := rg.rooms[roomID]
	rm := rg.GetOrCreate(roomID)
	if _, err := rm.AddPlayer(playerID, name); err != nil {
		if !existed {
			delete(rg.rooms, roomID)
		}
		return nil, err
	}
	return rm, nil
}

// Departure reports what a RemovePlayer call did.
type Departure struct {
	Removed bool // the player was seated
	Aborted bool // a game was in progress or ended and was reset to the lobby
	Deleted bool // the room was empty and is gone
}

// RemovePlayer unseats playerID and deletes the room if nobody is left.
func (rg *Registry) RemovePlayer(roomID, playerID string) Departure {
	rm, ok := rg.rooms[roomID]
	if !ok {
		return Departure{}
	}
	var d Departure
	d.Removed, d.Aborted = rm.RemovePlayer(playerID)
	if rm.Empty() {
		delete(rg.rooms, roomID)
		d.Deleted = true
		rg.log.Info("room deleted", zap.String("room", roomID), zap.Int("rooms", len(rg.rooms)))
	}
	return d
}

func (rg *Registry) Len() int { return len(rg.rooms) }

// Summary is the public listing entry of a room.
type Summary struct {
	RoomID  string `json:"roomId"`
	Players int    `json:"players"`
	Phase   string `json:"phase"`
}

// Summaries lists every room ordered by id.
func (rg *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(rg.rooms))
	for id, rm := range rg.rooms {
		out = append(out, Summary{RoomID: id, Players: rm.Len(), Phase: rm.Phase().String()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out
}

//END OF FILE kingbandits/internal/services/gameroom/manager.go
