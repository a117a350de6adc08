package session

import (
	"kingbandits/internal/game/room"
	"kingbandits/internal/session/message"
)

// broadcast sends the same message to every seated player.
func (h *GameHandler) broadcast(rm *room.Room, msg message.Message) {
	for _, id := range rm.PlayerIDs() {
		if s, ok := h.sessions[id]; ok {
			message.Send(s.Peer, msg)
		}
	}
}

// broadcastState sends each seated player their own projection of the room.
func (h *GameHandler) broadcastState(rm *room.Room) {
	for _, id := range rm.PlayerIDs() {
		if s, ok := h.sessions[id]; ok {
			message.Send(s.Peer, message.NewGameState(rm.SnapshotFor(id)))
		}
	}
}

func (h *GameHandler) broadcastLog(rm *room.Room, text string) {
	entry := message.NewLogEntry(text, h.now())
	h.broadcast(rm, entry)
	h.feed.RoomLog(rm.ID, entry)
}
