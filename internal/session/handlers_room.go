package session

import (
	"fmt"

	"kingbandits/internal/game/room"
	"kingbandits/internal/session/message"

	"go.uber.org/zap"
)

func handleJoinRoom(h *GameHandler, session *PlayerSession, cmd JoinRoom) error {
	if session.RoomID != "" {
		return ErrAlreadyInRoom
	}
	name := displayName(cmd.PlayerName, session.ID())
	rm, err := h.rooms.Join(cmd.RoomID, session.ID(), name)
	if err != nil {
		return err
	}
	session.RoomID = rm.ID
	session.Name = name
	h.log.Info("player joined", zap.String("room", rm.ID), zap.String("player", session.ID()), zap.Int("seated", rm.Len()))

	message.Send(session.Peer, message.RoomJoined{
		PlayerID: session.ID(),
		RoomID:   rm.ID,
		Players:  rm.PlayersFor(session.ID()),
	})
	h.broadcastLog(rm, name+" joined the room")
	h.broadcastState(rm)
	return nil
}

func handleStartGame(h *GameHandler, session *PlayerSession, cmd StartGame) error {
	rm, err := h.roomOf(session, cmd.RoomID)
	if err != nil {
		return err
	}
	restart := rm.Phase() != room.PhaseLobby
	if err := rm.Start(session.ID()); err != nil {
		return err
	}
	h.log.Info("game started",
		zap.String("room", rm.ID),
		zap.String("player", session.ID()),
		zap.Bool("restart", restart),
		zap.Uint64("generation", rm.Generation()))

	if restart {
		h.broadcastLog(rm, "Game restarted by "+session.Name)
	} else {
		h.broadcastLog(rm, "Game started by "+session.Name)
	}
	if king := rm.King(); king != nil {
		h.broadcastLog(rm, king.Name+" is the King")
	}
	h.broadcastState(rm)
	return nil
}

func handlePlayerAction(h *GameHandler, session *PlayerSession, cmd PlayerAction) error {
	if cmd.PlayerID != session.ID() {
		return ErrIdentityMismatch
	}
	rm, err := h.roomOf(session, cmd.RoomID)
	if err != nil {
		return err
	}
	res, err := rm.Apply(session.ID(), cmd.Action)
	if err != nil {
		return err
	}
	h.log.Info("action applied",
		zap.String("room", rm.ID),
		zap.String("player", session.ID()),
		zap.String("action", string(cmd.Action.Kind())))

	h.broadcastLog(rm, res.Event.Message())
	if res.Peek != nil {
		if viewer, ok := h.sessions[res.Peek.ViewerID]; ok {
			message.Send(viewer.Peer, message.NewPeekResult(*res.Peek))
		}
	}
	h.broadcastState(rm)
	if res.Outcome != nil {
		h.endGame(rm, res.Outcome)
	}
	return nil
}

func handleGetPlayers(h *GameHandler, session *PlayerSession, cmd GetPlayers) error {
	rm, err := h.roomOf(session, cmd.RoomID)
	if err != nil {
		return err
	}
	message.Send(session.Peer, message.PlayerList{Players: rm.PlayersFor(session.ID())})
	return nil
}

// roomOf resolves roomID for a session that must be seated in it.
func (h *GameHandler) roomOf(session *PlayerSession, roomID string) (*room.Room, error) {
	if !session.InRoom(roomID) {
		return nil, ErrNotInRoom
	}
	rm, ok := h.rooms.Get(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", room.ErrRoomNotFound, roomID)
	}
	return rm, nil
}

// endGame reveals the result and schedules the return to the lobby. The reset
// is skipped if the room moved on to another game in the meantime.
func (h *GameHandler) endGame(rm *room.Room, outcome *room.Outcome) {
	end := message.NewGameEnd(outcome)
	h.log.Info("game ended",
		zap.String("room", rm.ID),
		zap.String("winner", string(outcome.Winner)),
		zap.Bool("tiebreaker", outcome.TiebreakerUsed))

	h.broadcast(rm, end)
	h.feed.RoomResult(rm.ID, end)

	roomID, generation := rm.ID, rm.Generation()
	h.sched.AfterFunc(h.resetDelay, func() { h.resetRoom(roomID, generation) })
}

func (h *GameHandler) resetRoom(roomID string, generation uint64) {
	rm, ok := h.rooms.Get(roomID)
	if !ok || rm.Generation() != generation || rm.Phase() != room.PhaseEnded {
		return
	}
	rm.ResetToLobby()
	h.log.Info("room reset to lobby", zap.String("room", roomID))
	h.broadcastLog(rm, "Returning to the lobby")
	h.broadcastState(rm)
}
