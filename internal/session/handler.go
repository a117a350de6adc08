package session

import (
	"time"

	"kingbandits/internal/game/room"
	"kingbandits/internal/network"
	"kingbandits/internal/services/gameroom"
	"kingbandits/internal/session/message"

	"go.uber.org/zap"
)

// DefaultResetDelay is how long an ended game stays on the table before the
// room returns to the lobby.
const DefaultResetDelay = 3 * time.Second

// Scheduler runs fn on the event loop after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Feed receives a copy of every public room event.
type Feed interface {
	RoomLog(roomID string, entry message.LogEntry)
	RoomResult(roomID string, end message.GameEnd)
}

type nopFeed struct{}

func (nopFeed) RoomLog(string, message.LogEntry)  {}
func (nopFeed) RoomResult(string, message.GameEnd) {}

// GameHandler implements network.EventHandler. All of its state is owned by
// the Hub goroutine.
type GameHandler struct {
	sessions map[string]*PlayerSession
	rooms    *gameroom.Registry

	sched      Scheduler
	feed       Feed
	resetDelay time.Duration
	now        func() time.Time
	log        *zap.Logger
}

type Option func(*GameHandler)

func WithFeed(f Feed) Option { return func(h *GameHandler) { h.feed = f } }

func WithResetDelay(d time.Duration) Option { return func(h *GameHandler) { h.resetDelay = d } }

func WithLogger(l *zap.Logger) Option { return func(h *GameHandler) { h.log = l } }

func WithClock(now func() time.Time) Option { return func(h *GameHandler) { h.now = now } }

func NewGameHandler(rooms *gameroom.Registry, sched Scheduler, opts ...Option) *GameHandler {
	h := &GameHandler{
		sessions:   make(map[string]*PlayerSession),
		rooms:      rooms,
		sched:      sched,
		feed:       nopFeed{},
		resetDelay: DefaultResetDelay,
		now:        time.Now,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.feed == nil {
		h.feed = nopFeed{}
	}
	h.log = h.log.Named("session")
	return h
}

// --- network.EventHandler ---

func (h *GameHandler) OnConnect(p network.Peer) {
	h.sessions[p.ID()] = NewPlayerSession(p)
	h.log.Info("player connected",
		zap.String("player", p.ID()),
		zap.String("addr", p.RemoteAddr()),
		zap.Int("sessions", len(h.sessions)))
	message.Send(p, message.ConnectionEstablished{PlayerID: p.ID()})
}

func (h *GameHandler) OnDisconnect(p network.Peer) {
	session, ok := h.sessions[p.ID()]
	if !ok {
		return
	}
	delete(h.sessions, p.ID())
	log := h.log.With(zap.String("player", p.ID()), zap.String("room", session.RoomID))
	log.Info("player disconnected", zap.Int("sessions", len(h.sessions)))

	if session.RoomID == "" {
		return
	}
	d := h.rooms.RemovePlayer(session.RoomID, session.ID())
	if !d.Removed || d.Deleted {
		return
	}
	rm, ok := h.rooms.Get(session.RoomID)
	if !ok {
		return
	}
	if d.Aborted {
		log.Warn("game aborted by disconnect")
		h.broadcastLog(rm, session.Name+" disconnected, the game was aborted")
	} else {
		h.broadcastLog(rm, session.Name+" left the room")
	}
	h.broadcastState(rm)
}

// OnMessage decodes and dispatches one frame. A failure is reported to the
// sender only; a panic is contained to this message.
func (h *GameHandler) OnMessage(p network.Peer, data []byte) {
	session, ok := h.sessions[p.ID()]
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("panic while handling message",
				zap.String("player", p.ID()),
				zap.String("room", session.RoomID),
				zap.Any("panic", r),
				zap.Stack("stack"))
			message.SendError(p, "internal server error")
		}
	}()

	cmd, err := DecodeCommand(data)
	if err != nil {
		h.reject(session, "", err)
		return
	}

	switch c := cmd.(type) {
	case JoinRoom:
		err = handleJoinRoom(h, session, c)
	case StartGame:
		err = handleStartGame(h, session, c)
	case PlayerAction:
		err = handlePlayerAction(h, session, c)
	case GetPlayers:
		err = handleGetPlayers(h, session, c)
	}
	if err != nil {
		h.reject(session, cmd.Tag(), err)
	}
}

func (h *GameHandler) reject(session *PlayerSession, command string, err error) {
	h.log.Warn("command rejected",
		zap.String("player", session.ID()),
		zap.String("room", session.RoomID),
		zap.String("command", command),
		zap.Stringer("kind", room.KindOf(err)),
		zap.Error(err))
	message.SendError(session.Peer, "%s", err.Error())
}
