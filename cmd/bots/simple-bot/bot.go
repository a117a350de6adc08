package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kingbandits/internal/game/player"
	"kingbandits/internal/game/room"
	"kingbandits/internal/session/message"
)

const seatsToStart = 5

// inbound is the union of the server message fields the bot reads.
type inbound struct {
	Type        string      `json:"type"`
	PlayerID    string      `json:"playerId"`
	Players     []seatView  `json:"players"`
	GameStarted bool        `json:"gameStarted"`
	Phase       string      `json:"phase"`
	Message     string      `json:"message"`
	Winner      player.Team `json:"winner"`
	PlayerName  string      `json:"playerName"`
}

type seatView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      *player.Role `json:"role"`
	IsCurrent bool         `json:"isCurrent"`
}

// outbound is the flat command frame the server expects.
type outbound struct {
	Action         string `json:"action"`
	RoomID         string `json:"roomId"`
	PlayerName     string `json:"playerName,omitempty"`
	PlayerID       string `json:"playerId,omitempty"`
	Type           string `json:"type,omitempty"`
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
	Target1ID      string `json:"target1Id,omitempty"`
	Target2ID      string `json:"target2Id,omitempty"`
}

type bot struct {
	conn    *websocket.Conn
	rng     *rand.Rand
	roomID  string
	name    string
	starter bool
	games   int // 0 plays forever
	log     *zap.Logger

	id        string
	inGame    bool
	requested bool
	used      map[room.ActionKind]bool
	last      room.ActionKind // pending move on our turn, empty otherwise
	played    int
}

func (b *bot) run() error {
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			b.log.Warn("unreadable message", zap.Error(err))
			continue
		}
		done, err := b.handle(msg)
		if err != nil || done {
			return err
		}
	}
}

func (b *bot) handle(msg inbound) (bool, error) {
	switch msg.Type {
	case message.TypeConnectionEstablished:
		b.id = msg.PlayerID
		b.log = b.log.With(zap.String("player", b.id))
		return false, b.send(outbound{Action: "CREATE_OR_JOIN_ROOM", RoomID: b.roomID, PlayerName: b.name})

	case message.TypeRoomJoined:
		b.log.Info("joined", zap.String("room", b.roomID), zap.Int("seated", len(msg.Players)))

	case message.TypeGameState:
		return false, b.onState(msg)

	case message.TypePeekResult:
		b.log.Info("peeked", zap.String("target", msg.PlayerName))

	case message.TypeGameEnd:
		b.played++
		b.inGame = false
		b.requested = false
		b.log.Info("game over", zap.String("winner", string(msg.Winner)), zap.Int("played", b.played))
		if b.games > 0 && b.played >= b.games {
			return true, nil
		}

	case message.TypeError:
		b.log.Warn("server error", zap.String("message", msg.Message))
		if b.last != "" && b.last != room.ActionPass {
			// Fall back to the one move that is always legal on our turn.
			return false, b.act(room.ActionPass, seatView{}, seatView{})
		}
		b.last = ""
	}
	return false, nil
}

func (b *bot) onState(msg inbound) error {
	if !msg.GameStarted {
		b.inGame = false
		if b.starter && !b.requested && msg.Phase == room.PhaseLobby.String() && len(msg.Players) == seatsToStart {
			b.requested = true
			return b.send(outbound{Action: "START_GAME", RoomID: b.roomID})
		}
		return nil
	}
	if !b.inGame {
		b.inGame = true
		b.used = make(map[room.ActionKind]bool)
	}

	var me *seatView
	var others []seatView
	for i := range msg.Players {
		if msg.Players[i].ID == b.id {
			me = &msg.Players[i]
		} else {
			others = append(others, msg.Players[i])
		}
	}
	b.last = ""
	if me == nil || !me.IsCurrent {
		return nil
	}

	role := player.RoleNone
	if me.Role != nil {
		role = *me.Role
	}
	kind := chooseAction(b.rng, role, b.used, len(others))
	var first, second seatView
	if len(others) >= 2 {
		i := b.rng.IntN(len(others))
		j := (i + 1 + b.rng.IntN(len(others)-1)) % len(others)
		first, second = others[i], others[j]
	}

	time.Sleep(time.Duration(200+b.rng.IntN(500)) * time.Millisecond)
	return b.act(kind, first, second)
}

func (b *bot) act(kind room.ActionKind, first, second seatView) error {
	out := outbound{Action: "PLAYER_ACTION", RoomID: b.roomID, PlayerID: b.id, Type: string(kind)}
	switch kind {
	case room.ActionSwap, room.ActionPeek:
		out.TargetPlayerID = first.ID
	case room.ActionSpecialSwap:
		out.Target1ID, out.Target2ID = first.ID, second.ID
	}
	if kind != room.ActionPass {
		b.used[kind] = true
	}
	b.last = kind
	b.log.Info("acting", zap.String("action", string(kind)), zap.String("target", first.Name))
	return b.send(out)
}

func (b *bot) send(out outbound) error {
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return b.conn.WriteMessage(websocket.TextMessage, data)
}

// chooseAction passes most of the time and otherwise spends one of the
// once-per-game moves still available to role.
func chooseAction(r *rand.Rand, role player.Role, used map[room.ActionKind]bool, opponents int) room.ActionKind {
	if r.IntN(10) < 7 {
		return room.ActionPass
	}
	var options []room.ActionKind
	if !used[room.ActionDraw] {
		options = append(options, room.ActionDraw)
	}
	if opponents >= 1 && !used[room.ActionSwap] {
		options = append(options, room.ActionSwap)
	}
	if role == player.RoleKing && opponents >= 1 && !used[room.ActionPeek] {
		options = append(options, room.ActionPeek)
	}
	if role == player.RoleBigBandit && opponents >= 2 && !used[room.ActionSpecialSwap] {
		options = append(options, room.ActionSpecialSwap)
	}
	if len(options) == 0 {
		return room.ActionPass
	}
	return options[r.IntN(len(options))]
}
