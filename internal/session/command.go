package session

import (
	"encoding/json"
	"fmt"

	"kingbandits/internal/game/room"
)

// Wire tags of the client to server commands.
const (
	cmdCreateOrJoinRoom = "CREATE_OR_JOIN_ROOM"
	cmdStartGame        = "START_GAME"
	cmdPlayerAction     = "PLAYER_ACTION"
	cmdGetPlayers       = "GET_PLAYERS"
)

var (
	ErrMalformedFrame = room.NewError(room.KindProtocol, "malformed message")
	ErrUnknownCommand = room.NewError(room.KindProtocol, "unknown command")
	ErrMissingRoomID  = room.NewError(room.KindProtocol, "roomId is required")

	ErrAlreadyInRoom    = room.NewError(room.KindAuthorization, "you are already in a room")
	ErrNotInRoom        = room.NewError(room.KindAuthorization, "you are not in that room")
	ErrIdentityMismatch = room.NewError(room.KindAuthorization, "playerId does not belong to this connection")
)

// Command is one of JoinRoom, StartGame, PlayerAction or GetPlayers.
type Command interface {
	Tag() string
}

type JoinRoom struct {
	RoomID     string
	PlayerName string
}

type StartGame struct {
	RoomID string
}

type PlayerAction struct {
	PlayerID string
	RoomID   string
	Action   room.Action
}

type GetPlayers struct {
	RoomID string
}

func (JoinRoom) Tag() string     { return cmdCreateOrJoinRoom }
func (StartGame) Tag() string    { return cmdStartGame }
func (PlayerAction) Tag() string { return cmdPlayerAction }
func (GetPlayers) Tag() string   { return cmdGetPlayers }

// frame is the flat JSON object every command arrives in.
type frame struct {
	Action         string `json:"action"`
	RoomID         string `json:"roomId"`
	PlayerName     string `json:"playerName"`
	PlayerID       string `json:"playerId"`
	Type           string `json:"type"`
	TargetPlayerID string `json:"targetPlayerId"`
	Target1ID      string `json:"target1Id"`
	Target2ID      string `json:"target2Id"`
}

// DecodeCommand parses one inbound frame. Every error it returns is a protocol error.
func DecodeCommand(data []byte) (Command, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	var cmd Command
	switch f.Action {
	case cmdCreateOrJoinRoom:
		cmd = JoinRoom{RoomID: f.RoomID, PlayerName: f.PlayerName}
	case cmdStartGame:
		cmd = StartGame{RoomID: f.RoomID}
	case cmdGetPlayers:
		cmd = GetPlayers{RoomID: f.RoomID}
	case cmdPlayerAction:
		act, err := decodeAction(f)
		if err != nil {
			return nil, err
		}
		cmd = PlayerAction{PlayerID: f.PlayerID, RoomID: f.RoomID, Action: act}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, f.Action)
	}

	if f.RoomID == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingRoomID, f.Action)
	}
	return cmd, nil
}

func decodeAction(f frame) (room.Action, error) {
	switch room.ActionKind(f.Type) {
	case room.ActionPass:
		return room.Pass{}, nil
	case room.ActionDraw:
		return room.Draw{}, nil
	case room.ActionSwap:
		return room.Swap{Target: f.TargetPlayerID}, nil
	case room.ActionSpecialSwap:
		return room.SpecialSwap{First: f.Target1ID, Second: f.Target2ID}, nil
	case room.ActionPeek:
		return room.Peek{Target: f.TargetPlayerID}, nil
	default:
		return nil, fmt.Errorf("%w %q", room.ErrUnknownAction, f.Type)
	}
}
