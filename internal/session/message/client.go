package message

// Server to client messages. The set is closed: every message implements
// Message and nothing outside this package can add one.
import (
	"time"

	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"
	"kingbandits/internal/game/room"
	"kingbandits/internal/network"
)

const (
	TypeConnectionEstablished = "CONNECTION_ESTABLISHED"
	TypeRoomJoined            = "ROOM_JOINED"
	TypeGameState             = "GAME_STATE"
	TypePlayerList            = "PLAYER_LIST"
	TypeLogEntry              = "LOG_ENTRY"
	TypePeekResult            = "PEEK_RESULT"
	TypeGameEnd               = "GAME_END"
	TypeError                 = "ERROR"
)

type Message interface {
	network.Outbound
	message()
}

type ConnectionEstablished struct {
	PlayerID string `json:"playerId"`
}

type RoomJoined struct {
	PlayerID string            `json:"playerId"`
	RoomID   string            `json:"roomId"`
	Players  []room.PlayerView `json:"players"`
}

type GameState struct {
	RoomID             string            `json:"roomId"`
	Players            []room.PlayerView `json:"players"`
	CurrentPlayerIndex int               `json:"currentPlayerIndex"`
	DeckCount          int               `json:"deckCount"`
	GameStarted        bool              `json:"gameStarted"`
	GameStartedBy      string            `json:"gameStartedBy"`
	Phase              string            `json:"phase"`
}

type PlayerList struct {
	Players []room.PlayerView `json:"players"`
}

// LogEntry is a public room event. Timestamp is in Unix milliseconds.
type LogEntry struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// PeekResult goes only to the King who peeked.
type PeekResult struct {
	Card       card.Card `json:"card"`
	PlayerName string    `json:"playerName"`
}

type RevealedPlayer struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role player.Role `json:"role"`
	Card *card.Card  `json:"card"`
}

type TiebreakerDetails struct {
	KingValue     int `json:"kingValue"`
	HighestBandit int `json:"highestBandit"`
	SecondBandit  int `json:"secondBandit"`
	HighestGuard  int `json:"highestGuard"`
}

type GameEnd struct {
	Winner            player.Team        `json:"winner"`
	TiebreakerUsed    bool               `json:"tiebreakerUsed"`
	KingCard          card.Card          `json:"kingCard"`
	AllPlayers        []RevealedPlayer   `json:"allPlayers"`
	TiebreakerDetails *TiebreakerDetails `json:"tiebreakerDetails,omitempty"`
}

type Error struct {
	Message string `json:"message"`
}

func (ConnectionEstablished) MessageType() string { return TypeConnectionEstablished }
func (RoomJoined) MessageType() string            { return TypeRoomJoined }
func (GameState) MessageType() string             { return TypeGameState }
func (PlayerList) MessageType() string            { return TypePlayerList }
func (LogEntry) MessageType() string              { return TypeLogEntry }
func (PeekResult) MessageType() string            { return TypePeekResult }
func (GameEnd) MessageType() string               { return TypeGameEnd }
func (Error) MessageType() string                 { return TypeError }

func (ConnectionEstablished) message() {}
func (RoomJoined) message()            {}
func (GameState) message()             {}
func (PlayerList) message()            {}
func (LogEntry) message()              {}
func (PeekResult) message()            {}
func (GameEnd) message()               {}
func (Error) message()                 {}

func NewLogEntry(text string, at time.Time) LogEntry {
	return LogEntry{Message: text, Timestamp: at.UnixMilli()}
}

// NewGameState wraps a per-recipient snapshot.
func NewGameState(s room.Snapshot) GameState {
	return GameState{
		RoomID:             s.RoomID,
		Players:            s.Players,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		DeckCount:          s.DeckCount,
		GameStarted:        s.GameStarted,
		GameStartedBy:      s.GameStartedBy,
		Phase:              s.Phase.String(),
	}
}

func NewPeekResult(p room.PeekResult) PeekResult {
	return PeekResult{Card: p.Card, PlayerName: p.TargetName}
}

// NewGameEnd reveals every hand. Tiebreaker details are attached only when
// the tiebreaker decided the game.
func NewGameEnd(o *room.Outcome) GameEnd {
	end := GameEnd{
		Winner:         o.Winner,
		TiebreakerUsed: o.TiebreakerUsed,
		KingCard:       o.KingCard,
		AllPlayers:     make([]RevealedPlayer, len(o.Players)),
	}
	for i, p := range o.Players {
		end.AllPlayers[i] = RevealedPlayer{ID: p.ID, Name: p.Name, Role: p.Role, Card: p.Card}
	}
	if o.TiebreakerUsed {
		end.TiebreakerDetails = &TiebreakerDetails{
			KingValue:     o.Values.KingValue,
			HighestBandit: o.Values.HighestBandit,
			SecondBandit:  o.Values.SecondBandit,
			HighestGuard:  o.Values.HighestGuard,
		}
	}
	return end
}
