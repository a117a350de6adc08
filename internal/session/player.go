package session

import (
	"strings"
	"unicode/utf8"

	"kingbandits/internal/network"
)

const maxNameLength = 24

// PlayerSession is one connected client. Its identity is the connection's.
type PlayerSession struct {
	Peer   network.Peer
	RoomID string // empty until the player joins a room
	Name   string
}

func NewPlayerSession(p network.Peer) *PlayerSession {
	return &PlayerSession{Peer: p}
}

func (s *PlayerSession) ID() string { return s.Peer.ID() }

func (s *PlayerSession) InRoom(roomID string) bool {
	return s.RoomID != "" && s.RoomID == roomID
}

// displayName trims name and falls back to a name derived from id.
func displayName(name, id string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		short := id
		if len(short) > 4 {
			short = short[:4]
		}
		return "Player-" + short
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name
}
