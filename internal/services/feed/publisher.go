// Package feed mirrors public room events onto NATS so other processes can
// follow games without holding a WebSocket.
package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kingbandits/internal/network"
	"kingbandits/internal/session/message"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// DefaultSubjectPrefix is the subject root when none is configured.
const DefaultSubjectPrefix = "kingbandits.rooms"

type conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends LOG_ENTRY frames to <prefix>.<room>.log and GAME_END frames
// to <prefix>.<room>.result. Publishing never blocks the caller on the network.
type Publisher struct {
	conn   conn
	nc     *nats.Conn // nil when built over a custom conn
	prefix string
	log    *zap.Logger
}

// Connect dials url and keeps reconnecting in the background.
func Connect(url, prefix string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("feed")
	nc, err := nats.Connect(url,
		nats.Name("kingbandits-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	p := New(nc, prefix, logger)
	p.nc = nc
	log.Info("connected to nats", zap.String("url", nc.ConnectedUrl()), zap.String("prefix", p.prefix))
	return p, nil
}

func New(c conn, prefix string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Publisher{conn: c, prefix: strings.TrimSuffix(prefix, "."), log: logger.Named("feed")}
}

func (p *Publisher) RoomLog(roomID string, entry message.LogEntry) {
	p.publish(Subject(p.prefix, roomID, "log"), entry)
}

func (p *Publisher) RoomResult(roomID string, end message.GameEnd) {
	p.publish(Subject(p.prefix, roomID, "result"), end)
}

func (p *Publisher) publish(subject string, msg network.Outbound) {
	data, err := network.Encode(msg)
	if err != nil {
		p.log.Error("encode feed message", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn("publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

// Check reports whether the NATS connection is usable.
func (p *Publisher) Check() error {
	if p.nc == nil {
		return nil
	}
	if !p.nc.IsConnected() {
		return errors.New("nats status " + p.nc.Status().String())
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error {
	if p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}

// Subject builds <prefix>.<room>.<kind>, replacing characters that are not
// allowed inside a NATS subject token.
func Subject(prefix, roomID, kind string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, roomID)
	if token == "" {
		token = "_"
	}
	return prefix + "." + token + "." + kind
}
