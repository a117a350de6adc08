// simple-bot joins a room over WebSocket and plays random legal moves.
// Five of them, one with BOT_STARTER=true, play complete games unattended.
package main

import (
	"math/rand/v2"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kingbandits/internal/logging"
	"kingbandits/internal/services/cluster"
)

const (
	defaultServerAddr  = "localhost:8080"
	defaultServiceName = "kingbandits-server"
	defaultRoom        = "bots"
	dialTimeout        = 10 * time.Second
)

func main() {
	logger, err := logging.New("info", "console")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))

	addr, err := serverAddr(logger, rng)
	if err != nil {
		logger.Fatal("could not resolve the server", zap.Error(err))
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		logger.Fatal("connection failed", zap.String("url", u.String()), zap.Error(err))
	}
	defer conn.Close()

	b := &bot{
		conn:    conn,
		rng:     rng,
		roomID:  env("BOT_ROOM", defaultRoom),
		name:    os.Getenv("BOT_NAME"),
		starter: os.Getenv("BOT_STARTER") == "true",
		games:   envInt(logger, "BOT_GAMES", 0),
		log:     logger.Named("bot"),
	}
	if err := b.run(); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

// serverAddr asks Consul for a healthy server when CONSUL_HTTP_ADDR is set,
// otherwise uses BOT_SERVER_ADDR.
func serverAddr(logger *zap.Logger, rng *rand.Rand) (string, error) {
	consulAddr := os.Getenv("CONSUL_HTTP_ADDR")
	if consulAddr == "" {
		return env("BOT_SERVER_ADDR", defaultServerAddr), nil
	}
	client, err := cluster.NewConsulClient(consulAddr, logger)
	if err != nil {
		return "", err
	}
	return cluster.DiscoverAnyHealthy(client, env("KVB_SERVICE_NAME", defaultServiceName), rng)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(logger *zap.Logger, key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("ignoring invalid integer", zap.String("key", key), zap.String("value", v))
		return def
	}
	return n
}
