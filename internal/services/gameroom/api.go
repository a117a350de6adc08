// START OF FILE kingbandits/internal/services/gameroom/api.go
package gameroom

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Runner executes a function on the goroutine that owns the registry.
type Runner interface {
	Do(fn func()) error
}

// RegisterHandlers mounts the room API on mux.
func RegisterHandlers(mux interface {
	Handle(pattern string, h http.Handler)
}, rg *Registry, loop Runner, logger *zap.Logger) {
	mux.Handle("/rooms", handleListRooms(rg, loop, logger))
}

// handleListRooms serves GET /rooms.
func handleListRooms(rg *Registry, loop Runner, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}

		var rooms []Summary
		if err := loop.Do(func() { rooms = rg.Summaries() }); err != nil {
			logger.Warn("room listing unavailable", zap.Error(err))
			http.Error(w, `{"error": "Server is shutting down"}`, http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rooms); err != nil {
			logger.Warn("write room listing", zap.Error(err))
		}
	}
}

//END OF FILE kingbandits/internal/services/gameroom/api.go
