package cluster

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	consul "github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAggregator(t *testing.T) {
	h := NewHealthAggregator()

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	h.AddCheck("loop", func() error { return nil })
	h.AddCheck("nats", func() error { return errors.New("disconnected") })

	rec = httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"nats":"disconnected"}`, rec.Body.String())
}

func TestRegistration(t *testing.T) {
	r := Registration{ServiceName: "kingbandits-server", Host: "box-1", Port: 8080}
	assert.Equal(t, "kingbandits-server-box-1", r.ID())

	reg := r.agentRegistration()
	assert.Equal(t, "kingbandits-server", reg.Name)
	assert.Equal(t, 8080, reg.Port)
	require.NotNil(t, reg.Check)
	assert.Equal(t, "http://box-1:8080/health", reg.Check.HTTP)
}

func TestPickAddress(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))

	_, err := pickAddress(nil, r)
	assert.ErrorIs(t, err, ErrNoHealthyInstance)

	entries := []*consul.ServiceEntry{
		{Node: &consul.Node{Address: "10.0.0.5"}, Service: &consul.AgentService{Port: 8080}},
	}
	addr, err := pickAddress(entries, r)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:8080", addr)

	entries[0].Service.Address = "game-1"
	addr, err = pickAddress(entries, r)
	require.NoError(t, err)
	assert.Equal(t, "game-1:8080", addr)
}
