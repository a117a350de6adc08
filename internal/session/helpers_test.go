package session

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"kingbandits/internal/game/room"
	"kingbandits/internal/network"
	"kingbandits/internal/services/gameroom"
	"kingbandits/internal/session/message"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePeer struct {
	id    string
	inbox []message.Message
}

func (p *fakePeer) ID() string         { return p.id }
func (p *fakePeer) RemoteAddr() string { return "test/" + p.id }

func (p *fakePeer) Deliver(m network.Outbound) bool {
	p.inbox = append(p.inbox, m.(message.Message))
	return true
}

func ofType[T message.Message](p *fakePeer) []T {
	var out []T
	for _, m := range p.inbox {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func lastOf[T message.Message](t *testing.T, p *fakePeer) T {
	t.Helper()
	all := ofType[T](p)
	require.NotEmpty(t, all, "peer %s got no %T", p.id, *new(T))
	return all[len(all)-1]
}

func logLines(p *fakePeer) []string {
	var out []string
	for _, e := range ofType[message.LogEntry](p) {
		out = append(out, e.Message)
	}
	return out
}

type task struct {
	delay time.Duration
	fn    func()
}

type fakeScheduler struct{ tasks []task }

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) {
	s.tasks = append(s.tasks, task{delay: d, fn: fn})
}

func (s *fakeScheduler) runAll() {
	pending := s.tasks
	s.tasks = nil
	for _, t := range pending {
		t.fn()
	}
}

type recordingFeed struct {
	logs    []string
	results []message.GameEnd
}

func (f *recordingFeed) RoomLog(_ string, e message.LogEntry)    { f.logs = append(f.logs, e.Message) }
func (f *recordingFeed) RoomResult(_ string, e message.GameEnd) { f.results = append(f.results, e) }

var names = []string{"Ana", "Bo", "Cy", "Di", "Ed", "Fay"}

const tableID = "table"

type fixture struct {
	t     *testing.T
	h     *GameHandler
	rooms *gameroom.Registry
	sched *fakeScheduler
	feed  *recordingFeed
	peers map[string]*fakePeer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	f := &fixture{
		t:     t,
		rooms: gameroom.NewRegistry(zap.NewNop(), room.WithRand(rand.New(rand.NewPCG(3, 4)))),
		sched: &fakeScheduler{},
		feed:  &recordingFeed{},
		peers: make(map[string]*fakePeer),
	}
	opts = append([]Option{
		WithFeed(f.feed),
		WithClock(func() time.Time { return time.UnixMilli(1000) }),
	}, opts...)
	f.h = NewGameHandler(f.rooms, f.sched, opts...)
	return f
}

func (f *fixture) connect(id string) *fakePeer {
	p := &fakePeer{id: id}
	f.peers[id] = p
	f.h.OnConnect(p)
	return p
}

func (f *fixture) send(p *fakePeer, fields map[string]string) {
	data, err := json.Marshal(fields)
	require.NoError(f.t, err)
	f.h.OnMessage(p, data)
}

func (f *fixture) join(p *fakePeer, name string) {
	f.send(p, map[string]string{"action": "CREATE_OR_JOIN_ROOM", "roomId": tableID, "playerName": name})
}

func (f *fixture) start(p *fakePeer) {
	f.send(p, map[string]string{"action": "START_GAME", "roomId": tableID})
}

// act sends a PLAYER_ACTION from p; extra holds key, value pairs.
func (f *fixture) act(p *fakePeer, kind string, extra ...string) {
	fields := map[string]string{"action": "PLAYER_ACTION", "roomId": tableID, "playerId": p.id, "type": kind}
	for i := 0; i+1 < len(extra); i += 2 {
		fields[extra[i]] = extra[i+1]
	}
	f.send(p, fields)
}

// seat connects and seats p0..p(n-1).
func (f *fixture) seat(n int) []*fakePeer {
	peers := make([]*fakePeer, n)
	for i := 0; i < n; i++ {
		peers[i] = f.connect("p" + string(rune('0'+i)))
		f.join(peers[i], names[i])
	}
	return peers
}

// started seats five players, has p0 start and clears every inbox.
func (f *fixture) started() (*room.Room, []*fakePeer) {
	peers := f.seat(5)
	f.start(peers[0])
	rm, ok := f.rooms.Get(tableID)
	require.True(f.t, ok)
	require.Equal(f.t, room.PhaseInProgress, rm.Phase())
	for _, p := range peers {
		p.inbox = nil
	}
	return rm, peers
}

func (f *fixture) current(rm *room.Room) *fakePeer {
	cur := rm.Current()
	require.NotNil(f.t, cur)
	return f.peers[cur.ID]
}

// passUntilEnd has every player pass until the game is over.
func (f *fixture) passUntilEnd(rm *room.Room) {
	for i := 0; rm.Phase() == room.PhaseInProgress; i++ {
		require.Less(f.t, i, 20, "game did not end")
		f.act(f.current(rm), "PASS")
	}
}

func lastError(t *testing.T, p *fakePeer) string {
	t.Helper()
	return lastOf[message.Error](t, p).Message
}
