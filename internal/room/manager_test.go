package room

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mirrors internal/store for tests without the import cycle a
// room->store dependency would create.
type memStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func newMemStore() *memStore {
	return &memStore{rooms: map[string]*Room{}}
}

func (m *memStore) GetRoom(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *memStore) SaveRoom(r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

func (m *memStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

func (m *memStore) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

func newTestManager() *Manager {
	return NewManager(newMemStore(), testConfig())
}

func TestCreateRoomGeneratesCode(t *testing.T) {
	m := newTestManager()
	c := newFakeConn("conn-1")

	r, slot := m.CreateRoom(c)
	assert.Equal(t, 0, slot)
	assert.Len(t, r.Code, 6)
	for _, ch := range r.Code {
		assert.Contains(t, letters, string(ch))
	}
	assert.Equal(t, 1, c.count(ActionWaitingForPlayer))

	got, ok := m.Get(r.Code)
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, 1, got.PlayerCount())
}

func TestJoinRoomNormalizesCode(t *testing.T) {
	m := newTestManager()
	r, _ := m.CreateRoom(newFakeConn("conn-1"))

	c2 := newFakeConn("conn-2")
	joined, slot, err := m.JoinRoom(" "+strings.ToLower(r.Code)+" ", c2)
	require.NoError(t, err)
	assert.Same(t, r, joined)
	assert.Equal(t, 1, slot)
	assert.Equal(t, PhaseSelecting, r.Phase())
}

func TestJoinRoomNotFound(t *testing.T) {
	m := newTestManager()
	_, _, err := m.JoinRoom("NOPE99", newFakeConn("conn-1"))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinRoomFull(t *testing.T) {
	m := newTestManager()
	r, _ := m.CreateRoom(newFakeConn("conn-1"))
	_, _, err := m.JoinRoom(r.Code, newFakeConn("conn-2"))
	require.NoError(t, err)
	_, _, err = m.JoinRoom(r.Code, newFakeConn("conn-3"))
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestEventsRoutedToOwningRoom(t *testing.T) {
	m := newTestManager()
	a1 := newFakeConn("a-1")
	a2 := newFakeConn("a-2")
	b1 := newFakeConn("b-1")
	ra, _ := m.CreateRoom(a1)
	_, _, err := m.JoinRoom(ra.Code, a2)
	require.NoError(t, err)
	m.CreateRoom(b1)

	m.Chat(a2.id, "hello")

	assert.Equal(t, 1, a1.count(ActionChatMessage))
	assert.Equal(t, 1, a2.count(ActionChatMessage))
	assert.Equal(t, 0, b1.count(ActionChatMessage))

	data, _ := a1.last(ActionChatMessage)
	payload := data.(map[string]any)
	assert.Equal(t, 1, payload["playerId"])
	assert.Equal(t, "hello", payload["message"])
}

func TestEventsFromUnknownConnectionIgnored(t *testing.T) {
	m := newTestManager()
	r, _ := m.CreateRoom(newFakeConn("conn-1"))

	m.Chat("stranger", "hi")
	m.HandleInput("stranger", "UP")
	m.SelectDog("stranger", "dog1")
	m.Disconnect("stranger")

	_, ok := m.Get(r.Code)
	assert.True(t, ok)
}

func TestDisconnectRemovesEmptyRoom(t *testing.T) {
	m := newTestManager()
	c1 := newFakeConn("conn-1")
	c2 := newFakeConn("conn-2")
	r, _ := m.CreateRoom(c1)
	_, _, err := m.JoinRoom(r.Code, c2)
	require.NoError(t, err)

	m.Disconnect(c1.id)
	_, ok := m.Get(r.Code)
	assert.True(t, ok, "room with a remaining player survives")

	m.Disconnect(c2.id)
	_, ok = m.Get(r.Code)
	assert.False(t, ok, "empty room is discarded")
}

func TestListRooms(t *testing.T) {
	m := newTestManager()
	assert.Empty(t, m.ListRooms())

	r, _ := m.CreateRoom(newFakeConn("conn-1"))
	infos := m.ListRooms()
	require.Len(t, infos, 1)
	assert.Equal(t, r.Code, infos[0].Code)
	assert.Equal(t, 1, infos[0].Players)
	assert.Equal(t, string(PhaseWaiting), infos[0].Phase)
}
