package room

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"bone-rush/internal/config"
	"bone-rush/internal/game"
)

// Store keeps live rooms; the in-memory implementation lives in
// internal/store.
type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	Rooms() []*Room
}

// Manager is the session directory: it owns the code→room mapping and
// routes every per-connection event to the room holding that
// connection. Created once at process start.
type Manager struct {
	store Store
	cfg   config.Config
}

func NewManager(s Store, cfg config.Config) *Manager {
	return &Manager{store: s, cfg: cfg}
}

// CreateRoom makes a room under a fresh code and seats the requesting
// connection as player 0.
func (m *Manager) CreateRoom(c Conn) (*Room, int) {
	var code string
	for {
		code = randCode(6)
		if _, exists := m.store.GetRoom(code); !exists {
			break
		}
	}
	r := NewRoom(code, m.cfg)
	m.store.SaveRoom(r)
	slot, _ := r.AddPlayer(c) // a fresh room cannot be full
	log.Printf("room created: %s", code)
	return r, slot
}

// JoinRoom seats the connection in an existing room. Codes are
// case-normalized so players can type them either way.
func (m *Manager) JoinRoom(code string, c Conn) (*Room, int, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, 0, ErrRoomNotFound
	}
	slot, err := r.AddPlayer(c)
	if err != nil {
		return nil, 0, err
	}
	return r, slot, nil
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(strings.ToUpper(strings.TrimSpace(code)))
}

// roomFor finds the room holding the connection by scanning the active
// rooms. A connection is in at most one room.
func (m *Manager) roomFor(connID string) (*Room, bool) {
	for _, r := range m.store.Rooms() {
		if r.Has(connID) {
			return r, true
		}
	}
	return nil, false
}

func (m *Manager) HandleInput(connID, direction string) {
	if r, ok := m.roomFor(connID); ok {
		r.HandleInput(connID, game.Direction(direction))
	}
}

func (m *Manager) SelectDog(connID, dogName string) {
	if r, ok := m.roomFor(connID); ok {
		r.SelectDog(connID, dogName)
	}
}

func (m *Manager) Chat(connID, message string) {
	if r, ok := m.roomFor(connID); ok {
		r.Chat(connID, message)
	}
}

// Disconnect routes the hangup to the owning room and discards the room
// once its last player is gone.
func (m *Manager) Disconnect(connID string) {
	r, ok := m.roomFor(connID)
	if !ok {
		return
	}
	if r.HandleDisconnect(connID) {
		r.Stop()
		m.store.DeleteRoom(r.Code)
		log.Printf("room %s deleted (empty)", r.Code)
	}
}

// RoomInfo is returned by the API for the room list.
type RoomInfo struct {
	Code      string `json:"code"`
	Players   int    `json:"players"`
	Phase     string `json:"phase"`
	CreatedAt string `json:"createdAt"`
}

func (m *Manager) ListRooms() []RoomInfo {
	rooms := m.store.Rooms()
	out := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomInfo{
			Code:      r.Code,
			Players:   r.PlayerCount(),
			Phase:     string(r.Phase()),
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
