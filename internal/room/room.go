package room

import (
	"log"
	"sync"
	"time"

	"bone-rush/internal/config"
	"bone-rush/internal/game"
)

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseSelecting Phase = "selecting"
	PhasePlaying   Phase = "playing"
	PhaseFinished  Phase = "finished"
)

// Room is one match container addressed by its code. A mutex serializes
// every mutation, whether it comes from an inbound event or from the
// tick loop, so handlers never interleave.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu         sync.Mutex
	cfg        config.Config
	conns      map[string]Conn
	slots      map[string]int // conn ID -> slot, fixed at join
	selections map[int]string // slot -> chosen dog name
	phase      Phase
	state      *game.State
	quit       chan struct{}
}

func NewRoom(code string, cfg config.Config) *Room {
	return &Room{
		Code:       code,
		CreatedAt:  time.Now(),
		cfg:        cfg,
		conns:      make(map[string]Conn),
		slots:      make(map[string]int),
		selections: make(map[int]string),
		phase:      PhaseWaiting,
	}
}

func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Has reports whether the connection currently occupies a slot here.
func (r *Room) Has(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slots[connID]
	return ok
}

// AddPlayer seats the connection in the lowest free slot. The second
// join moves the room to dog selection and tells both players.
func (r *Room) AddPlayer(c Conn) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.slots) >= 2 {
		return 0, ErrRoomFull
	}

	slot := 0
	for _, taken := range r.slots {
		if taken == 0 {
			slot = 1
		}
	}
	r.conns[c.ID()] = c
	r.slots[c.ID()] = slot
	log.Printf("room %s: player %d joined", r.Code, slot)

	if len(r.slots) == 2 {
		r.phase = PhaseSelecting
		r.broadcastLocked(ActionDogSelectionReady, nil)
	} else {
		r.sendLocked(c, ActionWaitingForPlayer, nil)
	}
	return slot, nil
}

// SelectDog records the avatar choice for the connection's slot. Once
// both slots have chosen, the match starts exactly once.
func (r *Room) SelectDog(connID, dogName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[connID]
	if !ok {
		return
	}
	r.selections[slot] = dogName
	log.Printf("room %s: player %d selected %s", r.Code, slot, dogName)

	if len(r.selections) == 2 && r.phase == PhaseSelecting {
		r.startGameLocked()
	}
}

func (r *Room) startGameLocked() {
	r.phase = PhasePlaying
	r.state = game.NewState(r.cfg, r.selections, time.Now().UnixNano())
	log.Printf("room %s: starting game", r.Code)
	r.broadcastLocked(ActionGameStart, r.state.Snapshot())

	r.quit = make(chan struct{})
	go r.runLoop(r.quit)
}

// runLoop drives the match at the fixed tick interval until the quit
// channel owned by this room is closed.
func (r *Room) runLoop(quit chan struct{}) {
	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Room) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying || r.state == nil {
		return
	}
	r.state.Tick()
	r.broadcastLocked(ActionGameState, r.state.Snapshot())

	if r.state.GameOver {
		r.phase = PhaseFinished
		r.stopLoopLocked()
		log.Printf("room %s: game ended", r.Code)
		r.broadcastLocked(ActionGameOver, map[string]any{
			"winner":      r.state.Winner,
			"finalScores": r.state.Scores,
		})
	}
}

// HandleInput forwards a movement command to the match. Outside the
// playing phase it is a no-op.
func (r *Room) HandleInput(connID string, dir game.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying || r.state == nil {
		return
	}
	slot, ok := r.slots[connID]
	if !ok {
		return
	}
	r.state.ApplyInput(slot, dir)
}

// Chat relays a message to every member, tagged with the sender's slot.
func (r *Room) Chat(connID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[connID]
	if !ok {
		return
	}
	r.broadcastLocked(ActionChatMessage, map[string]any{
		"playerId": slot,
		"message":  message,
	})
}

// HandleDisconnect unseats the connection. A disconnect mid-match stops
// the tick loop without a final tick and notifies the remaining player;
// no winner is declared on this path. Returns whether the room is now
// empty and should be discarded.
func (r *Room) HandleDisconnect(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[connID]
	if !ok {
		return len(r.slots) == 0
	}
	delete(r.conns, connID)
	delete(r.slots, connID)
	log.Printf("room %s: player %d disconnected", r.Code, slot)

	if r.phase == PhasePlaying {
		// The finished phase also gates out any tick already blocked on
		// the mutex, so no state broadcast follows the disconnect.
		r.phase = PhaseFinished
		r.stopLoopLocked()
		r.broadcastLocked(ActionPlayerDisconnected, map[string]any{
			"playerId": slot,
		})
	}
	return len(r.slots) == 0
}

// Stop cancels the tick loop; safe to call repeatedly.
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLoopLocked()
}

func (r *Room) stopLoopLocked() {
	if r.quit != nil {
		close(r.quit)
		r.quit = nil
	}
}

func (r *Room) sendLocked(c Conn, action string, data any) {
	if err := c.Send(action, data); err != nil {
		log.Printf("room %s: send %s failed: %v", r.Code, action, err)
	}
}

func (r *Room) broadcastLocked(action string, data any) {
	for _, c := range r.conns {
		r.sendLocked(c, action, data)
	}
}
