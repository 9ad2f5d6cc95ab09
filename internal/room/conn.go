package room

import "errors"

// Conn is one client's outbound channel into the room. The websocket
// hub provides the real implementation; tests provide fakes.
type Conn interface {
	ID() string
	Send(action string, data any) error
	Close() error
}

var (
	ErrRoomFull     = errors.New("room is full")
	ErrRoomNotFound = errors.New("room not found")
)

// Server→client actions.
const (
	ActionRoomCreated        = "room-created"
	ActionRoomJoined         = "room-joined"
	ActionWaitingForPlayer   = "waiting-for-player"
	ActionDogSelectionReady  = "dog-selection-ready"
	ActionGameStart          = "game-start"
	ActionGameState          = "game-state"
	ActionGameOver           = "game-over"
	ActionPlayerDisconnected = "player-disconnected"
	ActionChatMessage        = "chat-message"
	ActionError              = "error"
)

// Client→server actions.
const (
	ActionCreateRoom  = "create-room"
	ActionJoinRoom    = "join-room"
	ActionPlayerInput = "player-input"
	ActionSelectDog   = "select-dog"
)
