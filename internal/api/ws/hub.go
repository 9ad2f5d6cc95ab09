package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bone-rush/internal/room"
)

// Hub upgrades websocket connections and translates wire envelopes into
// calls on the session directory. Every connection gets its own read
// loop; the manager serializes per-room mutation.
type Hub struct {
	manager *room.Manager
}

func NewHub(manager *room.Manager) *Hub {
	return &Hub{manager: manager}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// client wraps one websocket connection behind the room.Conn seam. The
// mutex serializes writes: room tick broadcasts and hub replies arrive
// from different goroutines.
type client struct {
	id string
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *client) ID() string { return c.id }

func (c *client) Send(action string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(map[string]any{
		"action": action,
		"data":   data,
	})
}

func (c *client) Close() error { return c.ws.Close() }

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}

	cl := &client{id: uuid.NewString(), ws: conn}
	log.Printf("client connected: %s", cl.id)

	defer func() {
		h.manager.Disconnect(cl.id)
		_ = cl.Close()
		log.Printf("client disconnected: %s", cl.id)
	}()

	for {
		var msg envelope
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error from %s: %v", cl.id, err)
			}
			return
		}
		h.dispatch(cl, msg)
	}
}

func (h *Hub) dispatch(cl *client, msg envelope) {
	switch msg.Action {
	case room.ActionCreateRoom:
		r, slot := h.manager.CreateRoom(cl)
		h.send(cl, room.ActionRoomCreated, gin.H{
			"roomCode": r.Code,
			"playerId": slot,
		})

	case room.ActionJoinRoom:
		var data struct {
			RoomCode string `json:"roomCode"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.RoomCode == "" {
			h.sendError(cl, "Room code is required")
			return
		}
		_, slot, err := h.manager.JoinRoom(data.RoomCode, cl)
		switch err {
		case nil:
			h.send(cl, room.ActionRoomJoined, gin.H{"playerId": slot})
		case room.ErrRoomNotFound:
			h.sendError(cl, "Room not found")
		case room.ErrRoomFull:
			h.sendError(cl, "Room is full")
		default:
			h.sendError(cl, err.Error())
		}

	case room.ActionPlayerInput:
		var data struct {
			Direction string `json:"direction"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		h.manager.HandleInput(cl.id, data.Direction)

	case room.ActionSelectDog:
		var data struct {
			DogName string `json:"dogName"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		h.manager.SelectDog(cl.id, data.DogName)

	case room.ActionChatMessage:
		var data struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		h.manager.Chat(cl.id, data.Message)

	default:
		log.Printf("unknown action from %s: %q", cl.id, msg.Action)
	}
}

func (h *Hub) send(cl *client, action string, data any) {
	if err := cl.Send(action, data); err != nil {
		log.Printf("failed to send %s to %s: %v", action, cl.id, err)
	}
}

func (h *Hub) sendError(cl *client, message string) {
	h.send(cl, room.ActionError, gin.H{"message": message})
}
