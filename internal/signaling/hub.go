package signaling

import (
	"encoding/json"

	"gameroom-signaling/internal/logging"
)

// Hub is the central brain of the signaling server. It owns the room
// registry and all active clients, and processes every inbound event on a
// single goroutine so registry mutations never interleave.
type Hub struct {
	// registry holds the domain state: rooms, hosts, players.
	registry *Registry

	// clients maps connection ids to active clients, for targeted relays.
	clients map[string]*Client

	// channels maps room codes to the connection ids subscribed to that
	// room's broadcasts. Unlike the registry's player tables, a room's
	// channel includes its host.
	channels map[string]map[string]struct{}

	// Register is a channel for registering new clients.
	Register chan *Client

	// Unregister is a channel for unregistering clients.
	Unregister chan *Client

	// Broadcast is a channel for clients to submit inbound messages to.
	// The hub will process these messages.
	Broadcast chan *Message
}

// NewHub creates a new Hub instance over the given registry.
func NewHub(registry *Registry) *Hub {
	return &Hub{
		registry:   registry,
		clients:    make(map[string]*Client),
		channels:   make(map[string]map[string]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *Message),
	}
}

// Run starts the hub's main processing loop.
// This is the single goroutine that safely manages all state (rooms, clients).
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			// The client is not in a room yet. They need to send a
			// create-room or join-room message first.
			h.clients[client.ID] = client
			logging.Infof("client connected: %s", client.ID)

		case client := <-h.Unregister:
			if _, ok := h.clients[client.ID]; !ok {
				continue
			}
			h.handleDisconnect(client)

		case message := <-h.Broadcast:
			h.handleMessage(message)
		}
	}
}

// handleMessage is the core signaling logic: it dispatches one inbound
// event, mutating the registry and emitting replies/relays as needed.
func (h *Hub) handleMessage(message *Message) {
	client := message.client
	logging.Debugf("event %s from %s", message.Type, client.ID)

	switch message.Type {

	case EventCreateRoom:
		var p CreateRoomPayload
		if err := json.Unmarshal(message.Payload, &p); err != nil {
			logging.Warnf("malformed %s payload from %s: %v", message.Type, client.ID, err)
			return
		}

		if err := h.registry.CreateRoom(p.RoomCode, client.ID); err != nil {
			client.Send <- newMessage(EventRoomCreated, RoomCreatedPayload{
				Success: false,
				Error:   "room already exists",
			})
			return
		}

		h.joinChannel(p.RoomCode, client.ID)
		client.Send <- newMessage(EventRoomCreated, RoomCreatedPayload{
			RoomCode: p.RoomCode,
			Success:  true,
		})
		logging.Infof("room %s created by %s (%s)", p.RoomCode, p.UserName, client.ID)

	case EventJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(message.Payload, &p); err != nil {
			logging.Warnf("malformed %s payload from %s: %v", message.Type, client.ID, err)
			return
		}

		if err := h.registry.AddPlayer(p.RoomCode, client.ID, p.UserName); err != nil {
			client.Send <- newMessage(EventRoomJoined, RoomJoinedPayload{
				Success: false,
				Error:   "room not found",
			})
			return
		}

		h.joinChannel(p.RoomCode, client.ID)
		h.emitToRoom(p.RoomCode, client.ID, newMessage(EventPlayerJoined, PlayerJoinedPayload{
			UserName: p.UserName,
			SocketID: client.ID,
		}))
		client.Send <- newMessage(EventRoomJoined, RoomJoinedPayload{
			RoomCode: p.RoomCode,
			Success:  true,
		})
		logging.Infof("%s (%s) joined room %s", p.UserName, client.ID, p.RoomCode)

	case EventOffer, EventAnswer, EventICECandidate:
		var p SignalPayload
		if err := json.Unmarshal(message.Payload, &p); err != nil {
			logging.Warnf("malformed %s payload from %s: %v", message.Type, client.ID, err)
			return
		}
		h.relay(message.Type, client.ID, p)

	default:
		logging.Warnf("unknown message type %q from %s", message.Type, client.ID)
	}
}

// relay forwards an offer, answer or ICE candidate to its target connection
// only. The payload is passed through untouched; relaying to an unknown or
// gone target is a silent no-op, matching best-effort semantics.
func (h *Hub) relay(eventType, senderID string, p SignalPayload) {
	target, ok := h.clients[p.Target]
	if !ok {
		logging.Debugf("dropping %s from %s: target %s not connected", eventType, senderID, p.Target)
		return
	}

	target.Send <- newMessage(eventType, RelayPayload{
		Offer:     p.Offer,
		Answer:    p.Answer,
		Candidate: p.Candidate,
		Sender:    senderID,
	})
	logging.Debugf("relayed %s from %s to %s", eventType, senderID, p.Target)
}

// handleDisconnect cleans up after a dropped connection. Rooms the client
// hosted are closed and their members notified; rooms it had merely joined
// get a player-left instead.
func (h *Hub) handleDisconnect(client *Client) {
	delete(h.clients, client.ID)

	for _, dep := range h.registry.RemovePlayer(client.ID) {
		if dep.WasHost {
			h.emitToRoom(dep.RoomCode, client.ID, newMessage(EventRoomClosed, struct{}{}))
			delete(h.channels, dep.RoomCode)
			logging.Infof("room %s closed: host %s disconnected", dep.RoomCode, client.ID)
		} else {
			h.leaveChannel(dep.RoomCode, client.ID)
			h.emitToRoom(dep.RoomCode, client.ID, newMessage(EventPlayerLeft, PlayerLeftPayload{
				SocketID: client.ID,
			}))
			logging.Infof("player %s left room %s", client.ID, dep.RoomCode)
		}
	}

	// Close the client's send channel to stop its writePump.
	close(client.Send)
	logging.Infof("client disconnected: %s", client.ID)
}

// joinChannel subscribes a connection to a room's broadcasts.
func (h *Hub) joinChannel(code, connID string) {
	members, ok := h.channels[code]
	if !ok {
		members = make(map[string]struct{})
		h.channels[code] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) leaveChannel(code, connID string) {
	if members, ok := h.channels[code]; ok {
		delete(members, connID)
	}
}

// emitToRoom sends msg to every connection subscribed to the room's channel
// except exclude. Members whose client is already gone are skipped.
func (h *Hub) emitToRoom(code, exclude string, msg *Message) {
	for id := range h.channels[code] {
		if id == exclude {
			continue
		}
		if member, ok := h.clients[id]; ok {
			member.Send <- msg
		}
	}
}

// RoomCount reports the number of active rooms, for the health endpoint.
func (h *Hub) RoomCount() int {
	return h.registry.Len()
}
