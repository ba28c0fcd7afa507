package signaling

import "encoding/json"

// Event names understood by the hub. Inbound names match what clients send;
// outbound names are what the hub emits back.
const (
	EventCreateRoom   = "create-room"
	EventJoinRoom     = "join-room"
	EventOffer        = "webrtc-offer"
	EventAnswer       = "webrtc-answer"
	EventICECandidate = "webrtc-ice-candidate"

	EventRoomCreated  = "room-created"
	EventRoomJoined   = "room-joined"
	EventPlayerJoined = "player-joined"
	EventPlayerLeft   = "player-left"
	EventRoomClosed   = "room-closed"
)

// Message is the envelope for all C2S and S2C websocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// client is the client that sent the message.
	// It's used internally by the Hub and not sent over JSON.
	client *Client `json:"-"`
}

// CreateRoomPayload is the body of a create-room event. The room code is
// chosen by the caller, not generated here, so the surrounding application
// controls the code format (e.g. a human-shareable invite code).
type CreateRoomPayload struct {
	RoomCode string `json:"roomCode"`
	UserName string `json:"userName"`
}

// JoinRoomPayload is the body of a join-room event.
type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	UserName string `json:"userName"`
}

// SignalPayload is the body of the three relay events. Offer, answer and
// candidate are opaque: the server routes by target and never inspects
// SDP or ICE contents.
type SignalPayload struct {
	Target    string          `json:"target"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// RoomCreatedPayload acknowledges a create-room back to its sender.
type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// RoomJoinedPayload acknowledges a join-room back to its sender.
type RoomJoinedPayload struct {
	RoomCode string `json:"roomCode,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// PlayerJoinedPayload notifies existing room members of a new player.
type PlayerJoinedPayload struct {
	UserName string `json:"userName"`
	SocketID string `json:"socketId"`
}

// PlayerLeftPayload notifies remaining room members that a player dropped.
type PlayerLeftPayload struct {
	SocketID string `json:"socketId"`
}

// RelayPayload is a signal forwarded to its target, stamped with the
// sender's connection id so the target knows who to answer.
type RelayPayload struct {
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	Sender    string          `json:"sender"`
}

// newMessage marshals payload into a ready-to-send envelope. Marshalling a
// local payload struct cannot fail, so the error is swallowed.
func newMessage(eventType string, payload any) *Message {
	body, _ := json.Marshal(payload)
	return &Message{Type: eventType, Payload: body}
}
