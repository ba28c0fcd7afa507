package signaling

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrRoomExists is returned by CreateRoom when the code is taken.
	ErrRoomExists = errors.New("room already exists")

	// ErrRoomNotFound is returned by AddPlayer when no room has the code.
	ErrRoomNotFound = errors.New("room not found")
)

// Player is a non-host member of a room.
type Player struct {
	DisplayName string
	JoinedAt    time.Time
}

// Room is a named, host-owned group of connections. The host is never an
// entry in Players; the two roles are disjoint.
type Room struct {
	Code      string
	Host      string
	Players   map[string]Player
	CreatedAt time.Time
}

// Departure records one room affected by a disconnect, so the hub can emit
// room-closed (host left) or player-left (player left) accordingly.
type Departure struct {
	RoomCode string
	WasHost  bool
}

// Registry is the process-wide table of active rooms. The hub is the only
// writer, but HTTP handlers read the room count from request goroutines,
// so every operation takes the lock.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// CreateRoom registers a new room under code, owned by hostID. Fails with
// ErrRoomExists if the code is already taken; the existing room is untouched.
func (r *Registry) CreateRoom(code, hostID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[code]; ok {
		return ErrRoomExists
	}
	r.rooms[code] = &Room{
		Code:      code,
		Host:      hostID,
		Players:   make(map[string]Player),
		CreatedAt: time.Now(),
	}
	return nil
}

// Room returns a snapshot of the room registered under code. The snapshot's
// Players map is a copy, so callers can iterate it without holding any lock.
func (r *Registry) Room(code string) (Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return Room{}, false
	}
	players := make(map[string]Player, len(room.Players))
	for id, p := range room.Players {
		players[id] = p
	}
	return Room{
		Code:      room.Code,
		Host:      room.Host,
		Players:   players,
		CreatedAt: room.CreatedAt,
	}, true
}

// AddPlayer inserts connID into the room's player table. Joining the same
// room twice under one connection id overwrites the prior entry silently.
func (r *Registry) AddPlayer(code, connID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}
	room.Players[connID] = Player{DisplayName: displayName, JoinedAt: time.Now()}
	return nil
}

// RemovePlayer scans every room for connID. Rooms hosted by connID are
// deleted outright; rooms where connID is a plain player lose that entry.
// One Departure is returned per room affected. A connection absent from all
// rooms yields an empty slice, so calling this twice is harmless.
//
// The scan is O(rooms) per disconnect, which is fine at the room counts this
// server sees; disconnects are the rare path next to relay traffic.
func (r *Registry) RemovePlayer(connID string) []Departure {
	r.mu.Lock()
	defer r.mu.Unlock()

	var departures []Departure
	for code, room := range r.rooms {
		if room.Host == connID {
			delete(r.rooms, code)
			departures = append(departures, Departure{RoomCode: code, WasHost: true})
		} else if _, ok := room.Players[connID]; ok {
			delete(room.Players, connID)
			departures = append(departures, Departure{RoomCode: code, WasHost: false})
		}
	}
	return departures
}

// Len reports the number of active rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
