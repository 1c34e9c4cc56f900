// Package server tracks the sessions connected to one process. Each session
// runs its own game; the server only knows who is connected, relays
// announcements between sessions and coordinates shutdown.
package server

import (
	"sort"
	"sync"
	"time"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Rename(clientID int, username string)
	Announce(fromID int, text string)
	Players() int
}

// Server is the session registry. It is safe for concurrent use.
type Server struct {
	clients      map[int]*ClientHandle
	devices      map[string]bool // Devices with an active game
	nextClientID int
	shuttingDown bool
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	From string // Username of the announcing client
	Text string // Announcement text
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventAnnouncement ClientEventType = iota
	EventServerShutdown
)

// eventBuffer is the per-client event queue. Events that do not fit are dropped.
const eventBuffer = 16

// NewServer creates an empty registry.
func NewServer() *Server {
	return &Server{
		clients:      make(map[int]*ClientHandle),
		devices:      make(map[string]bool),
		nextClientID: 1,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// A client that registers during shutdown is told immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, eventBuffer),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		notifyShutdown(handle)
	}
	return handle
}

// notifyShutdown queues the shutdown event, evicting the oldest queued event
// when the queue is full. Caller holds s.mu for writing, so no other sender
// can refill the slot.
func notifyShutdown(handle *ClientHandle) {
	ev := ClientEvent{Type: EventServerShutdown}
	select {
	case handle.EventsCh <- ev:
		return
	default:
	}
	select {
	case <-handle.EventsCh:
	default:
	}
	handle.EventsCh <- ev
}

// ClaimDevice reserves device for one game. ok is false while another session
// holds it. release frees the claim and is safe to call more than once.
func (s *Server) ClaimDevice(device string) (release func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.devices[device] {
		return nil, false
	}
	s.devices[device] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.devices, device)
		})
	}, true
}

// UnregisterClient removes a client. Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, clientID)
}

// Rename updates the display name of a client.
func (s *Server) Rename(clientID int, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.clients[clientID]; ok {
		h.Username = username
	}
}

// Announce sends text to every client except the sender.
func (s *Server) Announce(fromID int, text string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := ""
	if h, ok := s.clients[fromID]; ok {
		from = h.Username
	}
	for id, handle := range s.clients {
		if id == fromID {
			continue
		}
		select {
		case handle.EventsCh <- ClientEvent{Type: EventAnnouncement, From: from, Text: text}:
		default:
		}
	}
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Usernames returns the connected usernames, sorted.
func (s *Server) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.clients))
	for _, h := range s.clients {
		names = append(names, h.Username)
	}
	sort.Strings(names)
	return names
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		notifyShutdown(handle)
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
