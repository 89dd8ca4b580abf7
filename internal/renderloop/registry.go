package renderloop

import "sync"

// Participant is driven once per frame while registered.
type Participant interface {
	FrameMove()
}

// Registry keeps the ordered set of render-loop participants for a process
// and drives them once per frame. Registration and deregistration may happen
// from any goroutine, including from inside a FrameMove callback.
type Registry struct {
	pump func()

	mu           sync.Mutex
	participants []Participant
}

// NewRegistry creates a registry. pump is the platform message-pump step run
// once at the start of every frame before any participant advances; it may
// be nil.
func NewRegistry(pump func()) *Registry {
	return &Registry{pump: pump}
}

// Register appends a participant. Registering the same participant twice is
// allowed and results in two FrameMove calls per frame.
func (r *Registry) Register(p Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = append(r.participants, p)
}

// Unregister removes the first entry matching p by identity. Unregistering a
// participant that is not registered is a no-op.
func (r *Registry) Unregister(p Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.participants {
		if c == p {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered participants.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

// DriveFrame runs one message-pump step and then advances every registered
// participant exactly once, in registration order. The participant list is
// snapshotted under the lock and the callbacks run outside it, so a
// FrameMove may re-enter Register or Unregister without deadlocking.
// Registrations made during the pass take effect next frame.
func (r *Registry) DriveFrame() {
	if r.pump != nil {
		r.pump()
	}

	r.mu.Lock()
	clients := make([]Participant, len(r.participants))
	copy(clients, r.participants)
	r.mu.Unlock()

	for _, c := range clients {
		c.FrameMove()
	}
}
