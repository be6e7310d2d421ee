/*
Package registry tracks the example systems a build run produced and fans
build/dump events out to the attached handlers. It is the seam between the
pure model construction on one side and storage, messaging and the
webservice on the other.
*/
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"github.com/ohowland/esm_core/internal/pkg/system"
)

// Entry is one built example and, once dumped, its serialized form.
type Entry struct {
	PID      uuid.UUID
	UID      string
	System   *system.System
	Path     string
	Document []byte
}

// Registry collects entries in build order and publishes msg events.
type Registry struct {
	mux    *sync.Mutex
	pid    uuid.UUID
	pubsub *msg.PubSub
	order  []string
	index  map[string]Entry
}

// New returns an empty registry.
func New() (*Registry, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	return &Registry{
		mux:    &sync.Mutex{},
		pid:    pid,
		pubsub: msg.NewPubSub(pid),
		index:  make(map[string]Entry),
	}, nil
}

// PID returns the registry's process id.
func (r *Registry) PID() uuid.UUID {
	return r.pid
}

// Register enters a built system and announces it on the Build topic.
func (r *Registry) Register(sys *system.System) error {
	r.mux.Lock()
	if _, exists := r.index[sys.UID()]; exists {
		r.mux.Unlock()
		return fmt.Errorf("registry: %q already registered", sys.UID())
	}
	e := Entry{PID: sys.PID(), UID: sys.UID(), System: sys}
	r.index[sys.UID()] = e
	r.order = append(r.order, sys.UID())
	r.mux.Unlock()

	r.pubsub.Publish(msg.Build, e)
	return nil
}

// RecordDump attaches the serialized document and its path to a registered
// system and announces it on the Dump topic.
func (r *Registry) RecordDump(sys *system.System, path string) error {
	doc, err := sys.Encode()
	if err != nil {
		return err
	}

	r.mux.Lock()
	e, exists := r.index[sys.UID()]
	if !exists {
		r.mux.Unlock()
		return fmt.Errorf("registry: %q not registered", sys.UID())
	}
	e.Path = path
	e.Document = doc
	r.index[sys.UID()] = e
	r.mux.Unlock()

	r.pubsub.Publish(msg.Dump, e)
	return nil
}

// Entries returns all entries in build order.
func (r *Registry) Entries() []Entry {
	r.mux.Lock()
	defer r.mux.Unlock()
	out := make([]Entry, 0, len(r.order))
	for _, uid := range r.order {
		out = append(out, r.index[uid])
	}
	return out
}

// Lookup returns the entry for a UID.
func (r *Registry) Lookup(uid string) (Entry, bool) {
	r.mux.Lock()
	defer r.mux.Unlock()
	e, ok := r.index[uid]
	return e, ok
}

// Subscribe attaches a handler channel to a topic.
func (r *Registry) Subscribe(pid uuid.UUID, topic msg.Topic) <-chan msg.Msg {
	return r.pubsub.Subscribe(pid, topic)
}

// Unsubscribe detaches a handler.
func (r *Registry) Unsubscribe(pid uuid.UUID) {
	r.pubsub.Unsubscribe(pid)
}

// Close ends the event stream; attached handlers drain and stop.
func (r *Registry) Close() {
	r.pubsub.Close()
}
