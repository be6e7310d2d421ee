// Package msg carries build and dump events from the example registry to
// whatever is listening: datastream handlers, the webservice, tests.
package msg

import (
	"sync"

	"github.com/google/uuid"
)

// Topic partitions the event stream.
type Topic int

const (
	// Build announces a system that finished construction.
	Build Topic = iota
	// Dump announces a system that was serialized, payload included.
	Dump
)

// Msg is one event: who sent it and what happened.
type Msg struct {
	sender  uuid.UUID
	topic   Topic
	payload interface{}
}

// New is the Msg factory function.
func New(sender uuid.UUID, topic Topic, payload interface{}) Msg {
	return Msg{sender, topic, payload}
}

// PID returns the sender's PID.
func (m Msg) PID() uuid.UUID {
	return m.sender
}

// Topic returns the event's topic.
func (m Msg) Topic() Topic {
	return m.topic
}

// Payload returns the event data.
func (m Msg) Payload() interface{} {
	return m.payload
}

// Publisher is the subscription side of a PubSub.
type Publisher interface {
	Subscribe(pid uuid.UUID, topic Topic) <-chan Msg
	Unsubscribe(pid uuid.UUID)
}

// PubSub fans messages out to per-topic subscribers keyed by their PID.
type PubSub struct {
	mux    *sync.Mutex
	pid    uuid.UUID
	subs   map[Topic]map[uuid.UUID]chan<- Msg
	closed bool
}

// NewPubSub returns a publisher owned by pid.
func NewPubSub(pid uuid.UUID) *PubSub {
	return &PubSub{
		mux:  &sync.Mutex{},
		pid:  pid,
		subs: make(map[Topic]map[uuid.UUID]chan<- Msg),
	}
}

// PID returns the owning publisher's id.
func (p *PubSub) PID() uuid.UUID {
	return p.pid
}

// Subscribe returns a buffered channel receiving every message published on
// topic until Unsubscribe or Close.
func (p *PubSub) Subscribe(pid uuid.UUID, topic Topic) <-chan Msg {
	p.mux.Lock()
	defer p.mux.Unlock()
	ch := make(chan Msg, 32)
	if p.subs[topic] == nil {
		p.subs[topic] = make(map[uuid.UUID]chan<- Msg)
	}
	p.subs[topic][pid] = ch
	return ch
}

// Unsubscribe closes every channel held for pid.
func (p *PubSub) Unsubscribe(pid uuid.UUID) {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, subs := range p.subs {
		if ch, ok := subs[pid]; ok {
			delete(subs, pid)
			close(ch)
		}
	}
}

// Publish delivers payload to every topic subscriber. Slow subscribers with
// a full buffer miss the message rather than stall the build.
func (p *PubSub) Publish(topic Topic, payload interface{}) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.closed {
		return
	}
	for _, ch := range p.subs[topic] {
		select {
		case ch <- New(p.pid, topic, payload):
		default:
		}
	}
}

// Close closes all subscriber channels; further publishes are dropped.
func (p *PubSub) Close() {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, subs := range p.subs {
		for pid, ch := range subs {
			delete(subs, pid)
			close(ch)
		}
	}
}
