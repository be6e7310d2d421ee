// Package natshandler announces build and dump events on a NATS server.
package natshandler

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"github.com/ohowland/esm_core/internal/pkg/system"

	nats "github.com/nats-io/nats.go"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Server string `json:"Server"`
}

func (h Handler) PID() uuid.UUID {
	return h.pid
}

func redirectMsg(chIn <-chan msg.Msg, chOut chan<- msg.Msg) {
	for m := range chIn {
		chOut <- m
	}
}

func New(configPath string, sys msg.Publisher) (Handler, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Handler{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Handler{}, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Handler{}, err
	}

	inbox := make(chan msg.Msg, 50)

	chBuild := sys.Subscribe(pid, msg.Build)
	go redirectMsg(chBuild, inbox)

	chDump := sys.Subscribe(pid, msg.Dump)
	go redirectMsg(chDump, inbox)

	stop := make(chan bool)

	return Handler{
		mux:    &sync.Mutex{},
		inbox:  inbox,
		pid:    pid,
		config: cfg,
		stop:   stop,
	}, nil
}

// Stop ends Process after the current message. Safe to call even when the
// process loop never started.
func (h *Handler) Stop() {
	close(h.stop)
}

func (h Handler) Process() {
	log.Println("[NATS client] Process Started")
	server := h.config.Server
	if server == "" {
		server = nats.DefaultURL
	}
	nc, err := nats.Connect(server)
	if err != nil {
		log.Println("[NATS client]", err)
		return
	}
	defer nc.Close()

loop:
	for {
		select {
		case m := <-h.inbox:
			e, ok := m.Payload().(registry.Entry)
			if !ok {
				continue
			}
			switch m.Topic() {
			case msg.Build:
				data, err := json.Marshal(map[string]string{"UID": e.UID, "PID": e.PID.String()})
				if err != nil {
					continue
				}
				if err = nc.Publish("build."+system.Slug(e.UID), data); err != nil {
					log.Printf("[NATS client] unable to publish to nats server: %v", err)
				}

			case msg.Dump:
				if err := nc.Publish("dump."+system.Slug(e.UID), e.Document); err != nil {
					log.Printf("[NATS client] unable to publish to nats server: %v", err)
				}
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[NATS client] Process Shutdown")
}
