// Package webhook pushes build and dump events to a remote HTTP endpoint.
package webhook

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"github.com/ohowland/esm_core/internal/pkg/system"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URL string `json:"URL"`
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
	log.Println("[Webhook] Process Started")

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
				h.post("/examples/"+system.Slug(e.UID)+"/build", data)

			case msg.Dump:
				h.post("/examples/"+system.Slug(e.UID)+"/dump", e.Document)
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[Webhook] Process Shutdown")
}

func (h Handler) post(path string, jsonData []byte) {
	targetURL := h.config.URL + path
	resp, err := http.Post(targetURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		log.Println("[Webhook]", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Println("[Webhook]", targetURL, "returned", resp.Status)
	}
}
