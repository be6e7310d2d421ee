// Package mqtt announces build and dump events on an MQTT broker. Dump
// messages are retained, so late subscribers get each model's last document.
package mqtt

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"github.com/ohowland/esm_core/internal/pkg/system"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Broker   string `json:"Broker"`
	ClientID string `json:"ClientID"`
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
	log.Println("[MQTT client] Process Started")
	broker := h.config.Broker
	if broker == "" {
		broker = "tcp://localhost:1883"
	}
	clientID := h.config.ClientID
	if clientID == "" {
		clientID = "esm_core"
	}

	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Println("[MQTT client]", token.Error())
		return
	}
	defer client.Disconnect(250)

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
				if token := client.Publish("build/"+system.Slug(e.UID), 0, false, data); token.Wait() && token.Error() != nil {
					log.Printf("[MQTT client] unable to publish to broker: %v", token.Error())
				}

			case msg.Dump:
				if token := client.Publish("dump/"+system.Slug(e.UID), 0, true, e.Document); token.Wait() && token.Error() != nil {
					log.Printf("[MQTT client] unable to publish to broker: %v", token.Error())
				}
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[MQTT client] Process Shutdown")
}
