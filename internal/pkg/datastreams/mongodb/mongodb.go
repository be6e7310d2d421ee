// Package mongodb persists build and dump events to a MongoDB instance.
package mongodb

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URI      string `json:"URI"`
	Port     string `json:"Port"`
	Database string `json:"Database"`
}

func (h Handler) PID() uuid.UUID {
	return h.pid
}

func redirectMsg(chIn <-chan msg.Msg, chOut chan<- msg.Msg) {
	for m := range chIn {
		chOut <- m
	}
}

func New(configPath string, system msg.Publisher) (Handler, error) {
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

	chBuild := system.Subscribe(pid, msg.Build)
	go redirectMsg(chBuild, inbox)

	chDump := system.Subscribe(pid, msg.Dump)
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

func buildToBSON(e registry.Entry) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.M{
			"pid": e.PID.String(),
			"uid": e.UID,
		}},
	}
}

func dumpToBSON(e registry.Entry) (bson.D, error) {
	doc := bson.M{}
	if err := bson.UnmarshalExtJSON(e.Document, true, &doc); err != nil {
		return nil, err
	}
	return bson.D{
		{Key: "$set", Value: bson.M{
			"pid":      e.PID.String(),
			"uid":      e.UID,
			"path":     e.Path,
			"document": doc,
		}},
	}, nil
}

// Stop ends Process after the current message. Safe to call even when the
// process loop never started.
func (h *Handler) Stop() {
	close(h.stop)
}

func (h Handler) Process() {
	client, err := mongo.NewClient(options.Client().ApplyURI(h.config.URI + ":" + h.config.Port))
	if err != nil {
		log.Println("[Mongo]", err)
		return
	}

	ctx := context.TODO()
	if err := client.Connect(ctx); err != nil {
		log.Println("[Mongo]", err)
		return
	}
	defer client.Disconnect(ctx)

	client.Database(h.config.Database).Collection("systems").Drop(ctx)
	client.Database(h.config.Database).Collection("dumps").Drop(ctx)
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
				opts := options.Update().SetUpsert(true)
				_, err := client.Database(h.config.Database).Collection("systems").UpdateOne(
					ctx,
					bson.M{"uid": e.UID},
					buildToBSON(e),
					opts,
				)
				if err != nil {
					log.Println("[Mongo]", err)
				}

			case msg.Dump:
				update, err := dumpToBSON(e)
				if err != nil {
					log.Println("[Mongo]", err)
					continue
				}
				opts := options.Update().SetUpsert(true)
				_, err = client.Database(h.config.Database).Collection("dumps").UpdateOne(
					ctx,
					bson.M{"uid": e.UID},
					update,
					opts,
				)
				if err != nil {
					log.Println("[Mongo]", err)
				}
			}
		case <-h.stop:
			break loop
		}
	}
	log.Println("[Mongo] Process Shutdown")
}
