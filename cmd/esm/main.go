package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/ohowland/esm_core/internal/pkg/datastreams/mongodb"
	"github.com/ohowland/esm_core/internal/pkg/datastreams/mqtt"
	"github.com/ohowland/esm_core/internal/pkg/datastreams/natshandler"
	"github.com/ohowland/esm_core/internal/pkg/datastreams/sqldb"
	"github.com/ohowland/esm_core/internal/pkg/datastreams/webhook"
	"github.com/ohowland/esm_core/internal/pkg/examples"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"github.com/ohowland/esm_core/internal/pkg/webservice"
)

func main() {
	dir := flag.String("dir", "dumps", "directory the serialized systems are written to")
	profiles := flag.String("profiles", examples.DefaultProfileDir, "load profile directory")
	periods := flag.Int("periods", 0, "hourly step count for the profile examples, 0 keeps defaults")
	seed := flag.Int64("seed", 0, "draw synthetic demand from this seed instead of the recorded profile")
	serve := flag.String("serve", "", "serve the built systems on this port, e.g. :8080")
	mongoCfg := flag.String("mongo", "", "mongodb handler config file")
	sqlCfg := flag.String("sql", "", "mysql handler config file")
	natsCfg := flag.String("nats", "", "nats handler config file")
	mqttCfg := flag.String("mqtt", "", "mqtt handler config file")
	webhookCfg := flag.String("webhook", "", "webhook handler config file")
	flag.Parse()

	log.Println("[Main] Starting ESM_Core v0.0.1")

	log.Println("[Main] Building Registry")
	reg, err := registry.New()
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Linking Datastream Handlers")
	stops := linkHandlers(reg, handlerConfigs{
		mongo:   *mongoCfg,
		sql:     *sqlCfg,
		nats:    *natsCfg,
		mqtt:    *mqttCfg,
		webhook: *webhookCfg,
	})

	cfg := examples.Config{ProfileDir: *profiles, Periods: *periods}
	if *seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}

	log.Println("[Main] Building Example Systems")
	if err := buildExamples(reg, cfg, *dir); err != nil {
		panic(err)
	}

	if *serve != "" {
		log.Println("[Main] Starting Webservice")
		svc := webservice.New(reg)
		if err := svc.Serve(*serve); err != nil {
			panic(err)
		}
	}

	log.Println("[Main] Stopping system")
	reg.Close()
	if len(stops) > 0 {
		time.Sleep(1 * time.Second)
		for _, stop := range stops {
			stop()
		}
	}
}

func buildExamples(reg *registry.Registry, cfg examples.Config, dir string) error {
	for _, ex := range examples.All() {
		sys, err := ex.Build(cfg)
		if err != nil {
			return err
		}
		if err := reg.Register(sys); err != nil {
			return err
		}
		path, err := sys.Dump(dir, ex.Filename)
		if err != nil {
			return err
		}
		if err := reg.RecordDump(sys, path); err != nil {
			return err
		}
		log.Printf("[Main] %v: %v nodes -> %v", sys.UID(), len(sys.Nodes()), path)
	}
	return nil
}

type handlerConfigs struct {
	mongo   string
	sql     string
	nats    string
	mqtt    string
	webhook string
}

func linkHandlers(reg *registry.Registry, cfgs handlerConfigs) []func() {
	stops := make([]func(), 0, 5)

	if cfgs.mongo != "" {
		log.Println("[Main] Connecting MongoDB Handler")
		h, err := mongodb.New(cfgs.mongo, reg)
		if err != nil {
			panic(err)
		}
		go h.Process()
		stops = append(stops, h.Stop)
	}

	if cfgs.sql != "" {
		log.Println("[Main] Connecting MySQL Handler")
		h, err := sqldb.New(cfgs.sql, reg)
		if err != nil {
			panic(err)
		}
		go h.Process()
		stops = append(stops, h.Stop)
	}

	if cfgs.nats != "" {
		log.Println("[Main] Connecting NATS Handler")
		h, err := natshandler.New(cfgs.nats, reg)
		if err != nil {
			panic(err)
		}
		go h.Process()
		stops = append(stops, h.Stop)
	}

	if cfgs.mqtt != "" {
		log.Println("[Main] Connecting MQTT Handler")
		h, err := mqtt.New(cfgs.mqtt, reg)
		if err != nil {
			panic(err)
		}
		go h.Process()
		stops = append(stops, h.Stop)
	}

	if cfgs.webhook != "" {
		log.Println("[Main] Connecting Webhook Handler")
		h, err := webhook.New(cfgs.webhook, reg)
		if err != nil {
			panic(err)
		}
		go h.Process()
		stops = append(stops, h.Stop)
	}

	return stops
}
