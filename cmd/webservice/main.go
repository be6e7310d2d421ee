package main

import (
	"flag"
	"log"

	"github.com/ohowland/esm_core/internal/pkg/examples"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"github.com/ohowland/esm_core/internal/pkg/webservice"
)

func main() {
	port := flag.String("port", ":8080", "listen address")
	profiles := flag.String("profiles", examples.DefaultProfileDir, "load profile directory")
	periods := flag.Int("periods", 0, "hourly step count for the profile examples, 0 keeps defaults")
	flag.Parse()

	reg, err := registry.New()
	if err != nil {
		panic(err)
	}

	cfg := examples.Config{ProfileDir: *profiles, Periods: *periods}
	for _, ex := range examples.All() {
		sys, err := ex.Build(cfg)
		if err != nil {
			panic(err)
		}
		if err := reg.Register(sys); err != nil {
			panic(err)
		}
		log.Printf("[Main] %v: %v nodes", sys.UID(), len(sys.Nodes()))
	}

	svc := webservice.New(reg)
	if err := svc.Serve(*port); err != nil {
		panic(err)
	}
}
