package main

import (
	"flag"
	"log"

	"github.com/ohowland/esm_core/internal/pkg/examples"
	"github.com/ohowland/esm_core/internal/pkg/hmi"
	"github.com/ohowland/esm_core/internal/pkg/registry"
)

func main() {
	profiles := flag.String("profiles", examples.DefaultProfileDir, "load profile directory")
	periods := flag.Int("periods", 0, "hourly step count for the profile examples, 0 keeps defaults")
	flag.Parse()

	log.Println("[Main] Starting Model Browser")

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
	}

	if err := hmi.New(reg).Run(); err != nil {
		panic(err)
	}
}
