package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ohowland/esm_core/internal/pkg/comm/recorder"
)

func main() {
	cfgPath := flag.String("config", "./config/recorder.json", "recorder config file")
	flag.Parse()

	log.Println("[Main] Starting Profile Recorder")
	rec, err := recorder.New(*cfgPath)
	if err != nil {
		panic(err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		rec.Stop()
	}()

	if err := rec.Run(); err != nil {
		panic(err)
	}
	log.Println("[Main] Stopping recorder")
}
