/*
Package recorder samples Modbus meters on a fixed interval and appends the
readings to a load profile file, one column per register. The produced file
feeds straight back into profile.LoadColumn.
*/
package recorder

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/comm/modbuscomm"
	"github.com/ohowland/esm_core/internal/pkg/profile"
)

// Config wires a poller, its register map and the output profile together.
// Samples of zero records until Stop is called.
type Config struct {
	Poller    modbuscomm.PollerConfig `json:"Poller"`
	Registers []modbuscomm.Register   `json:"Registers"`
	Output    string                  `json:"Output"`
	Samples   int                     `json:"Samples"`
}

// ReadConfig loads a recorder configuration from a JSON file.
func ReadConfig(path string) (Config, error) {
	jsonConfig, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Recorder owns the poll loop.
type Recorder struct {
	pid    uuid.UUID
	poller modbuscomm.Poller
	config Config
	stop   chan bool
}

// New builds a recorder from a JSON configuration file.
func New(configPath string) (*Recorder, error) {
	cfg, err := ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}

	return &Recorder{
		pid:    pid,
		poller: modbuscomm.NewPoller(cfg.Poller),
		config: cfg,
		stop:   make(chan bool),
	}, nil
}

// PID returns the recorder's process id.
func (r *Recorder) PID() uuid.UUID {
	return r.pid
}

// Stop ends the poll loop after the current sample.
func (r *Recorder) Stop() {
	r.stop <- true
}

// Run polls until the configured sample count is reached or Stop is called.
// Incomplete samples are dropped; only full rows land in the profile.
func (r *Recorder) Run() error {
	readable := modbuscomm.FilterRegisters(r.config.Registers, modbuscomm.ReadOnly)

	w, err := profile.NewWriter(r.config.Output, "Timestamp", modbuscomm.Names(readable))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(r.poller.PollRate())
	defer ticker.Stop()

	written := 0
loop:
	for {
		select {
		case t := <-ticker.C:
			values, readErr := r.poller.Read(readable)
			if readErr != nil {
				log.Println("[Recorder]", readErr)
			}
			row, ok := rowFor(readable, values)
			if !ok {
				continue
			}
			if err := w.Append(t.UTC().Format(time.RFC3339), row); err != nil {
				w.Close()
				return err
			}
			written++
			if r.config.Samples > 0 && written >= r.config.Samples {
				break loop
			}
		case <-r.stop:
			break loop
		}
	}
	log.Println("[Recorder] Process Shutdown")
	return w.Close()
}

// rowFor orders the polled values by register declaration. A missing or NaN
// value marks the sample incomplete.
func rowFor(registers []modbuscomm.Register, values map[string]float64) ([]float64, bool) {
	row := make([]float64, 0, len(registers))
	for _, reg := range registers {
		v, ok := values[reg.Name]
		if !ok || math.IsNaN(v) {
			return nil, false
		}
		row = append(row, v)
	}
	return row, true
}
