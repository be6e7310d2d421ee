// Package sqldb persists dump events to a MySQL instance.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"github.com/ohowland/esm_core/internal/pkg/registry"

	_ "github.com/go-sql-driver/mysql"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Server   string `json:"Server"`
	Port     int    `json:"Port"`
	Username string `json:"Username"`
	Password string `json:"Password"`
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

// Stop ends Process after the current message. Safe to call even when the
// process loop never started.
func (h *Handler) Stop() {
	close(h.stop)
}

func (h Handler) DB() (*sql.DB, error) {
	uri := fmt.Sprintf("%v:%v@tcp(%v:%v)/%v", h.config.Username, h.config.Password, h.config.Server, h.config.Port, h.config.Database)
	db, err := sql.Open("mysql", uri)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (h Handler) Process() {
	db, err := h.DB()
	if err != nil {
		log.Println("[SQL]", err)
		return
	}
	defer db.Close()

	if err := initDBTables(db); err != nil {
		log.Println("[SQL]", err)
		return
	}

loop:
	for {
		select {
		case m := <-h.inbox:
			e, ok := m.Payload().(registry.Entry)
			if !ok {
				continue
			}
			switch m.Topic() {
			case msg.Dump:
				sqlStatement := `INSERT INTO dumps (uid, pid, path, document) VALUES (?, ?, ?, ?)
					ON DUPLICATE KEY UPDATE pid=VALUES(pid), path=VALUES(path), document=VALUES(document)`

				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				_, err := db.ExecContext(ctx, sqlStatement, e.UID, e.PID.String(), e.Path, e.Document)
				cancel()
				if err != nil {
					log.Printf("[SQL] error %s update db", err)
				}

			case msg.Build:
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[SQL] Process Shutdown")
}

func initDBTables(db *sql.DB) error {
	sqlStatement := `CREATE TABLE IF NOT EXISTS dumps(
		uid VARCHAR(128) PRIMARY KEY,
		pid VARCHAR(36),
		path VARCHAR(255),
		document MEDIUMBLOB)`
	_, err := db.Exec(sqlStatement)
	return err
}
