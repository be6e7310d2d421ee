// Package webservice exposes the registered example systems over HTTP.
package webservice

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ohowland/esm_core/internal/pkg/registry"
	"github.com/ohowland/esm_core/internal/pkg/system"
)

// SystemSummary is the list view of one registered system.
type SystemSummary struct {
	PID   uuid.UUID `json:"PID"`
	UID   string    `json:"UID"`
	Slug  string    `json:"Slug"`
	Path  string    `json:"Path,omitempty"`
	Nodes int       `json:"Nodes"`
}

// SystemTopology is the adjacency view of one registered system.
type SystemTopology struct {
	UID   string              `json:"UID"`
	Nodes []string            `json:"Nodes"`
	Edges map[string][]string `json:"Edges"`
}

// Service serves the contents of a registry.
type Service struct {
	registry *registry.Registry
}

func New(r *registry.Registry) *Service {
	return &Service{registry: r}
}

// MakeRouter binds the handlers to their routes.
func (s *Service) MakeRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", BaseHandler)
	r.HandleFunc("/examples", s.ListHandler).Methods("GET")
	r.HandleFunc("/examples/{uid}", s.DocumentHandler).Methods("GET")
	r.HandleFunc("/examples/{uid}/topology", s.TopologyHandler).Methods("GET")
	return r
}

// Serve blocks on the listener.
func (s *Service) Serve(port string) error {
	log.Println("[Webservice] Starting Server on Port", port)
	return http.ListenAndServe(port, s.MakeRouter())
}

// lookup resolves a path variable against the registry, by UID first and by
// slug second, so both /examples/Zero%20Costs%20Example and
// /examples/zero_costs_example reach the same entry.
func (s *Service) lookup(uid string) (registry.Entry, bool) {
	if e, ok := s.registry.Lookup(uid); ok {
		return e, true
	}
	for _, e := range s.registry.Entries() {
		if system.Slug(e.UID) == uid {
			return e, true
		}
	}
	return registry.Entry{}, false
}

func BaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
}

func (s *Service) ListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	entries := s.registry.Entries()
	resp := make([]SystemSummary, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, SystemSummary{
			PID:   e.PID,
			UID:   e.UID,
			Slug:  system.Slug(e.UID),
			Path:  e.Path,
			Nodes: len(e.System.Nodes()),
		})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		log.Println("malformed JSON:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Service) DocumentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	e, ok := s.lookup(vars["uid"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body := e.Document
	if body == nil {
		var err error
		body, err = e.System.Encode()
		if err != nil {
			log.Println("malformed JSON:", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Service) TopologyHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	e, ok := s.lookup(vars["uid"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	g, err := e.System.Graph()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	edges := make(map[string][]string)
	for _, n := range g.Nodes() {
		edges[n] = g.Edges(n)
	}

	resp := SystemTopology{
		UID:   e.UID,
		Nodes: g.Nodes(),
		Edges: edges,
	}

	body, err := json.Marshal(resp)
	if err != nil {
		log.Println("malformed JSON:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
