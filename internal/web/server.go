package web

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"daytrip/internal/storage"
)

// Server is the read-only JSON surface consumed by the map/timeline UI.
// Summary documents are served verbatim; the schema is the contract.
type Server struct {
	store *storage.Store
}

func NewServer(store *storage.Store) *Server {
	return &Server{store: store}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/trips", s.listTrips)
	r.Get("/api/trips/{date}", s.getTrip)

	return r
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListIndex(r.Context())
	if err != nil {
		log.Printf("list index: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []storage.IndexEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("encode index: %v", err)
	}
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	document, err := s.store.GetSummary(r.Context(), date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "no trip for this date", http.StatusNotFound)
			return
		}
		log.Printf("get summary %s: %v", date, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(document)
}
