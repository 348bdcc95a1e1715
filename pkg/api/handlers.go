package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/extract"
	"github.com/entityentitled101/loreforge/pkg/lore"
	"github.com/entityentitled101/loreforge/pkg/store"
)

// maxImportBody bounds the raw source text accepted by the import endpoint.
// The extractor caps what it sends to the model separately.
const maxImportBody = 4 << 20

// Server holds the API server state.
type Server struct {
	store     LoreStore
	extractor extract.Extractor
	metrics   *Metrics
	log       *zap.Logger
}

// NewServer creates a new API server. The extractor may be nil, in which
// case the import endpoint reports that imports are unavailable.
func NewServer(st LoreStore, extractor extract.Extractor, metrics *Metrics, log *zap.Logger) *Server {
	return &Server{
		store:     st,
		extractor: extractor,
		metrics:   metrics,
		log:       log,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordStoreOperation("list_characters", true)
	sendSuccess(w, s.store.Characters())
}

func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch, ok := s.store.GetCharacter(id)
	if !ok {
		s.metrics.RecordStoreOperation("get_character", false)
		sendError(w, fmt.Sprintf("character %s not found", id), http.StatusNotFound)
		return
	}
	s.metrics.RecordStoreOperation("get_character", true)
	sendSuccess(w, ch)
}

func (s *Server) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var ch lore.Character
	if err := json.NewDecoder(r.Body).Decode(&ch); err != nil {
		s.metrics.RecordStoreOperation("add_character", false)
		sendError(w, "invalid JSON in request body", http.StatusBadRequest)
		return
	}

	created, err := s.store.AddCharacter(ch)
	if err != nil {
		s.metrics.RecordStoreOperation("add_character", false)
		sendError(w, fmt.Sprintf("failed to add character: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("add_character", true)
	sendSuccess(w, created)
}

func (s *Server) handleUpdateCharacter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch lore.CandidateCharacter
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.metrics.RecordStoreOperation("update_character", false)
		sendError(w, "invalid JSON in request body", http.StatusBadRequest)
		return
	}

	updated, err := s.store.UpdateCharacter(id, patch)
	if err != nil {
		s.metrics.RecordStoreOperation("update_character", false)
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, fmt.Sprintf("character %s not found", id), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("failed to update character: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("update_character", true)
	sendSuccess(w, updated)
}

func (s *Server) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteCharacter(id); err != nil {
		s.metrics.RecordStoreOperation("delete_character", false)
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, fmt.Sprintf("character %s not found", id), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("failed to delete character: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("delete_character", true)
	sendSuccess(w, map[string]string{"deleted": id})
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordStoreOperation("list_locations", true)
	sendSuccess(w, s.store.Locations())
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	loc, ok := s.store.GetLocation(id)
	if !ok {
		s.metrics.RecordStoreOperation("get_location", false)
		sendError(w, fmt.Sprintf("location %s not found", id), http.StatusNotFound)
		return
	}
	s.metrics.RecordStoreOperation("get_location", true)
	sendSuccess(w, loc)
}

// handleCreateLocation creates a location with placeholder defaults; the
// client edits it afterwards. This mirrors the store contract, which takes
// no input for location creation.
func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	created, err := s.store.AddLocation()
	if err != nil {
		s.metrics.RecordStoreOperation("add_location", false)
		sendError(w, fmt.Sprintf("failed to add location: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("add_location", true)
	sendSuccess(w, created)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch lore.CandidateLocation
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.metrics.RecordStoreOperation("update_location", false)
		sendError(w, "invalid JSON in request body", http.StatusBadRequest)
		return
	}

	updated, err := s.store.UpdateLocation(id, patch)
	if err != nil {
		s.metrics.RecordStoreOperation("update_location", false)
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, fmt.Sprintf("location %s not found", id), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("failed to update location: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("update_location", true)
	sendSuccess(w, updated)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteLocation(id); err != nil {
		s.metrics.RecordStoreOperation("delete_location", false)
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, fmt.Sprintf("location %s not found", id), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("failed to delete location: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("delete_location", true)
	sendSuccess(w, map[string]string{"deleted": id})
}

// handleImport runs the full import flow: extract candidates from the raw
// text body, then merge them into the store. Extraction failure is terminal
// for the attempt and the merge never runs.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.metrics.RecordImport("unavailable")
		sendError(w, "imports unavailable: no extractor configured", http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		s.metrics.RecordImport("bad_request")
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		s.metrics.RecordImport("bad_request")
		sendError(w, "source text is required", http.StatusBadRequest)
		return
	}

	result, err := s.extractor.Extract(r.Context(), string(body))
	if err != nil {
		s.metrics.RecordImport("extraction_failed")
		s.log.Error("extraction failed", zap.Error(err))
		sendError(w, fmt.Sprintf("extraction failed: %v", err), http.StatusBadGateway)
		return
	}

	summary, err := s.store.ImportBatch(result)
	if err != nil {
		s.metrics.RecordImport("merge_failed")
		sendError(w, fmt.Sprintf("import failed: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordImport(statusSuccess)
	sendSuccess(w, ImportResponse{
		Summary:     summary,
		AnalysisLog: result.AnalysisLog,
	})
}
