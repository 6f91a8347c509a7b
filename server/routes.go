package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mokiat/gog"

	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
)

type (
	characterSummary struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Archetype string `json:"archetype"`
	}

	detectRequest struct {
		Text    string        `json:"text"`
		History []entity.Turn `json:"history,omitempty"`
	}

	adaptRequest struct {
		Emotion    entity.Emotion `json:"emotion"`
		Confidence float64        `json:"confidence"`
	}

	memoryRequest struct {
		Content  string                `json:"content"`
		Category entity.MemoryCategory `json:"category"`
	}

	turnRequest struct {
		Message string `json:"message"`
	}
)

func (s *Server) registerRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	router.HandleFunc("/v1/characters", func(w http.ResponseWriter, r *http.Request) {
		summaries := gog.Map(s.runtime.Characters(), func(c *entity.Character) characterSummary {
			return characterSummary{ID: c.ID, Name: c.Name, Archetype: c.Archetype}
		})
		writeJSON(w, http.StatusOK, summaries)
	}).Methods("GET")

	router.HandleFunc("/v1/characters", func(w http.ResponseWriter, r *http.Request) {
		var conf config.CharacterConfig
		if err := json.NewDecoder(r.Body).Decode(&conf); err != nil {
			writeError(w, errors.Wrapf(errors.ErrInvalidParams, "%v", err))
			return
		}
		character, err := conf.ToCharacter()
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.runtime.AddCharacter(r.Context(), character); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, character)
	}).Methods("POST")

	router.HandleFunc("/v1/characters/{id}", func(w http.ResponseWriter, r *http.Request) {
		character, err := s.runtime.Character(mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, character)
	}).Methods("GET")

	router.HandleFunc("/v1/detect", func(w http.ResponseWriter, r *http.Request) {
		var req detectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrapf(errors.ErrInvalidParams, "%v", err))
			return
		}
		writeJSON(w, http.StatusOK, s.runtime.DetectEmotion(req.Text, req.History))
	}).Methods("POST")

	pair := router.PathPrefix("/v1/characters/{id}/users/{userId}").Subrouter()

	pair.HandleFunc("/adapt", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var req adaptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrapf(errors.ErrInvalidParams, "%v", err))
			return
		}
		effective, err := s.runtime.Adapt(r.Context(), vars["id"], vars["userId"], entity.EmotionalState{
			Emotion:    req.Emotion,
			Confidence: req.Confidence,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, effective)
	}).Methods("POST")

	pair.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if _, err := s.runtime.Character(vars["id"]); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.runtime.AdaptedState(r.Context(), vars["id"], vars["userId"]))
	}).Methods("GET")

	pair.HandleFunc("/memories", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var req memoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrapf(errors.ErrInvalidParams, "%v", err))
			return
		}
		if err := s.runtime.RecordMemory(r.Context(), vars["id"], vars["userId"], req.Content, req.Category, entity.Neutral()); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
	}).Methods("POST")

	pair.HandleFunc("/memories", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, errors.Wrapf(errors.ErrInvalidParams, "invalid limit %q", raw))
				return
			}
			limit = parsed
		}
		memories, err := s.runtime.RetrieveMemories(r.Context(), vars["id"], vars["userId"], r.URL.Query().Get("query"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, memories)
	}).Methods("GET")

	pair.HandleFunc("/context", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var req turnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrapf(errors.ErrInvalidParams, "%v", err))
			return
		}
		bundle, err := s.runtime.BuildContext(r.Context(), vars["id"], vars["userId"], req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bundle)
	}).Methods("POST")

	pair.HandleFunc("/turns", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var req turnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrapf(errors.ErrInvalidParams, "%v", err))
			return
		}
		result, err := s.runtime.ProcessTurn(r.Context(), vars["id"], vars["userId"], req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}).Methods("POST")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrProfileNotFound), errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidParams), errors.Is(err, errors.ErrInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrStorageUnavailable), errors.IsTransient(err):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errors.ErrGenerationFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
