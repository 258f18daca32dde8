package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/engine"
	"svw.info/untangle/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

// Register mounts the JSON API on a chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/level", h.handleStart)
	r.Delete("/api/level/{session}", h.handleEnd)
	r.Post("/api/move", h.handleMove)
	r.Post("/api/evaluate", h.handleEvaluate)
	r.Post("/api/hint", h.handleHint)
	r.Post("/api/save", h.handleSave)
	r.Post("/api/load", h.handleLoad)
	r.Get("/api/levels", h.handleList)
	r.Get("/api/progress", h.handleProgress)
	r.Put("/api/progress", h.handleSetProgress)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownPoint),
		errors.Is(err, domain.ErrInvalidLevelIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ---- Start / End ----

type startReq struct {
	Index int   `json:"index"`
	Seed  int64 `json:"seed,omitempty"`
}

type startResp struct {
	Session string        `json:"session,omitempty"`
	Level   *domain.Level `json:"level,omitempty"`
	Result  engine.Result `json:"result"`
	Error   string        `json:"error,omitempty"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, startResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, level, res, err := h.UC.Start(r.Context(), seed, req.Index)
	if err != nil {
		writeJSON(w, statusFor(err), startResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, startResp{Session: session, Level: level, Result: res})
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	if err := h.UC.End(session); err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ended": true})
}

// ---- Move / Evaluate ----

type moveReq struct {
	Session string  `json:"session"`
	Point   string  `json:"point"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type evalResp struct {
	Result engine.Result `json:"result"`
	Phase  string        `json:"phase,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, evalResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	res, err := h.UC.Move(r.Context(), req.Session, req.Point, req.X, req.Y)
	if err != nil {
		writeJSON(w, statusFor(err), evalResp{Error: err.Error()})
		return
	}
	phase, _ := h.UC.Phase(req.Session)
	writeJSON(w, http.StatusOK, evalResp{Result: res, Phase: phase.String()})
}

type sessionReq struct {
	Session string `json:"session"`
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, evalResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	res, err := h.UC.Evaluate(req.Session)
	if err != nil {
		writeJSON(w, statusFor(err), evalResp{Error: err.Error()})
		return
	}
	phase, _ := h.UC.Phase(req.Session)
	writeJSON(w, http.StatusOK, evalResp{Result: res, Phase: phase.String()})
}

// ---- Hint ----

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	hint, found, err := h.UC.Hint(r.Context(), req.Session)
	if err != nil {
		writeJSON(w, statusFor(err), hintResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: found, Hint: hint})
}

// ---- Save / Load / List ----

type saveReq struct {
	Level *domain.Level `json:"level"`
	Name  string        `json:"name,omitempty"`
}

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Level == nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON or missing level"})
		return
	}
	l := req.Level
	if ok, faults, err := h.UC.Validate(r.Context(), l); err != nil || !ok {
		msg := "invalid level"
		if err != nil {
			msg = err.Error()
		} else if len(faults) > 0 {
			msg = faults[0].Reason
		}
		writeJSON(w, http.StatusBadRequest, saveResp{Error: msg})
		return
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = time.Now().UnixNano()
	}
	if req.Name != "" {
		l.Name = req.Name
	}
	if err := h.UC.SaveLevel(r.Context(), l); err != nil {
		writeJSON(w, statusFor(err), saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: l.ID})
}

type loadReq struct {
	ID string `json:"id"`
}

type loadResp struct {
	Session string        `json:"session,omitempty"`
	Level   *domain.Level `json:"level,omitempty"`
	Result  engine.Result `json:"result"`
	Error   string        `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "invalid JSON or missing id"})
		return
	}
	l, err := h.UC.LoadLevel(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, loadResp{Error: err.Error()})
		return
	}
	session, res, err := h.UC.StartFrom(r.Context(), l)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Session: session, Level: l, Result: res})
}

type listResp struct {
	Levels []domain.LevelMeta `json:"levels"`
	Error  string             `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := h.UC.ListLevels(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Levels: metas})
}

// ---- Progress ----

type progressResp struct {
	Progress domain.Progress `json:"progress"`
	Error    string          `json:"error,omitempty"`
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.UC.Progress(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, progressResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, progressResp{Progress: p})
}

func (h *Handler) handleSetProgress(w http.ResponseWriter, r *http.Request) {
	var p domain.Progress
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Unlocked < 1 {
		writeJSON(w, http.StatusBadRequest, progressResp{Error: "invalid JSON or unlocked < 1"})
		return
	}
	if p.UpdatedAt == 0 {
		p.UpdatedAt = time.Now().UnixNano()
	}
	if err := h.UC.SetProgress(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, progressResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, progressResp{Progress: p})
}
