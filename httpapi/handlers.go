package httpapi

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	vectorvault "github.com/Sant0-9/VectorVault"
	"github.com/Sant0-9/VectorVault/hnsw"
	"github.com/Sant0-9/VectorVault/workerpool"
)

// defaultK and defaultEf are spec §6's documented defaults for /query when
// the k/ef URL parameters are omitted.
const (
	defaultK  = 10
	defaultEf = 50
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addRequest struct {
	ID     int32     `json:"id"`
	Vector []float32 `json:"vec"`
}

type addResponse struct {
	Status string `json:"status"`
	ID     int32  `json:"id"`
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.index.Add(r.Context(), req.ID, req.Vector); err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, addResponse{Status: "ok", ID: req.ID})
}

type queryRequest struct {
	Vector []float32 `json:"vec"`
}

type queryResponse struct {
	Results   []vectorvault.Result `json:"results"`
	LatencyUs int64                `json:"latency_us"`
	LatencyMs float64              `json:"latency_ms"`
}

// parseQueryParam reads name from the URL query string, falling back to def
// when absent or non-numeric.
func parseQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// handleQuery implements POST /query?k=&ef= (spec §6): k and ef are URL
// query parameters, defaulting to 10 and 50 respectively when omitted; the
// body carries only the probe vector.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	k := parseQueryParam(r, "k", defaultK)
	ef := parseQueryParam(r, "ef", defaultEf)

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start := time.Now()
	results, err := s.index.Search(r.Context(), req.Vector, k, ef)
	if err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}
	latency := time.Since(start)

	s.writeJSON(w, http.StatusOK, queryResponse{
		Results:   results,
		LatencyUs: latency.Microseconds(),
		LatencyMs: float64(latency.Microseconds()) / 1000.0,
	})
}

type pathRequest struct {
	Path string `json:"path"`
}

type saveResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		s.writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := s.index.Save(r.Context(), req.Path); err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, saveResponse{Status: "ok", Path: req.Path})
}

type loadResponse struct {
	Status    string `json:"status"`
	Path      string `json:"path"`
	Size      int    `json:"size"`
	Dimension int    `json:"dimension"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		s.writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := s.index.Load(r.Context(), req.Path); err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, loadResponse{
		Status:    "ok",
		Path:      req.Path,
		Size:      s.index.Size(),
		Dimension: s.index.Dimension(),
	})
}

type batchQueryRequest struct {
	Queries []workerpool.BatchQuery `json:"queries"`
}

type batchQueryResult struct {
	Results []vectorvault.Result `json:"results,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type batchQueryResponse struct {
	Results []batchQueryResult `json:"results"`
}

// handleBatchQuery fans a list of independent queries out across the
// worker pool; it is the one place in this package that pool is used,
// since /add and single /query stay on the caller's goroutine.
func (s *Server) handleBatchQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req batchQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	raw, err := workerpool.BatchSearch(r.Context(), s.pool, s.index, req.Queries)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results := make([]batchQueryResult, len(raw))
	for i, r := range raw {
		if r.Err != nil {
			results[i] = batchQueryResult{Error: r.Err.Error()}
			continue
		}
		results[i] = batchQueryResult{Results: r.Results}
	}

	s.writeJSON(w, http.StatusOK, batchQueryResponse{Results: results})
}

type statsResponse struct {
	hnsw.Stats
	UptimeSeconds float64 `json:"uptime_seconds"`
	RequestCount  int64   `json:"request_count"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	s.writeJSON(w, http.StatusOK, statsResponse{
		Stats:         s.index.Stats(),
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		RequestCount:  s.requestCount.Load(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, map[string]string{"error": message})
}

// statusForError maps the index's exported error kinds (spec §7) onto HTTP
// status codes.
func statusForError(err error) int {
	switch err.(type) {
	case *vectorvault.ErrInvalidParameter, *vectorvault.ErrDimensionMismatch, *vectorvault.ErrFormatError, *vectorvault.ErrCrcMismatch:
		return http.StatusBadRequest
	case *vectorvault.ErrIOFailure:
		return http.StatusInternalServerError
	}
	if err == vectorvault.ErrDuplicateID {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
