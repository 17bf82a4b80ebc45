package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoteai/internal/app"
	"hoteai/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	S *app.ScoringService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/reviews/quality-over-time", h.qualityOverTime)
	s.mux.Post("/v1/analyze/{reviewID}", h.analyzeReview)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// reviewsQuery parses the shared filter params: hotel_id, chain_id, from, to.
func reviewsQuery(r *http.Request) (domain.ReviewsQuery, error) {
	var q domain.ReviewsQuery
	get := r.URL.Query().Get

	if v := get("hotel_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, errors.New("hotel_id must be a number")
		}
		q.HotelID = &id
	}
	if v := get("chain_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, errors.New("chain_id must be a number")
		}
		q.ChainID = &id
	}
	if v := get("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return q, errors.New("from must be RFC3339 or yyyy-mm-dd")
		}
		q.From = &t
	}
	if v := get("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return q, errors.New("to must be RFC3339 or yyyy-mm-dd")
		}
		q.To = &t
	}
	return q, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q, err := reviewsQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	q.Limit = 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}

	out, err := h.Q.ListReviews(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Query failed", "could not list reviews")
		return
	}
	if out == nil {
		out = []domain.ReviewView{}
	}
	writeJSONWithETag(w, r, out)
}

func (h *Handlers) qualityOverTime(w http.ResponseWriter, r *http.Request) {
	q, err := reviewsQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	out, err := h.Q.QualityOverTime(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Query failed", "could not compute quality series")
		return
	}
	if out == nil {
		out = []domain.QualityPoint{}
	}
	writeJSONWithETag(w, r, out)
}

func (h *Handlers) analyzeReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "review id must be a number")
		return
	}

	ins, err := h.S.ScoreReview(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "review not found or has no hotel response")
			return
		}
		var pf domain.ParseFailure
		if errors.As(err, &pf) {
			writeProblem(w, http.StatusBadGateway, "Scoring failed", "oracle returned an unparseable judgement")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Scoring failed", "oracle unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		ReviewID int64         `json:"review_id"`
		Score    float64       `json:"calculate_score"`
		Rubric   domain.Rubric `json:"rubric"`
	}{ins.ReviewID, ins.Score, ins.Rubric})
}
