package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jonathan/placement-readiness/internal/history"
	"github.com/jonathan/placement-readiness/internal/ingestion"
	"github.com/jonathan/placement-readiness/internal/logger"
	"github.com/jonathan/placement-readiness/internal/pipeline"
	"github.com/jonathan/placement-readiness/internal/prep"
	"github.com/jonathan/placement-readiness/internal/scoring"
	"github.com/jonathan/placement-readiness/internal/types"
)

// analysisInput decodes and validates an analyze request, fetching jd_url when no text is given.
func (s *Server) analysisInput(w http.ResponseWriter, r *http.Request) (pipeline.Input, error) {
	var req types.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return pipeline.Input{}, err
	}
	if err := req.Validate(); err != nil {
		return pipeline.Input{}, newValidationError(err)
	}

	in := pipeline.Input{
		Company: strings.TrimSpace(req.Company),
		Role:    strings.TrimSpace(req.Role),
		JDText:  req.JDText,
	}
	if strings.TrimSpace(in.JDText) == "" && req.JDURL != "" {
		doc, err := s.ingestURL(r.Context(), req.JDURL)
		if err != nil {
			return pipeline.Input{}, err
		}
		in.JDText = doc.Text
	}
	return in, nil
}

func (s *Server) ingestURL(ctx context.Context, rawURL string) (ingestion.Document, error) {
	doc, err := ingestion.FromURL(ctx, rawURL, s.urlOpts)
	if err != nil {
		return ingestion.Document{}, err
	}
	logger.Ctx(ctx).Info().Str("url", rawURL).Int("chars", doc.Chars).Msg("job description fetched")
	return doc, nil
}

// handleCreateAnalysis runs an analysis and saves it
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	in, err := s.analysisInput(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := pipeline.Analyze(r.Context(), s.history, in, pipeline.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, res)
}

// handleCreateAnalysisStream runs an analysis and streams progress as SSE
func (s *Server) handleCreateAnalysisStream(w http.ResponseWriter, r *http.Request) {
	in, err := s.analysisInput(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := pipeline.Analyze(r.Context(), s.history, in, pipeline.Options{
		OnProgress: func(ev pipeline.ProgressEvent) {
			sse.WriteEvent("progress", ev) //nolint:errcheck
		},
	})
	if err != nil {
		sse.WriteError(HTTPStatus(err), publicMessage(err))
		return
	}
	sse.WriteEvent("result", res) //nolint:errcheck
	sse.WriteComplete(res.Entry.ID)
}

// handleListAnalyses returns the cleaned history, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.history.List(r.Context()))
}

// handleGetAnalysis returns one entry with its derived views
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e := s.history.Get(r.Context(), id)
	if e == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "analysis", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, pipeline.Result{
		Entry:         *e,
		ScoreCategory: scoring.CategorizeScore(e.FinalScore),
		CompanyIntel:  prep.CompanyIntel(e.Company, e.JDText),
	})
}

// handleUpdateConfidence applies skill confidence changes and returns the rescored entry
func (s *Server) handleUpdateConfidence(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req types.ConfidenceUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	patch := history.Patch{SkillConfidenceMap: make(map[string]types.Confidence, len(req.SkillConfidenceMap))}
	for skill, c := range req.SkillConfidenceMap {
		patch.SkillConfidenceMap[skill] = types.Confidence(c)
	}

	e, err := s.history.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if e == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "analysis", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, e)
}

// handleDeleteAnalysis removes one entry
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClearAnalyses removes the whole history
func (s *Server) handleClearAnalyses(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
