// Server package exposes a loaded score table over HTTP. The table is never
// written after startup, so handlers read it concurrently without locks.
package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/optimizer"
	"peptide_design_go/peptide_score"
	"peptide_design_go/protparam"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
	common "peptide_design_go/utils"
)

// MaxIterations caps one /optimize request
const MaxIterations = 100000

const maxBodyBytes = 1 << 20

// Server routes requests against one score table
type Server struct {
	router   *chi.Mux
	table    score_table.Table
	scheme   reduction.Scheme
	analyzer protparam.Analyzer
	logger   *common.Logger
}

// New builds the router; logger may be nil
func New(table score_table.Table, scheme reduction.Scheme, logger *common.Logger) *Server {
	if logger == nil {
		logger = common.Discard
	}
	s := &Server{
		router:   chi.NewRouter(),
		table:    table,
		scheme:   scheme,
		analyzer: protparam.ProtParam{},
		logger:   logger,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/score", s.handleScore)
	s.router.Post("/descriptors", s.handleDescriptors)
	s.router.Post("/analyze", s.handleAnalyze)
	s.router.Post("/optimize", s.handleOptimize)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type peptideRequest struct {
	Peptide   string `json:"peptide"`
	Normalize bool   `json:"normalize"`
	Verbose   bool   `json:"verbose"`
}

type scoreResponse struct {
	Peptide       string                       `json:"peptide"`
	Score         float64                      `json:"score"`
	Normalized    bool                         `json:"normalized"`
	Contributions []peptide_score.Contribution `json:"contributions,omitempty"`
}

type descriptorsResponse struct {
	Peptide     string   `json:"peptide"`
	Scheme      string   `json:"scheme"`
	Descriptors []string `json:"descriptors"`
}

type analyzeResponse struct {
	Peptide               string   `json:"peptide"`
	HelixFraction         float64  `json:"helix_fraction"`
	Charge                float64  `json:"charge"`
	HydrophobicitySpacing *float64 `json:"hydrophobicity_spacing"` // null with fewer than two peaks
}

type optimizeRequest struct {
	Seed       string `json:"seed"`
	Iterations int    `json:"iterations"`
	Normalize  bool   `json:"normalize"`
	RandSeed   int64  `json:"rand_seed"`
}

type optimizeResponse struct {
	RunID      string  `json:"run_id"`
	Seed       string  `json:"seed"`
	SeedScore  float64 `json:"seed_score"`
	Final      string  `json:"final"`
	FinalScore float64 `json:"final_score"`
	Iterations int     `json:"iterations"`
	Accepted   int     `json:"accepted"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"descriptors": len(s.table),
		"scheme":      s.scheme.String(),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req peptideRequest
	if !s.decodePeptide(w, r, &req) {
		return
	}
	resp := scoreResponse{Peptide: req.Peptide, Normalized: req.Normalize}
	if req.Normalize {
		resp.Score = peptide_score.ScoreNormalized(req.Peptide, s.table, s.scheme)
	} else {
		resp.Score = peptide_score.Score(req.Peptide, s.table, s.scheme)
	}
	if req.Verbose {
		resp.Contributions = peptide_score.Contributions(req.Peptide, s.table, s.scheme)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDescriptors(w http.ResponseWriter, r *http.Request) {
	var req peptideRequest
	if !s.decodePeptide(w, r, &req) {
		return
	}
	d := kmer_analyzer.Descriptors(req.Peptide, s.scheme)
	if d == nil {
		d = []string{}
	}
	writeJSON(w, http.StatusOK, descriptorsResponse{Peptide: req.Peptide, Scheme: s.scheme.String(), Descriptors: d})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req peptideRequest
	if !s.decodePeptide(w, r, &req) {
		return
	}
	p := s.analyzer.Analyze(req.Peptide)
	resp := analyzeResponse{Peptide: req.Peptide, HelixFraction: p.HelixFraction, Charge: p.Charge}
	if !math.IsNaN(p.HydrophobicitySpacing) {
		spacing := p.HydrophobicitySpacing
		resp.HydrophobicitySpacing = &spacing
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Iterations > MaxIterations {
		writeError(w, http.StatusBadRequest, "iterations above limit")
		return
	}

	// One Optimizer per request: its random source is not shared
	opt := optimizer.New(s.table, optimizer.Options{
		Scheme:    s.scheme,
		Normalize: req.Normalize,
		Analyzer:  s.analyzer,
		RandSeed:  req.RandSeed,
	})
	res, err := opt.Optimize(req.Seed, req.Iterations)
	if errors.Is(err, optimizer.ErrEmptySeed) || errors.Is(err, optimizer.ErrNegativeIteration) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("optimize %s: %v", middleware.GetReqID(r.Context()), err)
		writeError(w, http.StatusInternalServerError, "optimization failed")
		return
	}
	s.logger.Info("run %s: %s -> %s (%d/%d accepted)", res.RunID, res.Seed.Sequence, res.Final.Sequence, res.Accepted, res.Iterations)
	writeJSON(w, http.StatusOK, optimizeResponse{
		RunID:      res.RunID,
		Seed:       res.Seed.Sequence,
		SeedScore:  res.Seed.Fitness,
		Final:      res.Final.Sequence,
		FinalScore: res.Final.Fitness,
		Iterations: res.Iterations,
		Accepted:   res.Accepted,
	})
}

// decodePeptide reads a peptide request; an empty peptide is a 400
func (s *Server) decodePeptide(w http.ResponseWriter, r *http.Request, req *peptideRequest) bool {
	if !decode(w, r, req) {
		return false
	}
	if err := peptide_score.Validate(req.Peptide); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"error": msg})
}
