package optimizer

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"peptide_design_go/peptide_score"
	"peptide_design_go/protparam"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
	"peptide_design_go/seq_generator"
)

var (
	ErrEmptySeed         = errors.New("seed sequence is empty")
	ErrNegativeIteration = errors.New("iteration count must not be negative")
)

// State of one optimizer run
type State int

const (
	Running State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "DONE"
	}
	return "RUNNING"
}

// Candidate is the peptide currently held by a run and its fitness.
// Accepting a move replaces the Candidate, it is never edited in place.
type Candidate struct {
	Sequence string
	Fitness  float64
}

// Step is one trajectory entry. Score and the physicochemical metrics
// describe the peptide held before the step, accepted or not.
type Step struct {
	Iteration             int
	Peptide               string
	Score                 float64
	HelixFraction         float64
	Charge                float64
	HydrophobicitySpacing float64
	Trial                 string
	TrialScore            float64
	Accepted              bool
}

// Options tune an Optimizer. Zero values pick the defaults.
type Options struct {
	Scheme    reduction.Scheme
	Normalize bool               // score trials with ScoreNormalized instead of Score
	Analyzer  protparam.Analyzer // nil means protparam.ProtParam{}
	RandSeed  int64              // 0 means time based
}

// Optimizer mutates peptides toward a higher score against one table.
// The table is only read, so several optimizers may share it.
type Optimizer struct {
	table    score_table.Table
	scheme   reduction.Scheme
	norm     bool
	analyzer protparam.Analyzer
	rng      *rand.Rand
}

// New builds an Optimizer over table
func New(table score_table.Table, opts Options) *Optimizer {
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = protparam.ProtParam{}
	}
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Optimizer{
		table:    table,
		scheme:   opts.Scheme,
		norm:     opts.Normalize,
		analyzer: analyzer,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (o *Optimizer) score(peptide string) float64 {
	if o.norm {
		return peptide_score.ScoreNormalized(peptide, o.table, o.scheme)
	}
	return peptide_score.Score(peptide, o.table, o.scheme)
}

// Run is one optimization: it owns its candidate and trajectory
type Run struct {
	ID         string
	opt        *Optimizer
	seed       Candidate
	current    Candidate
	budget     int
	iteration  int
	accepted   int
	trajectory []Step

	lastAnalyzed string
	lastProps    protparam.Properties
}

// Start prepares a run of exactly iterations steps from seed
func (o *Optimizer) Start(seed string, iterations int) (*Run, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}
	if iterations < 0 {
		return nil, ErrNegativeIteration
	}
	c := Candidate{Sequence: seed, Fitness: o.score(seed)}
	return &Run{
		ID:         uuid.NewString(),
		opt:        o,
		seed:       c,
		current:    c,
		budget:     iterations,
		trajectory: make([]Step, 0, iterations),
	}, nil
}

// State is Done once the iteration budget is spent
func (r *Run) State() State {
	if r.iteration >= r.budget {
		return Done
	}
	return Running
}

// Current returns the candidate held right now
func (r *Run) Current() Candidate {
	return r.current
}

// Step performs one mutation and reports whether the run is still Running afterwards.
// Calling Step on a Done run does nothing.
func (r *Run) Step() bool {
	if r.State() == Done {
		return false
	}
	o := r.opt

	pos := o.rng.Intn(len(r.current.Sequence))
	aa := seq_generator.RandomAminoAcid(o.rng)
	trial := seq_generator.Mutate(r.current.Sequence, pos, aa)
	trialScore := o.score(trial)

	props := r.analyze(r.current.Sequence)
	step := Step{
		Iteration:             r.iteration,
		Peptide:               r.current.Sequence,
		Score:                 r.current.Fitness,
		HelixFraction:         props.HelixFraction,
		Charge:                props.Charge,
		HydrophobicitySpacing: props.HydrophobicitySpacing,
		Trial:                 trial,
		TrialScore:            trialScore,
	}

	// Greedy: only a strict improvement is kept
	if trialScore-r.current.Fitness > 0 {
		r.current = Candidate{Sequence: trial, Fitness: trialScore}
		step.Accepted = true
		r.accepted++
	}

	r.trajectory = append(r.trajectory, step)
	r.iteration++
	return r.State() == Running
}

// rejected moves keep the same peptide, so the last analysis is reused
func (r *Run) analyze(peptide string) protparam.Properties {
	if peptide != r.lastAnalyzed {
		r.lastProps = r.opt.analyzer.Analyze(peptide)
		r.lastAnalyzed = peptide
	}
	return r.lastProps
}

// Result is the outcome of a run
type Result struct {
	RunID      string
	Seed       Candidate
	Final      Candidate
	Iterations int
	Accepted   int
	Trajectory []Step
}

// Result snapshots the run; the trajectory slice is copied
func (r *Run) Result() Result {
	traj := make([]Step, len(r.trajectory))
	copy(traj, r.trajectory)
	return Result{
		RunID:      r.ID,
		Seed:       r.seed,
		Final:      r.current,
		Iterations: r.iteration,
		Accepted:   r.accepted,
		Trajectory: traj,
	}
}

// Optimize runs seed for exactly iterations steps
func (o *Optimizer) Optimize(seed string, iterations int) (Result, error) {
	run, err := o.Start(seed, iterations)
	if err != nil {
		return Result{}, err
	}
	for run.Step() {
	}
	return run.Result(), nil
}
