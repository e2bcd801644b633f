package cp

import (
	"context"
	"math"
	"time"
)

// Status classifies the outcome of a Solve call.
type Status int

const (
	Unknown    Status = iota // budget exhausted before any solution was found
	Optimal                  // search completed, best solution proven
	Feasible                 // budget exhausted after at least one solution
	Infeasible               // search completed, no solution exists
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

type Stats struct {
	Nodes    int
	Duration time.Duration
}

type Result struct {
	Status Status
	Values []bool // indexed by Var; nil unless Optimal or Feasible
	Cost   int
	Stats  Stats
}

// Solve runs a depth-first branch-and-bound search over the model. The search
// is exhaustive, so a completed run either proves optimality or proves
// infeasibility. Cancellation of ctx (or its deadline) bounds the search; a
// stopped run reports the best incumbent, if any, as Feasible.
func (m *Model) Solve(ctx context.Context) Result {
	start := time.Now()
	s := newSearch(ctx, m)

	done := func(status Status, values []bool, cost int) Result {
		return Result{
			Status: status,
			Values: values,
			Cost:   cost,
			Stats:  Stats{Nodes: s.nodes, Duration: time.Since(start)},
		}
	}

	if ctx.Err() != nil {
		return done(Unknown, nil, 0)
	}

	// Root check: a constraint whose maximum attainable sum is below its
	// lower bound can never be met, no matter how variables are set.
	for i := range m.constrs {
		if s.slack[i] < m.constrs[i].lb {
			return done(Infeasible, nil, 0)
		}
	}

	s.dfs(0)

	switch {
	case s.found && !s.stopped:
		return done(Optimal, s.best, s.bestCost)
	case s.found:
		return done(Feasible, s.best, s.bestCost)
	case s.stopped:
		return done(Unknown, nil, 0)
	default:
		return done(Infeasible, nil, 0)
	}
}

type occurrence struct {
	constr int
	weight int
}

type search struct {
	ctx context.Context
	m   *Model

	values []bool
	got    []int   // per-constraint sum over decided-true vars
	slack  []int   // per-constraint max addition from undecided vars
	occ    [][]occurrence
	coeff  []int // net objective coefficient per var

	cost   int // objective over decided-true vars
	negRem int // sum of negative coefficients over undecided vars

	found    bool
	best     []bool
	bestCost int
	nodes    int
	stopped  bool
}

func newSearch(ctx context.Context, m *Model) *search {
	s := &search{
		ctx:      ctx,
		m:        m,
		values:   make([]bool, m.n),
		got:      make([]int, len(m.constrs)),
		slack:    make([]int, len(m.constrs)),
		occ:      make([][]occurrence, m.n),
		coeff:    make([]int, m.n),
		bestCost: math.MaxInt,
	}
	for i, c := range m.constrs {
		for j, v := range c.vars {
			s.occ[v] = append(s.occ[v], occurrence{constr: i, weight: c.weights[j]})
			s.slack[i] += c.weights[j]
		}
	}
	for _, t := range m.obj {
		s.coeff[t.Var] += t.Coeff
	}
	for _, c := range s.coeff {
		if c < 0 {
			s.negRem += c
		}
	}
	return s
}

func (s *search) dfs(idx int) {
	if s.stopped {
		return
	}
	s.nodes++
	if s.nodes&63 == 0 && s.ctx.Err() != nil {
		s.stopped = true
		return
	}
	// Bound: cost so far plus every still-available reward is the least any
	// completion of this partial assignment can cost.
	if s.found && s.cost+s.negRem >= s.bestCost {
		return
	}
	if idx == s.m.n {
		s.found = true
		s.bestCost = s.cost
		s.best = append([]bool(nil), s.values...)
		return
	}

	v := Var(idx)
	first := s.coeff[v] < 0 // chase rewards before penalties
	for _, val := range [2]bool{first, !first} {
		if s.assign(v, val) {
			s.dfs(idx + 1)
		}
		s.unassign(v, val)
		if s.stopped {
			return
		}
	}
}

// assign decides v and reports whether every touched constraint can still be
// satisfied. The state change is applied even on failure; unassign reverts it.
func (s *search) assign(v Var, val bool) bool {
	s.values[v] = val
	if c := s.coeff[v]; c < 0 {
		s.negRem -= c
	}
	if val {
		s.cost += s.coeff[v]
	}
	ok := true
	for _, o := range s.occ[v] {
		if val {
			s.got[o.constr] += o.weight
		}
		s.slack[o.constr] -= o.weight
		c := &s.m.constrs[o.constr]
		if s.got[o.constr] > c.ub || s.got[o.constr]+s.slack[o.constr] < c.lb {
			ok = false
		}
	}
	return ok
}

func (s *search) unassign(v Var, val bool) {
	for _, o := range s.occ[v] {
		if val {
			s.got[o.constr] -= o.weight
		}
		s.slack[o.constr] += o.weight
	}
	if val {
		s.cost -= s.coeff[v]
	}
	if c := s.coeff[v]; c < 0 {
		s.negRem += c
	}
	s.values[v] = false
}
