package solve

import (
	"context"
	"sort"
	"time"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/logger"
)

// SearchEngine finds assignments by bounds propagation over the guarded
// linear constraints and chronological backtracking. Variables are decided
// in priority order (indicators first), with the value chosen by the demand
// of the active constraints. When the model carries a fairness objective the
// engine keeps re-solving under a tightened spread bound until the bound is
// proven unreachable or the budget runs out.
type SearchEngine struct {
	cfg Config
	log logger.Logger
}

// NewSearchEngine returns an engine with the given limits.
func NewSearchEngine(cfg Config, log logger.Logger) *SearchEngine {
	if log == nil {
		log = nopLogger{}
	}
	return &SearchEngine{cfg: cfg, log: log}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// Solve implements Engine.
func (e *SearchEngine) Solve(ctx context.Context, m *fabric.Model) (Result, error) {
	start := time.Now()
	res := Result{Status: StatusUnknown}

	var deadline time.Time
	if e.cfg.TimeBudgetSeconds > 0 {
		deadline = start.Add(time.Duration(e.cfg.TimeBudgetSeconds) * time.Second)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	if m.Contradictory() {
		res.Status = StatusInfeasible
		res.Stats.Elapsed = time.Since(start)
		return res, nil
	}

	s := newSearcher(ctx, m, nil, e.cfg.MaxConflicts, deadline, &res.Stats)
	switch s.search() {
	case satNone:
		res.Status = StatusInfeasible
	case satLimit:
		res.Status = StatusUnknown
	case satFound:
		res.Values = s.snapshot()
		res.Status = StatusFeasible
		if m.HasObjective() {
			res.Objective = evalObjective(m, res.Values)
			if !e.cfg.SkipImprove {
				e.improve(ctx, m, deadline, &res)
			}
		}
	}

	res.Stats.Elapsed = time.Since(start)
	e.log.Debugw("solve finished", map[string]any{
		"status":       res.Status.String(),
		"objective":    res.Objective,
		"decisions":    res.Stats.Decisions,
		"conflicts":    res.Stats.Conflicts,
		"improvements": res.Stats.Improvements,
		"elapsed":      res.Stats.Elapsed.String(),
	})
	return res, nil
}

// improve repeatedly re-solves with all group spreads bounded one below the
// incumbent. Proving the tighter bound infeasible makes the incumbent
// optimal; running out of budget leaves it feasible.
func (e *SearchEngine) improve(ctx context.Context, m *fabric.Model, deadline time.Time, res *Result) {
	for res.Objective > 0 {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		extra := spreadConstraints(m, res.Objective-1)
		s := newSearcher(ctx, m, extra, e.cfg.MaxConflicts, deadline, &res.Stats)
		switch s.search() {
		case satFound:
			res.Values = s.snapshot()
			res.Objective = evalObjective(m, res.Values)
			res.Stats.Improvements++
		case satNone:
			res.Status = StatusOptimal
			return
		case satLimit:
			return
		}
	}
	res.Status = StatusOptimal
}

// evalObjective returns the largest (max - min) across the fairness groups.
func evalObjective(m *fabric.Model, values fabric.Values) int {
	worst := 0
	for _, g := range m.SpreadGroups() {
		if len(g.Exprs) == 0 {
			continue
		}
		lo := g.Exprs[0].Eval(values)
		hi := lo
		for _, expr := range g.Exprs[1:] {
			v := expr.Eval(values)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi-lo > worst {
			worst = hi - lo
		}
	}
	return worst
}

// spreadConstraints bounds every pairwise total difference of every group.
func spreadConstraints(m *fabric.Model, bound int) []fabric.Constraint {
	var out []fabric.Constraint
	for _, g := range m.SpreadGroups() {
		for i := 0; i < len(g.Exprs); i++ {
			for j := i + 1; j < len(g.Exprs); j++ {
				out = append(out, fabric.Constraint{
					Name:  g.Name,
					Expr:  g.Exprs[i].Minus(g.Exprs[j]),
					Lo:    -bound,
					Hi:    bound,
					Guard: fabric.NoVar,
				})
			}
		}
	}
	return out
}

type satResult int

const (
	satFound satResult = iota
	satNone
	satLimit
)

// watchRef ties a variable to one constraint it occurs in. term is the index
// of the variable's term, or -1 when the variable is the constraint's guard.
type watchRef struct {
	con  int32
	term int32
}

type scon struct {
	terms    []fabric.Term
	lo, hi   int
	guard    fabric.BoolVar
	guardVal bool
	// min and max are the reachable sum bounds under the current partial
	// assignment, maintained incrementally.
	min, max int
	queued   bool
}

type frame struct {
	v        fabric.BoolVar
	val      bool
	flipped  bool
	trailLen int
	orderPos int
}

type searcher struct {
	ctx          context.Context
	value        []int8 // -1 unassigned, else 0/1
	fixed        []int8
	cons         []scon
	watch        [][]watchRef
	order        []fabric.BoolVar
	trail        []fabric.BoolVar
	frames       []frame
	queue        []int32
	stats        *Stats
	maxConflicts int64
	conflicts    int64
	deadline     time.Time
}

func newSearcher(ctx context.Context, m *fabric.Model, extra []fabric.Constraint, maxConflicts int64, deadline time.Time, stats *Stats) *searcher {
	n := m.NumBools()
	s := &searcher{
		ctx:          ctx,
		value:        make([]int8, n),
		fixed:        make([]int8, n),
		watch:        make([][]watchRef, n),
		stats:        stats,
		maxConflicts: maxConflicts,
		deadline:     deadline,
	}
	for i := range s.value {
		s.value[i] = -1
		s.fixed[i] = -1
	}
	for v := 0; v < n; v++ {
		if val, ok := m.Fixed(fabric.BoolVar(v)); ok {
			if val {
				s.fixed[v] = 1
			} else {
				s.fixed[v] = 0
			}
		}
	}

	all := m.Constraints()
	s.cons = make([]scon, 0, len(all)+len(extra))
	for _, c := range all {
		s.addConstraint(c)
	}
	for _, c := range extra {
		s.addConstraint(c)
	}

	s.order = make([]fabric.BoolVar, n)
	for i := range s.order {
		s.order[i] = fabric.BoolVar(i)
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return m.Priority(s.order[a]) > m.Priority(s.order[b])
	})
	return s
}

func (s *searcher) addConstraint(c fabric.Constraint) {
	// Merge duplicate variables so incremental bound updates stay exact.
	merged := c.Expr.Terms
	seen := make(map[fabric.BoolVar]int, len(merged))
	terms := make([]fabric.Term, 0, len(merged))
	for _, t := range merged {
		if t.Coef == 0 {
			continue
		}
		if idx, ok := seen[t.Var]; ok {
			terms[idx].Coef += t.Coef
		} else {
			seen[t.Var] = len(terms)
			terms = append(terms, t)
		}
	}
	sc := scon{terms: terms, lo: c.Lo, hi: c.Hi, guard: c.Guard, guardVal: c.GuardVal}
	for _, t := range terms {
		if t.Coef < 0 {
			sc.min += t.Coef
		} else {
			sc.max += t.Coef
		}
	}
	ci := int32(len(s.cons))
	s.cons = append(s.cons, sc)
	for ti, t := range terms {
		s.watch[t.Var] = append(s.watch[t.Var], watchRef{con: ci, term: int32(ti)})
	}
	if c.Guard != fabric.NoVar {
		s.watch[c.Guard] = append(s.watch[c.Guard], watchRef{con: ci, term: -1})
	}
}

func (s *searcher) snapshot() fabric.Values {
	out := make(fabric.Values, len(s.value))
	for i, v := range s.value {
		out[i] = v == 1
	}
	return out
}

func (s *searcher) limitHit() bool {
	if s.maxConflicts > 0 && s.conflicts >= s.maxConflicts {
		return true
	}
	if !s.deadline.IsZero() && !time.Now().Before(s.deadline) {
		return true
	}
	return s.ctx.Err() != nil
}

func (s *searcher) search() satResult {
	// Seed pinned variables at the root level.
	for v, val := range s.fixed {
		if val < 0 {
			continue
		}
		if !s.assign(fabric.BoolVar(v), val == 1) || !s.propagate() {
			return satNone
		}
	}

	// Check every constraint's initial interval once at the root. Watch
	// lists only wake a constraint when one of its variables moves, so a
	// constraint that is impossible from the start, including one with no
	// terms at all, would otherwise never be looked at.
	for ci := range s.cons {
		if !s.cons[ci].queued {
			s.cons[ci].queued = true
			s.queue = append(s.queue, int32(ci))
		}
	}
	if !s.propagate() {
		return satNone
	}

	orderPos := 0
	for {
		if s.limitHit() {
			return satLimit
		}
		v, pos := s.nextUnassigned(orderPos)
		if v == fabric.NoVar {
			return satFound
		}
		orderPos = pos
		val := s.prefer(v)
		s.stats.Decisions++
		s.frames = append(s.frames, frame{v: v, val: val, trailLen: len(s.trail), orderPos: orderPos})
		if s.assign(v, val) && s.propagate() {
			continue
		}
		if !s.resolveConflict(&orderPos) {
			return satNone
		}
		if s.limitHit() {
			return satLimit
		}
	}
}

// resolveConflict backtracks chronologically: the most recent decision still
// holding its first value is flipped; everything younger is undone. Returns
// false when no decision is left to flip.
func (s *searcher) resolveConflict(orderPos *int) bool {
	for {
		s.conflicts++
		s.stats.Conflicts++
		if s.limitHit() {
			return true
		}
		flipped := false
		for len(s.frames) > 0 {
			f := &s.frames[len(s.frames)-1]
			if f.flipped {
				s.undoTo(f.trailLen)
				s.frames = s.frames[:len(s.frames)-1]
				continue
			}
			s.undoTo(f.trailLen)
			f.flipped = true
			f.val = !f.val
			*orderPos = f.orderPos
			flipped = true
			break
		}
		if !flipped {
			return false
		}
		f := s.frames[len(s.frames)-1]
		if s.assign(f.v, f.val) && s.propagate() {
			return true
		}
	}
}

func (s *searcher) nextUnassigned(from int) (fabric.BoolVar, int) {
	for i := from; i < len(s.order); i++ {
		if s.value[s.order[i]] < 0 {
			return s.order[i], i
		}
	}
	return fabric.NoVar, len(s.order)
}

// prefer picks the branch value: true when some active constraint still
// needs its sum raised through this variable, false otherwise.
func (s *searcher) prefer(v fabric.BoolVar) bool {
	for _, ref := range s.watch[v] {
		if ref.term < 0 {
			continue
		}
		c := &s.cons[ref.con]
		if !s.active(c) {
			continue
		}
		if c.lo != fabric.NoLowerBound && c.min < c.lo && c.terms[ref.term].Coef > 0 {
			return true
		}
	}
	return false
}

func (s *searcher) active(c *scon) bool {
	if c.guard == fabric.NoVar {
		return true
	}
	gv := s.value[c.guard]
	if gv < 0 {
		return false
	}
	return (gv == 1) == c.guardVal
}

// assign sets a variable and updates the bound sums of every constraint it
// occurs in. Returns false when the variable already holds the opposite
// value.
func (s *searcher) assign(v fabric.BoolVar, val bool) bool {
	if cur := s.value[v]; cur >= 0 {
		return (cur == 1) == val
	}
	if val {
		s.value[v] = 1
	} else {
		s.value[v] = 0
	}
	s.trail = append(s.trail, v)
	s.stats.Propagations++
	for _, ref := range s.watch[v] {
		c := &s.cons[ref.con]
		if ref.term >= 0 {
			coef := c.terms[ref.term].Coef
			if val {
				if coef > 0 {
					c.min += coef
				} else {
					c.max += coef
				}
			} else {
				if coef > 0 {
					c.max -= coef
				} else {
					c.min -= coef
				}
			}
		}
		if !c.queued {
			c.queued = true
			s.queue = append(s.queue, ref.con)
		}
	}
	return true
}

func (s *searcher) undoTo(trailLen int) {
	for len(s.trail) > trailLen {
		v := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		val := s.value[v] == 1
		s.value[v] = -1
		for _, ref := range s.watch[v] {
			if ref.term < 0 {
				continue
			}
			c := &s.cons[ref.con]
			coef := c.terms[ref.term].Coef
			if val {
				if coef > 0 {
					c.min -= coef
				} else {
					c.max -= coef
				}
			} else {
				if coef > 0 {
					c.max += coef
				} else {
					c.min += coef
				}
			}
		}
	}
}

func (s *searcher) clearQueue() {
	for _, ci := range s.queue {
		s.cons[ci].queued = false
	}
	s.queue = s.queue[:0]
}

// propagate drains the constraint queue, pruning with interval bounds:
// an active constraint whose reachable sums exclude its bounds conflicts;
// one that can only stay inside them by fixing a variable fixes it; a
// guarded constraint that became impossible flips its own guard.
func (s *searcher) propagate() bool {
	for len(s.queue) > 0 {
		ci := s.queue[0]
		s.queue = s.queue[1:]
		c := &s.cons[ci]
		c.queued = false

		if c.guard != fabric.NoVar {
			gv := s.value[c.guard]
			if gv >= 0 && (gv == 1) != c.guardVal {
				continue // inactive, constraint is off
			}
			if gv < 0 {
				// Guard still open: the constraint only back-propagates.
				if c.min > c.hi || c.max < c.lo {
					if !s.assign(c.guard, !c.guardVal) {
						s.clearQueue()
						return false
					}
				}
				continue
			}
		}

		if c.min > c.hi || c.max < c.lo {
			s.clearQueue()
			return false
		}
		for _, t := range c.terms {
			if s.value[t.Var] >= 0 {
				continue
			}
			forced := int8(-1)
			if t.Coef > 0 {
				if c.min+t.Coef > c.hi {
					forced = 0
				} else if c.max-t.Coef < c.lo {
					forced = 1
				}
			} else {
				if c.max+t.Coef < c.lo {
					forced = 0
				} else if c.min-t.Coef > c.hi {
					forced = 1
				}
			}
			if forced < 0 {
				continue
			}
			if !s.assign(t.Var, forced == 1) {
				s.clearQueue()
				return false
			}
			if c.min > c.hi || c.max < c.lo {
				s.clearQueue()
				return false
			}
		}
	}
	return true
}
