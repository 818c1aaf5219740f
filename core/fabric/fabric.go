package fabric

import (
	"math"

	"github.com/squadplan/squadplan/core/model"
)

// BoolVar is the index of a boolean decision variable in a Model.
type BoolVar int32

// NoVar marks the absence of a guard variable on a constraint.
const NoVar BoolVar = -1

// Branch priorities. The engine decides high-priority variables first;
// indicators collapse large parts of the assignment through propagation.
const (
	PriorityAssign    = 0
	PriorityIndicator = 10
)

// Bound sentinels for one-sided constraints.
const (
	NoLowerBound = math.MinInt32
	NoUpperBound = math.MaxInt32
)

// Term is a signed occurrence of a variable in a linear expression.
type Term struct {
	Var  BoolVar
	Coef int
}

// LinearExpr is an integer linear expression over boolean variables.
type LinearExpr struct {
	Terms []Term
}

// Sum builds the unit-coefficient sum of the given variables.
func Sum(vars ...BoolVar) LinearExpr {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}
	return LinearExpr{Terms: terms}
}

// Minus returns e - o as a new expression.
func (e LinearExpr) Minus(o LinearExpr) LinearExpr {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	for _, t := range o.Terms {
		terms = append(terms, Term{Var: t.Var, Coef: -t.Coef})
	}
	return LinearExpr{Terms: terms}
}

// Eval computes the expression value under a complete assignment.
func (e LinearExpr) Eval(values Values) int {
	total := 0
	for _, t := range e.Terms {
		if values.True(t.Var) {
			total += t.Coef
		}
	}
	return total
}

// Constraint bounds a linear expression: Lo <= Expr <= Hi, inclusive. When
// Guard is set, the bounds are enforced only while the guard variable holds
// GuardVal; rules always emit the matching opposite-guard constraint so the
// indicator stays linked to the sum in both directions.
type Constraint struct {
	Name     string
	Expr     LinearExpr
	Lo, Hi   int
	Guard    BoolVar
	GuardVal bool
}

// SpreadGroup is a set of comparable per-employee totals; the objective
// minimizes the largest (max - min) across all groups.
type SpreadGroup struct {
	Name  string
	Exprs []LinearExpr
}

// Values is a complete solved assignment, indexed by BoolVar.
type Values []bool

// True reports the solved value of v.
func (vs Values) True(v BoolVar) bool { return v >= 0 && int(v) < len(vs) && vs[v] }

// Model is the arena holding every variable and constraint of one build.
// It is created per request, handed to the engine once and then discarded;
// nothing in it survives across schedule generations.
type Model struct {
	names      []string
	priorities []int

	assign map[AssignKey]BoolVar
	half   map[HalfDayKey]BoolVar
	block  map[BlockKey]BoolVar
	totals map[TotalKey]LinearExpr

	fixed map[BoolVar]bool

	cons       []Constraint
	groups     []SpreadGroup
	contradict bool

	roster   *model.Roster
	calendar model.Calendar
}

// NewModel allocates one assignment variable per (employee, role, day, slot)
// tuple for the roster. No constraints are added here; rules do that.
func NewModel(roster *model.Roster, cal model.Calendar) *Model {
	m := &Model{
		assign:   make(map[AssignKey]BoolVar),
		half:     make(map[HalfDayKey]BoolVar),
		block:    make(map[BlockKey]BoolVar),
		totals:   make(map[TotalKey]LinearExpr),
		fixed:    make(map[BoolVar]bool),
		roster:   roster,
		calendar: cal,
	}
	for _, e := range roster.Employees {
		for _, r := range model.AllRoles() {
			for _, d := range model.Days() {
				for _, s := range model.Slots() {
					k := AssignKey{Employee: e.ID, Role: r, Day: d, Slot: s}
					m.assign[k] = m.newBool(PriorityAssign)
				}
			}
		}
	}
	return m
}

// Roster returns the roster this model was built for.
func (m *Model) Roster() *model.Roster { return m.roster }

// Calendar returns the calendar this model was built for.
func (m *Model) Calendar() model.Calendar { return m.calendar }

func (m *Model) newBool(priority int) BoolVar {
	v := BoolVar(len(m.names))
	m.names = append(m.names, "")
	m.priorities = append(m.priorities, priority)
	return v
}

// NumBools returns the number of allocated boolean variables.
func (m *Model) NumBools() int { return len(m.names) }

// Priority returns the branch priority of v.
func (m *Model) Priority(v BoolVar) int { return m.priorities[v] }

// Assign returns the assignment variable for the tuple key.
func (m *Model) Assign(k AssignKey) (BoolVar, bool) {
	v, ok := m.assign[k]
	return v, ok
}

// HalfDay returns the half-day indicator for the key, allocating it on
// first use.
func (m *Model) HalfDay(k HalfDayKey) BoolVar {
	if v, ok := m.half[k]; ok {
		return v
	}
	v := m.newBool(PriorityIndicator)
	m.half[k] = v
	return v
}

// LookupHalfDay returns the half-day indicator without allocating.
func (m *Model) LookupHalfDay(k HalfDayKey) (BoolVar, bool) {
	v, ok := m.half[k]
	return v, ok
}

// Block returns the phone block indicator for the key, allocating it on
// first use.
func (m *Model) Block(k BlockKey) BoolVar {
	if v, ok := m.block[k]; ok {
		return v
	}
	v := m.newBool(PriorityIndicator)
	m.block[k] = v
	return v
}

// LookupBlock returns the block indicator without allocating.
func (m *Model) LookupBlock(k BlockKey) (BoolVar, bool) {
	v, ok := m.block[k]
	return v, ok
}

// Total returns the weekly slot-count expression for an employee and role.
// The expression is memoized so independent rules share one definition
// instead of relying on creation order.
func (m *Model) Total(k TotalKey) LinearExpr {
	if e, ok := m.totals[k]; ok {
		return e
	}
	var vars []BoolVar
	for _, d := range model.Days() {
		for _, s := range m.calendar.WorkingSlots(d) {
			if v, ok := m.assign[AssignKey{Employee: k.Employee, Role: k.Role, Day: d, Slot: s}]; ok {
				vars = append(vars, v)
			}
		}
	}
	e := Sum(vars...)
	m.totals[k] = e
	return e
}

// Fix pins a variable to a constant value. Conflicting pins make the whole
// model trivially infeasible.
func (m *Model) Fix(v BoolVar, val bool) {
	if prev, ok := m.fixed[v]; ok {
		if prev != val {
			m.contradict = true
		}
		return
	}
	m.fixed[v] = val
}

// Fixed returns the pinned value of v, if any.
func (m *Model) Fixed(v BoolVar) (bool, bool) {
	val, ok := m.fixed[v]
	return val, ok
}

// Contradictory reports whether pinning alone already rules out a solution.
func (m *Model) Contradictory() bool { return m.contradict }

// Add appends a constraint.
func (m *Model) Add(c Constraint) { m.cons = append(m.cons, c) }

// AddEq constrains the expression to equal v.
func (m *Model) AddEq(name string, e LinearExpr, v int) {
	m.Add(Constraint{Name: name, Expr: e, Lo: v, Hi: v, Guard: NoVar})
}

// AddLe constrains the expression to at most hi.
func (m *Model) AddLe(name string, e LinearExpr, hi int) {
	m.Add(Constraint{Name: name, Expr: e, Lo: NoLowerBound, Hi: hi, Guard: NoVar})
}

// AddGe constrains the expression to at least lo.
func (m *Model) AddGe(name string, e LinearExpr, lo int) {
	m.Add(Constraint{Name: name, Expr: e, Lo: lo, Hi: NoUpperBound, Guard: NoVar})
}

// AddImplies enforces lo <= e <= hi only while guard holds val.
func (m *Model) AddImplies(name string, guard BoolVar, val bool, e LinearExpr, lo, hi int) {
	m.Add(Constraint{Name: name, Expr: e, Lo: lo, Hi: hi, Guard: guard, GuardVal: val})
}

// Constraints returns every constraint added so far.
func (m *Model) Constraints() []Constraint { return m.cons }

// AddSpreadGroup declares a fairness group for the objective.
func (m *Model) AddSpreadGroup(g SpreadGroup) { m.groups = append(m.groups, g) }

// SpreadGroups returns the declared fairness groups.
func (m *Model) SpreadGroups() []SpreadGroup { return m.groups }

// HasObjective reports whether any fairness group was declared.
func (m *Model) HasObjective() bool { return len(m.groups) > 0 }
