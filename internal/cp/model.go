// Package cp is a small optimizer for systems of linear constraints over
// boolean variables. A model holds variables, two-sided bound constraints
// on weighted sums, and an optional linear objective to minimize. It knows
// nothing about rotas; callers encode their problem and read values back.
package cp

// Var identifies a boolean decision variable within one Model.
type Var int

// Term is one objective summand: Coeff counted when Var is true.
type Term struct {
	Var   Var
	Coeff int
}

// constr is lb <= sum(weights[i]*vars[i]) <= ub. Weights must be >= 0.
type constr struct {
	vars    []Var
	weights []int
	lb, ub  int
}

type Model struct {
	n       int
	constrs []constr
	obj     []Term
}

func NewModel() *Model { return &Model{} }

func (m *Model) NewBoolVar() Var {
	v := Var(m.n)
	m.n++
	return v
}

// AddSumEq constrains the number of true variables in vars to exactly total.
// An empty vars with total > 0 makes the model infeasible, which is a legal
// way to state unmeetable demand.
func (m *Model) AddSumEq(vars []Var, total int) {
	m.constrs = append(m.constrs, constr{vars: vars, weights: unitWeights(len(vars)), lb: total, ub: total})
}

// AddSumAtMost constrains the number of true variables in vars to at most max.
func (m *Model) AddSumAtMost(vars []Var, max int) {
	m.constrs = append(m.constrs, constr{vars: vars, weights: unitWeights(len(vars)), lb: 0, ub: max})
}

// AddWeightedSumAtMost constrains sum(weights[i] for true vars[i]) <= max.
func (m *Model) AddWeightedSumAtMost(vars []Var, weights []int, max int) {
	m.constrs = append(m.constrs, constr{vars: vars, weights: weights, lb: 0, ub: max})
}

// FixTrue forces v to be true in every solution.
func (m *Model) FixTrue(v Var) {
	m.AddSumEq([]Var{v}, 1)
}

// Minimize sets the objective. Terms may repeat a variable; coefficients may
// be negative. A nil or empty terms list leaves the constant-zero objective,
// under which every solution is optimal.
func (m *Model) Minimize(terms []Term) {
	m.obj = terms
}

func unitWeights(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
