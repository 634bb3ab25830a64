package repository

import "gorm.io/gorm"

// Predicates accumulates optional filter conditions and applies them as
// parameterized WHERE clauses. List endpoints build their date-range and
// search filters through this instead of concatenating SQL fragments.
type Predicates struct {
	conds []cond
}

type cond struct {
	expr string
	args []interface{}
}

// Where appends one parameterized condition. Returns the receiver for
// chaining.
func (p *Predicates) Where(expr string, args ...interface{}) *Predicates {
	p.conds = append(p.conds, cond{expr: expr, args: args})
	return p
}

// WhereIf appends the condition only when ok is true — the usual shape for
// optional query-string filters.
func (p *Predicates) WhereIf(ok bool, expr string, args ...interface{}) *Predicates {
	if ok {
		p.Where(expr, args...)
	}
	return p
}

// Apply attaches every accumulated condition to the query.
func (p *Predicates) Apply(q *gorm.DB) *gorm.DB {
	for _, c := range p.conds {
		q = q.Where(c.expr, c.args...)
	}
	return q
}
