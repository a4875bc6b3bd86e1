package mvlr

// CandidateTerm is an explanatory variable that the selector may add to a
// model. Name must match a column of the frame under analysis.
type CandidateTerm struct {
	Name string

	// AllowNegativeCoefficient permits the term to enter a model with a
	// negative fitted coefficient. For physical drivers like heating
	// degree days a negative coefficient is not plausible, so trials that
	// produce one are skipped.
	AllowNegativeCoefficient bool

	// SingleUsePrefix is a mutual-exclusion group key. Once a term with a
	// non-empty prefix is accepted, every other candidate sharing the
	// prefix is removed from the pool, so at most one variant (for example
	// one degree-day base temperature) enters the model.
	SingleUsePrefix string
}

// ModelSpec is an ordered set of candidate terms included in a model. The
// intercept is always implicit and never appears in the term list. The
// zero value is the intercept-only model.
type ModelSpec struct {
	terms []CandidateTerm
}

// Terms returns the included terms in order.
func (s ModelSpec) Terms() []CandidateTerm {
	return append([]CandidateTerm(nil), s.terms...)
}

// TermNames returns the names of the included terms in order.
func (s ModelSpec) TermNames() []string {
	names := make([]string, len(s.terms))
	for i, t := range s.terms {
		names[i] = t.Name
	}
	return names
}

// NumTerms returns the number of non-intercept terms.
func (s ModelSpec) NumTerms() int {
	return len(s.terms)
}

// With returns a new spec with t appended.
func (s ModelSpec) With(t CandidateTerm) ModelSpec {
	terms := make([]CandidateTerm, 0, len(s.terms)+1)
	terms = append(terms, s.terms...)
	terms = append(terms, t)
	return ModelSpec{terms: terms}
}

// Without returns a new spec with the named term removed. Terms are
// compared by name, not by formula-string matching.
func (s ModelSpec) Without(name string) ModelSpec {
	terms := make([]CandidateTerm, 0, len(s.terms))
	for _, t := range s.terms {
		if t.Name != name {
			terms = append(terms, t)
		}
	}
	return ModelSpec{terms: terms}
}

// pool is an ordered candidate set with deterministic removal. Iteration
// order equals construction order, which makes BIC tie-breaking stable:
// the first candidate encountered wins.
type pool struct {
	terms []CandidateTerm
}

func newPool(terms []CandidateTerm) *pool {
	return &pool{terms: append([]CandidateTerm(nil), terms...)}
}

func (p *pool) empty() bool {
	return len(p.terms) == 0
}

func (p *pool) all() []CandidateTerm {
	return p.terms
}

func (p *pool) remove(name string) {
	kept := p.terms[:0]
	for _, t := range p.terms {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	p.terms = kept
}

func (p *pool) removePrefix(prefix string) {
	kept := p.terms[:0]
	for _, t := range p.terms {
		if t.SingleUsePrefix != prefix {
			kept = append(kept, t)
		}
	}
	p.terms = kept
}
