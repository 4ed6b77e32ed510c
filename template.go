package sparse

// GetAdmittance returns the four elements an admittance between external
// nodes n1 and n2 touches. Ground entries land in the trash element.
func (s *Solver) GetAdmittance(n1, n2 int) (*Template, error) {
	var t Template
	var err error
	if t.Element1, err = s.GetElement(n1, n1); err != nil {
		return nil, err
	}
	if t.Element2, err = s.GetElement(n2, n2); err != nil {
		return nil, err
	}
	if t.Element3Negated, err = s.GetElement(n1, n2); err != nil {
		return nil, err
	}
	if t.Element4Negated, err = s.GetElement(n2, n1); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddQuad stamps value on the diagonal pair and its negation on the
// off-diagonal pair.
func (t *Template) AddQuad(value float64) {
	t.Element1.Add(value)
	t.Element2.Add(value)
	t.Element3Negated.Subtract(value)
	t.Element4Negated.Subtract(value)
}

// AddComplexQuad is AddQuad for complex admittances.
func (t *Template) AddComplexQuad(value complex128) {
	t.Element1.AddComplex(value)
	t.Element2.AddComplex(value)
	t.Element3Negated.AddComplex(-value)
	t.Element4Negated.AddComplex(-value)
}
