package formula

// Model is a partial mapping from proposition name to Boolean value.
// Equal is insertion-order-independent: two Models built by assigning the
// same variables in different orders compare equal.
type Model map[string]bool

// NewModel returns an empty model.
func NewModel() Model {
	return make(Model)
}

// Get returns the value assigned to variable, and whether it is assigned
// at all.
func (m Model) Get(variable string) (bool, bool) {
	v, ok := m[variable]
	return v, ok
}

// Set assigns variable to value.
func (m Model) Set(variable string, value bool) {
	m[variable] = value
}

// IsAssigned reports whether variable has a value in m.
func (m Model) IsAssigned(variable string) bool {
	_, ok := m[variable]
	return ok
}

// Clone returns an independent copy of m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Restrict returns the sub-model of m containing only the given variables,
// used by the top-level SAT entry point to project an extended-signature
// model (original variables plus Tseitin-fresh names) back onto the
// caller's original variables.
func (m Model) Restrict(variables []string) Model {
	out := make(Model, len(variables))
	for _, v := range variables {
		if val, ok := m[v]; ok {
			out[v] = val
		}
	}
	return out
}

// Equal reports whether two models assign exactly the same variables to
// exactly the same values. Map iteration order never affects the result.
func (m Model) Equal(other Model) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
