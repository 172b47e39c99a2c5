package bdd

// And returns the intersection of s and t.
func (s Set) And(t Set) Set { return s.b.wrap(s.b.kernel.And(s.n, t.n)) }

// Or returns the union of s and t.
func (s Set) Or(t Set) Set { return s.b.wrap(s.b.kernel.Or(s.n, t.n)) }

// Not returns the complement of s.
func (s Set) Not() Set { return s.b.wrap(s.b.kernel.Not(s.n)) }

// Minus returns the states of s that are not in t.
func (s Set) Minus(t Set) Set { return s.And(t.Not()) }

// Equal reports whether s and t denote the same set.
func (s Set) Equal(t Set) bool { return s.b.kernel.Equal(s.n, t.n) }

// IsZero reports whether s is empty. The zero Set value is not valid.
func (s Set) IsZero() bool { return s.b.kernel.Equal(s.n, s.b.kernel.False()) }

// IsOne reports whether s is the universe.
func (s Set) IsOne() bool { return s.b.kernel.Equal(s.n, s.b.kernel.True()) }

// Valid reports whether s was produced by a Builder.
func (s Set) Valid() bool { return s.b != nil && s.n != nil }
