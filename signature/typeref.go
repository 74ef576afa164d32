package signature

import (
	"strings"
)

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	default:
		return "invariant"
	}
}

// TypeRef is the canonical, target-language description of a type.
// Arguments is only populated for parameterized classes; a type variable has
// TypeVariable set and no arguments.
type TypeRef struct {
	Name         string    `json:"name"`
	Nullable     bool      `json:"nullable,omitempty"`
	Variance     Variance  `json:"variance,omitempty"`
	Arguments    []TypeRef `json:"arguments,omitempty"`
	TypeVariable bool      `json:"typeVariable,omitempty"`
}

// StarType is the argument used for an unbounded wildcard.
var StarType = TypeRef{Name: "*"}

func (t TypeRef) IsStar() bool {
	return t.Name == StarType.Name && len(t.Arguments) == 0 && !t.TypeVariable
}

// IsPrimitive reports whether t is one of the primitive (or Unit) types of
// the target language.
func (t TypeRef) IsPrimitive() bool {
	if t.TypeVariable || len(t.Arguments) > 0 {
		return false
	}
	_, ok := primitiveDefaults[t.Name]
	return ok
}

// NonNull returns a copy of t with the nullability flag cleared.
func (t TypeRef) NonNull() TypeRef {
	t.Nullable = false
	return t
}

func (t TypeRef) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t TypeRef) write(sb *strings.Builder) {
	switch t.Variance {
	case Covariant:
		sb.WriteString("out ")
	case Contravariant:
		sb.WriteString("in ")
	}
	sb.WriteString(t.Name)
	if len(t.Arguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg.write(sb)
		}
		sb.WriteByte('>')
	}
	if t.Nullable {
		sb.WriteByte('?')
	}
}

// Equal reports structural equality; nil and empty argument lists are equal.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.Name != o.Name || t.Nullable != o.Nullable || t.Variance != o.Variance ||
		t.TypeVariable != o.TypeVariable || len(t.Arguments) != len(o.Arguments) {
		return false
	}
	for i := range t.Arguments {
		if !t.Arguments[i].Equal(o.Arguments[i]) {
			return false
		}
	}
	return true
}
