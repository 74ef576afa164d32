package signature

import (
	"github.com/dhamidi/sigkit/classfile"
)

// RawMethodFacts is what the bytecode loader knows about one method. It is
// read-only to this package.
type RawMethodFacts struct {
	// Class is the dot-separated qualified name of the declaring class.
	Class      string
	Name       string
	Descriptor string
	// Signature is the generic signature attribute, "" when absent.
	Signature string
	Access    classfile.AccessFlags
	// LocalVariables maps JVM slots to declared names; nil when the method
	// was compiled without debug information.
	LocalVariables map[int]string
	// ParameterAnnotations holds annotation descriptors per parameter
	// position. It may be shorter than the parameter list.
	ParameterAnnotations [][]string
	// Annotations are the method's own annotations, which describe the
	// return type's nullability.
	Annotations []string
}

func (m *RawMethodFacts) Ref() MethodRef {
	return MethodRef{Class: m.Class, Name: m.Name, Descriptor: m.Descriptor}
}

func (m *RawMethodFacts) String() string {
	return m.Class + "." + m.Name + m.Descriptor
}

type TypeParameter struct {
	Name        string    `json:"name"`
	UpperBounds []TypeRef `json:"upperBounds,omitempty"`
}

func (p TypeParameter) String() string {
	if len(p.UpperBounds) == 0 {
		return p.Name
	}
	// Additional bounds belong in a where-clause, which the caller renders.
	return p.Name + " : " + p.UpperBounds[0].String()
}

type MethodParameter struct {
	Name string  `json:"name"`
	Type TypeRef `json:"type"`
}

// MethodSignature is the canonical description of one method.
type MethodSignature struct {
	Name           string            `json:"name"`
	TypeParameters []TypeParameter   `json:"typeParameters,omitempty"`
	Parameters     []MethodParameter `json:"parameters"`
	Return         TypeRef           `json:"returnType"`
}

// Equal reports structural equality.
func (s *MethodSignature) Equal(o *MethodSignature) bool {
	if s.Name != o.Name || !s.Return.Equal(o.Return) ||
		len(s.Parameters) != len(o.Parameters) || len(s.TypeParameters) != len(o.TypeParameters) {
		return false
	}
	for i := range s.Parameters {
		if s.Parameters[i].Name != o.Parameters[i].Name || !s.Parameters[i].Type.Equal(o.Parameters[i].Type) {
			return false
		}
	}
	for i := range s.TypeParameters {
		a, b := s.TypeParameters[i], o.TypeParameters[i]
		if a.Name != b.Name || len(a.UpperBounds) != len(b.UpperBounds) {
			return false
		}
		for j := range a.UpperBounds {
			if !a.UpperBounds[j].Equal(b.UpperBounds[j]) {
				return false
			}
		}
	}
	return true
}
