package signature

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/sigkit/classfile"
)

// The predicates below only read RawMethodFacts. Callers combine them to
// decide which methods get bindings.

func (m *RawMethodFacts) IsConstructor() bool {
	return m.Name == classfile.ConstructorName
}

func (m *RawMethodFacts) IsStaticInitializer() bool {
	return m.Name == classfile.StaticInitializerName
}

func (m *RawMethodFacts) IsPublic() bool    { return m.Access.IsPublic() }
func (m *RawMethodFacts) IsStatic() bool    { return m.Access.IsStatic() }
func (m *RawMethodFacts) IsSynthetic() bool { return m.Access.IsSynthetic() }

// IsOverridden reports a compiler-generated bridge method.
func (m *RawMethodFacts) IsOverridden() bool { return m.Access.IsBridge() }

// shape reads arity and void-ness from the descriptor. A malformed
// descriptor makes every predicate depending on it false.
func (m *RawMethodFacts) shape() (arity int, returnsVoid bool, ok bool) {
	md, err := classfile.ParseMethodDescriptor(m.Descriptor)
	if err != nil {
		return 0, false, false
	}
	return md.Arity(), md.Return.IsVoid(), true
}

func (m *RawMethodFacts) IsGetter() bool {
	arity, returnsVoid, ok := m.shape()
	return ok && IsGetter(m.Name, arity, returnsVoid, m.IsPublic())
}

func (m *RawMethodFacts) IsNonListenerSetter() bool {
	arity, _, ok := m.shape()
	return ok && IsNonListenerSetter(m.Name, arity, m.IsPublic())
}

func (m *RawMethodFacts) IsListenerSetter(matchSet, matchAdd bool) bool {
	return IsListenerSetter(m.Name, matchSet, matchAdd)
}

// IsGetter matches getX/isX accessors: no parameters, a non-void result, public.
func IsGetter(name string, arity int, returnsVoid, public bool) bool {
	accessor := hasUpperAfter(name, "get") || hasUpperAfter(name, "is")
	return accessor && arity == 0 && !returnsVoid && public
}

// IsNonListenerSetter matches public single-argument setX methods that do not
// register listeners.
func IsNonListenerSetter(name string, arity int, public bool) bool {
	if !hasUpperAfter(name, "set") {
		return false
	}
	if IsListenerSetter(name, true, true) || strings.HasSuffix(name, "Listener") {
		return false
	}
	return arity == 1 && public
}

// IsListenerSetter matches setOnXListener (when matchSet) and addXListener
// (when matchAdd).
func IsListenerSetter(name string, matchSet, matchAdd bool) bool {
	prefixed := (matchSet && strings.HasPrefix(name, "setOn")) || (matchAdd && strings.HasPrefix(name, "add"))
	return prefixed && strings.HasSuffix(name, "Listener")
}

func hasUpperAfter(name, prefix string) bool {
	if len(name) <= len(prefix) || !strings.HasPrefix(name, prefix) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[len(prefix):])
	return unicode.IsUpper(r)
}
