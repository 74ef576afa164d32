// Package format renders compiled classes.
package format

import (
	"encoding"

	"github.com/dhamidi/sigkit/analyzer"
	"github.com/dhamidi/sigkit/classfile"
	"github.com/dhamidi/sigkit/signature"
)

// Class is one class together with its compiled methods.
type Class struct {
	Name    string
	Source  string
	Results []analyzer.Result
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *Class) error
}

// Arguments renders the parameter list of a compiled method.
type Arguments func(s *signature.MethodSignature) string

// PlainArguments renders "name: Type" pairs without default values.
func PlainArguments(s *signature.MethodSignature) string {
	return s.FormatArguments()
}

// ArgumentsWithDefaults appends Kotlin default values to the parameters that
// have one, only to primitives when primitivesOnly is set.
func ArgumentsWithDefaults(primitivesOnly bool) Arguments {
	return func(s *signature.MethodSignature) string {
		return s.FormatArgumentsWithDefaults(primitivesOnly)
	}
}

func (a Arguments) render(s *signature.MethodSignature) string {
	if a == nil {
		return PlainArguments(s)
	}
	return a(s)
}

// Kind names the binding a method would get.
func Kind(m *signature.RawMethodFacts) string {
	switch {
	case m.IsConstructor():
		return "constructor"
	case m.IsStaticInitializer():
		return "initializer"
	case m.IsGetter():
		return "getter"
	case m.IsListenerSetter(true, true):
		return "listener"
	case m.IsNonListenerSetter():
		return "setter"
	default:
		return "method"
	}
}

func methodModifiers(access classfile.AccessFlags) []string {
	var mods []string
	switch {
	case access.IsPublic():
		mods = append(mods, "public")
	case access.IsProtected():
		mods = append(mods, "protected")
	case access.IsPrivate():
		mods = append(mods, "private")
	}
	if access.IsStatic() {
		mods = append(mods, "static")
	}
	if access.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if access.IsFinal() {
		mods = append(mods, "final")
	}
	if access.IsNative() {
		mods = append(mods, "native")
	}
	if access.IsVarargs() {
		mods = append(mods, "varargs")
	}
	if access.IsBridge() {
		mods = append(mods, "bridge")
	}
	if access.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}
