package signature

import (
	"strings"
)

// DefaultNullability applies when no evidence is available.
const DefaultNullability = false

type Nullability int

const (
	NullabilityUnknown Nullability = iota
	NotNull
	Nullable
)

func (n Nullability) String() string {
	switch n {
	case NotNull:
		return "not-null"
	case Nullable:
		return "nullable"
	default:
		return "unknown"
	}
}

// ReturnIndex selects the return type in AnnotationEvidence queries.
const ReturnIndex = -1

// MethodRef identifies a method for annotation lookups. Class is the
// dot-separated qualified name.
type MethodRef struct {
	Class      string
	Name       string
	Descriptor string
}

// AnnotationEvidence answers nullability questions from sources outside the
// class file. Implementations do their own caching and locking.
type AnnotationEvidence interface {
	Query(ref MethodRef, index int) Nullability
}

// ResolveNullability collapses evidence to a flag.
func ResolveNullability(n Nullability) bool {
	switch n {
	case NotNull:
		return false
	case Nullable:
		return true
	default:
		return DefaultNullability
	}
}

var nullabilityAnnotations = map[string]Nullability{
	"org.jetbrains.annotations.NotNull":                   NotNull,
	"org.jetbrains.annotations.Nullable":                  Nullable,
	"androidx.annotation.NonNull":                         NotNull,
	"androidx.annotation.Nullable":                        Nullable,
	"android.support.annotation.NonNull":                  NotNull,
	"android.support.annotation.Nullable":                 Nullable,
	"android.annotation.NonNull":                          NotNull,
	"android.annotation.Nullable":                         Nullable,
	"javax.annotation.Nonnull":                            NotNull,
	"javax.annotation.Nullable":                           Nullable,
	"javax.annotation.CheckForNull":                       Nullable,
	"org.checkerframework.checker.nullness.qual.NonNull":  NotNull,
	"org.checkerframework.checker.nullness.qual.Nullable": Nullable,
	"org.eclipse.jdt.annotation.NonNull":                  NotNull,
	"org.eclipse.jdt.annotation.Nullable":                 Nullable,
}

// AnnotationNullability classifies one annotation given either as a type
// descriptor ("Lorg/jetbrains/annotations/Nullable;") or a qualified name.
func AnnotationNullability(annotation string) Nullability {
	name := annotation
	if strings.HasPrefix(name, "L") && strings.HasSuffix(name, ";") {
		name = strings.ReplaceAll(name[1:len(name)-1], "/", ".")
	}
	return nullabilityAnnotations[name]
}

// NullabilityFromAnnotations returns the verdict of the first annotation that
// has one. Conflicting annotations are decided by declaration order alone.
func NullabilityFromAnnotations(annotations []string) Nullability {
	for _, a := range annotations {
		if n := AnnotationNullability(a); n != NullabilityUnknown {
			return n
		}
	}
	return NullabilityUnknown
}

// FirstKnown returns the first non-unknown verdict.
func FirstKnown(verdicts ...Nullability) Nullability {
	for _, n := range verdicts {
		if n != NullabilityUnknown {
			return n
		}
	}
	return NullabilityUnknown
}
