package annotations

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sigkit/classfile"
	"github.com/dhamidi/sigkit/signature"
)

var log = commonlog.GetLogger("sigkit.annotations")

// Manager answers nullability queries from a Provider. It is safe for
// concurrent use when its Provider is.
type Manager struct {
	provider Provider
}

func NewManager(p Provider) *Manager {
	return &Manager{provider: p}
}

// Query implements signature.AnnotationEvidence.
func (m *Manager) Query(ref signature.MethodRef, index int) signature.Nullability {
	return signature.NullabilityFromAnnotations(m.Annotations(ref, index))
}

// Annotations returns the external annotations of a method's return value
// (index signature.ReturnIndex) or of one of its parameters.
func (m *Manager) Annotations(ref signature.MethodRef, index int) []string {
	key, err := ItemKey(ref, index)
	if err != nil {
		log.Debugf("%s.%s%s: %s", ref.Class, ref.Name, ref.Descriptor, err)
		return nil
	}

	pkg := PackageOf(ref.Class)
	items, err := m.provider.Annotations(pkg)
	if err != nil {
		log.Warningf("annotations for package %s: %s", pkg, err)
	}
	return items[key]
}

// ItemKey computes the annotations.xml item name for a method's return
// value or one of its parameters:
//
//	android.widget.TextView void setText(java.lang.CharSequence) 0
//	android.widget.TextView TextView(android.content.Context)
//
// Constructors are named after the simple class name and have no return type.
func ItemKey(ref signature.MethodRef, index int) (string, error) {
	md, err := classfile.ParseMethodDescriptor(ref.Descriptor)
	if err != nil {
		return "", err
	}

	args := make([]string, len(md.Parameters))
	for i, p := range md.Parameters {
		args[i] = p.JavaName()
	}

	var sb strings.Builder
	sb.WriteString(ref.Class)
	sb.WriteByte(' ')
	if ref.Name == classfile.ConstructorName {
		sb.WriteString(ref.Class[strings.LastIndexByte(ref.Class, '.')+1:])
	} else {
		sb.WriteString(md.Return.JavaName())
		sb.WriteByte(' ')
		sb.WriteString(ref.Name)
	}
	sb.WriteByte('(')
	sb.WriteString(strings.Join(args, ", "))
	sb.WriteByte(')')
	if index != signature.ReturnIndex {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(index))
	}
	return sb.String(), nil
}

// PackageOf strips class segments from a dot-separated qualified name. Class
// segments are recognized by their leading upper-case letter, so nested
// classes resolve to their outermost package.
func PackageOf(qualified string) string {
	segments := strings.Split(qualified, ".")
	n := 0
	for n < len(segments)-1 {
		r, _ := utf8.DecodeRuneInString(segments[n])
		if unicode.IsUpper(r) {
			break
		}
		n++
	}
	return strings.Join(segments[:n], ".")
}
