package signature

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/sigkit/classfile"
)

var log = commonlog.GetLogger("sigkit.signature")

// Compiler turns RawMethodFacts into MethodSignatures. A Compiler holds no
// mutable state and may be shared between goroutines as long as its
// collaborators may.
type Compiler struct {
	evidence AnnotationEvidence
	oracle   NameOracle
}

type Option func(*Compiler)

func WithAnnotationEvidence(e AnnotationEvidence) Option {
	return func(c *Compiler) { c.evidence = e }
}

func WithNameOracle(o NameOracle) Option {
	return func(c *Compiler) { c.oracle = o }
}

func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile builds the signature of one method. The descriptor decides the
// parameter count; the generic signature and name sources only enrich it.
// Errors are *MethodError values wrapping the underlying cause.
func (c *Compiler) Compile(m *RawMethodFacts) (*MethodSignature, error) {
	sig, err := c.compile(m)
	if err != nil {
		return nil, &MethodError{Class: m.Class, Method: m.Name, Descriptor: m.Descriptor, Err: err}
	}
	return sig, nil
}

func (c *Compiler) compile(m *RawMethodFacts) (*MethodSignature, error) {
	md, err := classfile.ParseMethodDescriptor(m.Descriptor)
	if err != nil {
		return nil, err
	}

	ref := m.Ref()
	arity := md.Arity()

	nullable := make([]bool, arity)
	for i := range nullable {
		var bytecode []string
		if i < len(m.ParameterAnnotations) {
			bytecode = m.ParameterAnnotations[i]
		}
		nullable[i] = ResolveNullability(FirstKnown(
			NullabilityFromAnnotations(bytecode),
			c.query(ref, i),
		))
	}
	returnNullable := ResolveNullability(FirstKnown(
		NullabilityFromAnnotations(m.Annotations),
		c.query(ref, ReturnIndex),
	))

	sig := &MethodSignature{
		Name:       m.Name,
		Parameters: make([]MethodParameter, arity),
	}

	if m.Signature == "" {
		for i, p := range md.Parameters {
			sig.Parameters[i].Type = FormatDescriptorType(p, nullable[i])
		}
		sig.Return = FormatDescriptorType(md.Return, returnNullable)
	} else if err := c.applyGenericSignature(sig, m, md, nullable, returnNullable); err != nil {
		return nil, err
	}

	names := ResolveParameterNames(NameRequest{
		Class:          m.Class,
		Method:         m.Name,
		Parameters:     md.Parameters,
		Static:         m.IsStatic(),
		LocalVariables: m.LocalVariables,
	}, c.oracle)
	for i := range sig.Parameters {
		sig.Parameters[i].Name = names[i]
	}

	return sig, nil
}

func (c *Compiler) query(ref MethodRef, index int) Nullability {
	if c.evidence == nil {
		return NullabilityUnknown
	}
	return c.evidence.Query(ref, index)
}

// applyGenericSignature fills types from the Signature attribute. When the
// signature omits leading parameters (synthetic outer instances, enum name
// and ordinal), those positions keep their erased descriptor types.
func (c *Compiler) applyGenericSignature(sig *MethodSignature, m *RawMethodFacts, md *classfile.MethodDescriptor, nullable []bool, returnNullable bool) error {
	gs, err := ParseMethodSignature(m.Signature)
	if err != nil {
		return err
	}

	offset := md.Arity() - len(gs.Parameters)
	if offset < 0 {
		return newMalformedSignatureError(m.Signature, 0,
			"declares %d parameters but the descriptor has %d", len(gs.Parameters), md.Arity())
	}
	if offset > 0 {
		log.Debugf("%s: signature covers %d of %d parameters", m, len(gs.Parameters), md.Arity())
	}

	for i, p := range md.Parameters {
		if i < offset {
			sig.Parameters[i].Type = FormatDescriptorType(p, nullable[i])
			continue
		}
		t, err := FormatGenericType(gs.Parameters[i-offset], nullable[i], Invariant)
		if err != nil {
			return err
		}
		sig.Parameters[i].Type = t
	}

	if sig.Return, err = FormatGenericType(gs.Return, returnNullable, Invariant); err != nil {
		return err
	}

	for _, tp := range gs.TypeParameters {
		param := TypeParameter{Name: tp.Name}
		for _, b := range tp.Bounds() {
			if isObject(b) {
				continue
			}
			bound, err := FormatGenericType(b, false, Invariant)
			if err != nil {
				return err
			}
			param.UpperBounds = append(param.UpperBounds, bound)
		}
		sig.TypeParameters = append(sig.TypeParameters, param)
	}
	return nil
}

// isObject reports the implicit java.lang.Object bound.
func isObject(g GenericType) bool {
	c, ok := g.Classifier.(ClassClassifier)
	return ok && g.Dimensions == 0 && c.InternalName == "java/lang/Object"
}
