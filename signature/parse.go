package signature

import (
	"strings"
)

// ParseMethodSignature parses the value of a method's Signature attribute
// (JVMS 4.7.9.1). The throws section is parsed and returned but compilation
// ignores it.
func ParseMethodSignature(sig string) (*GenericMethodSignature, error) {
	p := &signatureParser{s: sig}
	ms := &GenericMethodSignature{}

	if p.peek() == '<' {
		params, err := p.typeParameters()
		if err != nil {
			return nil, err
		}
		ms.TypeParameters = params
	}

	if err := p.expect('('); err != nil {
		return nil, err
	}
	for p.peek() != ')' {
		if p.done() {
			return nil, p.errorf("unterminated parameter list")
		}
		t, err := p.javaType()
		if err != nil {
			return nil, err
		}
		ms.Parameters = append(ms.Parameters, t)
	}
	p.pos++

	if p.peek() == 'V' {
		p.pos++
		ms.Return = GenericType{Classifier: BaseClassifier{Descriptor: 'V'}}
	} else {
		ret, err := p.javaType()
		if err != nil {
			return nil, err
		}
		ms.Return = ret
	}

	for p.peek() == '^' {
		p.pos++
		var (
			t   GenericType
			err error
		)
		switch p.peek() {
		case 'L':
			t, err = p.classType()
		case 'T':
			t, err = p.typeVariable()
		default:
			err = p.errorf("expected class or type variable in throws clause")
		}
		if err != nil {
			return nil, err
		}
		ms.Throws = append(ms.Throws, t)
	}

	if !p.done() {
		return nil, p.errorf("unexpected trailing input")
	}
	return ms, nil
}

type signatureParser struct {
	s   string
	pos int
}

func (p *signatureParser) done() bool {
	return p.pos >= len(p.s)
}

func (p *signatureParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *signatureParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *signatureParser) errorf(reason string, args ...any) error {
	return newMalformedSignatureError(p.s, p.pos, reason, args...)
}

// identifier reads up to the next delimiter. Slashes are kept when
// allowSlash is set so package-qualified class names come back whole.
func (p *signatureParser) identifier(allowSlash bool) (string, error) {
	start := p.pos
	for !p.done() {
		c := p.s[p.pos]
		if c == '.' || c == ';' || c == '[' || c == '<' || c == '>' || c == ':' {
			break
		}
		if c == '/' && !allowSlash {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.s[start:p.pos], nil
}

func (p *signatureParser) typeParameters() ([]GenericTypeParameter, error) {
	p.pos++ // '<'
	var params []GenericTypeParameter
	for p.peek() != '>' {
		if p.done() {
			return nil, p.errorf("unterminated type parameters")
		}
		name, err := p.identifier(false)
		if err != nil {
			return nil, err
		}
		param := GenericTypeParameter{Name: name}

		if err := p.expect(':'); err != nil {
			return nil, err
		}
		if c := p.peek(); c == 'L' || c == 'T' || c == '[' {
			bound, err := p.referenceType()
			if err != nil {
				return nil, err
			}
			param.ClassBound = &bound
		}
		for p.peek() == ':' {
			p.pos++
			bound, err := p.referenceType()
			if err != nil {
				return nil, err
			}
			param.InterfaceBounds = append(param.InterfaceBounds, bound)
		}
		params = append(params, param)
	}
	p.pos++
	if len(params) == 0 {
		return nil, p.errorf("empty type parameter list")
	}
	return params, nil
}

func (p *signatureParser) javaType() (GenericType, error) {
	c := p.peek()
	if strings.IndexByte(primitiveDescriptors, c) >= 0 {
		p.pos++
		return GenericType{Classifier: BaseClassifier{Descriptor: c}}, nil
	}
	return p.referenceType()
}

func (p *signatureParser) referenceType() (GenericType, error) {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		return p.typeVariable()
	case '[':
		p.pos++
		elem, err := p.javaType()
		if err != nil {
			return GenericType{}, err
		}
		elem.Dimensions++
		return elem, nil
	default:
		return GenericType{}, p.errorf("expected reference type")
	}
}

func (p *signatureParser) typeVariable() (GenericType, error) {
	p.pos++ // 'T'
	name, err := p.identifier(false)
	if err != nil {
		return GenericType{}, err
	}
	if err := p.expect(';'); err != nil {
		return GenericType{}, err
	}
	return GenericType{Classifier: TypeVariableClassifier{Name: name}}, nil
}

// classType parses "Lpkg/Outer<..>.Inner<..>;". Inner segments are joined
// with '$' and only the innermost segment's arguments are kept.
func (p *signatureParser) classType() (GenericType, error) {
	p.pos++ // 'L'
	name, err := p.identifier(true)
	if err != nil {
		return GenericType{}, err
	}
	args, err := p.typeArguments()
	if err != nil {
		return GenericType{}, err
	}

	for p.peek() == '.' {
		p.pos++
		inner, err := p.identifier(false)
		if err != nil {
			return GenericType{}, err
		}
		name += "$" + inner
		if args, err = p.typeArguments(); err != nil {
			return GenericType{}, err
		}
	}

	if err := p.expect(';'); err != nil {
		return GenericType{}, err
	}
	return GenericType{Classifier: ClassClassifier{InternalName: name}, Arguments: args}, nil
}

func (p *signatureParser) typeArguments() ([]TypeArgument, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.pos++

	var args []TypeArgument
	for p.peek() != '>' {
		if p.done() {
			return nil, p.errorf("unterminated type arguments")
		}
		switch p.peek() {
		case '*':
			p.pos++
			args = append(args, UnboundedWildcard{})
		case '+', '-':
			bound := Extends
			if p.peek() == '-' {
				bound = Super
			}
			p.pos++
			t, err := p.referenceType()
			if err != nil {
				return nil, err
			}
			args = append(args, BoundedWildcard{Bound: bound, Type: t})
		default:
			t, err := p.referenceType()
			if err != nil {
				return nil, err
			}
			args = append(args, NoWildcard{Type: t})
		}
	}
	p.pos++
	if len(args) == 0 {
		return nil, p.errorf("empty type argument list")
	}
	return args, nil
}
