package signature

import (
	"github.com/dhamidi/sigkit/classfile"
)

// FormatDescriptorType maps an erased descriptor token. The result never has
// arguments and is never a type variable; object arrays get a flat
// "kotlin.Array<...>" name. Primitives are never nullable.
func FormatDescriptorType(ft classfile.FieldType, nullable bool) TypeRef {
	if ft.ArrayDepth == 0 && ft.BaseType != 0 {
		return TypeRef{Name: primitiveNames[ft.BaseType]}
	}
	return TypeRef{Name: erasedName(ft), Nullable: nullable}
}

func erasedName(ft classfile.FieldType) string {
	if ft.ArrayDepth == 0 {
		if ft.BaseType != 0 {
			return primitiveNames[ft.BaseType]
		}
		return MapClassName(classfile.InternalToQualifiedName(ft.ClassName))
	}
	if ft.ArrayDepth == 1 && ft.BaseType != 0 {
		return primitiveArrayNames[ft.BaseType]
	}
	return ArrayType + "<" + erasedName(ft.ElementType()) + ">"
}

// FormatGenericType resolves a parsed type expression into a TypeRef.
// Type arguments are not-null; bounded wildcards carry their variance.
func FormatGenericType(g GenericType, nullable bool, variance Variance) (TypeRef, error) {
	if g.Dimensions > 0 {
		elem := g.ElementType()
		if base, ok := elem.Classifier.(BaseClassifier); ok && elem.Dimensions == 0 {
			name, ok := primitiveArrayNames[base.Descriptor]
			if !ok {
				return TypeRef{}, &UnsupportedClassifierError{Value: base}
			}
			return TypeRef{Name: name, Nullable: nullable, Variance: variance}, nil
		}
		elemRef, err := FormatGenericType(elem, false, Invariant)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{
			Name:      ArrayType,
			Nullable:  nullable,
			Variance:  variance,
			Arguments: []TypeRef{elemRef},
		}, nil
	}

	switch c := g.Classifier.(type) {
	case ClassClassifier:
		args, err := formatArguments(g.Arguments)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{
			Name:      MapClassName(classfile.InternalToQualifiedName(c.InternalName)),
			Nullable:  nullable,
			Variance:  variance,
			Arguments: args,
		}, nil

	case BaseClassifier:
		name, ok := primitiveNames[c.Descriptor]
		if !ok {
			return TypeRef{}, &UnsupportedClassifierError{Value: c}
		}
		return TypeRef{Name: name, Variance: variance}, nil

	case TypeVariableClassifier:
		return TypeRef{
			Name:         c.Name,
			Nullable:     nullable,
			Variance:     variance,
			TypeVariable: true,
		}, nil

	default:
		return TypeRef{}, &UnsupportedClassifierError{Value: g.Classifier}
	}
}

func formatArguments(args []TypeArgument) ([]TypeRef, error) {
	if len(args) == 0 {
		return nil, nil
	}

	refs := make([]TypeRef, 0, len(args))
	for _, arg := range args {
		ref, err := FormatTypeArgument(arg, false)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// FormatTypeArgument resolves one type argument. Bounded wildcards are
// always not-null; their nullability cannot be read from a signature.
func FormatTypeArgument(arg TypeArgument, nullable bool) (TypeRef, error) {
	switch a := arg.(type) {
	case UnboundedWildcard:
		return StarType, nil
	case NoWildcard:
		return FormatGenericType(a.Type, nullable, Invariant)
	case BoundedWildcard:
		if a.Bound == Super {
			return FormatGenericType(a.Type, false, Contravariant)
		}
		return FormatGenericType(a.Type, false, Covariant)
	default:
		return TypeRef{}, &UnsupportedClassifierError{Value: arg}
	}
}

// DefaultValueExpression returns a literal usable as a default argument.
// Non-primitive types get a constructor call unless primitivesOnly is set,
// in which case "" signals that no safe default exists. Type variables and
// star projections never have one.
func DefaultValueExpression(t TypeRef, primitivesOnly bool) string {
	if t.IsPrimitive() {
		return primitiveDefaults[t.Name]
	}
	if primitivesOnly || t.TypeVariable || t.IsStar() {
		return ""
	}
	t.Nullable = false
	t.Variance = Invariant
	return t.String() + "()"
}
