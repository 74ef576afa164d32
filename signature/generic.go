package signature

// Classifier is the root kind of a generic type expression. The set of
// implementations is closed: ClassClassifier, BaseClassifier and
// TypeVariableClassifier.
type Classifier interface {
	isClassifier()
}

// ClassClassifier names a class by its internal name, e.g. "java/util/Map$Entry".
type ClassClassifier struct {
	InternalName string
}

// BaseClassifier is a primitive, identified by its descriptor character.
type BaseClassifier struct {
	Descriptor byte
}

type TypeVariableClassifier struct {
	Name string
}

func (ClassClassifier) isClassifier()        {}
func (BaseClassifier) isClassifier()         {}
func (TypeVariableClassifier) isClassifier() {}

// TypeArgument is one argument of a parameterized class. Implementations:
// NoWildcard, UnboundedWildcard and BoundedWildcard.
type TypeArgument interface {
	isTypeArgument()
}

type NoWildcard struct {
	Type GenericType
}

// UnboundedWildcard is "?" ("*" in the descriptor grammar).
type UnboundedWildcard struct{}

type WildcardBound int

const (
	Extends WildcardBound = iota
	Super
)

func (b WildcardBound) String() string {
	if b == Super {
		return "super"
	}
	return "extends"
}

type BoundedWildcard struct {
	Bound WildcardBound
	Type  GenericType
}

func (NoWildcard) isTypeArgument()        {}
func (UnboundedWildcard) isTypeArgument() {}
func (BoundedWildcard) isTypeArgument()   {}

// GenericType is a parsed type expression. Dimensions > 0 makes it an array
// whose innermost element is described by Classifier and Arguments.
type GenericType struct {
	Classifier Classifier
	Arguments  []TypeArgument
	Dimensions int
}

// ElementType strips one array dimension.
func (g GenericType) ElementType() GenericType {
	if g.Dimensions > 0 {
		g.Dimensions--
	}
	return g
}

type GenericTypeParameter struct {
	Name            string
	ClassBound      *GenericType
	InterfaceBounds []GenericType
}

// Bounds returns the class bound, if any, followed by the interface bounds.
func (p GenericTypeParameter) Bounds() []GenericType {
	var bounds []GenericType
	if p.ClassBound != nil {
		bounds = append(bounds, *p.ClassBound)
	}
	return append(bounds, p.InterfaceBounds...)
}

type GenericMethodSignature struct {
	TypeParameters []GenericTypeParameter
	Parameters     []GenericType
	Return         GenericType
	Throws         []GenericType
}
