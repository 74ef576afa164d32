package classfile

import (
	"fmt"
	"strings"
)

// FieldType is one erased type token of a descriptor. BaseType holds the
// descriptor character of a primitive (or 'V' for void) and is zero for
// class types.
type FieldType struct {
	BaseType   byte
	ClassName  string
	ArrayDepth int
}

var baseTypeNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// JavaName renders the type the way Java source spells it, with nested
// classes separated by dots: "int", "java.util.Map.Entry[]".
func (ft FieldType) JavaName() string {
	var sb strings.Builder
	if ft.BaseType != 0 {
		sb.WriteString(baseTypeNames[ft.BaseType])
	} else {
		sb.WriteString(InternalToQualifiedName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft FieldType) String() string {
	return ft.JavaName()
}

func (ft FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft FieldType) IsPrimitive() bool {
	return ft.ArrayDepth == 0 && ft.BaseType != 0 && ft.BaseType != 'V'
}

func (ft FieldType) IsVoid() bool {
	return ft.ArrayDepth == 0 && ft.BaseType == 'V'
}

// ElementType strips one array dimension.
func (ft FieldType) ElementType() FieldType {
	if ft.ArrayDepth == 0 {
		return ft
	}
	ft.ArrayDepth--
	return ft
}

// Size is the number of local variable slots a value of this type occupies.
func (ft FieldType) Size() int {
	if ft.ArrayDepth == 0 && (ft.BaseType == 'J' || ft.BaseType == 'D') {
		return 2
	}
	return 1
}

type MethodDescriptor struct {
	Parameters []FieldType
	Return     FieldType
}

func (md *MethodDescriptor) Arity() int {
	return len(md.Parameters)
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.JavaName())
	}
	sb.WriteString(") ")
	sb.WriteString(md.Return.JavaName())
	return sb.String()
}

type MalformedDescriptorError struct {
	Descriptor string
	Offset     int
}

func (e *MalformedDescriptorError) Error() string {
	return fmt.Sprintf("malformed descriptor %q at offset %d", e.Descriptor, e.Offset)
}

func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, consumed := parseFieldType(desc, 0)
	if ft == nil || consumed != len(desc) || ft.BaseType == 'V' {
		return nil, &MalformedDescriptorError{Descriptor: desc, Offset: consumed}
	}
	return ft, nil
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, &MalformedDescriptorError{Descriptor: desc}
	}

	md := &MethodDescriptor{}
	i := 1

	for i < len(desc) && desc[i] != ')' {
		ft, consumed := parseFieldType(desc, i)
		if ft == nil || ft.BaseType == 'V' {
			return nil, &MalformedDescriptorError{Descriptor: desc, Offset: i}
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}

	if i >= len(desc) {
		return nil, &MalformedDescriptorError{Descriptor: desc, Offset: i}
	}
	i++

	if i < len(desc) && desc[i] == 'V' && i+1 == len(desc) {
		md.Return = FieldType{BaseType: 'V'}
		return md, nil
	}

	ret, consumed := parseFieldType(desc, i)
	if ret == nil || i+consumed != len(desc) || ret.BaseType == 'V' {
		return nil, &MalformedDescriptorError{Descriptor: desc, Offset: i}
	}
	md.Return = *ret
	return md, nil
}

// parseFieldType returns the type starting at desc[start] and the number of
// bytes it spans. 'V' is accepted here and rejected by callers where illegal.
func parseFieldType(desc string, start int) (*FieldType, int) {
	ft := &FieldType{}
	i := start

	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}

	if i >= len(desc) {
		return nil, 0
	}

	c := desc[i]
	if c == 'L' {
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return nil, 0
		}
		ft.ClassName = desc[i+1 : i+semicolon]
		return ft, i - start + semicolon + 1
	}

	if _, ok := baseTypeNames[c]; !ok {
		return nil, 0
	}
	if c == 'V' && ft.ArrayDepth > 0 {
		return nil, 0
	}
	ft.BaseType = c
	return ft, i - start + 1
}

// InternalToQualifiedName turns "java/util/Map$Entry" into "java.util.Map.Entry".
func InternalToQualifiedName(name string) string {
	return strings.NewReplacer("/", ".", "$", ".").Replace(name)
}
