package classfile

import (
	"encoding/binary"
)

// AttributeInfo is a raw attribute with its name resolved. Parsed is set for
// the attribute kinds the analyzer understands and nil otherwise, including
// when the payload is truncated.
type AttributeInfo struct {
	Name   string
	Info   []byte
	Parsed interface{}
}

type CodeAttribute struct {
	MaxStack   uint16
	MaxLocals  uint16
	Attributes []AttributeInfo
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC    uint16
	Length     uint16
	Name       string
	Descriptor string
	Index      uint16
}

type SignatureAttribute struct {
	Signature string
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	Name        string
	AccessFlags AccessFlags
}

// Annotation keeps only the annotation type descriptor; element values are
// skipped.
type Annotation struct {
	Type string
}

type AnnotationsAttribute struct {
	Visible     bool
	Annotations []Annotation
}

type ParameterAnnotationsAttribute struct {
	Visible    bool
	Parameters [][]Annotation
}

func newAttribute(name string, info []byte, cp ConstantPool) AttributeInfo {
	attr := AttributeInfo{Name: name, Info: info}

	switch name {
	case "Code":
		if code := parseCodeAttribute(info, cp); code != nil {
			attr.Parsed = code
		}
	case "LocalVariableTable":
		if lvt := parseLocalVariableTableAttribute(info, cp); lvt != nil {
			attr.Parsed = lvt
		}
	case "Signature":
		if len(info) >= 2 {
			attr.Parsed = &SignatureAttribute{Signature: cp.GetUtf8(binary.BigEndian.Uint16(info))}
		}
	case "MethodParameters":
		if mp := parseMethodParametersAttribute(info, cp); mp != nil {
			attr.Parsed = mp
		}
	case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
		if anns, ok := parseAnnotations(info, 0, cp); ok {
			attr.Parsed = &AnnotationsAttribute{
				Visible:     name == "RuntimeVisibleAnnotations",
				Annotations: anns,
			}
		}
	case "RuntimeVisibleParameterAnnotations", "RuntimeInvisibleParameterAnnotations":
		if params := parseParameterAnnotations(info, cp); params != nil {
			attr.Parsed = &ParameterAnnotationsAttribute{
				Visible:    name == "RuntimeVisibleParameterAnnotations",
				Parameters: params,
			}
		}
	}

	return attr
}

func (a *AttributeInfo) AsCode() *CodeAttribute {
	code, _ := a.Parsed.(*CodeAttribute)
	return code
}

func (a *AttributeInfo) AsLocalVariableTable() *LocalVariableTableAttribute {
	lvt, _ := a.Parsed.(*LocalVariableTableAttribute)
	return lvt
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	sig, _ := a.Parsed.(*SignatureAttribute)
	return sig
}

func (a *AttributeInfo) AsMethodParameters() *MethodParametersAttribute {
	mp, _ := a.Parsed.(*MethodParametersAttribute)
	return mp
}

func (a *AttributeInfo) AsAnnotations() *AnnotationsAttribute {
	anns, _ := a.Parsed.(*AnnotationsAttribute)
	return anns
}

func (a *AttributeInfo) AsParameterAnnotations() *ParameterAnnotationsAttribute {
	pa, _ := a.Parsed.(*ParameterAnnotationsAttribute)
	return pa
}

func parseCodeAttribute(info []byte, cp ConstantPool) *CodeAttribute {
	if len(info) < 8 {
		return nil
	}

	code := &CodeAttribute{
		MaxStack:  binary.BigEndian.Uint16(info[0:2]),
		MaxLocals: binary.BigEndian.Uint16(info[2:4]),
	}
	codeLength := int(binary.BigEndian.Uint32(info[4:8]))
	offset := 8 + codeLength

	if len(info) < offset+2 {
		return nil
	}
	exceptionCount := int(binary.BigEndian.Uint16(info[offset : offset+2]))
	offset += 2 + exceptionCount*8

	if len(info) < offset+2 {
		return nil
	}
	attributesCount := binary.BigEndian.Uint16(info[offset : offset+2])
	offset += 2

	code.Attributes = make([]AttributeInfo, 0, attributesCount)
	for i := uint16(0); i < attributesCount; i++ {
		if len(info) < offset+6 {
			return nil
		}
		nameIndex := binary.BigEndian.Uint16(info[offset : offset+2])
		length := int(binary.BigEndian.Uint32(info[offset+2 : offset+6]))
		offset += 6

		if len(info) < offset+length {
			return nil
		}
		code.Attributes = append(code.Attributes, newAttribute(cp.GetUtf8(nameIndex), info[offset:offset+length], cp))
		offset += length
	}

	return code
}

func parseLocalVariableTableAttribute(info []byte, cp ConstantPool) *LocalVariableTableAttribute {
	if len(info) < 2 {
		return nil
	}

	count := int(binary.BigEndian.Uint16(info[0:2]))
	if len(info) < 2+count*10 {
		return nil
	}

	lvt := &LocalVariableTableAttribute{
		LocalVariableTable: make([]LocalVariableEntry, count),
	}

	offset := 2
	for i := 0; i < count; i++ {
		lvt.LocalVariableTable[i] = LocalVariableEntry{
			StartPC:    binary.BigEndian.Uint16(info[offset : offset+2]),
			Length:     binary.BigEndian.Uint16(info[offset+2 : offset+4]),
			Name:       cp.GetUtf8(binary.BigEndian.Uint16(info[offset+4 : offset+6])),
			Descriptor: cp.GetUtf8(binary.BigEndian.Uint16(info[offset+6 : offset+8])),
			Index:      binary.BigEndian.Uint16(info[offset+8 : offset+10]),
		}
		offset += 10
	}

	return lvt
}

func parseMethodParametersAttribute(info []byte, cp ConstantPool) *MethodParametersAttribute {
	if len(info) < 1 {
		return nil
	}

	count := int(info[0])
	if len(info) < 1+count*4 {
		return nil
	}

	mp := &MethodParametersAttribute{
		Parameters: make([]MethodParameter, count),
	}

	offset := 1
	for i := 0; i < count; i++ {
		mp.Parameters[i] = MethodParameter{
			Name:        cp.GetUtf8(binary.BigEndian.Uint16(info[offset : offset+2])),
			AccessFlags: AccessFlags(binary.BigEndian.Uint16(info[offset+2 : offset+4])),
		}
		offset += 4
	}

	return mp
}

func parseParameterAnnotations(info []byte, cp ConstantPool) [][]Annotation {
	if len(info) < 1 {
		return nil
	}

	params := make([][]Annotation, info[0])
	offset := 1
	for i := range params {
		if len(info) < offset+2 {
			return nil
		}
		count := int(binary.BigEndian.Uint16(info[offset : offset+2]))
		offset += 2

		anns := make([]Annotation, 0, count)
		for j := 0; j < count; j++ {
			ann, next, ok := parseAnnotation(info, offset, cp)
			if !ok {
				return nil
			}
			anns = append(anns, ann)
			offset = next
		}
		params[i] = anns
	}

	return params
}

func parseAnnotations(info []byte, offset int, cp ConstantPool) ([]Annotation, bool) {
	if len(info) < offset+2 {
		return nil, false
	}
	count := int(binary.BigEndian.Uint16(info[offset : offset+2]))
	offset += 2

	anns := make([]Annotation, 0, count)
	for i := 0; i < count; i++ {
		ann, next, ok := parseAnnotation(info, offset, cp)
		if !ok {
			return nil, false
		}
		anns = append(anns, ann)
		offset = next
	}
	return anns, true
}

func parseAnnotation(info []byte, offset int, cp ConstantPool) (Annotation, int, bool) {
	if len(info) < offset+4 {
		return Annotation{}, offset, false
	}

	ann := Annotation{Type: cp.GetUtf8(binary.BigEndian.Uint16(info[offset : offset+2]))}
	pairs := int(binary.BigEndian.Uint16(info[offset+2 : offset+4]))
	offset += 4

	for i := 0; i < pairs; i++ {
		if len(info) < offset+2 {
			return ann, offset, false
		}
		offset += 2

		var ok bool
		if offset, ok = skipElementValue(info, offset, cp); !ok {
			return ann, offset, false
		}
	}

	return ann, offset, true
}

func skipElementValue(info []byte, offset int, cp ConstantPool) (int, bool) {
	if len(info) <= offset {
		return offset, false
	}

	tag := info[offset]
	offset++

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		offset += 2
	case 'e':
		offset += 4
	case '@':
		_, next, ok := parseAnnotation(info, offset, cp)
		if !ok {
			return next, false
		}
		offset = next
	case '[':
		if len(info) < offset+2 {
			return offset, false
		}
		count := int(binary.BigEndian.Uint16(info[offset : offset+2]))
		offset += 2
		for i := 0; i < count; i++ {
			var ok bool
			if offset, ok = skipElementValue(info, offset, cp); !ok {
				return offset, false
			}
		}
	default:
		return offset, false
	}

	return offset, offset <= len(info)
}
