// Package classgen assembles minimal class files for tests.
package classgen

import (
	"bytes"
	"encoding/binary"
)

const (
	accPublic = 0x0001
	accSuper  = 0x0020
)

// Method describes one method_info entry. Code is only emitted when
// LocalVariables is non-nil, so abstract methods stay body-less.
type Method struct {
	Access           uint16
	Name             string
	Descriptor       string
	Signature        string
	LocalVariables   []LocalVariable
	MethodParameters []string

	// Descriptors per parameter, e.g. "Lorg/jetbrains/annotations/Nullable;".
	VisibleParameterAnnotations   [][]string
	InvisibleParameterAnnotations [][]string
	Annotations                   []string
}

type LocalVariable struct {
	Slot       uint16
	Name       string
	Descriptor string
	// StartPC is zero for parameters; block-scoped locals start later.
	StartPC uint16
}

type Builder struct {
	name    string
	pool    bytes.Buffer
	count   uint16
	utf8    map[string]uint16
	classes map[string]uint16
	methods []Method
}

// New starts a public class with the given internal name extending
// java/lang/Object.
func New(internalName string) *Builder {
	return &Builder{
		name:    internalName,
		count:   1,
		utf8:    make(map[string]uint16),
		classes: make(map[string]uint16),
	}
}

func (b *Builder) AddMethod(m Method) *Builder {
	b.methods = append(b.methods, m)
	return b
}

func (b *Builder) utf8Index(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	b.pool.WriteByte(1)
	writeU2(&b.pool, uint16(len(s)))
	b.pool.WriteString(s)
	idx := b.count
	b.count++
	b.utf8[s] = idx
	return idx
}

func (b *Builder) classIndex(name string) uint16 {
	if idx, ok := b.classes[name]; ok {
		return idx
	}
	nameIdx := b.utf8Index(name)
	b.pool.WriteByte(7)
	writeU2(&b.pool, nameIdx)
	idx := b.count
	b.count++
	b.classes[name] = idx
	return idx
}

// AddLong adds a CONSTANT_Long entry so tests cover two-slot constants.
func (b *Builder) AddLong(v int64) *Builder {
	b.pool.WriteByte(5)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	b.pool.Write(buf[:])
	b.count += 2
	return b
}

// Bytes serializes the class file.
func (b *Builder) Bytes() []byte {
	this := b.classIndex(b.name)
	super := b.classIndex("java/lang/Object")

	var methods bytes.Buffer
	writeU2(&methods, uint16(len(b.methods)))
	for _, m := range b.methods {
		b.writeMethod(&methods, m)
	}

	var out bytes.Buffer
	writeU4(&out, 0xCAFEBABE)
	writeU2(&out, 0)
	writeU2(&out, 52)
	writeU2(&out, b.count)
	out.Write(b.pool.Bytes())
	writeU2(&out, accPublic|accSuper)
	writeU2(&out, this)
	writeU2(&out, super)
	writeU2(&out, 0) // interfaces
	writeU2(&out, 0) // fields
	out.Write(methods.Bytes())
	writeU2(&out, 0) // attributes
	return out.Bytes()
}

func (b *Builder) writeMethod(w *bytes.Buffer, m Method) {
	type attr struct {
		name uint16
		body []byte
	}
	var attrs []attr

	if m.Signature != "" {
		var body bytes.Buffer
		writeU2(&body, b.utf8Index(m.Signature))
		attrs = append(attrs, attr{b.utf8Index("Signature"), body.Bytes()})
	}
	if m.LocalVariables != nil {
		attrs = append(attrs, attr{b.utf8Index("Code"), b.codeAttribute(m.LocalVariables)})
	}
	if m.MethodParameters != nil {
		var body bytes.Buffer
		body.WriteByte(byte(len(m.MethodParameters)))
		for _, name := range m.MethodParameters {
			writeU2(&body, b.utf8Index(name))
			writeU2(&body, 0)
		}
		attrs = append(attrs, attr{b.utf8Index("MethodParameters"), body.Bytes()})
	}
	if m.VisibleParameterAnnotations != nil {
		attrs = append(attrs, attr{b.utf8Index("RuntimeVisibleParameterAnnotations"), b.parameterAnnotations(m.VisibleParameterAnnotations)})
	}
	if m.InvisibleParameterAnnotations != nil {
		attrs = append(attrs, attr{b.utf8Index("RuntimeInvisibleParameterAnnotations"), b.parameterAnnotations(m.InvisibleParameterAnnotations)})
	}
	if m.Annotations != nil {
		var body bytes.Buffer
		b.writeAnnotations(&body, m.Annotations)
		attrs = append(attrs, attr{b.utf8Index("RuntimeInvisibleAnnotations"), body.Bytes()})
	}

	writeU2(w, m.Access)
	writeU2(w, b.utf8Index(m.Name))
	writeU2(w, b.utf8Index(m.Descriptor))
	writeU2(w, uint16(len(attrs)))
	for _, a := range attrs {
		writeU2(w, a.name)
		writeU4(w, uint32(len(a.body)))
		w.Write(a.body)
	}
}

func (b *Builder) codeAttribute(vars []LocalVariable) []byte {
	var lvt bytes.Buffer
	writeU2(&lvt, uint16(len(vars)))
	for _, v := range vars {
		writeU2(&lvt, v.StartPC)
		writeU2(&lvt, 1)
		writeU2(&lvt, b.utf8Index(v.Name))
		writeU2(&lvt, b.utf8Index(v.Descriptor))
		writeU2(&lvt, v.Slot)
	}

	var body bytes.Buffer
	writeU2(&body, 1)
	writeU2(&body, uint16(len(vars)+2))
	writeU4(&body, 1)
	body.WriteByte(0xB1) // return
	writeU2(&body, 0)    // exception table
	writeU2(&body, 1)    // attributes
	writeU2(&body, b.utf8Index("LocalVariableTable"))
	writeU4(&body, uint32(lvt.Len()))
	body.Write(lvt.Bytes())
	return body.Bytes()
}

func (b *Builder) parameterAnnotations(params [][]string) []byte {
	var body bytes.Buffer
	body.WriteByte(byte(len(params)))
	for _, anns := range params {
		b.writeAnnotations(&body, anns)
	}
	return body.Bytes()
}

func (b *Builder) writeAnnotations(w *bytes.Buffer, descs []string) {
	writeU2(w, uint16(len(descs)))
	for _, d := range descs {
		writeU2(w, b.utf8Index(d))
		writeU2(w, 0) // element_value_pairs
	}
}

func writeU2(w *bytes.Buffer, v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.Write(buf[:])
}

func writeU4(w *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}
