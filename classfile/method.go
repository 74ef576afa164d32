package classfile

// MemberInfo is a field_info or method_info entry.
type MemberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MemberInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MemberInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *MemberInfo) GetAttribute(name string) *AttributeInfo {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			return &m.Attributes[i]
		}
	}
	return nil
}

func (m *MemberInfo) GetCodeAttribute() *CodeAttribute {
	attr := m.GetAttribute("Code")
	if attr == nil {
		return nil
	}
	return attr.AsCode()
}

// Signature returns the generic signature attribute value, or "" when the
// member has none.
func (m *MemberInfo) Signature() string {
	if attr := m.GetAttribute("Signature"); attr != nil {
		if sig := attr.AsSignature(); sig != nil {
			return sig.Signature
		}
	}
	return ""
}

// LocalVariables returns the LocalVariableTable entries of the method body.
// Abstract and native methods have none.
func (m *MemberInfo) LocalVariables() []LocalVariableEntry {
	code := m.GetCodeAttribute()
	if code == nil {
		return nil
	}
	var entries []LocalVariableEntry
	for i := range code.Attributes {
		if lvt := code.Attributes[i].AsLocalVariableTable(); lvt != nil {
			entries = append(entries, lvt.LocalVariableTable...)
		}
	}
	return entries
}

func (m *MemberInfo) MethodParameters() []MethodParameter {
	if attr := m.GetAttribute("MethodParameters"); attr != nil {
		if mp := attr.AsMethodParameters(); mp != nil {
			return mp.Parameters
		}
	}
	return nil
}

// ParameterAnnotations merges invisible and visible parameter annotations,
// invisible first, as descriptor strings per parameter position.
func (m *MemberInfo) ParameterAnnotations() [][]string {
	var invisible, visible [][]Annotation
	for i := range m.Attributes {
		pa := m.Attributes[i].AsParameterAnnotations()
		if pa == nil {
			continue
		}
		if pa.Visible {
			visible = pa.Parameters
		} else {
			invisible = pa.Parameters
		}
	}

	n := max(len(invisible), len(visible))
	if n == 0 {
		return nil
	}
	result := make([][]string, n)
	for i := 0; i < n; i++ {
		if i < len(invisible) {
			for _, a := range invisible[i] {
				result[i] = append(result[i], a.Type)
			}
		}
		if i < len(visible) {
			for _, a := range visible[i] {
				result[i] = append(result[i], a.Type)
			}
		}
	}
	return result
}

// Annotations returns the descriptors of annotations on the member itself,
// invisible first.
func (m *MemberInfo) Annotations() []string {
	var invisible, visible []string
	for i := range m.Attributes {
		anns := m.Attributes[i].AsAnnotations()
		if anns == nil {
			continue
		}
		for _, a := range anns.Annotations {
			if anns.Visible {
				visible = append(visible, a.Type)
			} else {
				invisible = append(invisible, a.Type)
			}
		}
	}
	return append(invisible, visible...)
}

func (m *MemberInfo) IsPublic() bool    { return m.AccessFlags.IsPublic() }
func (m *MemberInfo) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *MemberInfo) IsBridge() bool    { return m.AccessFlags.IsBridge() }
func (m *MemberInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MemberInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == ConstructorName
}

func (m *MemberInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == StaticInitializerName
}

func (m *MemberInfo) ParsedDescriptor(cp ConstantPool) (*MethodDescriptor, error) {
	return ParseMethodDescriptor(m.Descriptor(cp))
}
