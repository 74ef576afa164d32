package signature

import (
	"strings"
)

// WrapContent is the default for width and height layout parameters.
const WrapContent = "android.view.ViewGroup.LayoutParams.WRAP_CONTENT"

// NotNullAssertion is appended to nullable arguments when forwarding them.
const NotNullAssertion = "!!"

var layoutParamsDefaults = map[string]string{
	"width":  WrapContent,
	"height": WrapContent,
	"w":      WrapContent,
	"h":      WrapContent,
}

var layoutParamsNames = map[string]string{
	"w": "width",
	"h": "height",
}

func layoutParamName(name string) string {
	if real, ok := layoutParamsNames[name]; ok {
		return real
	}
	return name
}

// FormatArguments renders "name: Type" pairs.
func (s *MethodSignature) FormatArguments() string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = p.Name + ": " + p.Type.String()
	}
	return strings.Join(parts, ", ")
}

// FormatArgumentsWithDefaults renders "name: Type = default" pairs, leaving
// out the default where DefaultValueExpression has none.
func (s *MethodSignature) FormatArgumentsWithDefaults(primitivesOnly bool) string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = p.Name + ": " + p.Type.String()
		if def := DefaultValueExpression(p.Type, primitivesOnly); def != "" {
			parts[i] += " = " + def
		}
	}
	return strings.Join(parts, ", ")
}

func (s *MethodSignature) FormatArgumentNames() string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

func (s *MethodSignature) FormatArgumentTypes() string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = p.Type.String()
	}
	return strings.Join(parts, ", ")
}

// FormatLayoutParamsArguments renders declaration parameters for a
// LayoutParams constructor wrapper. render decides how a type is spelled,
// e.g. shortened through an import list; nil uses TypeRef.String.
func (s *MethodSignature) FormatLayoutParamsArguments(render func(TypeRef) string) []string {
	if render == nil {
		render = TypeRef.String
	}
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = layoutParamName(p.Name) + ": " + render(p.Type)
		if def, ok := layoutParamsDefaults[p.Name]; ok {
			parts[i] += " = " + def
		}
	}
	return parts
}

// FormatLayoutParamsInvoke renders the argument list forwarding those
// parameters, asserting nullable ones are not null.
func (s *MethodSignature) FormatLayoutParamsInvoke() string {
	parts := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		parts[i] = layoutParamName(p.Name)
		if p.Type.Nullable {
			parts[i] += NotNullAssertion
		}
	}
	return strings.Join(parts, ", ")
}

func (s *MethodSignature) FormatReturnType() string {
	return s.Return.String()
}
