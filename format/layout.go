package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sigkit/signature"
)

// LayoutParamsEncoder writes an lparams extension function for every
// successfully compiled constructor of a LayoutParams class. Other classes
// and methods are skipped.
type LayoutParamsEncoder struct {
	w     io.Writer
	class *Class

	// Render spells parameter types; nil prints them fully qualified.
	Render func(signature.TypeRef) string
}

func NewLayoutParamsEncoder(w io.Writer) *LayoutParamsEncoder {
	return &LayoutParamsEncoder{w: w}
}

// IsLayoutParams reports whether a class name denotes a LayoutParams class.
func IsLayoutParams(name string) bool {
	return strings.HasSuffix(name, "LayoutParams")
}

func (e *LayoutParamsEncoder) Encode(class *Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LayoutParamsEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class
	if !IsLayoutParams(c.Name) {
		return nil, nil
	}

	for i := range c.Results {
		r := &c.Results[i]
		if r.Err != nil || !r.Method.IsConstructor() || !r.Method.IsPublic() {
			continue
		}
		s := r.Signature
		args := s.FormatLayoutParamsArguments(e.Render)

		fmt.Fprintf(&sb, "fun <T : android.view.View> T.lparams(%s): T {\n", strings.Join(args, ", "))
		fmt.Fprintf(&sb, "    val layoutParams = %s(%s)\n", c.Name, s.FormatLayoutParamsInvoke())
		sb.WriteString("    this.layoutParams = layoutParams\n")
		sb.WriteString("    return this\n")
		sb.WriteString("}\n\n")
	}
	return []byte(sb.String()), nil
}

var implicitPackages = []string{"kotlin.collections.", "kotlin."}

// ShortKotlinNames renders t with the implicitly imported kotlin packages
// left out: "kotlin.collections.List<kotlin.String>?" becomes "List<String>?".
func ShortKotlinNames(t signature.TypeRef) string {
	return shorten(t).String()
}

func shorten(t signature.TypeRef) signature.TypeRef {
	for _, pkg := range implicitPackages {
		if rest, ok := strings.CutPrefix(t.Name, pkg); ok && !strings.Contains(rest, ".") {
			t.Name = rest
			break
		}
	}
	if len(t.Arguments) > 0 {
		args := make([]signature.TypeRef, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = shorten(a)
		}
		t.Arguments = args
	}
	return t
}
