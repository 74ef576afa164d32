package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/sigkit/signature"
)

var errorColor = color.New(color.FgRed, color.Bold)

// LineEncoder writes one tab-separated line per class and per method:
//
//	class	android.widget.TextView	TextView.class
//	method	setter	setText	(text: kotlin.CharSequence?)	kotlin.Unit	public
//	error	run(X)V	malformed descriptor ...
type LineEncoder struct {
	// Arguments renders the parameter column; nil means PlainArguments.
	Arguments Arguments

	w     io.Writer
	class *Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "class\t%s\t%s\n", c.Name, c.Source)

	for i := range c.Results {
		r := &c.Results[i]
		if r.Err != nil {
			sb.WriteString(errorColor.Sprintf("error\t%s%s\t%s", r.Method.Name, r.Method.Descriptor, r.Err))
			sb.WriteByte('\n')
			continue
		}
		s := r.Signature
		fmt.Fprintf(&sb, "method\t%s\t%s%s\t(%s)\t%s\t%s\n",
			Kind(&r.Method),
			typeParametersStr(s),
			s.Name,
			e.Arguments.render(s),
			s.FormatReturnType(),
			strings.Join(methodModifiers(r.Method.Access), " "),
		)
	}

	return []byte(sb.String()), nil
}

func typeParametersStr(s *signature.MethodSignature) string {
	if len(s.TypeParameters) == 0 {
		return ""
	}
	parts := make([]string, len(s.TypeParameters))
	for i, tp := range s.TypeParameters {
		parts[i] = tp.String()
	}
	return "<" + strings.Join(parts, ", ") + "> "
}
