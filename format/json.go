package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sigkit/signature"
)

type JSONEncoder struct {
	// Arguments renders the "arguments" field; nil means PlainArguments.
	Arguments Arguments

	w     io.Writer
	class *Class
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name    string       `json:"name"`
	Source  string       `json:"source,omitempty"`
	Methods []jsonMethod `json:"methods"`
}

type jsonMethod struct {
	Name       string                     `json:"name"`
	Descriptor string                     `json:"descriptor"`
	Kind       string                     `json:"kind"`
	Modifiers  []string                   `json:"modifiers,omitempty"`
	Arguments  string                     `json:"arguments,omitempty"`
	Signature  *signature.MethodSignature `json:"signature,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	data := jsonClass{
		Name:    c.Name,
		Source:  c.Source,
		Methods: make([]jsonMethod, 0, len(c.Results)),
	}
	for i := range c.Results {
		r := &c.Results[i]
		m := jsonMethod{
			Name:       r.Method.Name,
			Descriptor: r.Method.Descriptor,
			Kind:       Kind(&r.Method),
			Modifiers:  methodModifiers(r.Method.Access),
			Signature:  r.Signature,
		}
		if r.Err != nil {
			m.Error = r.Err.Error()
		} else {
			m.Arguments = e.Arguments.render(r.Signature)
		}
		data.Methods = append(data.Methods, m)
	}
	return data
}
