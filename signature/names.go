package signature

import (
	"strconv"

	"github.com/dhamidi/sigkit/classfile"
)

// NameOracle resolves parameter names from a secondary source such as SDK
// sources. A nil or wrong-length answer means "unknown".
type NameOracle interface {
	LookupParameterNames(class, method string, javaTypes []string) []string
}

// NameRequest carries what ResolveParameterNames needs about one method.
type NameRequest struct {
	Class      string
	Method     string
	Parameters []classfile.FieldType
	Static     bool
	// LocalVariables maps a JVM slot to the declared variable name.
	LocalVariables map[int]string
}

// JavaTypes returns the erased Java spelling of each parameter type.
func (r NameRequest) JavaTypes() []string {
	types := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		types[i] = p.JavaName()
	}
	return types
}

// ResolveParameterNames picks a name for every parameter position: the oracle
// answer, then the local variable at the parameter's slot, then "p<index>".
// It never fails.
func ResolveParameterNames(req NameRequest, oracle NameOracle) []string {
	var external []string
	if oracle != nil {
		external = oracle.LookupParameterNames(req.Class, req.Method, req.JavaTypes())
		if len(external) != len(req.Parameters) {
			external = nil
		}
	}

	names := make([]string, len(req.Parameters))
	slot := 1
	if req.Static {
		slot = 0
	}
	for i, p := range req.Parameters {
		switch {
		case external != nil && external[i] != "":
			names[i] = external[i]
		case req.LocalVariables[slot] != "":
			names[i] = req.LocalVariables[slot]
		default:
			names[i] = "p" + strconv.Itoa(i)
		}
		slot += p.Size()
	}
	return names
}
