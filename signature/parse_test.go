package signature_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sigkit/signature"
)

func class(name string, args ...signature.TypeArgument) signature.GenericType {
	return signature.GenericType{Classifier: signature.ClassClassifier{InternalName: name}, Arguments: args}
}

func typeVar(name string) signature.GenericType {
	return signature.GenericType{Classifier: signature.TypeVariableClassifier{Name: name}}
}

func TestParseMethodSignature(t *testing.T) {
	sig, err := signature.ParseMethodSignature(
		"<T:Ljava/lang/Object;>(Ljava/util/List<+TT;>;[I)TT;^Ljava/io/IOException;")
	require.NoError(t, err)

	require.Len(t, sig.TypeParameters, 1)
	tp := sig.TypeParameters[0]
	assert.Equal(t, "T", tp.Name)
	require.NotNil(t, tp.ClassBound)
	assert.Equal(t, class("java/lang/Object"), *tp.ClassBound)
	assert.Empty(t, tp.InterfaceBounds)

	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, class("java/util/List",
		signature.BoundedWildcard{Bound: signature.Extends, Type: typeVar("T")}), sig.Parameters[0])
	assert.Equal(t, signature.GenericType{
		Classifier: signature.BaseClassifier{Descriptor: 'I'},
		Dimensions: 1,
	}, sig.Parameters[1])

	assert.Equal(t, typeVar("T"), sig.Return)
	assert.Equal(t, []signature.GenericType{class("java/io/IOException")}, sig.Throws)
}

func TestParseMethodSignatureInterfaceBound(t *testing.T) {
	sig, err := signature.ParseMethodSignature("<T::Ljava/lang/Comparable<-TT;>;U:TT;>(TT;TU;)V")
	require.NoError(t, err)

	require.Len(t, sig.TypeParameters, 2)
	assert.Nil(t, sig.TypeParameters[0].ClassBound)
	assert.Equal(t, []signature.GenericType{
		class("java/lang/Comparable", signature.BoundedWildcard{Bound: signature.Super, Type: typeVar("T")}),
	}, sig.TypeParameters[0].InterfaceBounds)
	assert.Equal(t, []signature.GenericType{typeVar("T")}, sig.TypeParameters[1].Bounds())

	assert.Equal(t, signature.GenericType{Classifier: signature.BaseClassifier{Descriptor: 'V'}}, sig.Return)
}

func TestParseMethodSignatureInnerClass(t *testing.T) {
	sig, err := signature.ParseMethodSignature(
		"(Ljava/util/Map<TK;TV;>.Entry<TK;*>;)Ljava/util/Set<[Ljava/lang/String;>;")
	require.NoError(t, err)

	require.Len(t, sig.Parameters, 1)
	assert.Equal(t, class("java/util/Map$Entry",
		signature.NoWildcard{Type: typeVar("K")},
		signature.UnboundedWildcard{},
	), sig.Parameters[0])

	elem := class("java/lang/String")
	elem.Dimensions = 1
	assert.Equal(t, class("java/util/Set", signature.NoWildcard{Type: elem}), sig.Return)
}

func TestParseMethodSignatureMalformed(t *testing.T) {
	tests := []struct {
		name string
		sig  string
	}{
		{"empty", ""},
		{"unterminated class", "(Ljava/lang/String"},
		{"missing return", "(I)"},
		{"empty type parameters", "<>()V"},
		{"unknown base type", "(Q)V"},
		{"trailing input", "(I)Vx"},
		{"empty type arguments", "(Ljava/util/List<>;)V"},
		{"unterminated parameters", "(I"},
		{"bad throws", "()V^I"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signature.ParseMethodSignature(tt.sig)
			require.Error(t, err)

			var malformed *signature.MalformedSignatureError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.sig, malformed.Signature)
		})
	}
}
