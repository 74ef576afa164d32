package format_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sigkit/analyzer"
	"github.com/dhamidi/sigkit/classfile"
	"github.com/dhamidi/sigkit/format"
	"github.com/dhamidi/sigkit/signature"
)

func init() {
	color.NoColor = true
}

func compileClass(t *testing.T, name string, methods []signature.RawMethodFacts) *format.Class {
	t.Helper()
	results, err := analyzer.New(signature.NewCompiler()).Run(context.Background(), methods)
	require.NoError(t, err)
	return &format.Class{Name: name, Source: "test.jar", Results: results}
}

func textView(t *testing.T) *format.Class {
	return compileClass(t, "android.widget.TextView", []signature.RawMethodFacts{
		{
			Class: "android.widget.TextView", Name: "setText",
			Descriptor: "(Ljava/lang/CharSequence;)V", Access: classfile.AccPublic | classfile.AccFinal,
			LocalVariables: map[int]string{1: "text"},
		},
		{
			Class: "android.widget.TextView", Name: "getItems",
			Descriptor: "()Ljava/util/List;", Signature: "<T:Ljava/lang/CharSequence;>()Ljava/util/List<TT;>;",
			Access: classfile.AccPublic | classfile.AccAbstract,
		},
		{
			Class: "android.widget.TextView", Name: "broken",
			Descriptor: "(X)V", Access: classfile.AccPrivate,
		},
	})
}

func TestKind(t *testing.T) {
	tests := []struct {
		name, desc string
		want       string
	}{
		{"<init>", "()V", "constructor"},
		{"<clinit>", "()V", "initializer"},
		{"getText", "()Ljava/lang/CharSequence;", "getter"},
		{"setOnClickListener", "(Landroid/view/View$OnClickListener;)V", "listener"},
		{"setText", "(Ljava/lang/CharSequence;)V", "setter"},
		{"invalidate", "()V", "method"},
	}
	for _, tt := range tests {
		m := &signature.RawMethodFacts{Name: tt.name, Descriptor: tt.desc, Access: classfile.AccPublic}
		assert.Equal(t, tt.want, format.Kind(m), tt.name)
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.NewLineEncoder(&buf).Encode(textView(t)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "class\tandroid.widget.TextView\ttest.jar", lines[0])
	assert.Equal(t, "method\tsetter\tsetText\t(text: kotlin.CharSequence)\tkotlin.Unit\tpublic final", lines[1])
	assert.Equal(t, "method\tgetter\t<T : kotlin.CharSequence> getItems\t()\tkotlin.collections.List<T>\tpublic abstract", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "error\tbroken(X)V\t"), lines[3])
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.NewJSONEncoder(&buf).Encode(textView(t)))

	var decoded struct {
		Name    string `json:"name"`
		Methods []struct {
			Name      string   `json:"name"`
			Kind      string   `json:"kind"`
			Modifiers []string `json:"modifiers"`
			Signature *struct {
				Parameters []struct {
					Name string `json:"name"`
					Type struct {
						Name string `json:"name"`
					} `json:"type"`
				} `json:"parameters"`
			} `json:"signature"`
			Error string `json:"error"`
		} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "android.widget.TextView", decoded.Name)
	require.Len(t, decoded.Methods, 3)
	assert.Equal(t, "setter", decoded.Methods[0].Kind)
	assert.Equal(t, []string{"public", "final"}, decoded.Methods[0].Modifiers)
	require.NotNil(t, decoded.Methods[0].Signature)
	assert.Equal(t, "text", decoded.Methods[0].Signature.Parameters[0].Name)
	assert.Equal(t, "kotlin.CharSequence", decoded.Methods[0].Signature.Parameters[0].Type.Name)
	assert.Nil(t, decoded.Methods[2].Signature)
	assert.Contains(t, decoded.Methods[2].Error, "broken")
}

func TestLayoutParamsEncoder(t *testing.T) {
	class := compileClass(t, "android.widget.LinearLayout.LayoutParams", []signature.RawMethodFacts{
		{
			Class: "android.widget.LinearLayout.LayoutParams", Name: "<init>",
			Descriptor: "(IIF)V", Access: classfile.AccPublic,
			LocalVariables: map[int]string{1: "w", 2: "h", 3: "weight"},
		},
		{
			Class: "android.widget.LinearLayout.LayoutParams", Name: "<init>",
			Descriptor: "(Landroid/view/ViewGroup$LayoutParams;)V", Access: classfile.AccPublic,
			LocalVariables: map[int]string{1: "source"},
		},
		{
			Class: "android.widget.LinearLayout.LayoutParams", Name: "debug",
			Descriptor: "(Ljava/lang/String;)Ljava/lang/String;", Access: classfile.AccPublic,
		},
	})

	var buf bytes.Buffer
	enc := format.NewLayoutParamsEncoder(&buf)
	enc.Render = format.ShortKotlinNames
	require.NoError(t, enc.Encode(class))

	want := "fun <T : android.view.View> T.lparams(width: Int = " + signature.WrapContent +
		", height: Int = " + signature.WrapContent + ", weight: Float): T {\n" +
		"    val layoutParams = android.widget.LinearLayout.LayoutParams(width, height, weight)\n" +
		"    this.layoutParams = layoutParams\n" +
		"    return this\n" +
		"}\n\n" +
		"fun <T : android.view.View> T.lparams(source: android.view.ViewGroup.LayoutParams): T {\n" +
		"    val layoutParams = android.widget.LinearLayout.LayoutParams(source)\n" +
		"    this.layoutParams = layoutParams\n" +
		"    return this\n" +
		"}\n\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, format.NewLayoutParamsEncoder(&buf).Encode(textView(t)))
	assert.Empty(t, buf.String())
}

func TestShortKotlinNames(t *testing.T) {
	ref := signature.TypeRef{
		Name:     "kotlin.collections.Map",
		Nullable: true,
		Arguments: []signature.TypeRef{
			{Name: "kotlin.String"},
			{Name: "kotlin.collections.Map.Entry"},
			{Name: "android.view.View", Variance: signature.Covariant},
		},
	}
	assert.Equal(t, "Map<String, kotlin.collections.Map.Entry, out android.view.View>?", format.ShortKotlinNames(ref))
}

func viewBounds(t *testing.T) *format.Class {
	return compileClass(t, "android.view.View", []signature.RawMethodFacts{
		{
			Class: "android.view.View", Name: "layout",
			Descriptor: "(IZLjava/lang/String;)V", Access: classfile.AccPublic,
			LocalVariables: map[int]string{1: "size", 2: "changed", 3: "label"},
		},
		{
			Class: "android.view.View", Name: "describe",
			Descriptor: "(Ljava/lang/String;[Ljava/lang/Object;)Ljava/lang/String;",
			Access:     classfile.AccPublic | classfile.AccStatic | classfile.AccVarargs,
		},
	})
}

func TestLineEncoderWithDefaults(t *testing.T) {
	tests := []struct {
		name           string
		primitivesOnly bool
		want           string
	}{
		{"primitives only", true, "(size: kotlin.Int = 0, changed: kotlin.Boolean = false, label: kotlin.String)"},
		{"all types", false, "(size: kotlin.Int = 0, changed: kotlin.Boolean = false, label: kotlin.String = kotlin.String())"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := format.NewLineEncoder(&buf)
			enc.Arguments = format.ArgumentsWithDefaults(tt.primitivesOnly)
			require.NoError(t, enc.Encode(viewBounds(t)))

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, "method\tmethod\tlayout\t"+tt.want+"\tkotlin.Unit\tpublic", lines[1])
			assert.True(t, strings.HasSuffix(lines[2], "\tpublic static varargs"), lines[2])
		})
	}
}

func TestJSONEncoderArguments(t *testing.T) {
	var buf bytes.Buffer
	enc := format.NewJSONEncoder(&buf)
	enc.Arguments = format.ArgumentsWithDefaults(true)
	require.NoError(t, enc.Encode(viewBounds(t)))

	var decoded struct {
		Methods []struct {
			Arguments string   `json:"arguments"`
			Modifiers []string `json:"modifiers"`
		} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Methods, 2)
	assert.Equal(t, "size: kotlin.Int = 0, changed: kotlin.Boolean = false, label: kotlin.String", decoded.Methods[0].Arguments)
	assert.Equal(t, []string{"public", "static", "varargs"}, decoded.Methods[1].Modifiers)

	buf.Reset()
	require.NoError(t, format.NewJSONEncoder(&buf).Encode(viewBounds(t)))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "size: kotlin.Int, changed: kotlin.Boolean, label: kotlin.String", decoded.Methods[0].Arguments)
}
