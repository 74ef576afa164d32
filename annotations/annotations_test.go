package annotations_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sigkit/annotations"
	"github.com/dhamidi/sigkit/signature"
)

const textViewXML = `<root>
  <item name="android.widget.TextView void setText(java.lang.CharSequence) 0">
    <annotation name="org.jetbrains.annotations.Nullable"/>
  </item>
  <item name="android.widget.TextView java.lang.CharSequence getText()">
    <annotation name="org.jetbrains.annotations.NotNull"/>
  </item>
  <item name="android.widget.TextView TextView(android.content.Context) 0">
    <annotation name="androidx.annotation.NonNull"/>
  </item>
  <item name="android.widget.TextView void addTextChangedListener(java.util.List&lt;android.text.TextWatcher&gt;) 0">
    <annotation name="org.jetbrains.annotations.NotNull"/>
  </item>
</root>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestParse(t *testing.T) {
	items, err := annotations.Parse(strings.NewReader(textViewXML))
	require.NoError(t, err)

	assert.Equal(t, []string{"org.jetbrains.annotations.Nullable"},
		items["android.widget.TextView void setText(java.lang.CharSequence) 0"])
	assert.Equal(t, []string{"org.jetbrains.annotations.NotNull"},
		items["android.widget.TextView void addTextChangedListener(java.util.List) 0"])
}

func TestParseMalformed(t *testing.T) {
	_, err := annotations.Parse(strings.NewReader("<root><item name="))
	assert.Error(t, err)
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a.B void m(int) 0", "a.B void m(int) 0"},
		{"java.util.Map<K,V> java.util.Set<java.util.Map.Entry<K,V>> entrySet()", "java.util.Map java.util.Set entrySet()"},
		{"a.B void format(java.lang.Object...) 0", "a.B void format(java.lang.Object[]) 0"},
		{"a.B <T> void put(java.lang.Object) 0", "a.B void put(java.lang.Object) 0"},
		{"a.B <T extends java.lang.Number> T  first(T[])", "a.B T first(T[])"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, annotations.NormalizeKey(tt.in))
	}
}

func TestDirectoryProvider(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "android", "widget", annotations.FileName), textViewXML)
	p := annotations.NewDirectoryProvider(root)

	items, err := p.Annotations("android.widget")
	require.NoError(t, err)
	assert.Len(t, items, 4)

	items, err = p.Annotations("android.view")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDirectoryProviderMalformed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "android", "widget", annotations.FileName), "<root>")

	_, err := annotations.NewDirectoryProvider(root).Annotations("android.widget")
	assert.Error(t, err)
}

func TestZipProvider(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "sdk-annotations.jar")
	writeZip(t, archive, map[string]string{
		"android/widget/" + annotations.FileName: textViewXML,
	})
	p := annotations.NewZipProvider(archive)

	items, err := p.Annotations("android.widget")
	require.NoError(t, err)
	assert.Len(t, items, 4)

	items, err = p.Annotations("android.app")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = annotations.NewZipProvider(filepath.Join(t.TempDir(), "missing.jar")).Annotations("android.widget")
	require.NoError(t, err)
	assert.Empty(t, items)
}

type countingProvider struct {
	calls map[string]int
	items map[string][]string
}

func (p *countingProvider) Annotations(pkg string) (map[string][]string, error) {
	p.calls[pkg]++
	return p.items, nil
}

func TestCachingProvider(t *testing.T) {
	inner := &countingProvider{calls: map[string]int{}, items: map[string][]string{"k": {"a"}}}
	p := annotations.NewCachingProvider(inner)

	for range 3 {
		items, err := p.Annotations("android.widget")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, items["k"])
	}
	_, _ = p.Annotations("android.view")

	assert.Equal(t, map[string]int{"android.widget": 1, "android.view": 1}, inner.calls)
}

func TestCompoundProvider(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dir", "android", "widget", annotations.FileName), `<root>
  <item name="android.widget.TextView void setText(java.lang.CharSequence) 0">
    <annotation name="org.jetbrains.annotations.NotNull"/>
  </item>
</root>`)
	writeFile(t, filepath.Join(root, "broken", "android", "widget", annotations.FileName), "not xml")
	archive := filepath.Join(root, "sdk.jar")
	writeZip(t, archive, map[string]string{"android/widget/" + annotations.FileName: textViewXML})

	p := annotations.NewCompoundProvider(
		annotations.NewZipProvider(archive),
		annotations.NewDirectoryProvider(filepath.Join(root, "broken")),
		annotations.NewDirectoryProvider(filepath.Join(root, "dir")),
	)

	items, err := p.Annotations("android.widget")
	assert.Error(t, err)
	assert.Equal(t, []string{
		"org.jetbrains.annotations.Nullable",
		"org.jetbrains.annotations.NotNull",
	}, items["android.widget.TextView void setText(java.lang.CharSequence) 0"])
}

func TestItemKey(t *testing.T) {
	tests := []struct {
		name  string
		ref   signature.MethodRef
		index int
		want  string
	}{
		{
			name:  "parameter",
			ref:   signature.MethodRef{Class: "android.widget.TextView", Name: "setText", Descriptor: "(Ljava/lang/CharSequence;)V"},
			index: 0,
			want:  "android.widget.TextView void setText(java.lang.CharSequence) 0",
		},
		{
			name:  "return",
			ref:   signature.MethodRef{Class: "android.widget.TextView", Name: "getText", Descriptor: "()Ljava/lang/CharSequence;"},
			index: signature.ReturnIndex,
			want:  "android.widget.TextView java.lang.CharSequence getText()",
		},
		{
			name:  "several parameters",
			ref:   signature.MethodRef{Class: "android.view.View", Name: "layout", Descriptor: "(II[JLandroid/view/View$OnClickListener;)Z"},
			index: 3,
			want:  "android.view.View boolean layout(int, int, long[], android.view.View.OnClickListener) 3",
		},
		{
			name:  "constructor",
			ref:   signature.MethodRef{Class: "android.widget.LinearLayout.LayoutParams", Name: "<init>", Descriptor: "(II)V"},
			index: 1,
			want:  "android.widget.LinearLayout.LayoutParams LayoutParams(int, int) 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := annotations.ItemKey(tt.ref, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := annotations.ItemKey(signature.MethodRef{Descriptor: "(Q)V"}, 0)
	assert.Error(t, err)
}

func TestPackageOf(t *testing.T) {
	assert.Equal(t, "android.widget", annotations.PackageOf("android.widget.TextView"))
	assert.Equal(t, "android.widget", annotations.PackageOf("android.widget.LinearLayout.LayoutParams"))
	assert.Equal(t, "", annotations.PackageOf("Toplevel"))
	assert.Equal(t, "com.example", annotations.PackageOf("com.example.lowercase"))
}

func TestManagerQuery(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "android", "widget", annotations.FileName), textViewXML)
	m := annotations.NewManager(annotations.NewCachingProvider(annotations.NewDirectoryProvider(root)))

	setText := signature.MethodRef{Class: "android.widget.TextView", Name: "setText", Descriptor: "(Ljava/lang/CharSequence;)V"}
	getText := signature.MethodRef{Class: "android.widget.TextView", Name: "getText", Descriptor: "()Ljava/lang/CharSequence;"}
	ctor := signature.MethodRef{Class: "android.widget.TextView", Name: "<init>", Descriptor: "(Landroid/content/Context;)V"}

	assert.Equal(t, signature.Nullable, m.Query(setText, 0))
	assert.Equal(t, signature.NullabilityUnknown, m.Query(setText, signature.ReturnIndex))
	assert.Equal(t, signature.NotNull, m.Query(getText, signature.ReturnIndex))
	assert.Equal(t, signature.NotNull, m.Query(ctor, 0))
	assert.Equal(t, signature.NullabilityUnknown,
		m.Query(signature.MethodRef{Class: "android.app.Activity", Name: "finish", Descriptor: "()V"}, signature.ReturnIndex))
}

func TestManagerQueryGenericMethod(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "android", "widget", annotations.FileName), `<root>
  <item name="android.widget.AdapterView &lt;T&gt; void setTag(java.lang.Object) 0">
    <annotation name="org.jetbrains.annotations.Nullable"/>
  </item>
  <item name="android.widget.AdapterView &lt;T&gt; T getItem(int)">
    <annotation name="org.jetbrains.annotations.NotNull"/>
  </item>
</root>`)
	m := annotations.NewManager(annotations.NewDirectoryProvider(root))

	setTag := signature.MethodRef{Class: "android.widget.AdapterView", Name: "setTag", Descriptor: "(Ljava/lang/Object;)V"}
	assert.Equal(t, signature.Nullable, m.Query(setTag, 0))

	// Keys spelling a type variable do not match the erased descriptor.
	getItem := signature.MethodRef{Class: "android.widget.AdapterView", Name: "getItem", Descriptor: "(I)Ljava/lang/Object;"}
	assert.Equal(t, signature.NullabilityUnknown, m.Query(getItem, signature.ReturnIndex))
}

func TestManagerFeedsCompiler(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "android", "widget", annotations.FileName), textViewXML)
	c := signature.NewCompiler(signature.WithAnnotationEvidence(
		annotations.NewManager(annotations.NewDirectoryProvider(root))))

	sig, err := c.Compile(&signature.RawMethodFacts{
		Class:          "android.widget.TextView",
		Name:           "setText",
		Descriptor:     "(Ljava/lang/CharSequence;)V",
		LocalVariables: map[int]string{1: "text"},
	})
	require.NoError(t, err)
	assert.Equal(t, "text: kotlin.CharSequence?", sig.FormatArguments())
}
