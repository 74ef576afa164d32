// Package annotations reads external nullability annotations in the
// annotations.xml format used by IntelliJ and the Android SDK.
package annotations

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// FileName is the name of the annotation file inside each package directory.
const FileName = "annotations.xml"

type Root struct {
	XMLName xml.Name `xml:"root"`
	Items   []Item   `xml:"item"`
}

type Item struct {
	Name        string       `xml:"name,attr"`
	Annotations []Annotation `xml:"annotation"`
}

type Annotation struct {
	Name string `xml:"name,attr"`
}

// Parse reads one annotations.xml document and returns the annotation names
// per item key. Keys are normalized with NormalizeKey.
func Parse(r io.Reader) (map[string][]string, error) {
	var root Root
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	items := make(map[string][]string, len(root.Items))
	for _, item := range root.Items {
		key := NormalizeKey(item.Name)
		for _, a := range item.Annotations {
			items[key] = append(items[key], a.Name)
		}
	}
	return items, nil
}

// NormalizeKey erases type arguments and rewrites varargs so keys written
// against generic sources match keys computed from descriptors.
//
//	"java.util.List<T> subList(int, int)" -> "java.util.List subList(int, int)"
//	"void format(java.lang.Object...) 0"  -> "void format(java.lang.Object[]) 0"
//	"a.B <T> void put(T) 0"               -> "a.B void put(T) 0"
func NormalizeKey(key string) string {
	if !strings.Contains(key, "<") && !strings.Contains(key, "...") {
		return key
	}

	var sb strings.Builder
	depth := 0
	for _, r := range key {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	// Dropping a method's type parameter section leaves a double space.
	return strings.Join(strings.Fields(strings.ReplaceAll(sb.String(), "...", "[]")), " ")
}
