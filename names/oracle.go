// Package names provides parameter name sources for signature.Compiler.
package names

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sigkit/signature"
)

var (
	_ signature.NameOracle = (*FileOracle)(nil)
	_ signature.NameOracle = (*CachingOracle)(nil)
	_ signature.NameOracle = EmptyOracle{}
)

// File is the on-disk format of a FileOracle:
//
//	classes:
//	  android.view.View:
//	    setPadding(int, int, int, int): [left, top, right, bottom]
//	    "<init>(android.content.Context)": [context]
//
// A method may also be listed by its bare name, which then applies to every
// overload.
type File struct {
	Classes map[string]map[string][]string `yaml:"classes"`
}

// MethodKey renders the lookup key for a method and its Java parameter types.
func MethodKey(method string, javaTypes []string) string {
	return method + "(" + strings.Join(javaTypes, ", ") + ")"
}

// FileOracle answers from a names file loaded into memory.
type FileOracle struct {
	classes map[string]map[string][]string
}

func NewFileOracle(f File) *FileOracle {
	return &FileOracle{classes: f.Classes}
}

// LoadFile reads a YAML names file.
func LoadFile(path string) (*FileOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse names file %s: %w", path, err)
	}
	return NewFileOracle(f), nil
}

func (o *FileOracle) LookupParameterNames(class, method string, javaTypes []string) []string {
	methods, ok := o.classes[class]
	if !ok {
		return nil
	}
	if names, ok := methods[MethodKey(method, javaTypes)]; ok {
		return names
	}
	return methods[method]
}

// EmptyOracle knows no names.
type EmptyOracle struct{}

func (EmptyOracle) LookupParameterNames(string, string, []string) []string { return nil }

// CachingOracle memoizes another oracle. It is safe for concurrent use.
type CachingOracle struct {
	oracle signature.NameOracle
	cache  sync.Map
}

func NewCachingOracle(o signature.NameOracle) *CachingOracle {
	return &CachingOracle{oracle: o}
}

func (o *CachingOracle) LookupParameterNames(class, method string, javaTypes []string) []string {
	key := class + " " + MethodKey(method, javaTypes)
	if names, ok := o.cache.Load(key); ok {
		return names.([]string)
	}
	names := o.oracle.LookupParameterNames(class, method, javaTypes)
	actual, _ := o.cache.LoadOrStore(key, names)
	return actual.([]string)
}
