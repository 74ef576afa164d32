// Package loader turns class files into the method facts signature.Compiler
// consumes.
package loader

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sigkit/classfile"
	"github.com/dhamidi/sigkit/signature"
)

var log = commonlog.GetLogger("sigkit.loader")

// Class is one loaded class file.
type Class struct {
	// Name is the dot-separated qualified name, nested classes included.
	Name string
	// Source is the file or archive entry the class came from.
	Source  string
	Access  classfile.AccessFlags
	Methods []signature.RawMethodFacts
}

// FromClassFile extracts the facts of every method declared in cf, in
// declaration order.
func FromClassFile(cf *classfile.ClassFile) []signature.RawMethodFacts {
	className := classfile.InternalToQualifiedName(cf.ClassName())
	cp := cf.ConstantPool

	methods := make([]signature.RawMethodFacts, 0, len(cf.Methods))
	for i := range cf.Methods {
		m := &cf.Methods[i]
		facts := signature.RawMethodFacts{
			Class:                className,
			Name:                 m.Name(cp),
			Descriptor:           m.Descriptor(cp),
			Signature:            m.Signature(),
			Access:               m.AccessFlags,
			ParameterAnnotations: m.ParameterAnnotations(),
			Annotations:          m.Annotations(),
		}
		facts.LocalVariables = localVariables(m, cp)
		methods = append(methods, facts)
	}
	return methods
}

// localVariables maps parameter slots to names. Only variables live from the
// first instruction can be parameters. Without a LocalVariableTable the
// MethodParameters attribute is placed onto the slots the descriptor implies.
func localVariables(m *classfile.MemberInfo, cp classfile.ConstantPool) map[int]string {
	var vars map[int]string
	for _, lv := range m.LocalVariables() {
		if lv.StartPC != 0 || lv.Name == "" {
			continue
		}
		if vars == nil {
			vars = make(map[int]string)
		}
		vars[int(lv.Index)] = lv.Name
	}
	if vars != nil {
		return vars
	}

	params := m.MethodParameters()
	if len(params) == 0 {
		return nil
	}
	md, err := m.ParsedDescriptor(cp)
	if err != nil {
		return nil
	}
	// Implicit leading parameters are not always listed; align from the end.
	offset := md.Arity() - len(params)
	if offset < 0 {
		return nil
	}

	vars = make(map[int]string, len(params))
	slot := 1
	if m.IsStatic() {
		slot = 0
	}
	for i, p := range md.Parameters {
		if i >= offset && params[i-offset].Name != "" {
			vars[slot] = params[i-offset].Name
		}
		slot += p.Size()
	}
	return vars
}

// LoadClass parses one class file's bytes.
func LoadClass(source string, data []byte) (*Class, error) {
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return newClass(source, cf), nil
}

// LoadClassFile parses the class file at path.
func LoadClassFile(path string) (*Class, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return newClass(path, cf), nil
}

func newClass(source string, cf *classfile.ClassFile) *Class {
	return &Class{
		Name:    classfile.InternalToQualifiedName(cf.ClassName()),
		Source:  source,
		Access:  cf.AccessFlags,
		Methods: FromClassFile(cf),
	}
}

// Load reads a .class file, a .jar or .zip archive (including jars nested
// one level inside it) or a directory tree of those. Classes that fail to
// parse are skipped; their errors are joined into the returned error next
// to the classes that did load.
func Load(path string) ([]*Class, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var l batch
	if info.IsDir() {
		l.directory(path)
	} else {
		switch ext := filepath.Ext(path); ext {
		case ".class":
			l.file(path)
		case ".jar", ".zip":
			l.archiveFile(path)
		default:
			return nil, fmt.Errorf("unsupported file type: %s", ext)
		}
	}

	sort.SliceStable(l.classes, func(i, j int) bool {
		return l.classes[i].Name < l.classes[j].Name
	})
	return l.classes, errors.Join(l.errs...)
}

type batch struct {
	classes []*Class
	errs    []error
}

func (l *batch) add(class *Class, err error) {
	if err != nil {
		l.fail(err)
		return
	}
	l.classes = append(l.classes, class)
}

func (l *batch) fail(err error) {
	log.Warningf("%s", err)
	l.errs = append(l.errs, err)
}

func (l *batch) file(path string) {
	l.add(LoadClassFile(path))
}

func (l *batch) directory(root string) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			l.fail(fmt.Errorf("walk %s: %w", p, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(p) {
		case ".class":
			l.file(p)
		case ".jar":
			l.archiveFile(p)
		}
		return nil
	})
	if err != nil {
		l.fail(fmt.Errorf("walk %s: %w", root, err))
	}
}

func (l *batch) archiveFile(path string) {
	r, err := zip.OpenReader(path)
	if err != nil {
		l.fail(fmt.Errorf("open zip: %w", err))
		return
	}
	defer r.Close()
	l.archive(path, &r.Reader, true)
}

func (l *batch) archive(name string, r *zip.Reader, nested bool) {
	log.Debugf("reading %s (%d entries)", name, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name)
		if ext != ".class" && !(nested && ext == ".jar") {
			continue
		}

		source := name + "!" + f.Name
		data, err := readEntry(f)
		if err != nil {
			l.fail(fmt.Errorf("read %s: %w", source, err))
			continue
		}

		if ext == ".class" {
			l.add(LoadClass(source, data))
			continue
		}
		inner, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			l.fail(fmt.Errorf("open nested jar %s: %w", source, err))
			continue
		}
		l.archive(source, inner, false)
	}
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
