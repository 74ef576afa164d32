package annotations

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// Provider returns the annotations of one package, keyed by item name. A
// package without annotations yields an empty map and no error.
type Provider interface {
	Annotations(pkg string) (map[string][]string, error)
}

func packagePath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// DirectoryProvider reads <Root>/<package path>/annotations.xml.
type DirectoryProvider struct {
	Root string
}

func NewDirectoryProvider(root string) *DirectoryProvider {
	return &DirectoryProvider{Root: root}
}

func (p *DirectoryProvider) Annotations(pkg string) (map[string][]string, error) {
	file := filepath.Join(p.Root, filepath.FromSlash(packagePath(pkg)), FileName)
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open annotations for %s: %w", pkg, err)
	}
	defer f.Close()

	items, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return items, nil
}

// ZipProvider reads the same layout out of a jar or zip archive.
type ZipProvider struct {
	Path string
}

func NewZipProvider(path string) *ZipProvider {
	return &ZipProvider{Path: path}
}

func (p *ZipProvider) Annotations(pkg string) (map[string][]string, error) {
	r, err := zip.OpenReader(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open annotation archive: %w", err)
	}
	defer r.Close()

	entry := path.Join(packagePath(pkg), FileName)
	f, err := r.Open(entry)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", entry, p.Path, err)
	}
	defer f.Close()

	items, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s!%s: %w", p.Path, entry, err)
	}
	return items, nil
}

type cacheEntry struct {
	items map[string][]string
	err   error
}

// CachingProvider remembers the answer for every package it was asked
// about, errors included.
type CachingProvider struct {
	provider Provider

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewCachingProvider(p Provider) *CachingProvider {
	return &CachingProvider{provider: p, cache: make(map[string]cacheEntry)}
}

func (p *CachingProvider) Annotations(pkg string) (map[string][]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.cache[pkg]; ok {
		return e.items, e.err
	}
	items, err := p.provider.Annotations(pkg)
	p.cache[pkg] = cacheEntry{items: items, err: err}
	return items, err
}

// CompoundProvider merges several providers. For a key present in more than
// one of them, earlier providers' annotations come first. A failing provider
// does not hide the others; its error is returned alongside the merged map.
type CompoundProvider struct {
	providers []Provider
}

func NewCompoundProvider(providers ...Provider) *CompoundProvider {
	return &CompoundProvider{providers: providers}
}

func (p *CompoundProvider) Annotations(pkg string) (map[string][]string, error) {
	merged := make(map[string][]string)
	var errs []error
	for _, provider := range p.providers {
		items, err := provider.Annotations(pkg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for key, names := range items {
			merged[key] = append(merged[key], names...)
		}
	}
	return merged, errors.Join(errs...)
}
