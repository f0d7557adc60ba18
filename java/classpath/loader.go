// Package classpath supplies class declarations to a symbols.Session
// from memory, class directories and jar files.
package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/java/symbols"
)

var log = commonlog.GetLogger("javafront.classpath")

func notFound(binaryName string) error {
	return fmt.Errorf("%s: %w", binaryName, symbols.ErrClassNotFound)
}

// MapLoader serves declarations registered in memory.
type MapLoader struct {
	mu    sync.RWMutex
	decls map[string]*symbols.Declaration
}

func NewMapLoader(decls ...*symbols.Declaration) *MapLoader {
	m := &MapLoader{decls: map[string]*symbols.Declaration{}}
	for _, d := range decls {
		m.Add(d)
	}
	return m
}

// Add registers decl under its binary name, replacing any earlier one.
func (m *MapLoader) Add(decl *symbols.Declaration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decls[decl.BinaryName] = decl
}

func (m *MapLoader) Load(binaryName string) (*symbols.Declaration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.decls[binaryName]; ok {
		return d, nil
	}
	return nil, notFound(binaryName)
}

func (m *MapLoader) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.decls))
	for name := range m.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *MapLoader) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("memory (%d classes)", len(m.decls))
}

func decode(r io.Reader, binaryName, origin string) (*symbols.Declaration, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	if cf.Name != binaryName {
		return nil, fmt.Errorf("%s: %w: declares %s, want %s", origin, classfile.ErrMalformed, cf.Name, binaryName)
	}
	return DeclarationFromClassFile(cf)
}

// DirLoader serves class files below a directory, one file per class:
// a.b.C$D lives at a/b/C$D.class.
type DirLoader struct {
	fs   afero.Fs
	root string
}

func NewDirLoader(fs afero.Fs, root string) *DirLoader {
	return &DirLoader{fs: fs, root: root}
}

func (d *DirLoader) path(binaryName string) string {
	return filepath.Join(d.root, filepath.FromSlash(classfile.InternalName(binaryName))+".class")
}

func (d *DirLoader) Load(binaryName string) (*symbols.Declaration, error) {
	p := d.path(binaryName)
	f, err := d.fs.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, notFound(binaryName)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, binaryName, p)
}

// Names lists the binary names of the class files below the root.
func (d *DirLoader) Names() ([]string, error) {
	var names []string
	err := afero.Walk(d.fs, d.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(p, ".class") {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		if name, ok := entryName(filepath.ToSlash(rel)); ok {
			names = append(names, name)
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

func (d *DirLoader) String() string { return d.root }

// entryName maps a slash-separated class file path to a binary name.
// Metadata and module descriptors are not classes.
func entryName(p string) (string, bool) {
	internal, ok := strings.CutSuffix(p, ".class")
	if !ok || strings.HasPrefix(internal, "META-INF/") {
		return "", false
	}
	if base := internal[strings.LastIndexByte(internal, '/')+1:]; base == "module-info" || base == "package-info" {
		return "", false
	}
	return classfile.BinaryName(internal), true
}

// JarLoader serves the class entries of a jar. The central directory is
// read on first use and the file stays open until Close.
type JarLoader struct {
	fs   afero.Fs
	path string

	once    sync.Once
	file    afero.File
	entries map[string]*zip.File
	err     error
}

func NewJarLoader(fs afero.Fs, path string) *JarLoader {
	return &JarLoader{fs: fs, path: path}
}

func (j *JarLoader) index() error {
	j.once.Do(func() {
		f, err := j.fs.Open(j.path)
		if err != nil {
			j.err = err
			return
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			j.err = err
			return
		}
		zr, err := zip.NewReader(f, info.Size())
		if err != nil {
			f.Close()
			j.err = fmt.Errorf("%s: %w", j.path, err)
			return
		}
		j.file = f
		j.entries = map[string]*zip.File{}
		for _, entry := range zr.File {
			if name, ok := entryName(entry.Name); ok {
				j.entries[name] = entry
			}
		}
		log.Debugf("indexed %s: %d classes", j.path, len(j.entries))
	})
	return j.err
}

func (j *JarLoader) Load(binaryName string) (*symbols.Declaration, error) {
	if err := j.index(); err != nil {
		return nil, err
	}
	entry, ok := j.entries[binaryName]
	if !ok {
		return nil, notFound(binaryName)
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%s!%s: %w", j.path, entry.Name, err)
	}
	defer rc.Close()
	return decode(rc, binaryName, j.path+"!"+entry.Name)
}

func (j *JarLoader) Names() ([]string, error) {
	if err := j.index(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(j.entries))
	for name := range j.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (j *JarLoader) Close() error {
	if j.file == nil {
		return nil
	}
	return j.file.Close()
}

func (j *JarLoader) String() string { return j.path }
