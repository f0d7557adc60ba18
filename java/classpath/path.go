package classpath

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dhamidi/javafront/java/symbols"
)

// Path is an ordered chain of loaders. The first loader that has a
// class wins.
type Path struct {
	loaders []symbols.Loader
}

func NewPathOf(loaders ...symbols.Loader) *Path {
	return &Path{loaders: loaders}
}

// NewPath builds a chain from classpath entries: directories become
// DirLoaders, .jar and .zip files JarLoaders. Missing entries are
// skipped with a warning, as the JVM does.
func NewPath(fs afero.Fs, entries []string) (*Path, error) {
	p := &Path{}
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		isDir, err := afero.IsDir(fs, entry)
		if err != nil {
			if exists, _ := afero.Exists(fs, entry); !exists {
				log.Warningf("skipping missing classpath entry %s", entry)
				continue
			}
			return nil, fmt.Errorf("classpath entry %s: %w", entry, err)
		}
		switch ext := strings.ToLower(filepath.Ext(entry)); {
		case isDir:
			p.loaders = append(p.loaders, NewDirLoader(fs, entry))
		case ext == ".jar" || ext == ".zip":
			p.loaders = append(p.loaders, NewJarLoader(fs, entry))
		default:
			log.Warningf("skipping classpath entry %s: not a directory or jar", entry)
		}
	}
	return p, nil
}

// SplitList splits a classpath string on the OS list separator.
func SplitList(classpath string) []string {
	return filepath.SplitList(classpath)
}

func (p *Path) Loaders() []symbols.Loader { return p.loaders }

// Load asks each loader in turn. ErrClassNotFound moves on to the next
// loader; any other failure is remembered and returned only when no
// later loader has the class.
func (p *Path) Load(binaryName string) (*symbols.Declaration, error) {
	var failure error
	for _, loader := range p.loaders {
		decl, err := loader.Load(binaryName)
		if err == nil {
			return decl, nil
		}
		if errors.Is(err, symbols.ErrClassNotFound) {
			continue
		}
		log.Warningf("%s: %s", loader, err)
		if failure == nil {
			failure = err
		}
	}
	if failure != nil {
		return nil, failure
	}
	return nil, notFound(binaryName)
}

// Names lists every class available on the path in path order. A name
// shadowed by an earlier entry is listed once.
func (p *Path) Names() ([]string, error) {
	type lister interface{ Names() ([]string, error) }

	seen := map[string]bool{}
	var out []string
	for _, loader := range p.loaders {
		var names []string
		var err error
		switch l := loader.(type) {
		case lister:
			names, err = l.Names()
		case *MapLoader:
			names = l.Names()
		default:
			continue
		}
		if err != nil {
			return out, err
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func (p *Path) Close() error {
	var errs []error
	for _, loader := range p.loaders {
		if c, ok := loader.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
