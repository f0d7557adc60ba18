package symbols

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"
)

var log = commonlog.GetLogger("javafront.symbols")

// Session is one resolution run over a loader. It caches a symbol per
// requested name for its whole lifetime; use a new Session when the
// classpath changes.
//
// A loaded class is also cached under its binary and canonical names,
// so every spelling of it yields the same symbol.
//
// Resolve is safe for concurrent use. Concurrent requests for the same
// name share one lookup and observe the same symbol.
type Session struct {
	loader  Loader
	factory *UnresolvedFactory

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]ClassSymbol
}

// NewSession resolves against loader. A nil loader resolves nothing.
func NewSession(loader Loader) *Session {
	if loader == nil {
		loader = LoaderFunc(func(string) (*Declaration, error) { return nil, ErrClassNotFound })
	}
	return &Session{
		loader:  loader,
		factory: &UnresolvedFactory{},
		cache:   map[string]ClassSymbol{},
	}
}

// Factory is the placeholder factory backing the session.
func (s *Session) Factory() *UnresolvedFactory { return s.factory }

func (s *Session) cached(name string) (ClassSymbol, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sym, ok := s.cache[name]
	return sym, ok
}

// Len is the number of names cached so far, the binary and canonical
// names of loaded classes included.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Resolve returns the symbol for a canonical or binary class name.
// Array names end in "[]". Resolve never fails: names the loader cannot
// supply, and malformed names, yield an UnresolvedClass of arity zero.
func (s *Session) Resolve(name string) ClassSymbol {
	if sym, ok := s.cached(name); ok {
		return sym
	}

	v, _, _ := s.group.Do(name, func() (any, error) {
		if sym, ok := s.cached(name); ok {
			return sym, nil
		}
		sym := s.lookup(name)
		s.mu.Lock()
		s.cache[name] = sym
		s.mu.Unlock()
		return sym, nil
	})
	return v.(ClassSymbol)
}

func (s *Session) lookup(name string) ClassSymbol {
	if component, ok := strings.CutSuffix(name, "[]"); ok && component != "" {
		return NewArrayClass(s.Resolve(component))
	}
	if !wellFormed(name) {
		log.Debugf("malformed class name %q", name)
		return s.factory.MakeUnresolvedReference(name, 0)
	}

	for i, candidate := range binaryCandidates(name) {
		if i > 0 {
			if sym, ok := s.cached(candidate); ok && !sym.IsUnresolved() {
				return sym
			}
		}
		decl, err := s.loader.Load(candidate)
		if err == nil {
			return s.publish(decl)
		}
		if !errors.Is(err, ErrClassNotFound) {
			log.Warningf("loading %s: %s", candidate, err)
		}
	}

	log.Debugf("unresolved class %s", name)
	return s.factory.MakeUnresolvedReference(name, 0)
}

// publish returns the symbol for decl, reusing the one already cached
// under its binary or canonical name, and caches it under both.
func (s *Session) publish(decl *Declaration) ClassSymbol {
	keys := []string{decl.BinaryName}
	if decl.CanonicalName != "" && decl.CanonicalName != decl.BinaryName {
		keys = append(keys, decl.CanonicalName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var sym ClassSymbol
	for _, key := range keys {
		if existing, ok := s.cache[key]; ok && !existing.IsUnresolved() {
			sym = existing
			break
		}
	}
	if sym == nil {
		sym = NewResolvedClass(decl)
	}
	for _, key := range keys {
		if _, ok := s.cache[key]; !ok {
			s.cache[key] = sym
		}
	}
	return sym
}

// binaryCandidates lists the binary names name may denote, from the
// name itself to every dot but the first segment's turned into '$':
// java.util.Map.Entry, java.util.Map$Entry, java.util$Map$Entry.
func binaryCandidates(name string) []string {
	candidates := []string{name}
	for {
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return candidates
		}
		name = name[:i] + "$" + name[i+1:]
		if strings.IndexByte(name, '.') < 0 {
			return candidates
		}
		candidates = append(candidates, name)
	}
}

// wellFormed accepts dot-separated Java identifiers, '$' included.
func wellFormed(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if segment == "" {
			return false
		}
		for i, r := range segment {
			switch {
			case r == '_' || r == '$' || unicode.IsLetter(r):
			case i > 0 && unicode.IsDigit(r):
			default:
				return false
			}
		}
	}
	return true
}
