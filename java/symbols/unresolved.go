package symbols

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrNegativeArity = errors.New("negative type parameter count")

// UnresolvedClass is a placeholder for a name no loader could supply.
// It behaves like a top-level class named by its canonical name. Only
// its type parameter count may change after creation.
type UnresolvedClass struct {
	name   string
	params []*TypeParameter
}

func (u *UnresolvedClass) classSymbol() {}

func (u *UnresolvedClass) IsUnresolved() bool     { return true }
func (u *UnresolvedClass) IsClass() bool          { return true }
func (u *UnresolvedClass) IsInterface() bool      { return false }
func (u *UnresolvedClass) IsEnum() bool           { return false }
func (u *UnresolvedClass) IsAnnotation() bool     { return false }
func (u *UnresolvedClass) IsRecord() bool         { return false }
func (u *UnresolvedClass) IsArray() bool          { return false }
func (u *UnresolvedClass) IsAnonymousClass() bool { return false }

func (u *UnresolvedClass) SimpleName() string {
	_, simple := splitPackage(u.name)
	return simple
}

func (u *UnresolvedClass) PackageName() string {
	pkg, _ := splitPackage(u.name)
	return pkg
}

func (u *UnresolvedClass) CanonicalName() string { return u.name }
func (u *UnresolvedClass) BinaryName() string    { return u.name }

func (u *UnresolvedClass) TypeParameterCount() int          { return len(u.params) }
func (u *UnresolvedClass) TypeParameters() []*TypeParameter { return u.params }

// SetTypeParameterCount changes the arity of the placeholder and
// returns its type parameters. Setting the current count returns the
// existing slice untouched. Any other count replaces every parameter
// with a fresh one named T0..Tn-1. A negative count is rejected with
// ErrNegativeArity and leaves the placeholder as it was.
//
// Not safe for concurrent use.
func (u *UnresolvedClass) SetTypeParameterCount(n int) ([]*TypeParameter, error) {
	if n < 0 {
		return u.params, fmt.Errorf("%w: %d for %s", ErrNegativeArity, n, u.name)
	}
	if n == len(u.params) {
		return u.params, nil
	}
	u.params = newTypeParameters(u, syntheticNames(n))
	return u.params, nil
}

func (u *UnresolvedClass) String() string {
	return fmt.Sprintf("unresolved %s/%d", u.name, len(u.params))
}

func syntheticNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("T%d", i)
	}
	return names
}

// UnresolvedFactory creates placeholders. It keeps no per-name state;
// identity per name is the Session's job.
type UnresolvedFactory struct {
	created atomic.Int64
}

// MakeUnresolvedReference creates a placeholder for canonicalName with
// arity synthetic type parameters. A negative arity counts as zero.
func (f *UnresolvedFactory) MakeUnresolvedReference(canonicalName string, arity int) *UnresolvedClass {
	f.created.Add(1)
	u := &UnresolvedClass{name: canonicalName}
	if arity > 0 {
		u.params = newTypeParameters(u, syntheticNames(arity))
	}
	return u
}

// Created reports how many placeholders the factory has made.
func (f *UnresolvedFactory) Created() int64 {
	return f.created.Load()
}
