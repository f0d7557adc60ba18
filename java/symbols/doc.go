// Package symbols maps class names to class symbols.
//
// A Session resolves names against a Loader. Every lookup yields a
// symbol: a ResolvedClass backed by a Declaration, an ArrayClass over
// another symbol, or an UnresolvedClass placeholder standing in for a
// name the loader could not supply. Within one Session the same name
// always yields the same instance.
package symbols
