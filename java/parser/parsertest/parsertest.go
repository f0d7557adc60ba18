// Package parsertest runs parser assertions across ranges of language
// levels. Every tree it accepts is also checked against the structural
// invariants of the parser package.
package parsertest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/version"
)

// MustParse parses src in ctx on v, failing the test on any error or
// invariant violation.
func MustParse(t testing.TB, ctx parser.Context, v version.Version, src string) *parser.Node {
	t.Helper()
	node, err := parser.Parse(src, v, ctx)
	require.NoError(t, err, "parsing %s on java %s:\n%s", ctx, v, src)
	require.NotNil(t, node)
	require.NoError(t, parser.Validate(node), "invariants of %s on java %s", ctx, v)
	return node
}

// ParsesIn asserts that src parses in ctx on every version in versions.
// The trees are returned in the order of versions.
func ParsesIn(t *testing.T, ctx parser.Context, versions []version.Version, src string) []*parser.Node {
	t.Helper()
	nodes := make([]*parser.Node, 0, len(versions))
	for _, v := range versions {
		t.Run("java "+v.String(), func(t *testing.T) {
			nodes = append(nodes, MustParse(t, ctx, v, src))
		})
	}
	return nodes
}

// FailsIn asserts that src fails to parse in ctx on every version in
// versions with a grammar failure.
func FailsIn(t *testing.T, ctx parser.Context, versions []version.Version, src string) {
	t.Helper()
	for _, v := range versions {
		t.Run("java "+v.String(), func(t *testing.T) {
			MustFail(t, ctx, v, src)
		})
	}
}

// MustFail parses src in ctx on v and returns the grammar failure.
func MustFail(t testing.TB, ctx parser.Context, v version.Version, src string) *parser.ParseError {
	t.Helper()
	node, err := parser.Parse(src, v, ctx)
	require.Error(t, err, "expected %s to fail on java %s:\n%s", ctx, v, src)
	require.Nil(t, node)
	var parseErr *parser.ParseError
	require.True(t, errors.As(err, &parseErr), "expected a grammar failure, got %T: %v", err, err)
	require.Equal(t, v, parseErr.Version)
	require.Equal(t, ctx.String(), parseErr.Context)
	return parseErr
}

// Since is the versions from v up to the latest, for use with ParsesIn.
func Since(v version.Version) []version.Version {
	return version.Since(v)
}

// Before is every version earlier than v.
func Before(v version.Version) []version.Version {
	if v == version.Earliest {
		return nil
	}
	return version.Range(version.Earliest, v-1)
}

// Except is every version but the given ones.
func Except(vs ...version.Version) []version.Version {
	return version.All().Without(vs...).Versions()
}
