package parser

import "fmt"

// Walk visits n and its descendants depth first, in source order. When
// visit returns false the children of that node are skipped.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, visit)
	}
}

// Find returns every node under root, root included, of the given kind.
func Find(root *Node, kind NodeKind) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Equal reports whether a and b have the same shape: the same kinds,
// children in the same order and the same attributes. Positions and
// parent links are ignored.
func Equal(a, b *Node) bool {
	return Diff(a, b) == ""
}

// Diff describes the first structural difference between a and b, or
// returns "" when they are equal. The difference is located by a path of
// kinds and child indexes, as in "/Annotation/MemberList[1]".
func Diff(a, b *Node) string {
	path := "/"
	if a != nil {
		path += a.Kind.String()
	}
	return diff(a, b, path)
}

func diff(a, b *Node, here string) string {
	if a == nil || b == nil {
		if a == b {
			return ""
		}
		return fmt.Sprintf("%s: one side is nil", here)
	}
	if a.Kind != b.Kind {
		return fmt.Sprintf("%s: kind %s != %s", here, a.Kind, b.Kind)
	}
	aa, ba := a.Attributes(), b.Attributes()
	if len(aa) != len(ba) {
		return fmt.Sprintf("%s: %d attributes != %d", here, len(aa), len(ba))
	}
	for i := range aa {
		if aa[i] != ba[i] {
			return fmt.Sprintf("%s: %s=%q != %s=%q", here, aa[i].Name, aa[i].Value, ba[i].Name, ba[i].Value)
		}
	}
	if len(a.Children) != len(b.Children) {
		return fmt.Sprintf("%s: %d children != %d", here, len(a.Children), len(b.Children))
	}
	for i, child := range a.Children {
		path := fmt.Sprintf("%s/%s[%d]", here, child.Kind, i)
		if d := diff(child, b.Children[i], path); d != "" {
			return d
		}
	}
	return ""
}

// Validate checks the structural invariants every parsed tree satisfies
// and returns the first violation as an *InvariantError.
func Validate(root *Node) error {
	var err error
	Walk(root, func(n *Node) bool {
		if err != nil {
			return false
		}
		err = validateNode(n)
		return err == nil
	})
	return err
}

func validateNode(n *Node) error {
	fail := func(format string, args ...any) error {
		return &InvariantError{Node: n, Message: fmt.Sprintf(format, args...)}
	}

	if n.Kind == KindError {
		return fail("error node in tree")
	}
	for _, c := range n.Children {
		if c.Parent != n {
			return fail("child %s has a stale parent link", c.Kind)
		}
	}
	if n.Kind.RequiresChildren() && len(n.Children) == 0 {
		return fail("must have at least one child")
	}
	if n.ParenDepth < 0 {
		return fail("negative parenthesis depth")
	}
	if n.ParenDepth > 0 && !n.Kind.IsExpression() {
		return fail("only expressions can be parenthesized")
	}

	switch n.Kind {
	case KindLiteral:
		if n.LiteralKind() == LiteralNone {
			return fail("literal without a literal kind")
		}
	case KindAnnotation:
		if n.FirstChildOfKind(KindQualifiedName) == nil {
			return fail("annotation without a name")
		}
	case KindMemberList:
		for i, pair := range n.Children {
			if pair.Kind != KindMemberValuePair {
				return fail("member list contains %s", pair.Kind)
			}
			if pair.IsShorthand() && (i > 0 || len(n.Children) > 1) {
				return fail("shorthand member value must be the only entry")
			}
		}
	case KindMemberValuePair:
		hasName := len(n.Children) == 2 && n.Children[0].Kind == KindIdentifier
		if n.IsShorthand() == hasName {
			return fail("shorthand flag disagrees with the presence of a member name")
		}
	case KindModifiers:
		if !n.Effective.Has(n.Explicit) {
			return fail("effective modifiers %q do not include explicit %q", n.Effective, n.Explicit)
		}
		if bad := n.Effective.conflict(); bad != 0 {
			return fail("conflicting modifiers %q", bad)
		}
	}

	if n.Kind.IsAccessNode() && n.Modifiers() == nil {
		return fail("access node without modifiers")
	}
	return nil
}
