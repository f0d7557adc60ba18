package parser

import (
	"fmt"
	"strings"
)

// Modifier is a set of Java modifiers.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModProtected
	ModPrivate
	ModAbstract
	ModStatic
	ModFinal
	ModTransient
	ModVolatile
	ModSynchronized
	ModNative
	ModStrictfp
	ModDefault
	ModSealed
	ModNonSealed

	modifierCount = iota
)

// Groups of modifiers of which a set may hold at most one.
var exclusiveGroups = []Modifier{
	ModPublic | ModProtected | ModPrivate,
	ModFinal | ModAbstract,
	ModDefault | ModAbstract,
	ModFinal | ModSealed | ModNonSealed,
}

var modifierNames = [modifierCount]string{
	"public", "protected", "private", "abstract", "static", "final",
	"transient", "volatile", "synchronized", "native", "strictfp",
	"default", "sealed", "non-sealed",
}

var modifierTokens = map[TokenKind]Modifier{
	TokenPublic:       ModPublic,
	TokenProtected:    ModProtected,
	TokenPrivate:      ModPrivate,
	TokenAbstract:     ModAbstract,
	TokenStatic:       ModStatic,
	TokenFinal:        ModFinal,
	TokenTransient:    ModTransient,
	TokenVolatile:     ModVolatile,
	TokenSynchronized: ModSynchronized,
	TokenNative:       ModNative,
	TokenStrictfp:     ModStrictfp,
	TokenDefault:      ModDefault,
	TokenSealed:       ModSealed,
	TokenNonSealed:    ModNonSealed,
}

func (m Modifier) Has(other Modifier) bool { return m&other == other }

func (m Modifier) HasAny(other Modifier) bool { return m&other != 0 }

// List returns the individual modifiers in canonical source order.
func (m Modifier) List() []Modifier {
	var out []Modifier
	for i := 0; i < modifierCount; i++ {
		if bit := Modifier(1 << i); m&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

func (m Modifier) String() string {
	var names []string
	for i := 0; i < modifierCount; i++ {
		if m&(1<<i) != 0 {
			names = append(names, modifierNames[i])
		}
	}
	return strings.Join(names, " ")
}

// conflict returns the exclusive group m violates, or 0.
func (m Modifier) conflict() Modifier {
	for _, group := range exclusiveGroups {
		if both := m & group; both&(both-1) != 0 {
			return both
		}
	}
	return 0
}

// compatible reports whether adding implied to explicit keeps every
// exclusive group satisfied.
func compatible(explicit, implied Modifier) bool {
	return (explicit | implied).conflict() == 0
}

// checkModifiers rejects explicit sets that no declaration may carry.
func checkModifiers(explicit Modifier) error {
	if bad := explicit.conflict(); bad != 0 {
		return fmt.Errorf("illegal combination of modifiers: %s", bad)
	}
	return nil
}

// inferEffectiveModifiers walks the tree and fills in Effective on every
// Modifiers node with the modifiers the language implies. An implied
// modifier is only added when it does not contradict an explicit one.
func inferEffectiveModifiers(root *Node) {
	Walk(root, func(n *Node) bool {
		if mods := n.Modifiers(); mods != nil && n.Kind.IsAccessNode() {
			mods.Effective = mods.Explicit | impliedModifiers(n, mods.Explicit)
		}
		return true
	})
}

func impliedModifiers(n *Node, explicit Modifier) Modifier {
	var implied Modifier
	add := func(m Modifier) {
		if compatible(explicit|implied, m) {
			implied |= m
		}
	}

	owner := enclosingTypeDecl(n)
	inInterface := owner != nil && (owner.Kind == KindInterfaceDecl || owner.Kind == KindAnnotationDecl)

	switch n.Kind {
	case KindInterfaceDecl, KindAnnotationDecl:
		add(ModAbstract)
		if owner != nil || n.Parent != nil && n.Parent.Kind == KindLocalClassDecl {
			add(ModStatic)
		}
	case KindEnumDecl:
		if owner != nil || n.Parent != nil && n.Parent.Kind == KindLocalClassDecl {
			add(ModStatic)
		}
		if !enumHasConstantBodies(n) {
			add(ModFinal)
		}
	case KindRecordDecl:
		add(ModFinal)
		if owner != nil || n.Parent != nil && n.Parent.Kind == KindLocalClassDecl {
			add(ModStatic)
		}
	case KindEnumConstant:
		add(ModPublic)
		add(ModStatic)
		add(ModFinal)
	case KindConstructorDecl:
		if owner != nil && owner.Kind == KindEnumDecl {
			add(ModPrivate)
		}
	}

	if inInterface && isMember(n) {
		switch n.Kind {
		case KindFieldDecl:
			add(ModPublic)
			add(ModStatic)
			add(ModFinal)
		case KindMethodDecl:
			if !explicit.HasAny(ModPrivate) {
				add(ModPublic)
			}
			if n.FirstChildOfKind(KindBlock) == nil && !explicit.HasAny(ModStatic|ModDefault|ModPrivate) {
				add(ModAbstract)
			}
		case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
			add(ModPublic)
			add(ModStatic)
		}
	}
	return implied
}

func isMember(n *Node) bool {
	return n.Parent != nil && n.Parent.Kind == KindClassBody
}

// enclosingTypeDecl returns the type declaration n is a member of, if
// any.
func enclosingTypeDecl(n *Node) *Node {
	if !isMember(n) {
		return nil
	}
	body := n.Parent
	if body.Parent != nil && body.Parent.Kind.IsTypeDecl() {
		return body.Parent
	}
	return nil
}

func enumHasConstantBodies(n *Node) bool {
	body := n.FirstChildOfKind(KindClassBody)
	if body == nil {
		return false
	}
	for _, c := range body.ChildrenOfKind(KindEnumConstant) {
		if c.FirstChildOfKind(KindClassBody) != nil {
			return true
		}
	}
	return false
}
