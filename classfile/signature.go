package classfile

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedSignature = errors.New("malformed signature")

// ClassSignature is the erased outline of a class's generic signature.
// Super and Interfaces are binary names with type arguments dropped.
type ClassSignature struct {
	TypeParameters []string
	Super          string
	Interfaces     []string
}

// ParseClassSignature parses the value of a class's Signature
// attribute, e.g.
//
//	<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Map<TK;TV;>;
func ParseClassSignature(sig string) (*ClassSignature, error) {
	p := &sigParser{s: sig}
	out := &ClassSignature{}

	if p.peek() == '<' {
		p.pos++
		for p.peek() != '>' {
			name, err := p.typeParameter()
			if err != nil {
				return nil, err
			}
			out.TypeParameters = append(out.TypeParameters, name)
		}
		p.pos++
		if len(out.TypeParameters) == 0 {
			return nil, p.fail("a type parameter")
		}
	}

	super, err := p.classType()
	if err != nil {
		return nil, err
	}
	out.Super = super
	for !p.done() {
		iface, err := p.classType()
		if err != nil {
			return nil, err
		}
		out.Interfaces = append(out.Interfaces, iface)
	}
	return out, nil
}

type sigParser struct {
	s   string
	pos int
}

func (p *sigParser) done() bool { return p.pos >= len(p.s) }

func (p *sigParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) fail(expected string) error {
	return fmt.Errorf("%w %q: expected %s at offset %d", ErrMalformedSignature, p.s, expected, p.pos)
}

func (p *sigParser) expect(c byte) error {
	if p.peek() != c {
		return p.fail(fmt.Sprintf("'%c'", c))
	}
	p.pos++
	return nil
}

// identifier reads up to the next signature delimiter. Slashes are kept
// so package-qualified names come back whole.
func (p *sigParser) identifier() (string, error) {
	start := p.pos
	for !p.done() && !strings.ContainsRune(".;[<>:", rune(p.s[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return "", p.fail("an identifier")
	}
	return p.s[start:p.pos], nil
}

// typeParameter parses Identifier ':' [bound] {':' bound}.
func (p *sigParser) typeParameter() (string, error) {
	name, err := p.identifier()
	if err != nil {
		return "", err
	}
	if err := p.expect(':'); err != nil {
		return "", err
	}
	if p.peek() != ':' {
		if err := p.referenceType(); err != nil {
			return "", err
		}
	}
	for p.peek() == ':' {
		p.pos++
		if err := p.referenceType(); err != nil {
			return "", err
		}
	}
	return name, nil
}

func (p *sigParser) referenceType() error {
	switch p.peek() {
	case 'L':
		_, err := p.classType()
		return err
	case 'T':
		p.pos++
		if _, err := p.identifier(); err != nil {
			return err
		}
		return p.expect(';')
	case '[':
		p.pos++
		if strings.IndexByte("BCDFIJSZ", p.peek()) >= 0 {
			p.pos++
			return nil
		}
		return p.referenceType()
	default:
		return p.fail("a reference type")
	}
}

// classType parses 'L' name [args] {'.' name [args]} ';' and returns
// the binary name, joining inner segments with '$'.
func (p *sigParser) classType() (string, error) {
	if err := p.expect('L'); err != nil {
		return "", err
	}
	var segments []string
	for {
		name, err := p.identifier()
		if err != nil {
			return "", err
		}
		segments = append(segments, name)
		if p.peek() == '<' {
			if err := p.typeArguments(); err != nil {
				return "", err
			}
		}
		if p.peek() != '.' {
			break
		}
		p.pos++
	}
	if err := p.expect(';'); err != nil {
		return "", err
	}
	return BinaryName(strings.Join(segments, "$")), nil
}

func (p *sigParser) typeArguments() error {
	p.pos++
	if p.peek() == '>' {
		return p.fail("a type argument")
	}
	for p.peek() != '>' {
		switch p.peek() {
		case '*':
			p.pos++
			continue
		case '+', '-':
			p.pos++
		}
		if err := p.referenceType(); err != nil {
			return err
		}
	}
	p.pos++
	return nil
}
