package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/version"
)

// Diagnoser turns parse failures into protocol diagnostics.
type Diagnoser struct {
	level version.Version
}

func NewDiagnoser(level version.Version) *Diagnoser {
	return &Diagnoser{level: level}
}

func (d *Diagnoser) Version() version.Version { return d.level }

// Diagnose parses text as a compilation unit. The result is empty, never
// nil, when the text parses, so that publishing it clears the client.
func (d *Diagnoser) Diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	_, err := parser.ParseCompilationUnit(text, d.level, parser.WithFile(uriToPath(uri)))
	if err == nil {
		return []protocol.Diagnostic{}
	}
	log.Debugf("%s", err)

	var (
		pos     parser.Position
		message string
		code    string
	)
	var lexErr *parser.LexError
	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &lexErr):
		pos, message, code = lexErr.Pos, lexErr.Message, "lexical"
	case errors.As(err, &parseErr):
		pos, message, code = parseErr.Pos, parseErr.Message, "syntax"
	default:
		message, code = err.Error(), "internal"
	}

	start := toProtocolPosition(pos)
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: start},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   &source,
		Message:  message,
	}}
}

// toProtocolPosition converts 1-based line and column to the protocol's
// 0-based ones.
func toProtocolPosition(pos parser.Position) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return uri
		}
		return filepath.Clean(parsed.Path)
	}
	return uri
}
