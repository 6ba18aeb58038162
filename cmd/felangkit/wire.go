package main

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

// wireToken is the CBOR-friendly projection of token.Token used by
// --format=cbor. The live domain type is never encoded directly: a
// flat, stable wire struct insulates golden snapshots from internal
// field reordering.
type wireToken struct {
	Kind   string `cbor:"kind"`
	Lexeme string `cbor:"lexeme"`
	Line   int    `cbor:"line"`
	Column int    `cbor:"column"`
	Offset int    `cbor:"offset"`
}

func toWireToken(t token.Token) wireToken {
	return wireToken{
		Kind:   t.Kind.String(),
		Lexeme: t.Lexeme,
		Line:   t.Position.Line,
		Column: t.Position.Column,
		Offset: t.Position.Offset,
	}
}

// wireDiagnostic is the CBOR-friendly projection of diagnostic.Diagnostic.
type wireDiagnostic struct {
	Code      string   `cbor:"code"`
	Severity  string   `cbor:"severity"`
	Message   string   `cbor:"message"`
	Line      int      `cbor:"line"`
	Column    int      `cbor:"column"`
	Secondary []string `cbor:"secondary,omitempty"`
}

func toWireDiagnostic(d diagnostic.Diagnostic) wireDiagnostic {
	return wireDiagnostic{
		Code:      d.Kind.Code(),
		Severity:  d.Severity.String(),
		Message:   d.Message,
		Line:      d.Position.Line,
		Column:    d.Position.Column,
		Secondary: d.Secondary,
	}
}

// canonicalEncode CBOR-encodes v deterministically, so `felangkit tokens
// --format=cbor` output is byte-stable across runs for golden-file tests.
func canonicalEncode(v any) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("building CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding: %w", err)
	}
	return data, nil
}
