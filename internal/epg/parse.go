// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// Parse decodes a guide document. Malformed markup wraps ErrParse.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	// Disable entity expansion to prevent XXE and billion-laughs inputs.
	dec.Entity = make(map[string]string)
	// Guides in the wild still declare ISO-8859-x and windows-125x encodings.
	dec.CharsetReader = charset.NewReaderLabel

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	// Anything after the root element other than whitespace, comments or
	// processing instructions is a well-formedness error.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, fmt.Errorf("%w: trailing character data after root element", ErrParse)
			}
		default:
			return nil, fmt.Errorf("%w: trailing content after root element", ErrParse)
		}
	}
	return &doc, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}
