// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package epg reads, filters and writes XMLTV electronic programme guides.
package epg

import (
	"encoding/xml"
	"slices"
)

// GeneratorName is written as generator-info-name on every output document.
const GeneratorName = "epgtrans"

// Document is a parsed source guide. Any root element name is accepted;
// only its direct channel and programme children are kept.
type Document struct {
	XMLName    xml.Name
	Channels   []Channel   `xml:"channel"`
	Programmes []Programme `xml:"programme"`
}

// TV is the output document root.
type TV struct {
	XMLName    xml.Name    `xml:"tv"`
	Generator  string      `xml:"generator-info-name,attr,omitempty"`
	Channels   []Channel   `xml:"channel"`
	Programmes []Programme `xml:"programme"`
}

// Channel keeps its id and copies everything else through verbatim.
type Channel struct {
	ID    string     `xml:"id,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

// Programme exposes the translatable text elements and keeps every other
// child as an opaque Node in source order.
type Programme struct {
	Start     string     `xml:"start,attr"`
	Stop      string     `xml:"stop,attr,omitempty"`
	Channel   string     `xml:"channel,attr"`
	Attrs     []xml.Attr `xml:",any,attr"`
	Titles    []Text     `xml:"title"`
	SubTitles []Text     `xml:"sub-title"`
	Descs     []Text     `xml:"desc"`
	Extra     []Node     `xml:",any"`
}

// Text is a free-text element with an optional language tag.
type Text struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Node is an element copied through without interpretation.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// Title returns the text of the first title element, or "".
func (p Programme) Title() string {
	if len(p.Titles) == 0 {
		return ""
	}
	return p.Titles[0].Value
}

// Desc returns the text of the first desc element, or "".
func (p Programme) Desc() string {
	if len(p.Descs) == 0 {
		return ""
	}
	return p.Descs[0].Value
}

// Clone returns a deep copy of c.
func (c Channel) Clone() Channel {
	c.Attrs = slices.Clone(c.Attrs)
	return c
}

// Clone returns a deep copy of p that shares no slices with the receiver.
func (p Programme) Clone() Programme {
	p.Attrs = slices.Clone(p.Attrs)
	p.Titles = slices.Clone(p.Titles)
	p.SubTitles = slices.Clone(p.SubTitles)
	p.Descs = slices.Clone(p.Descs)
	if p.Extra != nil {
		extra := make([]Node, len(p.Extra))
		for i, n := range p.Extra {
			n.Attrs = slices.Clone(n.Attrs)
			extra[i] = n
		}
		p.Extra = extra
	}
	return p
}

// NewTV returns an empty output document.
func NewTV() *TV {
	return &TV{
		Generator:  GeneratorName,
		Channels:   []Channel{},
		Programmes: []Programme{},
	}
}
