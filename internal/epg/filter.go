// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"iter"
	"slices"
	"strings"
)

// AllowList is the immutable set of channel identifiers to retain.
type AllowList struct {
	ids map[string]struct{}
}

// NewAllowList builds an allow-list. Identifiers are matched exactly;
// empty entries are ignored.
func NewAllowList(ids ...string) AllowList {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return AllowList{ids: set}
}

// Contains reports whether id is allowed.
func (a AllowList) Contains(id string) bool {
	_, ok := a.ids[id]
	return ok
}

// Len returns the number of identifiers.
func (a AllowList) Len() int { return len(a.ids) }

// IDs returns the identifiers in sorted order.
func (a AllowList) IDs() []string {
	out := make([]string, 0, len(a.ids))
	for id := range a.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Filter selects the allow-listed channels into a new output root and returns
// a lazy sequence over the allow-listed programmes, both in source order.
// Membership is the only criterion: duplicates are kept and programmes are not
// checked against the retained channels. Yielded values are deep copies, so
// doc is never mutated.
func Filter(doc *Document, allow AllowList) (*TV, iter.Seq[Programme]) {
	tv := NewTV()
	if doc == nil {
		return tv, func(func(Programme) bool) {}
	}

	for _, ch := range doc.Channels {
		if allow.Contains(ch.ID) {
			tv.Channels = append(tv.Channels, ch.Clone())
		}
	}

	programmes := func(yield func(Programme) bool) {
		for _, p := range doc.Programmes {
			if !allow.Contains(p.Channel) {
				continue
			}
			if !yield(p.Clone()) {
				return
			}
		}
	}
	return tv, programmes
}
