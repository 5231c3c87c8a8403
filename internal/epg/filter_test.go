// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func channelIDs(chs []Channel) []string {
	out := make([]string, 0, len(chs))
	for _, c := range chs {
		out = append(out, c.ID)
	}
	return out
}

func TestAllowList(t *testing.T) {
	a := NewAllowList("b", "a", "", "  ", "a")
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Contains("a"))
	assert.False(t, a.Contains(""))
	assert.False(t, a.Contains("A"))
	assert.Equal(t, []string{"a", "b"}, a.IDs())
}

func TestFilter_ChannelMembership(t *testing.T) {
	doc := mustParse(t, sampleGuide)

	tv, _ := Filter(doc, NewAllowList("Sportklub HD.pl", "Sportklub.HD.pl"))
	assert.Equal(t, []string{"Sportklub HD.pl", "Sportklub.HD.pl"}, channelIDs(tv.Channels))
	assert.Equal(t, GeneratorName, tv.Generator)
	assert.Empty(t, tv.Programmes)
}

func TestFilter_DuplicateChannelsKept(t *testing.T) {
	doc := mustParse(t, `<tv><channel id="x">1</channel><channel id="y"/><channel id="x">2</channel></tv>`)

	tv, _ := Filter(doc, NewAllowList("x"))
	require.Len(t, tv.Channels, 2)
	assert.Equal(t, "1", tv.Channels[0].Inner)
	assert.Equal(t, "2", tv.Channels[1].Inner)
}

func TestFilter_ProgrammesInSourceOrder(t *testing.T) {
	doc := mustParse(t, sampleGuide)

	_, progs := Filter(doc, NewAllowList("Sportklub HD.pl", "Sportklub.HD.pl"))
	got := slices.Collect(progs)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Film", "Mecz", "Film"}, []string{got[0].Title(), got[1].Title(), got[2].Title()})
	for _, p := range got {
		assert.NotEqual(t, "Other.pl", p.Channel)
	}
}

func TestFilter_ProgrammesNotCheckedAgainstChannels(t *testing.T) {
	doc := mustParse(t, `<tv><programme channel="orphan" start="1"><title>t</title></programme></tv>`)

	tv, progs := Filter(doc, NewAllowList("orphan"))
	assert.Empty(t, tv.Channels)
	assert.Len(t, slices.Collect(progs), 1)
}

func TestFilter_NoMatches(t *testing.T) {
	doc := mustParse(t, sampleGuide)

	tv, progs := Filter(doc, NewAllowList("Nope.pl"))
	assert.Empty(t, tv.Channels)
	assert.Empty(t, slices.Collect(progs))
}

func TestFilter_NilDocument(t *testing.T) {
	tv, progs := Filter(nil, NewAllowList("a"))
	assert.Empty(t, tv.Channels)
	assert.Empty(t, slices.Collect(progs))
}

func TestFilter_EarlyStop(t *testing.T) {
	doc := mustParse(t, sampleGuide)
	_, progs := Filter(doc, NewAllowList("Sportklub HD.pl", "Sportklub.HD.pl"))

	n := 0
	for range progs {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestFilter_DoesNotAliasSource(t *testing.T) {
	doc := mustParse(t, sampleGuide)

	tv, progs := Filter(doc, NewAllowList("Sportklub HD.pl"))
	for p := range progs {
		p.Titles[0].Value = "changed"
		p.Extra = append(p.Extra[:0], Node{})
	}
	tv.Channels[0].ID = "changed"

	assert.Equal(t, "Film", doc.Programmes[0].Title())
	assert.Equal(t, "category", doc.Programmes[0].Extra[0].XMLName.Local)
	assert.Equal(t, "Sportklub HD.pl", doc.Channels[0].ID)
}
