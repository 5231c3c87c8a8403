// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

const sampleGuide = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE tv SYSTEM "xmltv.dtd">
<tv generator-info-name="epg_ripper" source-info-name="upstream">
  <channel id="Sportklub HD.pl">
    <display-name lang="pl">Sportklub HD</display-name>
    <icon src="https://example.invalid/sk.png"/>
  </channel>
  <channel id="Other.pl">
    <display-name lang="pl">Other</display-name>
  </channel>
  <channel id="Sportklub.HD.pl">
    <display-name lang="pl">Sportklub HD (alt)</display-name>
  </channel>
  <programme start="20250101060000 +0100" stop="20250101070000 +0100" channel="Sportklub HD.pl">
    <title lang="pl">Film</title>
    <desc lang="pl">Opis filmu</desc>
    <category lang="pl">Sport</category>
    <episode-num system="onscreen">S1E2</episode-num>
  </programme>
  <programme start="20250101060000 +0100" stop="20250101070000 +0100" channel="Other.pl">
    <title lang="pl">Wiadomości</title>
  </programme>
  <programme start="20250101070000 +0100" stop="20250101080000 +0100" channel="Sportklub.HD.pl">
    <title lang="pl">Mecz</title>
    <sub-title lang="pl">Finał</sub-title>
  </programme>
  <programme start="20250101080000 +0100" stop="20250101090000 +0100" channel="Sportklub HD.pl">
    <title lang="pl">Film</title>
  </programme>
</tv>
`

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func mustParse(t *testing.T, doc string) *Document {
	t.Helper()
	d, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	return d
}
