package report

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize_SkipsBlankAndNoiseLines(t *testing.T) {
	raw := "(config)> show ip hotspot\n\n   \n             host:\n                  mac: 50:ff:20:00:00:01\n(config)>\n"
	lines := slices.Collect(Tokenize(raw))
	require.Equal(t, []Line{
		{Number: 4, Column: 17, Key: "host", Value: ""},
		{Number: 5, Column: 21, Key: "mac", Value: "50:ff:20:00:00:01"},
	}, lines)
}

func TestTokenize_FirstColonSeparates(t *testing.T) {
	lines := slices.Collect(Tokenize("  mac: aa:bb:cc:dd:ee:ff  \r\n"))
	require.Len(t, lines, 1)
	require.Equal(t, 5, lines[0].Column)
	require.Equal(t, "mac", lines[0].Key)
	require.Equal(t, "aa:bb:cc:dd:ee:ff", lines[0].Value)
}

func TestTokenize_CommaKeyUsesCommaColumn(t *testing.T) {
	lines := slices.Collect(Tokenize("    ssid, 5GHz: HomeWifi\n"))
	require.Len(t, lines, 1)
	require.Equal(t, 8, lines[0].Column)
	require.Equal(t, "ssid, 5GHz", lines[0].Key)
	require.Equal(t, "HomeWifi", lines[0].Value)
}

func TestTokenize_CommaInValueIgnored(t *testing.T) {
	lines := slices.Collect(Tokenize("  name: a, b\n"))
	require.Len(t, lines, 1)
	require.Equal(t, 6, lines[0].Column)
	require.Equal(t, "a, b", lines[0].Value)
}

func TestTokenize_ColumnCountsCharacters(t *testing.T) {
	lines := slices.Collect(Tokenize("  имя: x\n"))
	require.Len(t, lines, 1)
	require.Equal(t, 5, lines[0].Column)
	require.Equal(t, "имя", lines[0].Key)
}

func TestTokenize_Restartable(t *testing.T) {
	seq := Tokenize(fixture(t))
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
	require.Len(t, first, 43)
}

func TestTokenize_StopsWhenConsumerStops(t *testing.T) {
	n := 0
	for range Tokenize("a: 1\nb: 2\nc: 3\n") {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}
