package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/webui-harness/internal/properties"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	fifty := strings.Repeat("abcdefghij", 5)
	got := Truncate(fifty)
	assert.Equal(t, fifty[:37]+"...", got)
	assert.Len(t, got, 40)

	forty := strings.Repeat("x", 40)
	assert.Equal(t, forty, Truncate(forty))

	assert.Equal(t, strings.Repeat("é", 37)+"...", Truncate(strings.Repeat("é", 41)))
}

func TestLines(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("y", 45)
	lines := Lines(properties.Properties{"b": long, "a": "1", "c": ""})

	assert.Equal(t, []string{
		"a=1",
		"b=" + strings.Repeat("y", 37) + "...",
		"c=",
	}, lines)
}

func TestDumpBracketsEntries(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	Dump(zap.New(core), properties.Properties{"b": strings.Repeat("z", 50), "a": "1"})

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, DumpBegin, entries[0].Message)
	assert.Equal(t, "a", entries[1].ContextMap()["key"])
	assert.Equal(t, strings.Repeat("z", 37)+"...", entries[2].ContextMap()["value"])
	assert.Equal(t, DumpEnd, entries[3].Message)
}
