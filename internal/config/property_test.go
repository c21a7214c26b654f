package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/webui-harness/internal/properties"
	"github.com/eugenenazirov/webui-harness/internal/storage"
)

func TestExpect(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"empty": "", "set": "x"}

	_, err := NewProperty("absent", props).Expect()
	require.ErrorIs(t, err, ErrMissingProperty)
	assert.Contains(t, err.Error(), "not null")

	_, err = NewProperty("empty", props).Expect()
	require.ErrorIs(t, err, ErrMissingProperty)
	assert.Contains(t, err.Error(), "not empty")

	v, err := NewProperty("set", props).Expect()
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestExpectNonNull(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"empty": ""}

	v, err := NewProperty("empty", props).ExpectNonNull()
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = NewProperty("absent", props).ExpectNonNull()
	require.ErrorIs(t, err, ErrMissingProperty)
}

func TestExpectOneOf(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"app.env": "qa", "empty": ""}

	_, err := NewProperty("app.env", props).ExpectOneOf("dev", "prod")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "dev, prod")
	assert.Contains(t, err.Error(), "'qa'")

	for _, key := range []string{"absent", "empty"} {
		_, err = NewProperty(key, props).ExpectOneOf("dev", "prod")
		require.ErrorIs(t, err, ErrMissingProperty)
		assert.Contains(t, err.Error(), "dev, prod")
	}

	props["app.env"] = "prod"
	v, err := NewProperty("app.env", props).ExpectOneOf("dev", "prod")
	require.NoError(t, err)
	assert.Equal(t, "prod", v)
}

func TestPresenceClassificationIsExclusive(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"empty": "", "set": "x"}

	tests := []struct {
		key                       string
		hasValue, isEmpty, isNull bool
	}{
		{key: "absent", isNull: true},
		{key: "empty", isEmpty: true},
		{key: "set", hasValue: true},
	}

	for _, tc := range tests {
		p := NewProperty(tc.key, props)
		assert.Equal(t, tc.hasValue, p.HasValue(), tc.key)
		assert.Equal(t, tc.isEmpty, p.IsEmpty(), tc.key)
		assert.Equal(t, tc.isNull, p.IsNull(), tc.key)
	}
}

func TestGetAndGetOr(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	props := properties.Properties{"empty": "", "set": "x"}

	_, ok := NewProperty("absent", props).Get()
	assert.False(t, ok)

	v, ok := NewProperty("empty", props).Get()
	assert.True(t, ok)
	assert.Empty(t, v)

	assert.Equal(t, "x", NewProperty("set", props, WithLogger(zap.New(core))).GetOr("d"))
	assert.Zero(t, logs.Len())

	assert.Equal(t, "d", NewProperty("empty", props, WithLogger(zap.New(core))).GetOr("d"))
	assert.Equal(t, "d", NewProperty("absent", props, WithLogger(zap.New(core))).GetOr("d"))
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "absent", logs.All()[1].ContextMap()["property"])
}

func TestSetRoundTripAndLiveReads(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore(nil)
	p := NewProperty("k", store)
	other := NewProperty("k", store)

	v, ok := p.Set("v").Get()
	require.True(t, ok)
	assert.Equal(t, "v", v)

	store.Set("k", "changed")
	assert.Equal(t, "changed", other.String())
}

func TestIntAndBool(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"port": "4444", "word": "abc", "flag": "TRUE", "no": "yes"}

	n, err := NewProperty("port", props).Int()
	require.NoError(t, err)
	assert.Equal(t, 4444, n)

	_, err = NewProperty("word", props).Int()
	require.ErrorIs(t, err, ErrFormat)

	_, err = NewProperty("absent", props).Int()
	require.ErrorIs(t, err, ErrMissingProperty)

	assert.True(t, NewProperty("flag", props).Bool())
	assert.False(t, NewProperty("no", props).Bool())
	assert.False(t, NewProperty("absent", props).Bool())
}

func TestIsAndIsNot(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"browser": "chrome", "empty": ""}
	p := NewProperty("browser", props)

	is, err := p.Is("firefox", "chrome")
	require.NoError(t, err)
	assert.True(t, is)

	isNot, err := p.IsNot("firefox", "edge")
	require.NoError(t, err)
	assert.True(t, isNot)

	_, err = NewProperty("empty", props).Is("chrome")
	require.ErrorIs(t, err, ErrMissingProperty)

	_, err = NewProperty("absent", props).IsNot()
	require.ErrorIs(t, err, ErrMissingProperty)
}

func TestContains(t *testing.T) {
	t.Parallel()

	props := properties.Properties{"url": "https://gamasutra.com/topic/console-pc"}

	ok, err := NewProperty("url", props).Contains("console-pc")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewProperty("absent", props).Contains("x")
	require.ErrorIs(t, err, ErrMissingProperty)
}

func TestSwitchToMutatesInPlace(t *testing.T) {
	t.Parallel()

	first := properties.Properties{"a": "1", "b": "2"}
	second := properties.Properties{"a": "other"}

	p := NewProperty("a", first)
	same := p.SwitchTo("b")
	require.Same(t, p, same)
	assert.Equal(t, "b", p.Key())
	assert.Equal(t, "2", p.String())

	same = p.SwitchTo("a").SwitchToStore(second)
	require.Same(t, p, same)
	assert.Equal(t, "other", p.String())
	assert.Equal(t, "1", first["a"])
}

func TestUsingReturnsNewHandle(t *testing.T) {
	t.Parallel()

	first := properties.Properties{"a": "1", "b": "2"}
	second := properties.Properties{"a": "other"}

	p := NewProperty("a", first)

	byKey := p.Using("b")
	require.NotSame(t, p, byKey)
	assert.Equal(t, "2", byKey.String())
	assert.Equal(t, "a", p.Key())

	byStore := p.UsingStore(second)
	require.NotSame(t, p, byStore)
	assert.Equal(t, "other", byStore.String())
	assert.Equal(t, "1", p.String())
}

func TestNilStoreBecomesEmpty(t *testing.T) {
	t.Parallel()

	p := NewProperty("a", nil)
	assert.True(t, p.IsNull())
	p.Set("1")
	assert.Equal(t, "1", p.String())

	var nilProps properties.Properties
	q := NewProperty("a", nilProps)
	q.Set("1")
	assert.Equal(t, "1", q.String())

	r := NewProperty("a", properties.Properties{"a": "x"}).SwitchToStore(nil)
	assert.True(t, r.IsNull())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	p := NewProperty("a", nil).Describe("the a setting")
	assert.Equal(t, "the a setting", p.Description())
}
