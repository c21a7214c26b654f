package suite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftAssertCollectsFailures(t *testing.T) {
	t.Parallel()

	a := NewSoftAssert()
	require.NoError(t, a.Err())

	assert.True(t, a.Equal("#FF0000", "#FF0000", "status color"))
	assert.False(t, a.Equal("#FF0000", "#000000", "status color"))
	assert.True(t, a.True(true, "visible"))
	assert.False(t, a.True(false, "visible"))
	boom := errors.New("boom")
	assert.True(t, a.NoError(nil, "click"))
	assert.False(t, a.NoError(boom, "click"))

	failures := a.Failures()
	require.Len(t, failures, 3)
	for _, f := range failures {
		assert.ErrorIs(t, f, ErrAssertion)
	}
	assert.Contains(t, failures[0].Error(), "status color")
	assert.Contains(t, failures[0].Error(), "#000000")
	assert.ErrorIs(t, failures[2], boom)

	err := a.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSuiteOrderedIsStable(t *testing.T) {
	t.Parallel()

	s := Suite{Cases: []Case{
		{Name: "c", Priority: 2},
		{Name: "a", Priority: 1},
		{Name: "d", Priority: 2},
		{Name: "b", Priority: 1},
	}}

	var names []string
	for _, c := range s.Ordered() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	assert.Equal(t, "c", s.Cases[0].Name, "Ordered must not reorder the suite")
}
