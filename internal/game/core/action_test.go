package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_String(t *testing.T) {
	assert.Equal(t, "North", North.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Action(42)", Action(42).String())
}

func TestAction_Reverse(t *testing.T) {
	tests := []struct {
		action   Action
		expected Action
	}{
		{North, South},
		{South, North},
		{East, West},
		{West, East},
		{Stop, Stop},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.Reverse())
			assert.Equal(t, Coordinate{}, tt.action.Vector().Add(tt.expected.Vector()))
		})
	}
}

func TestAction_EnumerationOrder(t *testing.T) {
	assert.Equal(t, [...]Action{North, South, East, West, Stop}, Actions)
	for _, a := range Actions {
		assert.True(t, a.IsValid())
	}
	assert.False(t, Action(-1).IsValid())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("west")
	require.NoError(t, err)
	assert.Equal(t, West, a)

	_, err = ParseAction("diagonal")
	assert.True(t, errors.Is(err, ErrIllegalAction))
}
