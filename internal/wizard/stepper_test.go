package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepper(t *testing.T) {
	s := NewStepper(3)
	assert.False(t, s.Prev())
	assert.Equal(t, 1, s.Current())

	assert.True(t, s.Next())
	assert.True(t, s.Next())
	assert.False(t, s.Next())
	assert.True(t, s.IsFinal())
	assert.Equal(t, 3, s.Current())

	s.Reset()
	assert.Equal(t, 1, s.Current())
}
