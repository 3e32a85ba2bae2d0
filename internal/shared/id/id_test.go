package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewRequestID().String(), "req_"))
	assert.True(t, strings.HasPrefix(NewEventID().String(), "evt_"))
	assert.True(t, strings.HasPrefix(NewClientID().String(), "cli_"))
}

func TestUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		generated := NewEventID().String()
		assert.False(t, seen[generated])
		seen[generated] = true
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(NewRequestID().String()))
	assert.True(t, IsValid(NewEventID().String()))
	assert.True(t, IsValid(NewClientID().String()))

	assert.False(t, IsValid("evt"))
	assert.False(t, IsValid("evt_not-a-uuid"))
	assert.False(t, IsValid("xyz_2f1e0a4c-0000-0000-0000-000000000000"))
	assert.False(t, IsValid(""))
}
