package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("a1"))
	assert.True(t, IsValidIdentifier("event-2024_09:x"))
	assert.False(t, IsValidIdentifier(""))
	assert.False(t, IsValidIdentifier("-leading"))
	assert.False(t, IsValidIdentifier("has space"))
	assert.False(t, IsValidIdentifier(strings.Repeat("a", 129)))
}

func TestWithinLengthCountsRunes(t *testing.T) {
	assert.True(t, WithinLength("été", 3, 3))
	assert.False(t, WithinLength("   ", 1, 10))
	assert.True(t, WithinLength(strings.Repeat("ü", 1000), 1, 1000))
	assert.False(t, WithinLength(strings.Repeat("ü", 1001), 1, 1000))
}

func TestOneOf(t *testing.T) {
	assert.True(t, OneOf("b", "a", "b"))
	assert.False(t, OneOf("c", "a", "b"))
}
