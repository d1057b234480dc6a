package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0700111222": "+254700111222",
		"0700 111 222": "+254700111222",
		"0700-111-222": "+254700111222",
		"700111222": "+254700111222",
		"254700111222": "+254700111222",
		"+254700111222": "+254700111222",
		"00254700111222": "+254700111222",
		"110222333": "+254110222333",
		"": "",
		"+447911123456": "+447911123456",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), "input %q", in)
	}
}

func TestNewULIDUniqueAndOrdered(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}
