package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode_IsURLSafeAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.NotEmpty(t, code)
		assert.NotContains(t, code, "+")
		assert.NotContains(t, code, "/")
		assert.NotContains(t, code, "=")
		assert.False(t, seen[code])
		seen[code] = true
	}
}

func TestHashCode_RoundTrip(t *testing.T) {
	code, err := GenerateCode()
	assert.NoError(t, err)

	hash, err := HashCode(code)
	assert.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.NoError(t, CheckCode(hash, code))
	assert.Error(t, CheckCode(hash, code+"x"))
	assert.Error(t, CheckCode(hash, ""))
}
