package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tbl := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER  abc ", "abc"},
		{"Bearer", ""},
		{"Bearer ", ""},
		{"Basic abc", ""},
		{"", ""},
		{"Bearerabc", ""},
	}
	for _, tt := range tbl {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(tt.header))
		})
	}
}

func TestValidToken(t *testing.T) {
	assert.True(t, validToken("abc", "abc"))
	assert.False(t, validToken("abc", "abd"))
	assert.False(t, validToken("ab", "abc"))
	assert.False(t, validToken("", ""))
	assert.False(t, validToken("abc", ""))
	assert.False(t, validToken("", "abc"))
}
