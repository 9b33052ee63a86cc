package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		auth bool
		want Route
	}{
		{"/dashboard", false, Login},
		{"/market", false, Login},
		{"/portfolio", false, Login},
		{"/login", false, Login},
		{"/register", false, Register},
		{"/", false, Login},
		{"/dashboard", true, Dashboard},
		{"/market", true, Market},
		{"/portfolio/", true, Portfolio},
		{"/login", true, Dashboard},
		{"/register", true, Dashboard},
		{"/", true, Dashboard},
		{"/nope", true, Dashboard},
		{"MARKET", true, Market},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.path, tt.auth), "%s auth=%v", tt.path, tt.auth)
	}
}

func TestRedirected(t *testing.T) {
	to, moved := Redirected("/portfolio", false)
	assert.True(t, moved)
	assert.Equal(t, Login, to)

	to, moved = Redirected("/market", true)
	assert.False(t, moved)
	assert.Equal(t, Market, to)
}

func TestGated(t *testing.T) {
	assert.True(t, Dashboard.Gated())
	assert.False(t, Login.Gated())
}
