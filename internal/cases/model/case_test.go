package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"new", StatusNew, true},
		{"assigned", StatusAssigned, true},
		{"accepted", StatusAccepted, true},
		{"completed", StatusCompleted, true},
		{"cancelled", StatusCancelled, true},
		{"pending", StatusNew, true},
		{"live", StatusAssigned, true},
		{"archived", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusNew))
	assert.False(t, IsTerminal(StatusAssigned))
	assert.False(t, IsTerminal(StatusAccepted))
}
