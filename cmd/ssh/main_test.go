package main

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorProfile(t *testing.T) {
	assert.Equal(t, termenv.TrueColor, colorProfile("xterm", []string{"LANG=C", "COLORTERM=truecolor"}))
	assert.Equal(t, termenv.TrueColor, colorProfile("xterm-direct", nil))
	assert.Equal(t, termenv.ANSI256, colorProfile("xterm-256color", nil))
	assert.Equal(t, termenv.ANSI, colorProfile("vt100", nil))
	assert.Equal(t, termenv.Ascii, colorProfile("dumb", nil))
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	w, h, err := s.getSize()
	assert.NoError(t, err)
	assert.Equal(t, [2]int{80, 24}, [2]int{w, h})

	s.update(120, 40)
	w, h, _ = s.getSize()
	assert.Equal(t, [2]int{120, 40}, [2]int{w, h})
}
