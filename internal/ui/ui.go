// Package ui holds the page widgets: small controllers that turn clicks,
// keys, scroll and visibility signals into state the page renders.
// Controllers created without their anchor (no sections, no cards, no
// scheduler) ignore every call.
package ui

import "math"

// Regions looks up a page region by id. *visibility.Tracker implements it.
type Regions interface {
	Region(id string) (top, height float64, ok bool)
}

// Field is a single line of editable text.
type Field struct {
	value []rune
}

// Value returns the text.
func (f *Field) Value() string { return string(f.value) }

// SetValue replaces the text.
func (f *Field) SetValue(s string) { f.value = []rune(s) }

// Insert appends r.
func (f *Field) Insert(r rune) { f.value = append(f.value, r) }

// Backspace removes the last rune.
func (f *Field) Backspace() {
	if len(f.value) > 0 {
		f.value = f.value[:len(f.value)-1]
	}
}

// Clear empties the field.
func (f *Field) Clear() { f.value = f.value[:0] }

// Empty reports whether the field has no text.
func (f *Field) Empty() bool { return len(f.value) == 0 }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
