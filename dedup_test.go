package main

import "testing"

func TestDeduplicatorAccept(t *testing.T) {
	d := NewDeduplicator()

	if !d.Accept("notes", "chocolate") {
		t.Error("first (stem, category) pair rejected, want accepted")
	}
	if d.Accept("notes", "chocolate") {
		t.Error("repeated (stem, category) pair accepted, want rejected")
	}
	if !d.Accept("notes", "work") {
		t.Error("same stem in another category rejected, want accepted")
	}
	if !d.Accept("other", "chocolate") {
		t.Error("new stem in seen category rejected, want accepted")
	}
}
