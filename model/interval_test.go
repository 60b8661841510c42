package model

import (
	"math"
	"testing"
)

func TestEmptyIsZero(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatalf("Empty.IsEmpty() = false")
	}
	if FromTicks(0) != Empty {
		t.Fatalf("FromTicks(0) != Empty")
	}
}

func TestFromTicksNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("FromTicks(-1) did not panic")
		}
	}()
	FromTicks(-1)
}

func TestAddSaturates(t *testing.T) {
	near := TimeInterval(math.MaxInt64 - 5)
	got := near.Add(TimeInterval(100))
	if got != TimeInterval(math.MaxInt64) {
		t.Fatalf("Add overflow = %v, want saturated max", got)
	}
}

func TestAddNormal(t *testing.T) {
	got := TimeInterval(300).Add(TimeInterval(700))
	if got != TimeInterval(1000) {
		t.Fatalf("Add(300,700) = %v, want 1000", got)
	}
}

func TestSubSaturatesAtZero(t *testing.T) {
	got := TimeInterval(300).Sub(TimeInterval(1000))
	if got != Empty {
		t.Fatalf("Sub underflow = %v, want Empty", got)
	}
}

func TestSubNormal(t *testing.T) {
	got := TimeInterval(1000).Sub(TimeInterval(300))
	if got != TimeInterval(700) {
		t.Fatalf("Sub(1000,300) = %v, want 700", got)
	}
}

func TestComparisons(t *testing.T) {
	a, b := TimeInterval(100), TimeInterval(200)
	if !a.Less(b) || b.Less(a) {
		t.Fatalf("Less comparisons wrong")
	}
	if !a.AtMost(b) || !b.AtLeast(a) {
		t.Fatalf("AtMost/AtLeast comparisons wrong")
	}
	if !b.Greater(a) || a.Greater(b) {
		t.Fatalf("Greater comparisons wrong")
	}
	if !a.AtLeast(a) || !a.AtMost(a) {
		t.Fatalf("reflexive AtLeast/AtMost wrong")
	}
}

func TestString(t *testing.T) {
	if got := TimeInterval(42).String(); got != "42ticks" {
		t.Fatalf("String() = %q, want %q", got, "42ticks")
	}
}
