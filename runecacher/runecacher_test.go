package runecacher

import (
	"strings"
	"testing"
)

func TestStringBasicCacheFirstChar(t *testing.T) {
	rc := NewFromString("test")
	if want, got := 't', rc.RuneAt(0); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
}

func TestStringPrimesCache(t *testing.T) {
	rc := NewFromString(strings.Repeat("ab", 20))

	if want, got := cachePrimeSize, len(rc.runes); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}

	if want, got := 'b', rc.RuneAt(cachePrimeSize+1); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
	if want, got := cachePrimeSize+2, len(rc.runes); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
}

func TestStringMultibyte(t *testing.T) {
	rc := NewFromString("é[ü-ÿ]")
	if !rc.Has(5) || rc.Has(6) {
		t.Fatal("wanted exactly 6 runes")
	}
	if want, got := 'ü', rc.RuneAt(2); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
}

func TestPeekPastEnd(t *testing.T) {
	rc := NewFromString("[a-")
	if _, ok := rc.Peek(2); !ok {
		t.Fatal("expected a rune at 2")
	}
	if ch, ok := rc.Peek(3); ok {
		t.Fatalf("expected end of input, got %q", ch)
	}
	if rc.Has(-1) {
		t.Fatal("negative positions are never present")
	}
}

func TestRunesFrom(t *testing.T) {
	rc := NewFromString("abc")
	if want, got := "bc", string(rc.RunesFrom(1)); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
	if got := rc.RunesFrom(3); len(got) != 0 {
		t.Fatalf("wanted nothing, got %v", string(got))
	}
}

func TestStringBasicCacheSecondChar(t *testing.T) {
	rc := NewFromString("test")
	if want, got := 'e', rc.RuneAt(1); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
	if want, got := "st", string(rc.RunesFrom(2)); want != got {
		t.Fatalf("wanted %v, got %v", want, got)
	}
}
