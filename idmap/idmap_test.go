package idmap

import "testing"

func TestSetGet(t *testing.T) {
	m := New()
	m.Set(42, 7)
	idx, ok := m.Get(42)
	if !ok || idx != 7 {
		t.Fatalf("got (%d, %v), want (7, true)", idx, ok)
	}
}

func TestGetMiss(t *testing.T) {
	m := New()
	_, ok := m.Get(1234)
	if ok {
		t.Fatal("expected miss")
	}
}

func TestLen(t *testing.T) {
	m := New()
	for i := uint64(0); i < 1000; i++ {
		m.Set(i, i*2)
	}
	if m.Len() != 1000 {
		t.Fatalf("got %d, want 1000", m.Len())
	}
}
