package worker

import "testing"

func TestHub_PublishReachesOnlyThatUser(t *testing.T) {
	h := NewHub()

	var a, b int
	unsubA := h.Subscribe(1, func() { a++ })
	h.Subscribe(2, func() { b++ })

	if n := h.Publish(1); n != 1 {
		t.Errorf("Publish(1) ran %d listeners, want 1", n)
	}
	if a != 1 || b != 0 {
		t.Errorf("a=%d b=%d, want 1 0", a, b)
	}

	unsubA()
	unsubA()
	if n := h.Publish(1); n != 0 {
		t.Errorf("Publish after unsubscribe ran %d listeners", n)
	}
	if h.Listeners(1) != 0 || h.Listeners(2) != 1 {
		t.Errorf("listeners = %d/%d, want 0/1", h.Listeners(1), h.Listeners(2))
	}
}
