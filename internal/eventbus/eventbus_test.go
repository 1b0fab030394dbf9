package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New[int]()
	defer bus.Close()
	sub := bus.Subscribe()
	bus.Publish(7)
	select {
	case v := <-sub:
		if v != 7 {
			t.Fatalf("received %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event received")
	}
}

func TestPublishDoesNotBlock(t *testing.T) {
	bus := New[int]()
	defer bus.Close()
	_ = bus.Subscribe()
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			bus.Publish(i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New[string]()
	defer bus.Close()
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("expected closed channel after unsubscribe")
	}
	// Publishing after unsubscribe must not panic.
	bus.Publish("x")
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New[int]()
	sub := bus.Subscribe()
	bus.Close()
	bus.Close()
	if _, ok := <-sub; ok {
		t.Fatalf("expected closed channel after bus close")
	}
	if late := bus.Subscribe(); late == nil {
		t.Fatalf("subscribe after close should return a closed channel")
	} else if _, ok := <-late; ok {
		t.Fatalf("channel from closed bus should be closed")
	}
}
