// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectOne(t *testing.T, s *Subscription, want any) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload != want {
			t.Errorf("expected payload %v, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %v on %v", want, s.Topic())
	}
}

func expectNone(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Errorf("unexpected message %v on %v", got.Payload, s.Topic())
	default:
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("power", "state"))
	conn.Publish(conn.NewMessage(T("power", "state"), "hello", false))

	expectOne(t, sub, "hello")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("power", "state"), "persist", true))

	sub := conn.Subscribe(T("power", "state"))
	expectOne(t, sub, "persist")
}

func TestRetainedClear(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("power", "battery"), "v1", true))
	conn.Publish(conn.NewMessage(T("power", "battery"), nil, true))

	sub := conn.Subscribe(T("power", "battery"))
	expectNone(t, sub)
}

func TestWildcardSingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("power", "+", "wake"))
	s2 := c.Subscribe(T("power", "+", "+"))
	sNo := c.Subscribe(T("power", "+", "sleep"))

	c.Publish(c.NewMessage(T("power", "event", "wake"), "m1", false))

	expectOne(t, s1, "m1")
	expectOne(t, s2, "m1")
	expectNone(t, sNo)

	// Shorter topics do not match deeper wildcards.
	c.Publish(c.NewMessage(T("power", "event"), "m2", false))
	expectNone(t, s1)
	expectNone(t, s2)
}

func TestRetainedDeliveredThroughWildcard(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("power", "battery"), "b1", true))
	c.Publish(c.NewMessage(T("power", "state"), "s1", true))

	sub := c.Subscribe(T("power", "+"))

	got := map[any]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-sub.Channel():
			got[m.Payload] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout; got %v", got)
		}
	}
	if !got["b1"] || !got["s1"] {
		t.Errorf("missing retained replay: %v", got)
	}
}

func TestUnsubscribePrunes(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("a", "b", "c"))
	c.Unsubscribe(sub)

	if len(b.root.children) != 0 {
		t.Errorf("trie not pruned after unsubscribe")
	}
}

func TestDisconnectClosesChannels(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("a"))
	c.Disconnect()

	if _, ok := <-sub.Channel(); ok {
		t.Error("channel not closed on disconnect")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	b := NewBus(1)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("x"))
	c.Publish(c.NewMessage(T("x"), "old", false))
	c.Publish(c.NewMessage(T("x"), "new", false))

	expectOne(t, sub, "new")
}
