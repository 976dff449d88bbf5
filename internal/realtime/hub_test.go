package realtime

import (
	"testing"
)

func TestHubDeliversToMatchingSubscribers(t *testing.T) {
	h := NewHub()
	defer h.Close()

	tripSub := h.Subscribe("t1")
	otherSub := h.Subscribe("t2")
	allSub := h.Subscribe("")

	e := NewEvent("t1", TableExpenses, ActionInsert)
	h.Publish(e)

	got := <-tripSub.C
	if got.TripID != "t1" || got.Table != TableExpenses || got.Action != ActionInsert {
		t.Errorf("subscriber got wrong event: %+v", got)
	}

	// The wildcard subscriber sees every trip's events
	got = <-allSub.C
	if got.ID != e.ID {
		t.Errorf("wildcard subscriber got event %v, wanted %v", got.ID, e.ID)
	}

	// The other trip's subscriber sees nothing
	select {
	case unwanted := <-otherSub.C:
		t.Errorf("subscriber for t2 received event for %s", unwanted.TripID)
	default:
	}
}

func TestHubPublishNeverBlocks(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sub := h.Subscribe("t1")

	// Overfill the subscriber's buffer; the excess is dropped, not queued,
	// and Publish returns regardless.
	for i := 0; i < subscriberBuffer*2; i++ {
		h.Publish(NewEvent("t1", TableExpenses, ActionInsert))
	}

	delivered := 0
	for {
		select {
		case <-sub.C:
			delivered++
			continue
		default:
		}
		break
	}
	if delivered != subscriberBuffer {
		t.Errorf("wanted %d buffered events, got %d", subscriberBuffer, delivered)
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sub := h.Subscribe("t1")
	h.Unsubscribe(sub)

	if _, ok := <-sub.C; ok {
		t.Errorf("unsubscribed channel should be closed")
	}

	// Unsubscribing twice is harmless
	h.Unsubscribe(sub)

	// Publishing after unsubscribe reaches nobody and does not panic
	h.Publish(NewEvent("t1", TableExpenses, ActionInsert))
}

func TestHubClose(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe("t1")
	h.Close()

	if _, ok := <-sub.C; ok {
		t.Errorf("close should close subscriber channels")
	}

	// Subscribing after close yields an already-closed channel
	late := h.Subscribe("t1")
	if _, ok := <-late.C; ok {
		t.Errorf("post-close subscriber channel should be closed")
	}

	// Publish and a second Close are no-ops
	h.Publish(NewEvent("t1", TableExpenses, ActionInsert))
	h.Close()
}
