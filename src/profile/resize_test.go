package profile

import "testing"

func TestResizeNotifier_SubscribersDoNotClobberEachOther(t *testing.T) {
	var n ResizeNotifier
	var a, b []float64
	unsubA := n.Subscribe(func(vp Viewport) { a = append(a, vp.Width) })
	unsubB := n.Subscribe(func(vp Viewport) { b = append(b, vp.Width) })
	n.Notify(NewViewport(800, 300))
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("both subscribers should fire: a=%v b=%v", a, b)
	}
	unsubA()
	unsubA() // second call is a no-op
	n.Notify(NewViewport(900, 300))
	if len(a) != 1 {
		t.Fatalf("unsubscribed listener fired again: %v", a)
	}
	if len(b) != 2 || b[1] != 900 {
		t.Fatalf("remaining listener missed the update: %v", b)
	}
	unsubB()
	if n.Len() != 0 {
		t.Fatalf("expected no live subscriptions, got %d", n.Len())
	}
	if vp, ok := n.Last(); !ok || vp.Width != 900 {
		t.Fatalf("Last() = %+v, %v", vp, ok)
	}
}

func TestChart_AttachDetach(t *testing.T) {
	var n ResizeNotifier
	c := NewChart(NewViewport(600, 300))
	c.Attach(&n)
	c.Attach(&n) // re-attaching keeps a single subscription
	if n.Len() != 1 {
		t.Fatalf("expected one subscription, got %d", n.Len())
	}
	n.Notify(NewViewport(1000, 400))
	if c.Viewport().Width != 1000 {
		t.Fatalf("chart did not follow resize: %+v", c.Viewport())
	}
	if lo, hi := c.XScale().Range(); lo != 60 || hi != 980 {
		t.Fatalf("x range after resize = [%v,%v]", lo, hi)
	}
	c.Detach()
	n.Notify(NewViewport(500, 400))
	if c.Viewport().Width != 1000 {
		t.Fatalf("detached chart still follows resize")
	}
	if n.Len() != 0 {
		t.Fatalf("detach left %d subscriptions", n.Len())
	}
}
