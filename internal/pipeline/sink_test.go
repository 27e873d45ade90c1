package pipeline

import "testing"

func TestSinkReceiveRespectsCapacity(t *testing.T) {
	s := NewSink("cruncher-1", 8, 2, 50)
	if got := s.Receive(30); !almostEqual(got, 30) {
		t.Fatalf("expected 30 accepted, got %v", got)
	}
	if got := s.Receive(30); !almostEqual(got, 20) {
		t.Fatalf("expected 20 accepted into remaining capacity, got %v", got)
	}
	if s.Buffer > s.Capacity() {
		t.Fatalf("buffer %v exceeds capacity %v", s.Buffer, s.Capacity())
	}
	if got := s.Receive(10); got != 0 {
		t.Fatalf("full buffer accepted %v", got)
	}
}

func TestSinkProcessConvertsBuffer(t *testing.T) {
	s := NewSink("cruncher-1", 8, 2, 50)
	s.Receive(30)
	res := s.Process()
	// rate = 8 * 1 * 1.3 = 10.4
	if !almostEqual(res.Processed, 10.4) {
		t.Fatalf("expected 10.4 processed, got %v", res.Processed)
	}
	if !almostEqual(res.Credits, 20.8) {
		t.Fatalf("expected 20.8 credits, got %v", res.Credits)
	}
	if !almostEqual(s.Buffer, 19.6) {
		t.Fatalf("expected 19.6 left in buffer, got %v", s.Buffer)
	}
}

func TestSinkProcessDrainsNoMoreThanBuffer(t *testing.T) {
	s := NewSink("cruncher-1", 8, 2, 50)
	s.Receive(3)
	res := s.Process()
	if !almostEqual(res.Processed, 3) {
		t.Fatalf("expected to process the whole 3-unit buffer, got %v", res.Processed)
	}
	if s.Buffer != 0 {
		t.Fatalf("expected empty buffer, got %v", s.Buffer)
	}
	if res := s.Process(); res.Processed != 0 || res.Credits != 0 {
		t.Fatalf("processing an empty buffer yielded %+v", res)
	}
}

func TestSinkSlowdown(t *testing.T) {
	s := NewSink("cruncher-1", 8, 2, 50)
	s.Slowdown = 0.5
	if !almostEqual(s.ProcessingRate(), 5.2) {
		t.Fatalf("expected half rate 5.2, got %v", s.ProcessingRate())
	}
}

func TestSinkUpgradeGrowsCapacity(t *testing.T) {
	s := NewSink("cruncher-1", 8, 2, 50)
	before := s.Capacity()
	if !s.Upgrade() {
		t.Fatalf("upgrade refused below the tier cap")
	}
	if s.Capacity() <= before {
		t.Fatalf("capacity did not grow: %v -> %v", before, s.Capacity())
	}
}
