package pipeline

import (
	"testing"
	"time"
)

func packet(amount float64) Packet {
	return Packet{Amount: amount, Tick: 0, Timestamp: time.Unix(0, 0).UTC()}
}

func TestLinkTransferWithinBandwidth(t *testing.T) {
	l := NewLink("uplink-1", 10)
	if !almostEqual(l.Bandwidth(), 14) {
		t.Fatalf("expected bandwidth 14 at base 10 level 1, got %v", l.Bandwidth())
	}
	st := l.Transfer(packet(10), 100)
	if !almostEqual(st.Transferred, 10) || !almostEqual(st.Dropped, 0) {
		t.Fatalf("unexpected transfer stats: %+v", st)
	}
}

func TestLinkTransferExcessMostlyLost(t *testing.T) {
	l := NewLink("uplink-1", 10)
	st := l.Transfer(packet(20), 100)
	if !almostEqual(st.Transferred, 14) {
		t.Fatalf("expected 14 transferred, got %v", st.Transferred)
	}
	// excess 6, loss fraction max(0.8, 1-0.02) = 0.98
	if !almostEqual(st.Dropped, 5.88) {
		t.Fatalf("expected 5.88 dropped, got %v", st.Dropped)
	}
	// The sliver between transferred+dropped and incoming vanishes.
	if !almostEqual(st.Vanished(), 0.12) {
		t.Fatalf("expected 0.12 vanished, got %v", st.Vanished())
	}
	if st.Transferred+st.Dropped > st.Incoming {
		t.Fatalf("transferred+dropped exceeds incoming: %+v", st)
	}
}

func TestLinkLossFractionFloor(t *testing.T) {
	l := NewLink("uplink-1", 10)
	// Even absurdly leveled hardware loses at least 80% of any excess.
	l.Level = 50
	if !almostEqual(l.LossFraction(), 0.8) {
		t.Fatalf("expected loss floor 0.8, got %v", l.LossFraction())
	}
	l.Level = 1
	if !almostEqual(l.LossFraction(), 0.98) {
		t.Fatalf("expected 0.98 at level 1, got %v", l.LossFraction())
	}
	l.Level = 5
	if !almostEqual(l.LossFraction(), 0.9) {
		t.Fatalf("expected 0.9 at level 5, got %v", l.LossFraction())
	}
}

func TestLinkTransferRespectsMaxAcceptable(t *testing.T) {
	l := NewLink("uplink-1", 10)
	st := l.Transfer(packet(20), 5)
	if !almostEqual(st.Transferred, 5) {
		t.Fatalf("expected receiver cap of 5, got %v", st.Transferred)
	}
	st = l.Transfer(packet(20), 0)
	if st.Transferred != 0 {
		t.Fatalf("expected nothing through a full receiver, got %v", st.Transferred)
	}
}

func TestLinkThrottleCutsBandwidth(t *testing.T) {
	l := NewLink("uplink-1", 10)
	l.Throttle = 0.5
	st := l.Transfer(packet(20), 100)
	if !almostEqual(st.Transferred, 7) {
		t.Fatalf("expected 7 through a half-throttled link, got %v", st.Transferred)
	}
}

func TestLinkLastStatsRetained(t *testing.T) {
	l := NewLink("uplink-1", 10)
	st := l.Transfer(packet(20), 100)
	if l.LastStats != st {
		t.Fatalf("last stats not retained: %+v vs %+v", l.LastStats, st)
	}
}
