package satellites

import (
	"errors"
	"testing"
)

func makeTestSatellites(n int) []*Satellite {
	sats := make([]*Satellite, n)
	for i := range sats {
		sats[i] = NewSatellite(&Elements{CatalogNumber: i})
	}
	return sats
}

func TestCollectionSweepCoversWholeCatalogOverTime(t *testing.T) {
	sats := makeTestSatellites(10)
	c := NewCollection(sats, 3)

	seen := map[int]bool{}
	update := func(s *Satellite) error { seen[s.Elements.CatalogNumber] = true; return nil }
	neverRenders := func(*Satellite) bool { return false }

	for i := 0; i < 10; i++ {
		c.Tick(update, neverRenders)
	}
	if len(seen) != 10 {
		t.Errorf("expected all 10 satellites swept eventually, saw %d", len(seen))
	}
}

func TestCollectionKeepsVisibleMembersAcrossFrames(t *testing.T) {
	sats := makeTestSatellites(5)
	c := NewCollection(sats, 1)

	update := func(*Satellite) error { return nil }
	alwaysRenders := func(*Satellite) bool { return true }

	drawn := c.Tick(update, alwaysRenders)
	if len(drawn) != 1 {
		t.Fatalf("first tick: expected 1 drawn (sweep size 1), got %d", len(drawn))
	}
	first := drawn[0]

	// Second tick: the previously-visible satellite should render again
	// from the visible-list pass, without needing the sweep to reach it.
	drawn2 := c.Tick(update, alwaysRenders)
	found := false
	for _, s := range drawn2 {
		if s == first {
			found = true
		}
	}
	if !found {
		t.Error("expected previously-visible satellite to keep rendering from the visible list")
	}
}

func TestCollectionDropsFromVisibleListWhenNoLongerRendering(t *testing.T) {
	sats := makeTestSatellites(3)
	c := NewCollection(sats, 3)

	renders := true
	update := func(*Satellite) error { return nil }
	renderFn := func(*Satellite) bool { return renders }

	c.Tick(update, renderFn)
	if len(c.visible) == 0 {
		t.Fatal("expected satellites to enter the visible list")
	}

	renders = false
	c.Tick(update, renderFn)
	if len(c.visible) != 0 {
		t.Errorf("expected visible list to drain once nothing renders, got %d entries", len(c.visible))
	}
}

func TestCollectionInvariantHoldsForSelection(t *testing.T) {
	sats := makeTestSatellites(3)
	c := NewCollection(sats, 3)
	update := func(*Satellite) error { return nil }
	renderFn := func(*Satellite) bool { return true }
	c.Tick(update, renderFn)

	rendered := map[*Satellite]bool{}
	for _, s := range c.All {
		rendered[s] = true
	}
	if !c.Invariant(rendered, nil) {
		t.Error("expected invariant to hold when every visible member rendered")
	}
}

func TestCollectionPropagationErrorDropsFromVisible(t *testing.T) {
	sats := makeTestSatellites(2)
	c := NewCollection(sats, 2)
	update := func(*Satellite) error { return nil }
	renderFn := func(*Satellite) bool { return true }
	c.Tick(update, renderFn)
	if len(c.visible) != 2 {
		t.Fatalf("expected both satellites visible, got %d", len(c.visible))
	}

	failing := errors.New("decayed")
	c.Tick(func(*Satellite) error { return failing }, renderFn)
	if len(c.visible) != 0 {
		t.Errorf("expected visible list cleared once updates start failing, got %d", len(c.visible))
	}
}
