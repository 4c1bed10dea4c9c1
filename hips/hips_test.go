package hips

import (
	"sync"
	"testing"
	"time"
)

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]fakeResp
	calls     map[string]int
}

type fakeResp struct {
	data []byte
	code int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{responses: map[string]fakeResp{}, calls: map[string]int{}}
}

func (f *fakeFetcher) Get(url string) ([]byte, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	r, ok := f.responses[url]
	if !ok {
		return nil, 404
	}
	return r.data, r.code
}

func TestTilePathLayout(t *testing.T) {
	got := TilePath(5, 12345, "jpg")
	want := "Norder5/Dir10000/Npix12345.jpg"
	if got != want {
		t.Errorf("TilePath = %q, want %q", got, want)
	}
}

func TestGetTile404IsSticky(t *testing.T) {
	fetcher := newFakeFetcher()
	s := NewSurvey("http://x", "", Settings{
		CreateTile: func(order, pix int, data []byte) (any, int, bool) { return data, len(data), false },
		MinTileInterval: time.Millisecond,
	}, fetcher)

	_, status := s.GetTile(3, 100, true)
	if status != StatusLoading {
		t.Fatalf("expected first call to report loading, got %v", status)
	}
	waitForPending(t, s, 3, 100)

	_, status = s.GetTile(3, 100, true)
	if status != StatusAbsent {
		t.Fatalf("expected 404 tile to be absent, got %v", status)
	}

	calls := fetcher.calls[fetcher.urlFor(s, 3, 100)]
	if calls != 1 {
		t.Errorf("expected exactly one fetch for a 404 tile, got %d", calls)
	}
}

func (f *fakeFetcher) urlFor(s *Survey, order, pix int) string {
	return s.URL + "/" + TilePath(order, pix, "jpg")
}

func TestGetTileSucceeds(t *testing.T) {
	fetcher := newFakeFetcher()
	s := NewSurvey("http://x", "", Settings{
		CreateTile: func(order, pix int, data []byte) (any, int, bool) { return string(data), len(data), false },
		MinTileInterval: time.Millisecond,
	}, fetcher)
	fetcher.responses[fetcher.urlFor(s, 1, 5)] = fakeResp{data: []byte("tile-data"), code: 200}

	_, status := s.GetTile(1, 5, true)
	if status != StatusLoading {
		t.Fatalf("expected first call to report loading, got %v", status)
	}
	waitForReady(t, s, 1, 5)

	tile, status := s.GetTile(1, 5, true)
	if status != StatusReady {
		t.Fatalf("expected tile to become ready, got %v", status)
	}
	if tile.User.(string) != "tile-data" {
		t.Errorf("expected created tile to carry fetched data, got %v", tile.User)
	}
}

func waitForPending(t *testing.T, s *Survey, order, pix int) {
	t.Helper()
	key := cacheKey{Survey: s.Hash, Order: order, Pix: int64(pix)}
	for i := 0; i < 200; i++ {
		s.mu.Lock()
		_, still := s.pending[key]
		s.mu.Unlock()
		if !still {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for fetch to complete")
}

func waitForReady(t *testing.T, s *Survey, order, pix int) {
	t.Helper()
	key := cacheKey{Survey: s.Hash, Order: order, Pix: int64(pix)}
	for i := 0; i < 200; i++ {
		s.mu.Lock()
		_, ready := s.cache.Get(key)
		s.mu.Unlock()
		if ready {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for tile to become ready")
}

func TestPropertiesParsing(t *testing.T) {
	data := []byte("hips_order = 9\nhips_tile_width=512\nhips_frame=equatorial\nhips_tile_format = jpg png\n")
	p, err := ParseProperties(data)
	if err != nil {
		t.Fatalf("ParseProperties: %v", err)
	}
	if p.Order != 9 || p.TileWidth != 512 || p.Frame != "equatorial" || p.TileFormat != "jpg" {
		t.Errorf("unexpected parse result: %+v", p)
	}
}

func TestParseHipsList(t *testing.T) {
	data := []byte("hips_order=5\nhips_frame=equatorial\n\nhips_order=9\nhips_frame=galactic\n")
	list, err := ParseHipsList(data)
	if err != nil {
		t.Fatalf("ParseHipsList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected two surveys, got %d", len(list))
	}
	if list[0].Order != 5 || list[1].Order != 9 {
		t.Errorf("unexpected orders: %v, %v", list[0].Order, list[1].Order)
	}
}

func TestIteratorBreadthFirstSeed(t *testing.T) {
	it := NewIterator()
	seen := map[int]bool{}
	for i := 0; i < 12; i++ {
		order, pix, ok := it.Next()
		if !ok {
			t.Fatalf("expected 12 order-0 seeds, got %d", i)
		}
		if order != 0 {
			t.Errorf("expected order 0 seed, got %d", order)
		}
		seen[pix] = true
	}
	if len(seen) != 12 {
		t.Errorf("expected 12 distinct seed pixels, got %d", len(seen))
	}
	if _, ok := it.Next(); ok {
		t.Error("expected queue to be empty after draining the 12 seeds")
	}
}

func TestIteratorPushChildren(t *testing.T) {
	it := &Iterator{}
	it.PushChildren(2, 10)
	var pixels []int
	for {
		order, pix, ok := it.Next()
		if !ok {
			break
		}
		if order != 3 {
			t.Errorf("expected children at order 3, got %d", order)
		}
		pixels = append(pixels, pix)
	}
	want := []int{40, 41, 42, 43}
	if len(pixels) != len(want) {
		t.Fatalf("expected 4 children, got %v", pixels)
	}
	for i, p := range want {
		if pixels[i] != p {
			t.Errorf("child %d = %d, want %d", i, pixels[i], p)
		}
	}
}
