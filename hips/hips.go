// Package hips implements the Hierarchical Progressive Survey tile engine
// (§4.6): breadth-first traversal of the healpix tile tree, an LRU tile
// cache, and the asynchronous fetch/decode pipeline that keeps per-frame
// cost bounded regardless of survey size.
package hips

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Status mirrors the HTTP-like out_code of §4.6's hips_get_tile.
type Status int

const (
	StatusLoading Status = 0
	StatusReady   Status = 200
	StatusAbsent  Status = 404
)

// TileData is the raw decoded payload a Settings.CreateTile hook turns
// into a renderer texture.
type TileData struct {
	Bytes         []byte
	Cost          int  // bytes, used for cache accounting
	Transparency  bool // true if this tile's children are known to be empty
}

// Tile is a cached entry: either the user's created tile, or a sentinel
// recording a permanent 404 (§4.6: "remembered as absent").
type Tile struct {
	User         any
	Cost         int
	Transparency bool
	Absent       bool
}

// Settings configures a Survey's tile lifecycle hooks (§4.6's
// hips_create settings argument).
type Settings struct {
	CreateTile func(order, pix int, data []byte) (user any, cost int, transparency bool)
	DeleteTile func(user any)

	ForcedExt string // "" lets Survey use the properties file's hips_tile_format

	CacheSize int // tile count; 0 defaults to 512

	// MinTileInterval throttles new downloads (§4.6: "~1 tile per second
	// unless NO_DELAY is set").
	MinTileInterval time.Duration
}

// cacheKey is (survey-hash, order, pix) per §4.6.
type cacheKey struct {
	Survey uint64
	Order  int
	Pix    int64
}

// Survey is one HiPS tile source (§4.6's hips_create result).
type Survey struct {
	URL         string
	ReleaseDate string
	Settings    Settings
	Hash        uint64

	mu         sync.Mutex
	properties *Properties
	allSky     *AllSkyImage
	cache      *lru.Cache[cacheKey, *Tile]
	pending    map[cacheKey]struct{}
	failed404  map[cacheKey]struct{}
	backoff    map[cacheKey]time.Time
	backoffDur map[cacheKey]time.Duration
	lastFetch  time.Time

	fetcher Fetcher
}

// NewSurvey constructs a Survey. fetcher performs the actual network I/O
// (§5: "a separate pool"); tests can substitute an in-memory Fetcher.
func NewSurvey(url, releaseDate string, settings Settings, fetcher Fetcher) *Survey {
	size := settings.CacheSize
	if size <= 0 {
		size = 512
	}
	cache, _ := lru.New[cacheKey, *Tile](size)
	s := &Survey{
		URL: url, ReleaseDate: releaseDate, Settings: settings,
		Hash:      surveyHash(url),
		cache:     cache,
		pending:    map[cacheKey]struct{}{},
		failed404:  map[cacheKey]struct{}{},
		backoff:    map[cacheKey]time.Time{},
		backoffDur: map[cacheKey]time.Duration{},
		fetcher:    fetcher,
	}
	return s
}

// IsReady reports whether the properties file is parsed and any all-sky
// image is decoded (§4.6's hips_is_ready).
func (s *Survey) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.properties == nil {
		return false
	}
	if s.properties.AllSkyAvailable && s.allSky == nil {
		return false
	}
	return true
}

// Properties returns the parsed properties file, or nil before it loads.
func (s *Survey) Properties() *Properties {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.properties
}

// EnsureProperties fetches and parses the properties file, and the all-sky
// image when the survey has one; it is a no-op once the properties are
// loaded. The fetches run synchronously on the calling goroutine and block
// it until they finish. Call it until IsReady is true.
func (s *Survey) EnsureProperties() {
	s.mu.Lock()
	if s.properties != nil {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	data, code := s.fetcher.Get(s.URL + "/properties")
	if code != 200 {
		return
	}
	props, err := ParseProperties(data)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.properties = props
	s.mu.Unlock()
	if props.AllSkyAvailable {
		ext := s.extension()
		adata, acode := s.fetcher.Get(s.URL + "/Norder3/Allsky." + ext)
		if acode == 200 {
			if img, err := DecodeAllSky(adata); err == nil {
				s.mu.Lock()
				s.allSky = img
				s.mu.Unlock()
			}
		}
	}
}

func (s *Survey) extension() string {
	if s.Settings.ForcedExt != "" {
		return s.Settings.ForcedExt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.properties != nil && s.properties.TileFormat != "" {
		return s.properties.TileFormat
	}
	return "jpg"
}

// GetTile returns the cached tile (if any) and its status (§4.6's
// hips_get_tile), beginning an asynchronous fetch on a cache miss subject
// to the throttle and 404/backoff rules.
func (s *Survey) GetTile(order, pix int, noDelay bool) (*Tile, Status) {
	key := cacheKey{Survey: s.Hash, Order: order, Pix: int64(pix)}

	s.mu.Lock()
	if t, ok := s.cache.Get(key); ok {
		s.mu.Unlock()
		if t.Absent {
			return nil, StatusAbsent
		}
		return t, StatusReady
	}
	if _, absent := s.failed404[key]; absent {
		s.mu.Unlock()
		return nil, StatusAbsent
	}
	if until, backing := s.backoff[key]; backing && time.Now().Before(until) {
		s.mu.Unlock()
		return nil, StatusLoading
	}
	if _, inFlight := s.pending[key]; inFlight {
		s.mu.Unlock()
		return nil, StatusLoading
	}
	if !noDelay && time.Since(s.lastFetch) < s.throttleInterval() {
		s.mu.Unlock()
		return nil, StatusLoading
	}
	s.pending[key] = struct{}{}
	s.lastFetch = time.Now()
	s.mu.Unlock()

	go s.fetchTile(key, order, pix)
	return nil, StatusLoading
}

func (s *Survey) throttleInterval() time.Duration {
	if s.Settings.MinTileInterval > 0 {
		return s.Settings.MinTileInterval
	}
	return time.Second
}

func (s *Survey) fetchTile(key cacheKey, order, pix int) {
	path := TilePath(order, pix, s.extension())
	data, code := s.fetcher.Get(s.URL + "/" + path)

	s.mu.Lock()
	delete(s.pending, key)
	switch {
	case code == 200:
		delete(s.backoff, key)
		delete(s.backoffDur, key)
		user, cost, transparency := s.Settings.CreateTile(order, pix, data)
		s.cache.Add(key, &Tile{User: user, Cost: cost, Transparency: transparency})
	case code == 404:
		s.failed404[key] = struct{}{}
	default:
		// Network error, not a content-absence 404: retry with exponential
		// backoff (§4.6).
		wait := s.backoffDur[key] * 2
		if wait <= 0 {
			wait = time.Second
		}
		if wait > time.Minute {
			wait = time.Minute
		}
		s.backoffDur[key] = wait
		s.backoff[key] = time.Now().Add(wait)
	}
	s.mu.Unlock()
}

// AllSky returns the decoded all-sky fallback image, or nil if absent.
func (s *Survey) AllSky() *AllSkyImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allSky
}

func surveyHash(url string) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	for i := 0; i < len(url); i++ {
		h ^= uint64(url[i])
		h *= 1099511628211
	}
	return h
}
