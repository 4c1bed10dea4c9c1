package aurora

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ObserverSnapshot is the small value type the §9 design note asks for: a
// single structural representation of "what the observer currently is",
// cheap enough to hash and compare by value instead of maintaining two
// hand-rolled hash fields. HashPartial/HashFull derive from it.
type ObserverSnapshot struct {
	Longitude float64
	Latitude  float64
	Elevation float64
	Horizon   float64
	Pressure  float64
	Yaw       float64
	Pitch     float64
	Roll      float64
	TT        float64
}

// hashPartial hashes the fields that drive the "fast vs accurate" refresh
// decision independent of pointing/time (§3): location, horizon, pressure.
func (s ObserverSnapshot) hashPartial() uint64 {
	var buf [40]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(s.Longitude))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(s.Latitude))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(s.Elevation))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(s.Horizon))
	binary.LittleEndian.PutUint64(buf[32:40], math.Float64bits(s.Pressure))
	return xxhash.Sum64(buf[:])
}

// hashFull additionally folds in pointing and time, the full hash of §3
// used to decide whether update(observer, fast) is a no-op.
func (s ObserverSnapshot) hashFull() uint64 {
	var buf [72]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(s.Longitude))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(s.Latitude))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(s.Elevation))
	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(s.Horizon))
	binary.LittleEndian.PutUint64(buf[32:40], math.Float64bits(s.Pressure))
	binary.LittleEndian.PutUint64(buf[40:48], math.Float64bits(s.Yaw))
	binary.LittleEndian.PutUint64(buf[48:56], math.Float64bits(s.Pitch))
	binary.LittleEndian.PutUint64(buf[56:64], math.Float64bits(s.Roll))
	binary.LittleEndian.PutUint64(buf[64:72], math.Float64bits(s.TT))
	return xxhash.Sum64(buf[:])
}
