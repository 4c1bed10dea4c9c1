package aurora

import "fmt"

// OID is a 64-bit object id (§6, GLOSSARY). The high bit selects the
// variant: 1 means a catalog id (a 4-char tag plus a 32-bit index — the
// 3rd design-note item keeps this bit layout for wire compatibility with
// existing catalog files), 0 means a Gaia source id taken verbatim.
//
// The rewrite exposes the bit-stuffed value as a tagged union via
// [OID.Catalog] / [OID.Gaia] rather than requiring callers to mask bits
// themselves (§9 design note: "expose it as a tagged variant... at the
// API").
type OID uint64

const oidCatalogFlag = uint64(1) << 63

// OIDCatalog builds a catalog OID from a 4-byte tag and a 32-bit index.
// Only the low 3 bytes of tag participate in the on-disk layout used by the
// original catalogs; the 4th byte is carried for readability and ignored on
// the wire, matching the concrete example in §8 ("HD\0\0", 8890).
func OIDCatalog(tag [4]byte, index uint32) OID {
	t := uint64(tag[0])<<16 | uint64(tag[1])<<8 | uint64(tag[2])
	return OID(oidCatalogFlag | t<<32 | uint64(index))
}

// OIDGaia builds a Gaia-source OID. id must have its high bit clear; if it
// doesn't, the high bit is cleared for it (Gaia identifiers are defined to
// fit in 63 bits in practice).
func OIDGaia(id uint64) OID {
	return OID(id &^ oidCatalogFlag)
}

// IsCatalog reports whether this OID is a catalog id (high bit set).
func (o OID) IsCatalog() bool { return uint64(o)&oidCatalogFlag != 0 }

// IsGaia reports whether this OID is a Gaia source id (high bit clear).
func (o OID) IsGaia() bool { return !o.IsCatalog() }

// Catalog returns the 4-char catalog tag and 32-bit index. Panics in debug
// builds (KindProgramming) if called on a Gaia OID.
func (o OID) Catalog() (tag [4]byte, index uint32) {
	if !o.IsCatalog() {
		assertf(false, "OID.Catalog called on a Gaia id")
		return tag, 0
	}
	v := uint64(o) &^ oidCatalogFlag
	t := v >> 32
	tag[0] = byte(t >> 16)
	tag[1] = byte(t >> 8)
	tag[2] = byte(t)
	tag[3] = 0
	return tag, uint32(v)
}

// Gaia returns the raw Gaia source id. Panics in debug builds
// (KindProgramming) if called on a catalog OID.
func (o OID) Gaia() uint64 {
	if !o.IsGaia() {
		assertf(false, "OID.Gaia called on a catalog id")
		return 0
	}
	return uint64(o)
}

func (o OID) String() string {
	if o.IsGaia() {
		return fmt.Sprintf("Gaia(%d)", o.Gaia())
	}
	tag, idx := o.Catalog()
	return fmt.Sprintf("%s(%d)", tag, idx)
}
