package otquery

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/varfont/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// PlatformID is the platform namespace of a name record.
type PlatformID uint16

// Platform IDs of OpenType table 'name',
// see https://docs.microsoft.com/en-us/typography/opentype/spec/name#platform-ids
const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDISO       PlatformID = 2 // deprecated by the spec, still found in fonts
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is the platform-specific encoding identifier of a name record.
type EncodingID uint16

const (
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDMacRoman      EncodingID = 0
	EncodingIDWindowsSymbol EncodingID = 0 // we will not decode symbol-font strings
	EncodingIDWindowsBMP    EncodingID = 1
	EncodingIDWindowsUCS4   EncodingID = 10
)

// platformOrder is FontConfig's platform preference: strings from the
// Microsoft and Unicode platforms are the most universally renderable ones
// and are tried first. This is process-wide constant data.
//
// From https://gitlab.freedesktop.org/fontconfig/fontconfig/-/blob/master/src/fcfreetype.c
var platformOrder = [...]PlatformID{
	PlatformIDWindows,
	PlatformIDUnicode,
	PlatformIDMacintosh,
	PlatformIDISO,
}

// platformRank maps a platform ID onto its priority rank, lower is better.
// Platform IDs outside the fixed preference list get the lowest rank, which
// keeps the record order total and defined for all inputs.
func platformRank(pltf uint16) int {
	for rank, p := range platformOrder {
		if PlatformID(pltf) == p {
			return rank
		}
	}
	return len(platformOrder)
}

// isEnglish reports whether a name record is tagged with an English locale.
func isEnglish(rec ot.NameRecord) bool {
	return (PlatformID(rec.PlatformID) == PlatformIDMacintosh && rec.LanguageID == 0) ||
		(PlatformID(rec.PlatformID) == PlatformIDWindows && rec.LanguageID == 0x409)
}

// SortByPriority orders name records by platform and locale priority,
// following FontConfig's preference rules: platform rank first (Microsoft,
// Unicode, Macintosh, ISO, then unrecognized platforms), then name ID, then
// encoding ID, with English-locale records preferred over others and the
// language ID as the final tie-break.
//
// The input is not mutated; a sorted copy is returned.
func SortByPriority(records []ot.NameRecord) []ot.NameRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b ot.NameRecord) int {
		if c := cmp.Compare(platformRank(a.PlatformID), platformRank(b.PlatformID)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.NameID, b.NameID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.EncodingID, b.EncodingID); c != 0 {
			return c
		}
		engA, engB := isEnglish(a), isEnglish(b)
		if engA != engB {
			if engA {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.LanguageID, b.LanguageID)
	})
	return sorted
}

// Name resolves the canonical string for a semantic name slot of a font.
// When multiple localized records exist for the slot, the highest-priority
// decodable one wins (see SortByPriority). Records that fail to decode under
// their declared encoding are skipped; a decode failure is recoverable and
// never surfaces to the caller.
//
// The second return value is false if the font has no record for the slot,
// or if no record for it decodes successfully. Callers decide whether
// absence is fatal.
func Name(otf *ot.Font, nameID sfnt.NameID) (string, bool) {
	if otf == nil || otf.Names == nil {
		return "", false
	}
	return NameFromRecords(otf.Names.Records(), nameID)
}

// NameFromRecords is Name over a caller-supplied record collection.
// It is a pure function: same inputs always yield the same output.
func NameFromRecords(records []ot.NameRecord, nameID sfnt.NameID) (string, bool) {
	for _, rec := range SortByPriority(records) {
		if sfnt.NameID(rec.NameID) != nameID {
			continue
		}
		stringValue, err := DecodeRecord(rec)
		if err != nil {
			tracer().Debugf("skipping name record (%d/%d/%d): %v",
				rec.PlatformID, rec.EncodingID, rec.LanguageID, err)
			continue
		}
		return stringValue, true
	}
	return "", false
}

// NamesRange yields `(nameID, value)` pairs for every decodable name record
// of a font, in priority order. For a name ID with multiple decodable
// records, the highest-priority value is yielded first; clients that keep
// the first value per ID get the same result as calling Name per ID.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		if otf == nil || otf.Names == nil {
			return
		}
		for _, rec := range SortByPriority(otf.Names.Records()) {
			stringValue, err := DecodeRecord(rec)
			if err != nil {
				continue
			}
			if !yield(sfnt.NameID(rec.NameID), stringValue) {
				return
			}
		}
	}
}

// DecodeRecord decodes the raw string bytes of a name record under the
// record's declared platform/encoding pair. Decoding is an ordinary
// error-as-value operation: an unsupported encoding or a malformed payload
// yields an error, never a panic.
//
// Supported are the Unicode platform and the UTF-16 encodings of the
// Windows platform (UTF-16 BE), plus Mac Roman on the Macintosh platform.
func DecodeRecord(rec ot.NameRecord) (string, error) {
	switch PlatformID(rec.PlatformID) {
	case PlatformIDUnicode:
		return decodeNameUTF16(rec.Value)
	case PlatformIDWindows:
		switch EncodingID(rec.EncodingID) {
		case EncodingIDWindowsSymbol, EncodingIDWindowsBMP, EncodingIDWindowsUCS4:
			return decodeNameUTF16(rec.Value)
		}
		return "", fmt.Errorf("unsupported Windows name encoding %d", rec.EncodingID)
	case PlatformIDMacintosh:
		if EncodingID(rec.EncodingID) == EncodingIDMacRoman {
			return decodeNameMacRoman(rec.Value)
		}
		return "", fmt.Errorf("unsupported Macintosh name encoding %d", rec.EncodingID)
	}
	return "", fmt.Errorf("unsupported name platform %d", rec.PlatformID)
}

func decodeNameUTF16(str []byte) (string, error) {
	if len(str)%2 != 0 {
		return "", fmt.Errorf("decoding UTF-16 error: odd byte count %d", len(str))
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

func decodeNameMacRoman(str []byte) (string, error) {
	decoder := charmap.Macintosh.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding Mac Roman error: %v", err)
	}
	return string(s), nil
}
