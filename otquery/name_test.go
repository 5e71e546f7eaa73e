package otquery

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/varfont/internal/testfont"
	"github.com/npillmayer/varfont/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type NameTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestNameFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	suite.Run(t, new(NameTestEnviron))
}

// record builds a name record with UTF-16 BE payload for Unicode/Windows
// platforms and raw bytes for everything else.
func record(platform, encoding, language, nameID uint16, value string) ot.NameRecord {
	payload := []byte(value)
	if platform == 0 || platform == 3 {
		payload = testfont.UTF16BE(value)
	}
	return ot.NameRecord{
		PlatformID: platform,
		EncodingID: encoding,
		LanguageID: language,
		NameID:     nameID,
		Value:      payload,
	}
}

// --- Tests -----------------------------------------------------------------

func (env *NameTestEnviron) TestPlatformPriorityOrdering() {
	// insertion order is the reverse of the resolution priority, to prove
	// that sorting, not insertion order, governs the result
	records := []ot.NameRecord{
		record(2, 0, 0, 1, "ISO"),
		record(1, 0, 0, 1, "Macintosh"),
		record(0, 3, 0, 1, "Unicode"),
		record(3, 1, 0x409, 1, "Microsoft"),
	}
	value, ok := NameFromRecords(records, sfnt.NameIDFamily)
	env.Require().True(ok, "expected a decodable family name")
	env.Equal("Microsoft", value, "expected the Microsoft-platform record to win")
}

func (env *NameTestEnviron) TestEnglishPreference() {
	records := []ot.NameRecord{
		record(1, 0, 12, 1, "Famille"), // Macintosh, French
		record(1, 0, 0, 1, "Family"),   // Macintosh, English
	}
	value, ok := NameFromRecords(records, sfnt.NameIDFamily)
	env.Require().True(ok)
	env.Equal("Family", value, "expected the English-locale record to win")
}

func (env *NameTestEnviron) TestLanguageTieBreak() {
	records := []ot.NameRecord{
		record(1, 0, 33, 1, "Famiglia"), // Macintosh, Italian
		record(1, 0, 12, 1, "Famille"),  // Macintosh, French
	}
	value, ok := NameFromRecords(records, sfnt.NameIDFamily)
	env.Require().True(ok)
	env.Equal("Famille", value, "expected the lower language ID to win")
}

func (env *NameTestEnviron) TestDecodeFailureSkipped() {
	// the higher-priority Windows record carries a malformed UTF-16 payload
	bad := ot.NameRecord{PlatformID: 3, EncodingID: 1, LanguageID: 0x409, NameID: 1,
		Value: []byte{0x00, 'B', 0x00}} // odd byte count
	good := record(1, 0, 0, 1, "Fallback")
	value, ok := NameFromRecords([]ot.NameRecord{bad, good}, sfnt.NameIDFamily)
	env.Require().True(ok, "decode failure must be recoverable, not absent")
	env.Equal("Fallback", value, "expected the decodable lower-priority record")
}

func (env *NameTestEnviron) TestUnsupportedEncodingSkipped() {
	shiftJIS := record(3, 2, 0x409, 1, "Family JP") // Windows/ShiftJIS, not decoded
	mac := record(1, 0, 0, 1, "Family")
	value, ok := NameFromRecords([]ot.NameRecord{shiftJIS, mac}, sfnt.NameIDFamily)
	env.Require().True(ok)
	env.Equal("Family", value)
}

func (env *NameTestEnviron) TestAbsentSlot() {
	records := []ot.NameRecord{record(3, 1, 0x409, 1, "Family")}
	_, ok := NameFromRecords(records, sfnt.NameIDTypographicFamily)
	env.False(ok, "expected slot 16 to be absent")
}

func (env *NameTestEnviron) TestDeterminism() {
	records := []ot.NameRecord{
		record(1, 0, 12, 1, "Famille"),
		record(3, 1, 0x409, 1, "Family"),
		record(0, 3, 0, 1, "Unicode Family"),
	}
	first, ok := NameFromRecords(records, sfnt.NameIDFamily)
	env.Require().True(ok)
	for range 10 {
		value, ok := NameFromRecords(records, sfnt.NameIDFamily)
		env.Require().True(ok)
		env.Equal(first, value, "expected repeated resolution to be stable")
	}
}

func (env *NameTestEnviron) TestSortDoesNotMutateInput() {
	records := []ot.NameRecord{
		record(2, 0, 0, 1, "ISO"),
		record(3, 1, 0x409, 1, "Microsoft"),
	}
	_ = SortByPriority(records)
	env.Equal(uint16(2), records[0].PlatformID, "expected input order to be untouched")
}

func (env *NameTestEnviron) TestUnknownPlatformRanksLast() {
	records := []ot.NameRecord{
		record(7, 0, 0, 1, "Custom"), // platform outside the priority list
		record(2, 0, 0, 1, "ISO"),
	}
	sorted := SortByPriority(records)
	env.Equal(uint16(2), sorted[0].PlatformID, "expected ISO to rank above an unknown platform")
	env.Equal(uint16(7), sorted[1].PlatformID)
}

func (env *NameTestEnviron) TestMacRomanDecoding() {
	rec := ot.NameRecord{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 4,
		Value: []byte{'F', 0x8a, 'h', 'r', 'e'}} // 0x8a is 'ä' in Mac Roman
	value, err := DecodeRecord(rec)
	env.Require().NoError(err)
	env.Equal("Fähre", value)
}

func (env *NameTestEnviron) TestNamesRange() {
	font := testfont.Build(
		[]testfont.Name{
			testfont.WindowsName(1, "Test Sans"),
			testfont.WindowsName(2, "Regular"),
		},
		nil, nil, testfont.Options{},
	)
	otf, err := ot.Parse(font)
	env.Require().NoError(err)
	collected := map[sfnt.NameID]string{}
	for nameID, value := range NamesRange(otf) {
		if _, ok := collected[nameID]; !ok {
			collected[nameID] = value
		}
	}
	env.Equal("Test Sans", collected[sfnt.NameIDFamily])
	env.Equal("Regular", collected[sfnt.NameIDSubfamily])
}
