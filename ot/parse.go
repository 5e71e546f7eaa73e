package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments will occasionally cite passages from the OpenType
// specification version 1.9;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Maximum reasonable counts for OpenType table structures.
// These limits prevent malicious fonts from claiming unreasonably large counts
// that could lead to excessive memory allocation or out-of-bounds reads.
const (
	MaxNameRecordCount = 10000 // name records: typically tens
	MaxAxisCount       = 100   // design axes: typically < 10
	MaxInstanceCount   = 1000  // named instances: typically < 50
)

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// fixed1616 converts an OpenType Fixed (16.16 signed fixed-point) value.
func fixed1616(v uint32) float64 {
	return float64(int32(v)) / 65536.0
}

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after the Parse
// function returns. Its elements are assumed immutable while the ot.Font
// remains in use.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	ec := &errorCollector{}

	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		ec.addError(T(""), "Header", fmt.Sprintf("font type not supported: %x", h.FontType), SeverityCritical, 0)
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		ec.addError(T(""), "TableRecords", fmt.Sprintf("table count too large: %v", err), SeverityCritical, 12)
		return nil, errFontFormat(fmt.Sprintf("table count too large: %v", err))
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		ec.addError(T(""), "TableRecords", "table record entries", SeverityCritical, 12)
		return nil, errFontFormat("table record entries")
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			ec.addError(T(""), "TableRecords", "table order", SeverityCritical, 12)
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			ec.addError(tag, "Offset", "invalid table offset", SeverityCritical, off)
			return nil, errFontFormat("invalid table offset")
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			ec.addError(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), SeverityCritical, off)
			return nil, errFontFormat(fmt.Sprintf("table %s: size calculation overflow: %v", tag, err))
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			ec.addError(tag, "Bounds", fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)), SeverityCritical, off)
			return nil, errFontFormat(fmt.Sprintf("table %s: bounds [%d:%d] exceed font size %d",
				tag, off, tableEnd, len(src)))
		}
		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			return nil, err
		}
	}
	if err := extractNamingInfo(otf, ec); err != nil {
		return nil, err
	}

	// Transfer accumulated errors and warnings to the Font
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings

	return otf, nil
}

// RequiredTables lists the tables this package insists on. The OpenType
// specification requires more ('cmap', 'hhea', 'hmtx', 'OS/2', 'post'), but
// for font identification purposes the subset below is sufficient, and we do
// not want to reject an identifiable font over a missing metrics table.
var RequiredTables = []string{
	"head", "maxp", "name",
}

// Consistency check and shortcuts to essential tables.
func extractNamingInfo(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		h := otf.tables[T(tag)]
		if h == nil {
			ec.addError(T(tag), "Missing", "missing required table", SeverityCritical, 0)
			return errFontFormat("missing required table " + tag)
		}
	}
	otf.Names = otf.tables[T("name")].Self().AsName()
	if fv := otf.tables[T("fvar")]; fv != nil {
		otf.Fvar = fv.Self().AsFvar()
	}
	return nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	case T("name"):
		return parseName(t, b, offset, size, ec)
	case T("fvar"):
		return parseFvar(t, b, offset, size, ec)
	}
	tracer().Debugf("font contains table (%s), will not be interpreted", t)
	ec.addWarning(t, "table not interpreted", offset)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		ec.addError(tag, "Size", fmt.Sprintf("head table too small: %d bytes (need 54)", size), SeverityCritical, offset)
		return nil, errFontFormat("size of head table")
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)      // flags
	t.UnitsPerEm, _ = b.u16(18) // units per em
	t.MacStyle, _ = b.u16(44)   // macStyle bits
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		ec.addError(tag, "Size", fmt.Sprintf("maxp table too small: %d bytes (need 6)", size), SeverityCritical, offset)
		return nil, errFontFormat("size of maxp table")
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}

// --- Naming table ----------------------------------------------------------

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// parseName decodes the record directory of table 'name' and attaches the
// raw (undecoded) string bytes to each record.
//
// "The name records are sorted by platform ID, then platform-specific
// encoding ID, then language ID, then name ID" — many fonts violate this,
// so declaration order is kept and no sortedness is assumed.
func parseName(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < nameHeaderSize {
		ec.addError(tag, "Size", fmt.Sprintf("name table too small: %d bytes (need %d)", size, nameHeaderSize), SeverityCritical, offset)
		return nil, errFontFormat("name section corrupt")
	}
	t := newNameTable(tag, b, offset, size)
	t.Format, _ = b.u16(0)
	count, _ := b.u16(2)
	strOffset, _ := b.u16(4)
	if int(strOffset) > len(b) {
		ec.addError(tag, "StringStorage", fmt.Sprintf("string offset %d exceeds table size %d", strOffset, len(b)), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("name table string offset %d exceeds table size %d", strOffset, len(b)))
	}
	if count > MaxNameRecordCount {
		ec.addError(tag, "NameRecords", fmt.Sprintf("unreasonable record count %d", count), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("name table claims %d records", count))
	}
	nameRecsSize, err := checkedMulInt(nameRecordSize, int(count))
	if err != nil {
		return nil, errFontFormat(fmt.Sprintf("name table records size overflow: %v", err))
	}
	requiredSize, err := checkedAddInt(nameHeaderSize, nameRecsSize)
	if err != nil {
		return nil, errFontFormat(fmt.Sprintf("name table size calculation overflow: %v", err))
	}
	if len(b) < requiredSize {
		ec.addError(tag, "NameRecords", fmt.Sprintf("record section out of bounds: count=%d", count), SeverityCritical, offset)
		return nil, errFontFormat("name section corrupt")
	}
	tracer().Debugf("name table has %d strings, starting at %d", count, strOffset)
	t.records = make([]NameRecord, 0, count)
	for i := range int(count) {
		rec := b[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
		strLen := int(u16(rec[8:10]))
		strStart := int(strOffset) + int(u16(rec[10:12]))
		strEnd := strStart + strLen
		if strEnd > len(b) {
			// recoverable: drop this record, keep the rest of the table
			ec.addWarning(tag, fmt.Sprintf("record %d string bounds [%d:%d] exceed table size %d",
				i, strStart, strEnd, len(b)), offset)
			continue
		}
		t.records = append(t.records, NameRecord{
			PlatformID: u16(rec[0:2]),
			EncodingID: u16(rec[2:4]),
			LanguageID: u16(rec[4:6]),
			NameID:     u16(rec[6:8]),
			Value:      b[strStart:strEnd],
		})
	}
	return t, nil
}

// --- Font variations table -------------------------------------------------

const fvarHeaderSize = 16

// parseFvar decodes table 'fvar': the design axes of the variation space and
// the named instances within it.
//
// An instance record carries one coordinate per axis; depending on
// instanceSize it additionally carries a postScriptNameID
// ("set to 6 + axisCount * sizeof(Fixed) if … includes the postScriptNameID").
func parseFvar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < fvarHeaderSize {
		ec.addError(tag, "Size", fmt.Sprintf("fvar table too small: %d bytes (need %d)", size, fvarHeaderSize), SeverityCritical, offset)
		return nil, errFontFormat("size of fvar table")
	}
	t := newFvarTable(tag, b, offset, size)
	major, _ := b.u16(0)
	if major != 1 {
		ec.addError(tag, "Version", fmt.Sprintf("unsupported fvar major version %d", major), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("unsupported fvar version %d", major))
	}
	axesOffset, _ := b.u16(4)
	axisCount, _ := b.u16(8)
	axisSize, _ := b.u16(10)
	instanceCount, _ := b.u16(12)
	instanceSize, _ := b.u16(14)
	if axisCount == 0 || axisCount > MaxAxisCount {
		ec.addError(tag, "Axes", fmt.Sprintf("invalid axis count %d", axisCount), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("fvar axis count %d", axisCount))
	}
	if instanceCount > MaxInstanceCount {
		ec.addError(tag, "Instances", fmt.Sprintf("unreasonable instance count %d", instanceCount), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("fvar claims %d instances", instanceCount))
	}
	// "axisSize … set to 20 for this version"
	if axisSize < 20 {
		ec.addError(tag, "Axes", fmt.Sprintf("invalid axis record size %d", axisSize), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("fvar axis record size %d", axisSize))
	}
	coordsSize := int(axisCount) * 4
	withPSName := int(instanceSize) == coordsSize+6
	if instanceCount > 0 && !withPSName && int(instanceSize) != coordsSize+4 {
		ec.addError(tag, "Instances", fmt.Sprintf("invalid instance record size %d for %d axes", instanceSize, axisCount), SeverityCritical, offset)
		return nil, errFontFormat(fmt.Sprintf("fvar instance record size %d", instanceSize))
	}
	axesEnd, err := checkedAddInt(int(axesOffset), int(axisCount)*int(axisSize))
	if err != nil || axesEnd > len(b) {
		ec.addError(tag, "Axes", fmt.Sprintf("axis records out of bounds: count=%d", axisCount), SeverityCritical, offset)
		return nil, errFontFormat("fvar axis records out of bounds")
	}
	instancesEnd, err := checkedAddInt(axesEnd, int(instanceCount)*int(instanceSize))
	if err != nil || instancesEnd > len(b) {
		ec.addError(tag, "Instances", fmt.Sprintf("instance records out of bounds: count=%d", instanceCount), SeverityCritical, offset)
		return nil, errFontFormat("fvar instance records out of bounds")
	}
	t.axes = make([]VariationAxis, 0, axisCount)
	for i := range int(axisCount) {
		rec := b[int(axesOffset)+i*int(axisSize):]
		t.axes = append(t.axes, VariationAxis{
			Tag:     Tag(u32(rec[0:4])),
			Minimum: fixed1616(u32(rec[4:8])),
			Default: fixed1616(u32(rec[8:12])),
			Maximum: fixed1616(u32(rec[12:16])),
			Flags:   u16(rec[16:18]),
			NameID:  u16(rec[18:20]),
		})
	}
	// "The instances array … immediately follows the axes array."
	t.instances = make([]NamedInstance, 0, instanceCount)
	for i := range int(instanceCount) {
		rec := b[axesEnd+i*int(instanceSize):]
		inst := NamedInstance{
			SubfamilyNameID:  u16(rec[0:2]),
			Flags:            u16(rec[2:4]),
			Coordinates:      make([]float64, axisCount),
			PostScriptNameID: NoNameID,
		}
		for a := range int(axisCount) {
			inst.Coordinates[a] = fixed1616(u32(rec[4+a*4 : 8+a*4]))
		}
		if withPSName {
			inst.PostScriptNameID = u16(rec[4+coordsSize : 6+coordsSize])
		}
		t.instances = append(t.instances, inst)
	}
	tracer().Debugf("fvar table has %d axes and %d named instances", axisCount, instanceCount)
	return t, nil
}
