package ot

// Font represents the internal structure of an OpenType font.
// It is used to navigate identification properties of a font, in particular
// the naming table and the design-variation tables of variable fonts.
type Font struct {
	Header        *FontHeader
	tables        map[Tag]Table
	Names         *NameTable    // typed access to table 'name' (required)
	Fvar          *FvarTable    // typed access to table 'fvar'; nil for non-variable fonts
	parseErrors   []FontError   // Errors accumulated during parsing
	parseWarnings []FontWarning // Warnings accumulated during parsing
}

// FontHeader is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Only tables 'head', 'maxp', 'name' and 'fvar' are interpreted by this
// package; every other table contained in the font is returned as a generic
// table, i.e. no table information will be dropped.
//
// Table tag names are case-sensitive, following the names in the OpenType
// specification.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// IsVariable reports whether this font is a variable font, i.e. carries a
// design-variation table 'fvar'.
func (otf *Font) IsVariable() bool {
	return otf != nil && otf.Fvar != nil
}

// Errors returns all errors encountered during font parsing.
// These errors represent issues that were found but did not prevent parsing
// from completing. Clients can inspect these errors to determine if the font
// is suitable for their use case.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font parsing.
// Warnings indicate potential issues that are generally safe to ignore.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// HasCriticalErrors returns true if any critical errors were encountered
// during parsing. Fonts with critical errors may be unreliable or unusable.
func (otf *Font) HasCriticalErrors() bool {
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
//
//	MakeTag([]byte("fvar"))
//
// If b is shorter or longer, it will be silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various OpenType font tables.
//
// Required tables, according to the OpenType specification:
// 'cmap' (Character to glyph mapping), 'head' (Font header), 'hhea' (Horizontal header),
// 'hmtx' (Horizontal metrics), 'maxp' (Maximum profile), 'name' (Naming table),
// 'OS/2' (OS/2 and Windows specific metrics), 'post' (PostScript information).
// This package only insists on the subset it interprets (see RequiredTables).
//
// For variable fonts: 'fvar' (Font variations), 'gvar'/'cvar' (variation data),
// 'avar' (Axis variations), 'STAT' (Style attributes).
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	t := &genericTable{tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	},
	}
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of OpenType tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
	self   any
}

// Extent returns offset and byte size of this table within the OpenType font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if k, ok := safeSelf(tself).(*HeadTable); ok {
		return k
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable {
	if k, ok := safeSelf(tself).(*MaxPTable); ok {
		return k
	}
	return nil
}

// AsName returns this table as a name table, or nil.
func (tself TableSelf) AsName() *NameTable {
	if k, ok := safeSelf(tself).(*NameTable); ok {
		return k
	}
	return nil
}

// AsFvar returns this table as an fvar table, or nil.
func (tself TableSelf) AsFvar() *FvarTable {
	if k, ok := safeSelf(tself).(*FvarTable); ok {
		return k
	}
	return nil
}

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
// Only a small subset of fields are made public by HeadTable, as they are
// needed for consistency-checks and client information.
type HeadTable struct {
	tableBase
	Flags      uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm uint16 // values 16 … 16384 are valid
	MacStyle   uint16 // bold/italic/… style bits
}

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// --- Naming table ----------------------------------------------------------

// NameRecord is one localized string entry of the naming table. The string
// payload is kept as raw, undecoded bytes: records MAY carry bytes that fail
// to decode under their declared encoding, and interpretation is the job of
// package otquery.
//
// The naming table may contain multiple records sharing the same NameID
// (duplicates across platforms and locales); resolution, not storage,
// disambiguates them.
type NameRecord struct {
	PlatformID uint16 // platform namespace (Unicode=0, Macintosh=1, ISO=2, Microsoft=3)
	EncodingID uint16 // platform-specific encoding / character-set identifier
	LanguageID uint16 // platform-specific language identifier
	NameID     uint16 // semantic slot, see https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
	Value      []byte // raw string bytes; read-only view into the font data
}

// NameTable is the naming table 'name' of a font. It allows multilingual
// strings to be associated with the font: copyright notices, font names,
// family names, style names, and so on.
type NameTable struct {
	tableBase
	Format  uint16
	records []NameRecord
}

func newNameTable(tag Tag, b binarySegm, offset, size uint32) *NameTable {
	t := &NameTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// Records returns the name records of this table, in the order the font
// declares them. The returned slice is shared; records are immutable once read.
func (t *NameTable) Records() []NameRecord {
	if t == nil {
		return nil
	}
	return t.records
}

// --- Font variations table -------------------------------------------------

// VariationAxis is one design axis of a variable font, e.g. 'wght' or 'wdth'.
// Axis extremes and default are given in design units (not normalized).
type VariationAxis struct {
	Tag     Tag     // axis tag, e.g. 'wght'
	Minimum float64 // minimum coordinate value
	Default float64 // default coordinate value
	Maximum float64 // maximum coordinate value
	Flags   uint16
	NameID  uint16 // naming-table slot for the axis display name
}

// NoNameID marks an absent optional naming-table reference.
const NoNameID uint16 = 0xffff

// NamedInstance is one discrete, named point in a variable font's design
// space, e.g. "Bold" or "Condensed Light".
type NamedInstance struct {
	SubfamilyNameID  uint16    // naming-table slot for the instance's subfamily string
	Flags            uint16
	Coordinates      []float64 // one value per axis, in axis order
	PostScriptNameID uint16    // optional; NoNameID if the font does not carry it
}

// FvarTable is the font-variations table 'fvar' of a variable font. It
// declares the design axes of the variation space and the named instances
// within it.
type FvarTable struct {
	tableBase
	axes      []VariationAxis
	instances []NamedInstance
}

func newFvarTable(tag Tag, b binarySegm, offset, size uint32) *FvarTable {
	t := &FvarTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// AxisCount returns the number of design axes of this font.
func (t *FvarTable) AxisCount() int {
	if t == nil {
		return 0
	}
	return len(t.axes)
}

// Axes returns the design axes of this font, in declaration order.
// The returned slice is shared and must not be mutated by clients.
func (t *FvarTable) Axes() []VariationAxis {
	if t == nil {
		return nil
	}
	return t.axes
}

// Instances returns the named instances of this font, in declaration order.
// The declaration order generally reflects the font author's intended
// presentation order (e.g., Thin → Black) and is preserved throughout this
// module. The returned slice is shared and must not be mutated by clients.
func (t *FvarTable) Instances() []NamedInstance {
	if t == nil {
		return nil
	}
	return t.instances
}
