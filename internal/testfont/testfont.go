// Package testfont builds minimal synthetic SFNT font binaries for tests.
//
// Produced fonts carry tables 'head', 'maxp' and 'name', plus 'fvar' when
// design axes are given. They are complete enough for ot.Parse, but carry no
// glyph data and are not usable for rendering.
package testfont

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Name is one naming-table record to synthesize.
type Name struct {
	Platform uint16
	Encoding uint16
	Language uint16
	NameID   uint16
	Value    []byte
}

// Axis is one fvar design axis to synthesize.
type Axis struct {
	Tag           string
	Min, Def, Max float64
	NameID        uint16
}

// Instance is one fvar named instance to synthesize.
type Instance struct {
	SubfamilyNameID  uint16
	Coords           []float64
	PostScriptNameID uint16 // written only if WithPSNames is set on Build
}

// UTF16BE encodes a string as UTF-16 big-endian bytes, the encoding of
// Unicode- and Windows-platform name records.
func UTF16BE(s string) []byte {
	codeUnits := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(codeUnits))
	for i, u := range codeUnits {
		binary.BigEndian.PutUint16(b[2*i:], u)
	}
	return b
}

// WindowsName is a Windows-platform (3), Unicode BMP (1), US-English
// (0x409) name record.
func WindowsName(nameID uint16, value string) Name {
	return Name{Platform: 3, Encoding: 1, Language: 0x409, NameID: nameID, Value: UTF16BE(value)}
}

// MacName is a Macintosh-platform (1), Roman (0), English (0) name record
// carrying Mac Roman bytes.
func MacName(nameID uint16, value string) Name {
	return Name{Platform: 1, Encoding: 0, Language: 0, NameID: nameID, Value: []byte(value)}
}

// Options modify font synthesis.
type Options struct {
	WithPSNames bool // write instance records with a postScriptNameID field
}

// Build assembles an SFNT binary with a table directory, 'head', 'maxp',
// 'name', and — when axes are given — 'fvar'. Axes and instances are written
// in the order given; name records likewise.
func Build(names []Name, axes []Axis, instances []Instance, opts Options) []byte {
	type table struct {
		tag  string
		data []byte
	}
	tables := []table{}
	if len(axes) > 0 {
		tables = append(tables, table{"fvar", fvarTable(axes, instances, opts.WithPSNames)})
	}
	// tags must be in ascending order: fvar < head < maxp < name
	tables = append(tables,
		table{"head", headTable()},
		table{"maxp", maxpTable()},
		table{"name", nameTable(names)},
	)

	directorySize := 12 + 16*len(tables)
	font := make([]byte, directorySize)
	binary.BigEndian.PutUint32(font[0:], 0x00010000) // TrueType flavour
	binary.BigEndian.PutUint16(font[4:], uint16(len(tables)))
	for i, tb := range tables {
		for len(font)%4 != 0 { // tables begin on four byte boundaries
			font = append(font, 0)
		}
		entry := font[12+16*i : 12+16*i+16]
		copy(entry[0:4], tb.tag)
		binary.BigEndian.PutUint32(entry[8:], uint32(len(font)))
		binary.BigEndian.PutUint32(entry[12:], uint32(len(tb.data)))
		font = append(font, tb.data...)
	}
	return font
}

func headTable() []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint16(b[0:], 1)            // majorVersion
	binary.BigEndian.PutUint32(b[12:], 0x5F0F3CF5)  // magicNumber
	binary.BigEndian.PutUint16(b[18:], 1000)        // unitsPerEm
	binary.BigEndian.PutUint16(b[46:], 8)           // lowestRecPPEM
	return b
}

func maxpTable() []byte {
	b := make([]byte, 6)
	binary.BigEndian.PutUint32(b[0:], 0x00005000) // version 0.5, no glyph data
	binary.BigEndian.PutUint16(b[4:], 2)          // numGlyphs
	return b
}

func nameTable(names []Name) []byte {
	storageOffset := 6 + 12*len(names)
	b := make([]byte, storageOffset)
	binary.BigEndian.PutUint16(b[2:], uint16(len(names)))
	binary.BigEndian.PutUint16(b[4:], uint16(storageOffset))
	storage := []byte{}
	for i, n := range names {
		rec := b[6+12*i : 6+12*i+12]
		binary.BigEndian.PutUint16(rec[0:], n.Platform)
		binary.BigEndian.PutUint16(rec[2:], n.Encoding)
		binary.BigEndian.PutUint16(rec[4:], n.Language)
		binary.BigEndian.PutUint16(rec[6:], n.NameID)
		binary.BigEndian.PutUint16(rec[8:], uint16(len(n.Value)))
		binary.BigEndian.PutUint16(rec[10:], uint16(len(storage)))
		storage = append(storage, n.Value...)
	}
	return append(b, storage...)
}

func fvarTable(axes []Axis, instances []Instance, withPSNames bool) []byte {
	instanceSize := 4 + 4*len(axes)
	if withPSNames {
		instanceSize += 2
	}
	b := make([]byte, 16)
	binary.BigEndian.PutUint16(b[0:], 1)  // majorVersion
	binary.BigEndian.PutUint16(b[4:], 16) // axesArrayOffset
	binary.BigEndian.PutUint16(b[6:], 2)  // reserved
	binary.BigEndian.PutUint16(b[8:], uint16(len(axes)))
	binary.BigEndian.PutUint16(b[10:], 20) // axisSize
	binary.BigEndian.PutUint16(b[12:], uint16(len(instances)))
	binary.BigEndian.PutUint16(b[14:], uint16(instanceSize))
	for _, axis := range axes {
		rec := make([]byte, 20)
		copy(rec[0:4], axis.Tag)
		binary.BigEndian.PutUint32(rec[4:], fixed1616(axis.Min))
		binary.BigEndian.PutUint32(rec[8:], fixed1616(axis.Def))
		binary.BigEndian.PutUint32(rec[12:], fixed1616(axis.Max))
		binary.BigEndian.PutUint16(rec[18:], axis.NameID)
		b = append(b, rec...)
	}
	for _, instance := range instances {
		rec := make([]byte, instanceSize)
		binary.BigEndian.PutUint16(rec[0:], instance.SubfamilyNameID)
		for a := range axes {
			var coord float64
			if a < len(instance.Coords) {
				coord = instance.Coords[a]
			}
			binary.BigEndian.PutUint32(rec[4+4*a:], fixed1616(coord))
		}
		if withPSNames {
			binary.BigEndian.PutUint16(rec[4+4*len(axes):], instance.PostScriptNameID)
		}
		b = append(b, rec...)
	}
	return b
}

func fixed1616(v float64) uint32 {
	return uint32(int32(math.Round(v * 65536)))
}
