package otquery

import (
	"encoding/binary"

	"github.com/npillmayer/varfont/ot"
	"golang.org/x/image/font/sfnt"
)

// FontType returns the outline flavour of a font: "TrueType", "CFF", or
// "" if the font header is unavailable.
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return ""
	}
	switch otf.Header.FontType {
	case 0x00010000, 0x74727565: // 1.0 | 'true'
		return "TrueType"
	case 0x4f54544f: // 'OTTO'
		return "CFF"
	}
	return ""
}

// NameInfo collects the identification strings of a font as a map with keys
// "family", "subfamily", "fullname", "version" and "postscript". Slots the
// font does not carry (or does not carry decodably) are absent from the map.
func NameInfo(otf *ot.Font) map[string]string {
	info := make(map[string]string)
	slots := []struct {
		key string
		id  sfnt.NameID
	}{
		{"family", sfnt.NameIDFamily},
		{"subfamily", sfnt.NameIDSubfamily},
		{"fullname", sfnt.NameIDFull},
		{"version", sfnt.NameIDVersion},
		{"postscript", sfnt.NameIDPostScript},
	}
	for _, slot := range slots {
		if value, ok := Name(otf, slot.id); ok {
			info[slot.key] = value
		}
	}
	return info
}

// HeadTableInfo is a typed query view over OpenType table 'head'.
// Values are decoded directly from the raw table bytes.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

const headTableSize = 54

// HeadInfo decodes table 'head' directly from raw bytes.
// Returns (info, true) on success, or (zero, false) if the table is
// missing or too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if otf == nil {
		return info, false
	}
	table := otf.Table(ot.T("head"))
	if table == nil {
		return info, false
	}
	b := table.Binary()
	if len(b) < headTableSize {
		return info, false
	}
	info.MajorVersion = binary.BigEndian.Uint16(b[0:2])
	info.MinorVersion = binary.BigEndian.Uint16(b[2:4])
	info.FontRevision = binary.BigEndian.Uint32(b[4:8])
	info.CheckSumAdjustment = binary.BigEndian.Uint32(b[8:12])
	info.MagicNumber = binary.BigEndian.Uint32(b[12:16])
	info.Flags = binary.BigEndian.Uint16(b[16:18])
	info.UnitsPerEm = binary.BigEndian.Uint16(b[18:20])
	info.Created = int64(binary.BigEndian.Uint64(b[20:28]))
	info.Modified = int64(binary.BigEndian.Uint64(b[28:36]))
	info.XMin = int16(binary.BigEndian.Uint16(b[36:38]))
	info.YMin = int16(binary.BigEndian.Uint16(b[38:40]))
	info.XMax = int16(binary.BigEndian.Uint16(b[40:42]))
	info.YMax = int16(binary.BigEndian.Uint16(b[42:44]))
	info.MacStyle = binary.BigEndian.Uint16(b[44:46])
	info.LowestRecPPEM = binary.BigEndian.Uint16(b[46:48])
	info.FontDirectionHint = int16(binary.BigEndian.Uint16(b[48:50]))
	info.IndexToLocFormat = int16(binary.BigEndian.Uint16(b[50:52]))
	info.GlyphDataFormat = int16(binary.BigEndian.Uint16(b[52:54]))
	return info, true
}

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16
}

const maxpMinSize = 6

// MaxPInfo decodes table 'maxp' directly from raw bytes.
// Returns (info, true) on success, or (zero, false) if the table is
// missing or too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	if otf == nil {
		return info, false
	}
	table := otf.Table(ot.T("maxp"))
	if table == nil {
		return info, false
	}
	b := table.Binary()
	if len(b) < maxpMinSize {
		return info, false
	}
	info.VersionFixed = binary.BigEndian.Uint32(b[0:4])
	info.NumGlyphs = binary.BigEndian.Uint16(b[4:6])
	return info, true
}
