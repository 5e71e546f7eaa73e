package varfont

import (
	"github.com/npillmayer/varfont/ot"
	"github.com/npillmayer/varfont/otquery"
	"github.com/npillmayer/varfont/otvar"
	"golang.org/x/image/font/sfnt"
)

// FromBinary parses raw OpenType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the font to remain usable.
func FromBinary(data []byte) (*ot.Font, error) {
	return ot.Parse(data)
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records
// cannot be decoded by the name-table resolver.
func FamilyName(f *ot.Font) (family, subfamily string) {
	family, _ = otquery.Name(f, sfnt.NameIDFamily)
	subfamily, _ = otquery.Name(f, sfnt.NameIDSubfamily)
	return
}

// InstanceNames derives display and PostScript names for every named
// instance of a variable font, in declaration order.
//
// This is a convenience API for the most common use-case. Clients who need
// access to design axes, instance coordinates or individual name slots use
// the packages `otvar` and `otquery` directly.
func InstanceNames(f *ot.Font) ([]otvar.InstanceInfo, error) {
	return otvar.DeriveNames(f)
}
