/*
Package varfont handles variable OpenType fonts and their named instances.

A variable font encodes a continuous design space (weight, width, slant, …)
plus a discrete list of named points within it, the "named instances"
(e.g., "Thin", "Condensed Bold"). Font-consumption stacks address such an
instance by a display name and by a PostScript-safe identifier. This module
derives both from the font's naming table, following the locale- and
platform-priority conventions of FontConfig and FreeType.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc. An example is "Helvetica regular".

▪︎ A "named instance" is one discrete, named point in a variable font's
design space. An example is "Helvetica Condensed Bold".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

# Links

OpenType font variations overview:
https://docs.microsoft.com/en-us/typography/opentype/spec/otvaroverview

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package varfont

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font.varfont'
func tracer() tracing.Trace {
	return tracing.Select("font.varfont")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF or OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}
