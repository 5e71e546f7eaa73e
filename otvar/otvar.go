/*
Package otvar interprets the design-variation capabilities of a variable
OpenType font.

Its centre-piece derives, for each named instance a font declares, a display
font name and a PostScript-safe identifier from the font's naming table. The
derivation supports the R/B/I/BI family model, see
https://learn.microsoft.com/en-us/typography/opentype/spec/stat#alternate-font-family-models

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otvar

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/varfont/ot"
)

// tracer writes to trace with key 'font.varfont'
func tracer() tracing.Trace {
	return tracing.Select("font.varfont")
}

// IsVariable reports whether a font carries design-variation capability,
// i.e. an 'fvar' table.
func IsVariable(otf *ot.Font) bool {
	return otf.IsVariable()
}

// Axes returns the design axes of a variable font, in declaration order.
// For a non-variable font, nil is returned.
func Axes(otf *ot.Font) []ot.VariationAxis {
	if otf == nil || otf.Fvar == nil {
		return nil
	}
	return otf.Fvar.Axes()
}

// Instances returns the named instances of a variable font, in declaration
// order. For a non-variable font, nil is returned.
func Instances(otf *ot.Font) []ot.NamedInstance {
	if otf == nil || otf.Fvar == nil {
		return nil
	}
	return otf.Fvar.Instances()
}
