/*
Package ot provides access to the tables of an OpenType font that are
relevant for font identification and design-variation handling.

Package `ot` parses the SFNT container structure of a font and exposes its
tables to clients. It is a low-level package: it will not interpret the
semantics of localized name strings or variation instances; that is the job
of the sister packages `otquery` and `otvar`. Tables which this package
does not interpret are still navigable as raw byte segments, i.e. no table
information is dropped.

Interpreted tables are:

▪︎ 'head', the font header

▪︎ 'maxp', the maximum profile (glyph count)

▪︎ 'name', the naming table with its localized string records

▪︎ 'fvar', the font-variations table with design axes and named instances

OpenType fonts in the wild frequently contain entries that—strictly
speaking—infringe upon the OT specification. Parsing therefore accumulates
errors and warnings with severities instead of failing on the first
recoverable oddity; clients may inspect them after parsing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.varfont'
func tracer() tracing.Trace {
	return tracing.Select("font.varfont")
}
