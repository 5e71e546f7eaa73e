/*
Package otquery provides query functions over parsed OpenType fonts.

The centre-piece of the package is the naming-table resolver: fonts carry a
multiset of localized string records per semantic name slot, and consumers
need exactly one canonical string per slot. Resolution follows the platform
and locale priorities used by FontConfig and FreeType, so that the most
universally renderable string (Microsoft/Unicode platform, English locale)
is tried first.

All queries are pure functions over the parsed, immutable font data: no
I/O, no shared mutable state, safe for concurrent use across fonts.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.varfont'
func tracer() tracing.Trace {
	return tracing.Select("font.varfont")
}
