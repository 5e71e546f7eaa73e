package otvar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/varfont/ot"
	"github.com/npillmayer/varfont/otquery"
	"golang.org/x/image/font/sfnt"
)

// ErrNotVariableFont flags a font without design-variation capability:
// the font lacks an 'fvar' table and therefore cannot declare named instances.
var ErrNotVariableFont = errors.New("font is not a variable font")

// ErrMissingFamilyName flags a font whose naming table yields no decodable
// family name, neither typographic (slot 16) nor compatibility (slot 1).
// Every derived instance name would be malformed without a family name, so
// derivation treats this as fatal.
var ErrMissingFamilyName = errors.New("font carries no decodable family name")

// ErrMissingInstanceName flags a named instance whose subfamily name slot
// yields no decodable string. Derivation returns either a complete result or
// an error, never a partial sequence.
var ErrMissingInstanceName = errors.New("named instance carries no decodable subfamily name")

// InstanceInfo is the derived naming of one named instance.
type InstanceInfo struct {
	FontName       string // family name and instance name, space separated
	PostScriptName string // space-stripped family and instance name, hyphen separated
}

// DeriveNames computes display and PostScript names for every named instance
// of a variable font, in the order the font declares them.
//
// The family name is resolved from the typographic family slot (16), falling
// back to the compatibility family slot (1); each instance contributes its
// subfamily string via the naming-table slot its fvar record references.
// The PostScript identifier joins the space-stripped family and instance
// names with a hyphen, e.g. family "My Cool Font" and instance "Extra Bold"
// yield "MyCoolFont-ExtraBold".
//
// For a font without an 'fvar' table, ErrNotVariableFont is returned before
// any name resolution. The result contains exactly one entry per declared
// instance; if any name cannot be resolved, the whole call fails.
func DeriveNames(otf *ot.Font) ([]InstanceInfo, error) {
	if otf == nil || !otf.IsVariable() {
		return nil, ErrNotVariableFont
	}
	return deriveNames(otf.Names.Records(), otf.Fvar.Instances())
}

// deriveNames is the pure core of DeriveNames, operating on caller-supplied
// collections only.
func deriveNames(records []ot.NameRecord, instances []ot.NamedInstance) ([]InstanceInfo, error) {
	familyName, ok := otquery.NameFromRecords(records, sfnt.NameIDTypographicFamily)
	if !ok {
		// fonts using the R/B/I/BI family model may not carry slot 16,
		// see https://learn.microsoft.com/en-us/typography/opentype/spec/otvaroverview#terminology
		familyName, ok = otquery.NameFromRecords(records, sfnt.NameIDFamily)
	}
	if !ok {
		return nil, ErrMissingFamilyName
	}
	infos := make([]InstanceInfo, 0, len(instances))
	for i, instance := range instances {
		instanceName, ok := otquery.NameFromRecords(records, sfnt.NameID(instance.SubfamilyNameID))
		if !ok {
			return nil, fmt.Errorf("instance %d, name slot %d: %w",
				i, instance.SubfamilyNameID, ErrMissingInstanceName)
		}
		info := InstanceInfo{
			FontName:       familyName + " " + instanceName,
			PostScriptName: stripSpaces(familyName) + "-" + stripSpaces(instanceName),
		}
		tracer().Debugf("instance %d: %q / %q", i, info.FontName, info.PostScriptName)
		infos = append(infos, info)
	}
	return infos, nil
}

// stripSpaces removes literal space characters only; PostScript identifiers
// must not contain spaces, but other whitespace is left to the font author.
func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
