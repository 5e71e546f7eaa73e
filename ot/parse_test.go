package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/varfont/internal/testfont"
)

func putU16(b []byte, at int, v uint16) {
	b[at] = byte(v >> 8)
	b[at+1] = byte(v)
}

func putU32(b []byte, at int, v uint32) {
	b[at] = byte(v >> 24)
	b[at+1] = byte(v >> 16)
	b[at+2] = byte(v >> 8)
	b[at+3] = byte(v)
}

func buildVariableFont(withPSNames bool) []byte {
	return testfont.Build(
		[]testfont.Name{
			testfont.WindowsName(16, "Test Sans"),
			testfont.WindowsName(256, "Thin"),
			testfont.WindowsName(257, "Black"),
		},
		[]testfont.Axis{
			{Tag: "wght", Min: 100, Def: 400, Max: 900, NameID: 258},
		},
		[]testfont.Instance{
			{SubfamilyNameID: 256, Coords: []float64{100}, PostScriptNameID: 259},
			{SubfamilyNameID: 257, Coords: []float64{900}, PostScriptNameID: 260},
		},
		testfont.Options{WithPSNames: withPSNames},
	)
}

func TestParseSyntheticFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	otf, err := Parse(buildVariableFont(false))
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	if otf.HasCriticalErrors() {
		t.Fatalf("unexpected critical errors: %v", otf.Errors())
	}
	if !otf.IsVariable() {
		t.Fatalf("expected synthetic font to be variable")
	}
	if n := len(otf.Names.Records()); n != 3 {
		t.Errorf("expected 3 name records, have %d", n)
	}
	head := otf.Table(T("head")).Self().AsHead()
	if head == nil || head.UnitsPerEm != 1000 {
		t.Errorf("expected head table with 1000 units per em, have %v", head)
	}
	maxp := otf.Table(T("maxp")).Self().AsMaxP()
	if maxp == nil || maxp.NumGlyphs != 2 {
		t.Errorf("expected maxp table with 2 glyphs, have %v", maxp)
	}
}

func TestParseFvarAxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	otf, err := Parse(buildVariableFont(false))
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	if otf.Fvar.AxisCount() != 1 {
		t.Fatalf("expected 1 design axis, have %d", otf.Fvar.AxisCount())
	}
	axis := otf.Fvar.Axes()[0]
	if axis.Tag != T("wght") {
		t.Errorf("expected axis tag 'wght', is %s", axis.Tag)
	}
	if axis.Minimum != 100 || axis.Default != 400 || axis.Maximum != 900 {
		t.Errorf("unexpected axis extremes: %g … %g … %g", axis.Minimum, axis.Default, axis.Maximum)
	}
	if axis.NameID != 258 {
		t.Errorf("expected axis name ID 258, is %d", axis.NameID)
	}
}

func TestParseFvarInstances(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	otf, err := Parse(buildVariableFont(false))
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	instances := otf.Fvar.Instances()
	if len(instances) != 2 {
		t.Fatalf("expected 2 named instances, have %d", len(instances))
	}
	if instances[0].SubfamilyNameID != 256 || instances[1].SubfamilyNameID != 257 {
		t.Errorf("instance declaration order not preserved: %v", instances)
	}
	if instances[0].Coordinates[0] != 100 || instances[1].Coordinates[0] != 900 {
		t.Errorf("unexpected instance coordinates: %v", instances)
	}
	// font was built without postScriptNameID fields
	if instances[0].PostScriptNameID != NoNameID {
		t.Errorf("expected absent postScriptNameID, is %d", instances[0].PostScriptNameID)
	}
}

func TestParseFvarInstancePSNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	otf, err := Parse(buildVariableFont(true))
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	instances := otf.Fvar.Instances()
	if instances[0].PostScriptNameID != 259 || instances[1].PostScriptNameID != 260 {
		t.Errorf("expected postScriptNameIDs 259/260, have %v", instances)
	}
}

func TestParseNonVariableFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	font := testfont.Build(
		[]testfont.Name{testfont.WindowsName(1, "Test Sans")},
		nil, nil, testfont.Options{},
	)
	otf, err := Parse(font)
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	if otf.IsVariable() {
		t.Errorf("expected font without fvar not to be variable")
	}
	if otf.Fvar != nil {
		t.Errorf("expected Fvar shortcut to be nil")
	}
}

func TestParseRejectsUnknownFontType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	font := buildVariableFont(false)
	putU32(font, 0, 0xdeadbeef)
	if _, err := Parse(font); err == nil {
		t.Fatalf("expected parse error for unknown font type")
	}
}

func TestParseRejectsMissingNameTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	font := testfont.Build(
		[]testfont.Name{testfont.WindowsName(1, "Test Sans")},
		nil, nil, testfont.Options{},
	)
	// rewrite the 'name' directory tag (3rd entry); tags stay in ascending order
	copy(font[12+2*16:], "zzzz")
	if _, err := Parse(font); err == nil {
		t.Fatalf("expected parse error for missing name table")
	}
}

func TestParseNameSkipsRecordOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	// two records; the first one's string exceeds the table bounds
	b := make([]byte, 6+2*12+4)
	putU16(b, 2, 2)         // count
	putU16(b, 4, 6+2*12)    // string storage offset
	putU16(b, 6+6, 1)       // record 0: nameID 1
	putU16(b, 6+8, 200)     // record 0: length, out of bounds
	putU16(b, 6+12+6, 1)    // record 1: nameID 1
	putU16(b, 6+12+8, 4)    // record 1: length
	putU16(b, 6+12+10, 0)   // record 1: string offset
	ec := &errorCollector{}
	table, err := parseName(T("name"), b, 0, uint32(len(b)), ec)
	if err != nil {
		t.Fatalf("expected out-of-bounds record to be recoverable, got %v", err)
	}
	names := table.Self().AsName()
	if len(names.Records()) != 1 {
		t.Fatalf("expected 1 surviving record, have %d", len(names.Records()))
	}
	if len(ec.warnings) != 1 {
		t.Errorf("expected a warning for the dropped record, have %d", len(ec.warnings))
	}
}

func TestParseNameRejectsCorruptHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	b := make([]byte, 8)
	putU16(b, 2, 100) // claims 100 records in an 8 byte table
	ec := &errorCollector{}
	if _, err := parseName(T("name"), b, 0, uint32(len(b)), ec); err == nil {
		t.Fatalf("expected parse error for corrupt name table")
	}
}

func TestParseFvarRejectsTruncatedInstances(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	b := make([]byte, 16+20) // header and one axis record, but no instance bytes
	putU16(b, 0, 1)          // majorVersion
	putU16(b, 4, 16)         // axesArrayOffset
	putU16(b, 8, 1)          // axisCount
	putU16(b, 10, 20)        // axisSize
	putU16(b, 12, 3)         // instanceCount, no backing bytes
	putU16(b, 14, 8)         // instanceSize
	ec := &errorCollector{}
	if _, err := parseFvar(T("fvar"), b, 0, uint32(len(b)), ec); err == nil {
		t.Fatalf("expected parse error for truncated fvar instances")
	}
}

func TestParseFvarRejectsInstanceSizeMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	b := make([]byte, 16+20)
	putU16(b, 0, 1)   // majorVersion
	putU16(b, 4, 16)  // axesArrayOffset
	putU16(b, 8, 1)   // axisCount
	putU16(b, 10, 20) // axisSize
	putU16(b, 12, 1)  // instanceCount
	putU16(b, 14, 12) // instanceSize: neither 8 nor 10 for one axis
	ec := &errorCollector{}
	if _, err := parseFvar(T("fvar"), b, 0, uint32(len(b)), ec); err == nil {
		t.Fatalf("expected parse error for invalid fvar instance size")
	}
}
