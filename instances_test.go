package varfont

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/varfont/internal/testfont"
)

func TestFamilyName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	font := testfont.Build(
		[]testfont.Name{
			testfont.WindowsName(1, "Test Sans"),
			testfont.WindowsName(2, "Regular"),
		},
		nil, nil, testfont.Options{},
	)
	otf, err := FromBinary(font)
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	family, subfamily := FamilyName(otf)
	if family != "Test Sans" || subfamily != "Regular" {
		t.Errorf("expected 'Test Sans'/'Regular', have %q/%q", family, subfamily)
	}
}

func TestInstanceNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.varfont")
	defer teardown()
	//
	font := testfont.Build(
		[]testfont.Name{
			testfont.WindowsName(16, "Test Sans"),
			testfont.WindowsName(256, "Condensed Light"),
		},
		[]testfont.Axis{
			{Tag: "wght", Min: 100, Def: 400, Max: 900, NameID: 270},
			{Tag: "wdth", Min: 50, Def: 100, Max: 100, NameID: 271},
		},
		[]testfont.Instance{
			{SubfamilyNameID: 256, Coords: []float64{300, 50}},
		},
		testfont.Options{},
	)
	otf, err := FromBinary(font)
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	infos, err := InstanceNames(otf)
	if err != nil {
		t.Fatalf("cannot derive instance names: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 derived instance, have %d", len(infos))
	}
	if infos[0].FontName != "Test Sans Condensed Light" {
		t.Errorf("unexpected font name %q", infos[0].FontName)
	}
	if infos[0].PostScriptName != "TestSans-CondensedLight" {
		t.Errorf("unexpected PostScript name %q", infos[0].PostScriptName)
	}
}
