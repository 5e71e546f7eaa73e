// Command varcli splits the named instances of a variable font into
// display/PostScript name pairs and writes an HTML sample page for them.
//
// Usage:
//
//	varcli [-trace Info] [-repl] <fontfile> <outputdir>
//
// The output directory is created if absent. With -repl, an interactive
// prompt for querying the font's naming table is started after the sample
// page has been written.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"

	"github.com/npillmayer/varfont"
	"github.com/npillmayer/varfont/ot"
	"github.com/npillmayer/varfont/otquery"
	"github.com/npillmayer/varfont/otvar"
	"github.com/npillmayer/varfont/preview"
)

// tracer traces with key 'font.varfont'
func tracer() tracing.Trace {
	return tracing.Select("font.varfont")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.font.varfont": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	repl := flag.Bool("repl", false, "Query the font's naming table interactively")
	flag.Parse()
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	if flag.NArg() != 2 {
		pterm.Error.Println("usage: varcli [-trace Info] [-repl] <fontfile> <outputdir>")
		os.Exit(2)
	}
	fontPath, outputDir := flag.Arg(0), flag.Arg(1)

	otf, err := loadFont(fontPath)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	instances, err := otvar.DeriveNames(otf)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	samplePath, err := preview.WriteSample(outputDir, instances)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}

	printInstances(instances)
	pterm.Info.Printf("sample HTML generated at %s\n", samplePath)

	if *repl {
		pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
		runREPL(otf)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadFont(fontPath string) (*ot.Font, error) {
	f, err := varfont.LoadOpenTypeFont(fontPath)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontPath, err)
		return nil, err
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	otf, err := varfont.FromBinary(f.Binary)
	if err != nil {
		tracer().Errorf("cannot decode font %s: %s", fontPath, err)
		return nil, err
	}
	for _, warning := range otf.Warnings() {
		tracer().Debugf(warning.String())
	}
	return otf, nil
}

func printInstances(instances []otvar.InstanceInfo) {
	data := pterm.TableData{{"Font name", "PostScript name"}}
	for _, instance := range instances {
		data = append(data, []string{instance.FontName, instance.PostScriptName})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

// --- Interactive naming-table queries ---------------------------------

func runREPL(otf *ot.Font) {
	repl, err := readline.New("varfont > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := execute(otf, line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func execute(otf *ot.Font, line string) (quit bool) {
	cmd := strings.Split(line, " ") // e.g. "name 16" or "instances"
	switch cmd[0] {
	case "quit":
		return true
	case "tables":
		pterm.Printf("font tables: %v\n", otf.TableTags())
	case "names":
		for key, value := range otquery.NameInfo(otf) {
			pterm.Printf("%-12s %s\n", key, value)
		}
	case "name":
		if len(cmd) < 2 {
			pterm.Error.Println("usage: name <name-ID>")
			return false
		}
		id, err := strconv.Atoi(cmd[1])
		if err != nil {
			pterm.Error.Printf("not a name-ID: %s\n", cmd[1])
			return false
		}
		if value, ok := otquery.Name(otf, sfnt.NameID(id)); ok {
			pterm.Printf("name %d = %q\n", id, value)
		} else {
			pterm.Printf("name %d is absent\n", id)
		}
	case "axes":
		for _, axis := range otvar.Axes(otf) {
			pterm.Printf("%s  [%g … %g … %g]\n", axis.Tag, axis.Minimum, axis.Default, axis.Maximum)
		}
	case "instances":
		instances, err := otvar.DeriveNames(otf)
		if err != nil {
			pterm.Error.Println(err)
			return false
		}
		printInstances(instances)
	default:
		pterm.Println("commands: tables | names | name <id> | axes | instances | quit")
	}
	return false
}
