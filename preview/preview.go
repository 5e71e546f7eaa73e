/*
Package preview generates a static HTML sample page for the named instances
of a variable font.

The page carries one block per derived instance, styled with the instance's
display name and PostScript name as CSS font-family fallbacks. Opened in a
browser on a system where the instances are installed, every block renders
in its own instance.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package preview

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/varfont/otvar"
)

// tracer writes to trace with key 'font.varfont'
func tracer() tracing.Trace {
	return tracing.Select("font.varfont")
}

// SampleFileName is the name of the generated HTML document.
const SampleFileName = "sample.html"

const sampleHeader = `<!DOCTYPE html>
<html>
<head>
  <style>
  .example {
    font-size: 20px;
    margin-bottom: 16px;
  }
  </style>
</head>
<body>
`

const sampleFooter = `</body>
</html>
`

// Sample renders the HTML document for a sequence of derived instance names.
func Sample(instances []otvar.InstanceInfo) string {
	page := strings.Builder{}
	page.WriteString(sampleHeader)
	for _, instance := range instances {
		fontName := html.EscapeString(instance.FontName)
		psName := html.EscapeString(instance.PostScriptName)
		fmt.Fprintf(&page, "  <div class=\"example\" style=\"font-family:'%s', '%s'\">%s</div>\n",
			fontName, psName, fontName)
	}
	page.WriteString(sampleFooter)
	return page.String()
}

// WriteSample writes the HTML sample document for a sequence of derived
// instance names into a directory, returning the path of the written file.
// The directory must exist.
func WriteSample(dir string, instances []otvar.InstanceInfo) (string, error) {
	path := filepath.Join(dir, SampleFileName)
	if err := os.WriteFile(path, []byte(Sample(instances)), 0644); err != nil {
		return "", err
	}
	tracer().Infof("sample HTML generated at %s", path)
	return path, nil
}
