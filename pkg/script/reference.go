package script

import (
	"fmt"
	"strings"
)

// Reference renders the operations of both façades as a markdown document.
func Reference() string {
	var b strings.Builder
	b.WriteString("# Script operations\n")
	writeSection(&b, "vym", "Application façade.", AppOperations())
	writeSection(&b, "map", "Document façade. Operations marked *selection* need a selected branch.", MapOperations())
	return b.String()
}

func writeSection(b *strings.Builder, facade, intro string, specs []Spec) {
	fmt.Fprintf(b, "\n## %s\n\n%s\n\n", facade, intro)
	b.WriteString("| operation | returns | notes |\n|---|---|---|\n")
	for _, spec := range specs {
		notes := spec.Doc
		if spec.Selection {
			notes = "*selection* " + notes
		}
		fmt.Fprintf(b, "| `%s.%s` | %s | %s |\n", facade, spec.Signature(), spec.Returns, strings.ReplaceAll(notes, "|", `\|`))
	}
}
