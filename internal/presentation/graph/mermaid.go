package graph

import (
	"fmt"
	"strings"

	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/domain"
)

// GraphOverlay contains selection data to visualize on the graph.
type GraphOverlay struct {
	SelectedID string
}

// GenerateMermaid produces a Mermaid flowchart of a map.
// It applies semantic styling:
// - Map center: ((Circle))
// - Branch with a finished task: ([Stadium])
// - Branch with an open task: [/Parallelogram/]
// - Default: [Rectangle]
// XLinks are drawn as dotted edges. The overlay highlights the selection.
func GenerateMermaid(doc memory.Document, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var walk func(o memory.Outline, parent string, center bool)
	walk = func(o memory.Outline, parent string, center bool) {
		safeID := sanitizeMermaidID(o.ID)

		opener, closer := "[", "]"
		switch {
		case center:
			opener, closer = "((", "))"
		case o.Task == domain.TaskFinished:
			opener, closer = "([", "])"
		case o.Task != domain.TaskNone:
			opener, closer = "[/", "/]"
		}

		label := escapeLabel(o.Heading)
		if len(o.Flags) > 0 {
			label += " <br/> " + strings.Join(o.Flags, " ")
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
		if parent != "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", parent, safeID)
		}
		for _, c := range o.Children {
			walk(c, safeID, false)
		}
	}
	for _, c := range doc.Centers {
		walk(c, "", true)
	}

	for _, l := range doc.Links {
		fmt.Fprintf(&sb, "    %s -.- %s\n", sanitizeMermaidID(l.BeginID), sanitizeMermaidID(l.EndID))
	}

	if overlay != nil && overlay.SelectedID != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.SelectedID))
	}

	return sb.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " <br/> ")
}

func sanitizeMermaidID(id string) string {
	return "n" + strings.ReplaceAll(id, "-", "_")
}
