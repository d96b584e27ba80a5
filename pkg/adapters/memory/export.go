package memory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/sz10101/vym/pkg/domain"
)

// Outline is a read-only view of a branch, handed to exporters.
type Outline struct {
	ID       string
	Heading  string
	Note     string
	URL      string
	Flags    []string
	Task     domain.TaskStatus
	Images   []string
	Children []Outline
}

// Document is a read-only view of a map, handed to exporters.
type Document struct {
	Title   string
	Author  string
	Comment string
	Centers []Outline
	Links   []LinkOutline
	// XML is the map as written to a vym file.
	XML string
}

// LinkOutline is a read-only view of an xlink.
type LinkOutline struct {
	BeginID string
	EndID   string
	Pen     domain.Pen
}

// ExportFunc writes doc as described by req.
type ExportFunc func(doc Document, req domain.ExportRequest) error

func builtinExporters() map[domain.ExportFormat]ExportFunc {
	return map[domain.ExportFormat]ExportFunc{
		domain.ExportASCII:   exportASCII,
		domain.ExportCSV:     exportCSV,
		domain.ExportHTML:    exportHTML,
		domain.ExportLaTeX:   exportLaTeX,
		domain.ExportOrgMode: exportOrgMode,
		domain.ExportXML:     exportXML,
	}
}

// Export runs the exporter registered for req.Format.
func (m *Model) Export(req domain.ExportRequest) error {
	fn, ok := m.exporters[req.Format]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrExportUnsupported, req.Format)
	}
	if err := fn(m.view(), req); err != nil {
		return err
	}
	last := req
	m.last = &last
	m.logger.Debug("exported map", "format", string(req.Format), "file", req.FileName)
	return nil
}

// ExportLast repeats the last successful export.
func (m *Model) ExportLast() error {
	if m.last == nil {
		return domain.ErrNoPreviousExport
	}
	return m.Export(*m.last)
}

func (m *Model) view() Document {
	doc := Document{
		Title:   m.doc.title,
		Author:  m.doc.author,
		Comment: m.doc.comment,
		XML:     m.encode(m.doc),
	}
	for _, c := range m.doc.centers {
		doc.Centers = append(doc.Centers, outline(c))
	}
	for _, l := range m.doc.links {
		doc.Links = append(doc.Links, LinkOutline{BeginID: l.beginID, EndID: l.endID, Pen: l.pen})
	}
	return doc
}

// Document returns a read-only view of the map.
func (m *Model) Document() Document {
	return m.view()
}

func outline(n *node) Outline {
	o := Outline{
		ID:      n.id,
		Heading: n.heading,
		Note:    n.note,
		URL:     n.url,
		Flags:   append([]string(nil), n.flags...),
		Task:    n.task,
	}
	for _, img := range n.images {
		o.Images = append(o.Images, img.heading)
	}
	for _, b := range n.branches {
		o.Children = append(o.Children, outline(b))
	}
	return o
}

// walkOutline calls fn for o and its descendants with their depth.
func walkOutline(o Outline, depth int, fn func(o Outline, depth int)) {
	fn(o, depth)
	for _, c := range o.Children {
		walkOutline(c, depth+1, fn)
	}
}

func writeFile(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// inDir places name in dir unless name is absolute.
func inDir(dir, name string) (string, error) {
	if filepath.IsAbs(name) || dir == "" {
		return name, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func exportASCII(doc Document, req domain.ExportRequest) error {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title + "\n\n")
	}
	for _, c := range doc.Centers {
		walkOutline(c, 0, func(o Outline, depth int) {
			line := o.Heading
			if req.ListTasks && o.Task != domain.TaskNone {
				line += " [" + o.Task.String() + "]"
			}
			switch depth {
			case 0:
				b.WriteString(line + "\n" + strings.Repeat("=", len(line)) + "\n")
			case 1:
				b.WriteString("\n  * " + line + "\n")
			default:
				b.WriteString(strings.Repeat("  ", depth) + "- " + line + "\n")
			}
			if o.Note != "" {
				for _, l := range strings.Split(o.Note, "\n") {
					b.WriteString(strings.Repeat("  ", depth+1) + "| " + l + "\n")
				}
			}
		})
		b.WriteString("\n")
	}
	return writeFile(req.FileName, []byte(b.String()))
}

// exportCSV writes one row per branch with the heading in the column of its depth.
func exportCSV(doc Document, req domain.ExportRequest) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, c := range doc.Centers {
		var err error
		walkOutline(c, 0, func(o Outline, depth int) {
			if err != nil {
				return
			}
			row := make([]string, depth+2)
			row[depth] = o.Heading
			row[depth+1] = o.Note
			err = w.Write(row)
		})
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return writeFile(req.FileName, buf.Bytes())
}

func exportOrgMode(doc Document, req domain.ExportRequest) error {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("#+TITLE: " + doc.Title + "\n")
	}
	if doc.Author != "" {
		b.WriteString("#+AUTHOR: " + doc.Author + "\n")
	}
	for _, c := range doc.Centers {
		walkOutline(c, 0, func(o Outline, depth int) {
			b.WriteString(strings.Repeat("*", depth+1) + " ")
			if o.Task != domain.TaskNone {
				b.WriteString(orgKeyword(o.Task) + " ")
			}
			b.WriteString(o.Heading + "\n")
			if o.Note != "" {
				b.WriteString(o.Note + "\n")
			}
		})
	}
	return writeFile(req.FileName, []byte(b.String()))
}

func orgKeyword(t domain.TaskStatus) string {
	switch t {
	case domain.TaskFinished:
		return "DONE"
	case domain.TaskWIP:
		return "STARTED"
	default:
		return "TODO"
	}
}

var latexSections = []string{"chapter", "section", "subsection", "subsubsection", "paragraph"}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`, "&", `\&`, "%", `\%`, "$", `\$`, "#", `\#`,
	"_", `\_`, "{", `\{`, "}", `\}`, "~", `\textasciitilde{}`, "^", `\textasciicircum{}`,
)

func exportLaTeX(doc Document, req domain.ExportRequest) error {
	var b strings.Builder
	for _, c := range doc.Centers {
		walkOutline(c, 0, func(o Outline, depth int) {
			if depth >= len(latexSections) {
				depth = len(latexSections) - 1
			}
			fmt.Fprintf(&b, "\\%s{%s}\n", latexSections[depth], latexEscaper.Replace(o.Heading))
			if o.Note != "" {
				b.WriteString(latexEscaper.Replace(o.Note) + "\n\n")
			}
		})
	}
	return writeFile(req.FileName, []byte(b.String()))
}

func exportHTML(doc Document, req domain.ExportRequest) error {
	target, err := inDir(req.Path, req.FileName)
	if err != nil {
		return err
	}
	var b strings.Builder
	title := doc.Title
	if title == "" && len(doc.Centers) > 0 {
		title = doc.Centers[0].Heading
	}
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n</head>\n<body>\n")
	for _, c := range doc.Centers {
		b.WriteString("<h1>" + html.EscapeString(c.Heading) + "</h1>\n")
		writeHTMLList(&b, c.Children)
	}
	b.WriteString("</body>\n</html>\n")
	return writeFile(target, []byte(b.String()))
}

func writeHTMLList(b *strings.Builder, items []Outline) {
	if len(items) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, o := range items {
		b.WriteString("<li>")
		heading := html.EscapeString(o.Heading)
		if o.URL != "" {
			heading = "<a href=\"" + html.EscapeString(o.URL) + "\">" + heading + "</a>"
		}
		b.WriteString(heading)
		if o.Note != "" {
			b.WriteString("<p>" + html.EscapeString(o.Note) + "</p>")
		}
		b.WriteString("\n")
		writeHTMLList(b, o.Children)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

func exportXML(doc Document, req domain.ExportRequest) error {
	target, err := inDir(req.Path, req.FileName)
	if err != nil {
		return err
	}
	return writeFile(target, []byte(doc.XML))
}
