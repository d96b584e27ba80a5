package memory

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/xmlobj"
)

// FormatVersion is written into the vymmap element of saved maps.
const FormatVersion = "2.9.0"

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?><!DOCTYPE vymmap>`

// encode renders doc as a vym map file.
func (m *Model) encode(doc *document) string {
	w := m.writer()
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(w.BeginElementAttrs("vymmap", attrs(w,
		"version", FormatVersion,
		"title", doc.title,
		"author", doc.author,
		"comment", doc.comment,
		"rotation", formatFloat(doc.rotation),
		"zoom", formatFloat(doc.zoom),
	)))
	w.IncIndent()
	for _, c := range doc.centers {
		encodeNode(&b, w, c)
	}
	for _, l := range doc.links {
		b.WriteString(w.SingleElement("xlink", attrs(w,
			"beginID", l.beginID,
			"endID", l.endID,
			"width", strconv.Itoa(l.pen.Width),
			"color", domain.ColorHex(l.pen.Color),
			"penstyle", l.pen.Style.String(),
		)))
	}
	for _, s := range doc.slides {
		b.WriteString(w.SingleElement("slide", attrs(w, "name", s.name, "selection", s.selection)))
	}
	w.DecIndent()
	b.WriteString(w.EndElement("vymmap"))
	b.WriteString("\n")
	return b.String()
}

func encodeNode(b *strings.Builder, w *xmlobj.Writer, n *node) {
	if n.kind == kindImage {
		b.WriteString(w.SingleElement("floatimage", attrs(w, "id", n.id, "originalName", n.heading)))
		return
	}

	tag := "branch"
	kv := []string{"id", n.id}
	if n.kind == kindCenter {
		tag = "mapcenter"
		kv = append(kv, "x", formatFloat(n.x), "y", formatFloat(n.y))
	}
	if n.color != (color.RGBA{}) {
		kv = append(kv, "textColor", domain.ColorHex(n.color))
	}
	if n.url != "" {
		kv = append(kv, "url", n.url)
	}
	if n.vymLink != "" {
		kv = append(kv, "vymLink", n.vymLink)
	}
	if n.frame != domain.FrameNone {
		kv = append(kv, "frameType", n.frame.String())
	}
	if n.frameIncludeChildren {
		kv = append(kv, "frameIncludeChildren", "true")
	}
	if n.scrolled {
		kv = append(kv, "scrolled", "yes")
	}
	if n.target {
		kv = append(kv, "localTarget", "true")
	}
	if n.task != domain.TaskNone {
		kv = append(kv, "taskStatus", n.task.String())
	}

	b.WriteString(w.BeginElementAttrs(tag, attrs(w, kv...)))
	w.IncIndent()
	b.WriteString(w.ValueElement("heading", w.CDATA(n.heading)))
	if n.note != "" {
		b.WriteString(w.ValueElement("vymnote", w.CDATA(n.note)))
	}
	for _, f := range n.flags {
		b.WriteString(w.ValueElement("standardflag", w.QuoteMeta(f)))
	}
	for _, img := range n.images {
		encodeNode(b, w, img)
	}
	for _, c := range n.branches {
		encodeNode(b, w, c)
	}
	w.DecIndent()
	b.WriteString(w.EndElement(tag))
}

// attrs joins name/value pairs into an attribute list without the leading space.
func attrs(w *xmlobj.Writer, kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		b.WriteString(w.Attribute(kv[i], kv[i+1]))
	}
	return strings.TrimPrefix(b.String(), " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type xmlMap struct {
	XMLName  xml.Name   `xml:"vymmap"`
	Version  string     `xml:"version,attr"`
	Title    string     `xml:"title,attr"`
	Author   string     `xml:"author,attr"`
	Comment  string     `xml:"comment,attr"`
	Rotation float64    `xml:"rotation,attr"`
	Zoom     float64    `xml:"zoom,attr"`
	Centers  []xmlNode  `xml:"mapcenter"`
	Links    []xmlLink  `xml:"xlink"`
	Slides   []xmlSlide `xml:"slide"`
}

type xmlNode struct {
	ID                   string     `xml:"id,attr"`
	X                    float64    `xml:"x,attr"`
	Y                    float64    `xml:"y,attr"`
	TextColor            string     `xml:"textColor,attr"`
	URL                  string     `xml:"url,attr"`
	VymLink              string     `xml:"vymLink,attr"`
	FrameType            string     `xml:"frameType,attr"`
	FrameIncludeChildren string     `xml:"frameIncludeChildren,attr"`
	Scrolled             string     `xml:"scrolled,attr"`
	Target               string     `xml:"localTarget,attr"`
	TaskStatus           string     `xml:"taskStatus,attr"`
	Heading              string     `xml:"heading"`
	Note                 string     `xml:"vymnote"`
	Flags                []string   `xml:"standardflag"`
	Images               []xmlImage `xml:"floatimage"`
	Branches             []xmlNode  `xml:"branch"`
}

type xmlImage struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"originalName,attr"`
}

type xmlLink struct {
	BeginID  string `xml:"beginID,attr"`
	EndID    string `xml:"endID,attr"`
	Width    int    `xml:"width,attr"`
	Color    string `xml:"color,attr"`
	PenStyle string `xml:"penstyle,attr"`
}

type xmlSlide struct {
	Name      string `xml:"name,attr"`
	Selection string `xml:"selection,attr"`
}

// decode parses a vym map file into a detached document.
// Items get fresh IDs when the file has none or when taken already holds them.
func decode(data []byte, filter domain.ContentFilter, taken map[string]*node) (*document, error) {
	var x xmlMap
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}

	doc := newDocument()
	doc.title, doc.author, doc.comment = x.Title, x.Author, x.Comment
	doc.rotation = x.Rotation
	if x.Zoom > 0 {
		doc.zoom = x.Zoom
	}

	ids := make(map[string]string)
	for _, c := range x.Centers {
		doc.centers = append(doc.centers, buildNode(c, kindCenter, nil, filter, taken, ids))
	}

	if !filter.Has(domain.FilterXLinks) {
		for _, l := range x.Links {
			begin, end := ids[l.BeginID], ids[l.EndID]
			if begin == "" || end == "" {
				continue
			}
			pen := domain.DefaultPen()
			if l.Width > 0 {
				pen.Width = l.Width
			}
			if c, err := domain.ParseColor(l.Color); err == nil && l.Color != "" {
				pen.Color = c
			}
			if s, ok := domain.ParsePenStyle(l.PenStyle); ok {
				pen.Style = s
			}
			doc.links = append(doc.links, &xlink{id: uuid.NewString(), beginID: begin, endID: end, pen: pen})
		}
	}
	if !filter.Has(domain.FilterSlides) {
		for _, s := range x.Slides {
			doc.slides = append(doc.slides, slide{id: uuid.NewString(), name: s.Name, selection: s.Selection})
		}
	}
	return doc, nil
}

func buildNode(x xmlNode, kind nodeKind, parent *node, filter domain.ContentFilter, taken map[string]*node, ids map[string]string) *node {
	n := &node{
		id:      freshID(x.ID, taken, ids),
		kind:    kind,
		heading: x.Heading,
		url:     x.URL,
		vymLink: x.VymLink,
		flags:   append([]string(nil), x.Flags...),
		parent:  parent,

		scrolled:             x.Scrolled == "yes" || x.Scrolled == "true",
		target:               x.Target == "true" || x.Target == "yes",
		frameIncludeChildren: x.FrameIncludeChildren == "true",
	}
	if kind == kindCenter {
		n.x, n.y = x.X, x.Y
	}
	if !filter.Has(domain.FilterNotes) {
		n.note = x.Note
	}
	if c, err := domain.ParseColor(x.TextColor); err == nil && x.TextColor != "" {
		n.color = c
	}
	if f, ok := domain.ParseFrameType(x.FrameType); ok {
		n.frame = f
	}
	n.task = parseTask(x.TaskStatus)

	if !filter.Has(domain.FilterImages) {
		for _, img := range x.Images {
			n.images = append(n.images, &node{
				id:      freshID(img.ID, taken, ids),
				kind:    kindImage,
				heading: img.Name,
				parent:  n,
			})
		}
	}
	for _, b := range x.Branches {
		n.branches = append(n.branches, buildNode(b, kindBranch, n, filter, taken, ids))
	}
	return n
}

func freshID(id string, taken map[string]*node, ids map[string]string) string {
	fresh := id
	if id == "" || taken[id] != nil || ids[id] != "" {
		fresh = uuid.NewString()
	}
	if id != "" {
		ids[id] = fresh
	}
	return fresh
}

func parseTask(s string) domain.TaskStatus {
	for _, t := range []domain.TaskStatus{domain.TaskNotStarted, domain.TaskWIP, domain.TaskFinished} {
		if strings.EqualFold(s, t.String()) {
			return t
		}
	}
	return domain.TaskNone
}
