package domain

import "slices"

// ExportFormat names an exporter. Names are case-sensitive, as scripts pass them.
type ExportFormat string

const (
	ExportAO      ExportFormat = "AO"
	ExportASCII   ExportFormat = "ASCII"
	ExportCSV     ExportFormat = "CSV"
	ExportHTML    ExportFormat = "HTML"
	ExportImage   ExportFormat = "Image"
	ExportImpress ExportFormat = "Impress"
	ExportLast    ExportFormat = "Last"
	ExportLaTeX   ExportFormat = "LaTeX"
	ExportOrgMode ExportFormat = "OrgMode"
	ExportPDF     ExportFormat = "PDF"
	ExportSVG     ExportFormat = "SVG"
	ExportXML     ExportFormat = "XML"
)

// ExportFormats lists every format accepted by exportMap.
var ExportFormats = []ExportFormat{
	ExportAO, ExportASCII, ExportCSV, ExportHTML, ExportImage, ExportImpress,
	ExportLast, ExportLaTeX, ExportOrgMode, ExportPDF, ExportSVG, ExportXML,
}

// DefaultImageFormat is used when an Image export names no format.
const DefaultImageFormat = "PNG"

// ImageFormats is the whitelist for the "format" parameter of an Image export.
var ImageFormats = []string{"PNG", "GIF", "JPG", "JPEG", "PBM", "PGM", "PPM", "TIFF", "XBM", "XPM"}

// IsImageFormat reports whether name is a known image format.
func IsImageFormat(name string) bool {
	return slices.Contains(ImageFormats, name)
}

// ExportRequest carries the resolved arguments of one exporter call.
// Only the fields used by Format are set.
type ExportRequest struct {
	Format      ExportFormat
	FileName    string
	Path        string // Target directory (HTML, XML)
	Template    string // Impress template
	ImageFormat string
	ListTasks   bool // ASCII
}
