package script

import (
	"errors"
	"strings"

	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/params"
)

// exportRule lists the parameters an export format requires.
type exportRule struct {
	noFile   bool
	path     bool
	template bool
}

var exportRules = map[domain.ExportFormat]exportRule{
	domain.ExportAO:      {},
	domain.ExportASCII:   {},
	domain.ExportCSV:     {},
	domain.ExportHTML:    {path: true},
	domain.ExportImage:   {},
	domain.ExportImpress: {template: true},
	domain.ExportLast:    {noFile: true},
	domain.ExportLaTeX:   {},
	domain.ExportOrgMode: {},
	domain.ExportPDF:     {},
	domain.ExportSVG:     {},
	domain.ExportXML:     {path: true},
}

func (m *Map) exportMap(c *call, format string, parameters []string) bool {
	f := domain.ExportFormat(format)
	rule, ok := exportRules[f]
	if !ok {
		names := make([]string, len(domain.ExportFormats))
		for i, n := range domain.ExportFormats {
			names[i] = string(n)
		}
		if hint := suggest(format, names); hint != "" {
			c.fail(domain.KindSyntax, "Unknown export format: %s (did you mean %s?)", format, hint)
		} else {
			c.fail(domain.KindSyntax, "Unknown export format: %s", format)
		}
		return false
	}

	if rule.noFile {
		if err := m.model.ExportLast(); err != nil {
			c.fail(domain.KindUnknown, "Couldn't repeat last export: %v", err)
			return false
		}
		return true
	}

	res := params.Resolver{ExactKeys: m.fixes.ExactParameterKeys}
	req := domain.ExportRequest{Format: f}

	if req.FileName, ok = res.Get(parameters, "filename"); !ok {
		c.fail(domain.KindSyntax, "Filename missing in export to %s", format)
		return false
	}
	if rule.path {
		if req.Path, ok = res.Get(parameters, "path"); !ok {
			c.fail(domain.KindSyntax, "Path missing in export to %s", format)
			return false
		}
	}
	if rule.template {
		if req.Template, ok = res.Get(parameters, "template"); !ok {
			c.fail(domain.KindSyntax, "Template missing in exportImpress")
			return false
		}
	}

	switch f {
	case domain.ExportASCII:
		req.ListTasks, _ = res.Flag(parameters, "listTasks")
	case domain.ExportImage:
		req.ImageFormat = domain.DefaultImageFormat
		if v, ok := res.Get(parameters, "format"); ok {
			if !domain.IsImageFormat(v) {
				c.fail(domain.KindSyntax, "%s not one of the known export formats: %s",
					v, strings.Join(domain.ImageFormats, ", "))
				return false
			}
			req.ImageFormat = v
		}
	case domain.ExportSVG:
		if !m.fixes.SVGExport {
			req.Format = domain.ExportPDF
		}
	}

	if err := m.model.Export(req); err != nil {
		if errors.Is(err, domain.ErrExportUnsupported) {
			c.fail(domain.KindUnknown, "Export to %s not supported", req.Format)
		} else {
			c.fail(domain.KindUnknown, "Couldn't export to %s: %v", req.Format, err)
		}
		return false
	}
	m.logger.Debug("map exported", "format", string(req.Format), "file", req.FileName)
	return true
}
