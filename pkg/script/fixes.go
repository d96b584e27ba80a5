package script

// Fixes enables corrected behavior for historical quirks of the façade.
// The zero value keeps the quirks.
type Fixes struct {
	// NoteGetters makes getNotePlainText and getNoteXML return the note.
	// Legacy behavior returns the heading.
	NoteGetters bool `yaml:"note_getters"`
	// RemoveSlideBound accepts the last slide index in removeSlide.
	// Legacy behavior rejects n == slideCount-1.
	RemoveSlideBound bool `yaml:"remove_slide_bound"`
	// SVGExport routes exportMap("SVG") to the SVG exporter instead of PDF.
	SVGExport bool `yaml:"svg_export"`
	// Sleep makes sleep(n) block for n seconds. Legacy behavior returns at once.
	Sleep bool `yaml:"sleep"`
	// ExactParameterKeys matches export parameters by "key=" instead of by prefix.
	ExactParameterKeys bool `yaml:"exact_parameter_keys"`
}
