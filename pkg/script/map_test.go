package script

import (
	"context"
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sz10101/vym/pkg/domain"
)

func newTestMap(t *testing.T, opts ...Option) (*Map, *fakeModel, *Errors) {
	t.Helper()
	model := newFakeModel()
	errs := &Errors{}
	opts = append([]Option{WithScriptContext(errs)}, opts...)
	return NewMap(model, opts...), model, errs
}

func sampleArgs(spec Spec) []any {
	args := make([]any, 0, len(spec.Params))
	for _, p := range spec.Params {
		switch p.Type {
		case Int:
			args = append(args, 1)
		case Float:
			args = append(args, 1.5)
		case Bool:
			args = append(args, true)
		case StringList:
			args = append(args, []string{})
		default:
			args = append(args, "red")
		}
	}
	return args
}

func TestSelectionGuard(t *testing.T) {
	scoped := 0
	for _, spec := range MapOperations() {
		if !spec.Selection {
			continue
		}
		scoped++
		t.Run(spec.Name, func(t *testing.T) {
			m, model, errs := newTestMap(t)

			got := m.Call(context.Background(), spec.Name, sampleArgs(spec)...)

			require.Equal(t, 1, errs.Len(), "exactly one error")
			assert.ErrorIs(t, errs.List()[0], domain.ErrReference)
			assert.Equal(t, "ReferenceError: No branch selected", errs.List()[0].Error())
			assert.Empty(t, model.calls, "model must not be touched")
			assert.Equal(t, neutralFor(spec.Returns), got)
		})
	}
	assert.Equal(t, 33, scoped)
}

func TestBranchCountNeutral(t *testing.T) {
	m, _, _ := newTestMap(t)
	assert.Equal(t, -1, m.BranchCount())
}

func TestAddBranch(t *testing.T) {
	t.Run("With Selection", func(t *testing.T) {
		m, model, errs := newTestMap(t)
		root := model.selectRoot()

		m.AddBranch()

		assert.Equal(t, 0, errs.Len())
		assert.Equal(t, 1, root.children)
		assert.Equal(t, 1, m.BranchCount())
	})

	t.Run("Model Refuses", func(t *testing.T) {
		m, model, errs := newTestMap(t)
		model.selectRoot()
		model.refuse = true

		m.AddBranch()

		require.Equal(t, 1, errs.Len())
		assert.ErrorIs(t, errs.Err(), domain.ErrUnknown)
		assert.Equal(t, "UnknownError: Couldn't add branch to map", errs.List()[0].Error())
	})
}

func TestColorBranch(t *testing.T) {
	m, model, errs := newTestMap(t)
	model.selectRoot()

	m.ColorBranch("#12ab34")
	require.Equal(t, 0, errs.Len())
	assert.Equal(t, []color.RGBA{{R: 0x12, G: 0xab, B: 0x34, A: 0xff}}, model.colors)

	model.calls = nil
	m.ColorSubtree("not-a-color")
	require.Equal(t, 1, errs.Len())
	assert.ErrorIs(t, errs.Err(), domain.ErrSyntax)
	assert.Empty(t, model.calls)
	assert.Len(t, model.colors, 1)
}

func TestColorCheckedAfterSelection(t *testing.T) {
	m, _, errs := newTestMap(t)
	m.ColorBranch("not-a-color")
	require.Equal(t, 1, errs.Len())
	assert.ErrorIs(t, errs.Err(), domain.ErrReference)
}

func TestExportMap(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		params   []string
		fixes    Fixes
		want     bool
		wantKind error
		wantMsg  string
		wantReq  *domain.ExportRequest
	}{
		{
			name:     "HTML Without Path",
			format:   "HTML",
			params:   []string{"filename=a.html"},
			wantKind: domain.ErrSyntax,
			wantMsg:  "SyntaxError: Path missing in export to HTML",
		},
		{
			name:    "HTML",
			format:  "HTML",
			params:  []string{"filename=a.html", "path=/tmp"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportHTML, FileName: "a.html", Path: "/tmp"},
		},
		{
			name:    "Image Defaults To PNG",
			format:  "Image",
			params:  []string{"filename=x"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportImage, FileName: "x", ImageFormat: "PNG"},
		},
		{
			name:     "Image Format Whitelist",
			format:   "Image",
			params:   []string{"filename=x", "format=BMP"},
			wantKind: domain.ErrSyntax,
		},
		{
			name:    "Image Format",
			format:  "Image",
			params:  []string{"filename=x", "format=JPG"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportImage, FileName: "x", ImageFormat: "JPG"},
		},
		{
			name:     "Impress Without Template",
			format:   "Impress",
			params:   []string{"filename=/tmp/o.odp"},
			wantKind: domain.ErrSyntax,
			wantMsg:  "SyntaxError: Template missing in exportImpress",
		},
		{
			name:     "Missing Filename",
			format:   "CSV",
			params:   nil,
			wantKind: domain.ErrSyntax,
			wantMsg:  "SyntaxError: Filename missing in export to CSV",
		},
		{
			name:     "Unknown Format",
			format:   "html",
			params:   []string{"filename=a"},
			wantKind: domain.ErrSyntax,
			wantMsg:  "SyntaxError: Unknown export format: html (did you mean HTML?)",
		},
		{
			name:    "ASCII List Tasks",
			format:  "ASCII",
			params:  []string{"filename=a.txt", "listTasks=true"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportASCII, FileName: "a.txt", ListTasks: true},
		},
		{
			name:    "ASCII Bare List Tasks",
			format:  "ASCII",
			params:  []string{"filename=a.txt", "listTasks"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportASCII, FileName: "a.txt", ListTasks: true},
		},
		{
			name:    "ASCII List Tasks False",
			format:  "ASCII",
			params:  []string{"filename=a.txt", "listTasks=false"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportASCII, FileName: "a.txt"},
		},
		{
			name:    "ASCII Loose List Tasks",
			format:  "ASCII",
			params:  []string{"filename=a.txt", "listTasks=yes"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportASCII, FileName: "a.txt", ListTasks: true},
		},
		{
			name:    "SVG Legacy Routes To PDF",
			format:  "SVG",
			params:  []string{"filename=a.svg"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportPDF, FileName: "a.svg"},
		},
		{
			name:    "SVG Fixed",
			format:  "SVG",
			params:  []string{"filename=a.svg"},
			fixes:   Fixes{SVGExport: true},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportSVG, FileName: "a.svg"},
		},
		{
			name:    "Prefix Match",
			format:  "PDF",
			params:  []string{"filenames=x", "filename=y"},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportPDF, FileName: "x"},
		},
		{
			name:    "Exact Keys",
			format:  "PDF",
			params:  []string{"filenames=x", "filename=y"},
			fixes:   Fixes{ExactParameterKeys: true},
			want:    true,
			wantReq: &domain.ExportRequest{Format: domain.ExportPDF, FileName: "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, model, errs := newTestMap(t, WithFixes(tt.fixes))

			got := m.ExportMap(tt.format, tt.params)

			assert.Equal(t, tt.want, got)
			if tt.wantKind != nil {
				require.Equal(t, 1, errs.Len())
				assert.ErrorIs(t, errs.Err(), tt.wantKind)
				assert.Empty(t, model.exports)
			} else {
				assert.NoError(t, errs.Err())
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errs.List()[0].Error())
			}
			if tt.wantReq != nil {
				require.Len(t, model.exports, 1)
				assert.Equal(t, *tt.wantReq, model.exports[0])
			}
		})
	}
}

func TestExportMapVariadicParameters(t *testing.T) {
	m, model, errs := newTestMap(t)

	got := m.Call(context.Background(), "exportMap", "XML", "filename=a.xml", "path=/out")

	assert.Equal(t, true, got)
	assert.Equal(t, 0, errs.Len())
	require.Len(t, model.exports, 1)
	assert.Equal(t, "/out", model.exports[0].Path)
}

func TestExportMapFailures(t *testing.T) {
	t.Run("Exporter Error", func(t *testing.T) {
		m, model, errs := newTestMap(t)
		model.exportErr = errors.New("disk full")
		assert.False(t, m.ExportMap("CSV", []string{"filename=a.csv"}))
		assert.ErrorIs(t, errs.Err(), domain.ErrUnknown)
	})

	t.Run("Last Without Previous", func(t *testing.T) {
		m, model, errs := newTestMap(t)
		model.lastErr = domain.ErrNoPreviousExport
		assert.False(t, m.ExportMap("Last", nil))
		assert.ErrorIs(t, errs.Err(), domain.ErrUnknown)
	})

	t.Run("Last", func(t *testing.T) {
		m, model, errs := newTestMap(t)
		assert.True(t, m.ExportMap("Last", nil))
		assert.Equal(t, []string{"ExportLast"}, model.calls)
		assert.Equal(t, 0, errs.Len())
	})
}

func TestRemoveSlide(t *testing.T) {
	tests := []struct {
		name    string
		slides  int
		n       int
		fixes   Fixes
		removed bool
	}{
		{name: "Negative", slides: 3, n: -1},
		{name: "First", slides: 3, n: 0, removed: true},
		{name: "Last Legacy", slides: 3, n: 2},
		{name: "Last Fixed", slides: 3, n: 2, fixes: Fixes{RemoveSlideBound: true}, removed: true},
		{name: "Past End Fixed", slides: 3, n: 3, fixes: Fixes{RemoveSlideBound: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, model, errs := newTestMap(t, WithFixes(tt.fixes))
			model.slides = tt.slides

			m.RemoveSlide(tt.n)

			if tt.removed {
				assert.Equal(t, 0, errs.Len())
				assert.Equal(t, tt.slides-1, model.slides)
				return
			}
			require.Equal(t, 1, errs.Len())
			assert.ErrorIs(t, errs.Err(), domain.ErrRange)
			assert.Equal(t, tt.slides, model.slides)
		})
	}
}

func TestAddXLink(t *testing.T) {
	setup := func(t *testing.T) (*Map, *fakeModel, *Errors) {
		m, model, errs := newTestMap(t)
		model.items["mc:0,bo:0"] = &fakeBranch{id: "a", flags: map[string]bool{}}
		model.items["mc:0,bo:1"] = &fakeBranch{id: "b", flags: map[string]bool{}}
		model.items["mc:0,bo:0,fi:0"] = fakeImage{id: "img"}
		return m, model, errs
	}

	t.Run("Full Pen", func(t *testing.T) {
		m, model, errs := setup(t)

		m.AddXLink("mc:0,bo:0", "mc:0,bo:1", 3, "#ff0000", "dash")

		assert.Equal(t, 0, errs.Len())
		require.Len(t, model.links, 1)
		assert.Equal(t, domain.Pen{Width: 3, Color: color.RGBA{R: 0xff, A: 0xff}, Style: domain.PenDash}, model.links[0].pen)
		assert.Equal(t, "a", model.links[0].begin.ID())
	})

	t.Run("Invalid Optionals Do Not Abort", func(t *testing.T) {
		m, model, errs := setup(t)

		m.AddXLink("mc:0,bo:0", "mc:0,bo:1", 5, "nope", "wavy")

		require.Equal(t, 2, errs.Len())
		for _, e := range errs.List() {
			assert.ErrorIs(t, e, domain.ErrUnknown)
		}
		require.Len(t, model.links, 1)
		assert.Equal(t, 5, model.links[0].pen.Width)
		assert.Equal(t, domain.DefaultPen().Style, model.links[0].pen.Style)
	})

	t.Run("Missing Endpoint", func(t *testing.T) {
		m, model, errs := setup(t)
		m.AddXLink("mc:0,bo:0", "mc:0,bo:9", 0, "", "")
		assert.Equal(t, "UnknownError: Begin or end of xLink not found", errs.List()[0].Error())
		assert.Empty(t, model.links)
	})

	t.Run("Image Endpoint", func(t *testing.T) {
		m, model, errs := setup(t)
		m.AddXLink("mc:0,bo:0", "mc:0,bo:0,fi:0", 0, "", "")
		assert.ErrorIs(t, errs.Err(), domain.ErrUnknown)
		assert.Empty(t, model.links)
	})
}

func TestAddMapInsert(t *testing.T) {
	dir := t.TempDir()
	m, model, errs := newTestMap(t, WithWorkDir(dir))

	m.Call(context.Background(), "addMapInsert", "other.vym")
	m.AddMapInsert("/abs/x.vym", 2, int(domain.FilterImages))

	assert.Equal(t, 0, errs.Len())
	require.Len(t, model.loads, 2)
	assert.Equal(t, loadCall{file: filepath.Join(dir, "other.vym"), mode: domain.LoadInsert, pos: -1}, model.loads[0])
	assert.Equal(t, loadCall{file: "/abs/x.vym", mode: domain.LoadInsert, filter: domain.FilterImages, pos: 2}, model.loads[1])
	require.Len(t, model.checkpoints, 2)
	assert.Equal(t, model.loads[0].file, model.checkpoints[0].file)

	model.refuse = true
	m.AddMapReplace("/abs/y.vym")
	require.Equal(t, 1, errs.Len())
	assert.Equal(t, "UnknownError: Couldn't load /abs/y.vym", errs.List()[0].Error())
}

func TestNoteGetters(t *testing.T) {
	m, model, _ := newTestMap(t)
	model.heading, model.note = "head", "note"
	assert.Equal(t, "head", m.GetNotePlainText())
	assert.Equal(t, "<heading>head</heading>", m.GetNoteXML())

	fixed := NewMap(model, WithFixes(Fixes{NoteGetters: true}))
	assert.Equal(t, "note", fixed.GetNotePlainText())
	assert.Equal(t, "<note>note</note>", fixed.GetNoteXML())
}

func TestSelectionOps(t *testing.T) {
	m, model, errs := newTestMap(t)

	assert.True(t, m.Select("mc:0"))
	assert.Equal(t, "mc:0", m.GetSelectString())
	assert.False(t, m.Select("mc:7"))
	assert.Equal(t, "UnknownError: Couldn't select mc:7", errs.List()[0].Error())

	assert.False(t, m.SelectLastImage())
	assert.Equal(t, "UnknownError: Couldn't get last image", errs.List()[1].Error())

	model.selected.image = fakeImage{id: "img"}
	assert.True(t, m.SelectLastImage())

	assert.True(t, m.UnselectAll())
	assert.Equal(t, "", m.GetSelectString())
	assert.False(t, m.CenterOnID("nope"))
	assert.Equal(t, 3, errs.Len())
}

func TestFrameTypeAndTasks(t *testing.T) {
	m, model, errs := newTestMap(t)
	root := model.selectRoot()

	assert.Equal(t, "", m.GetFrameType())
	assert.Equal(t, "UnknownError: No BranchObj available", errs.List()[0].Error())

	root.geometry = fakeGeometry{frame: "Rectangle"}
	assert.Equal(t, "Rectangle", m.GetFrameType())

	m.CycleTask()
	require.Equal(t, 2, errs.Len())
	assert.ErrorIs(t, errs.List()[1], domain.ErrSyntax)

	model.canCycle = true
	m.CycleTask()
	assert.Equal(t, 2, errs.Len())
}

func TestFlags(t *testing.T) {
	m, model, _ := newTestMap(t)
	root := model.selectRoot()

	m.SetFlag("lifebelt")
	assert.True(t, root.flags["lifebelt"])
	m.UnsetFlag("lifebelt")
	assert.False(t, root.flags["lifebelt"])
	m.SetURL("https://example.org")
	assert.Equal(t, "https://example.org", root.url)
}

func TestArgumentCoercion(t *testing.T) {
	m, model, errs := newTestMap(t)

	m.Call(context.Background(), "addSlide")
	m.Call(context.Background(), "addSlide")
	m.Call(context.Background(), "addSlide")
	m.Call(context.Background(), "removeSlide", "0")
	assert.Equal(t, 0, errs.Len())
	assert.Equal(t, 2, model.slides)

	m.Call(context.Background(), "removeSlide")
	require.Equal(t, 1, errs.Len())
	assert.Equal(t, "SyntaxError: removeSlide(n): missing argument n", errs.List()[0].Error())

	m.Call(context.Background(), "nop", 1)
	assert.ErrorIs(t, errs.List()[1], domain.ErrSyntax)

	m.Call(context.Background(), "removeSlide", "one")
	assert.ErrorIs(t, errs.List()[2], domain.ErrSyntax)
	assert.Equal(t, 2, model.slides)

	m.Call(context.Background(), "removeSlide", 0.9)
	require.Equal(t, 4, errs.Len())
	assert.ErrorIs(t, errs.List()[3], domain.ErrSyntax)
	assert.Equal(t, 2, model.slides)
}

func TestUnknownOperation(t *testing.T) {
	m, _, errs := newTestMap(t)

	assert.Nil(t, m.Call(context.Background(), "addBrnch"))
	assert.Equal(t, "SyntaxError: Unknown operation map.addBrnch (did you mean addBranch?)", errs.List()[0].Error())

	m.Call(context.Background(), "frobnicateEverything")
	assert.Equal(t, "SyntaxError: Unknown operation map.frobnicateEverything", errs.List()[1].Error())
}

func TestCallNamed(t *testing.T) {
	m, model, errs := newTestMap(t)

	got := m.CallNamed(context.Background(), "exportMap", map[string]any{
		"format":     "PDF",
		"parameters": []any{"filename=a.pdf"},
	})
	assert.Equal(t, true, got)
	require.Len(t, model.exports, 1)

	m.CallNamed(context.Background(), "setMapTitle", map[string]any{"text": "Plans"})
	assert.Equal(t, "Plans", model.title)

	m.CallNamed(context.Background(), "setMapTitle", map[string]any{"title": "x"})
	require.Equal(t, 1, errs.Len())
	assert.ErrorIs(t, errs.Err(), domain.ErrSyntax)
}

func TestSleep(t *testing.T) {
	t.Run("Legacy Returns At Once", func(t *testing.T) {
		m, _, _ := newTestMap(t)
		start := time.Now()
		m.Sleep(context.Background(), 10)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("Fixed Honors Context", func(t *testing.T) {
		m, _, _ := newTestMap(t, WithFixes(Fixes{Sleep: true}))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		start := time.Now()
		m.Sleep(ctx, 10)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("Fixed Sleeps", func(t *testing.T) {
		m, _, _ := newTestMap(t, WithFixes(Fixes{Sleep: true}))
		start := time.Now()
		m.Sleep(context.Background(), 0.02)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}

func TestErrorsWithoutScriptContext(t *testing.T) {
	model := newFakeModel()
	var events []CallEvent
	m := NewMap(model, WithObserver(ObserverFunc(func(ev CallEvent) { events = append(events, ev) })))

	m.AddBranch()

	require.Len(t, events, 1)
	assert.Equal(t, "map", events[0].Facade)
	assert.Equal(t, "addBranch", events[0].Op)
	require.Len(t, events[0].Errors, 1)
	assert.Equal(t, domain.KindReference, events[0].Errors[0].Kind)
}

func TestBind(t *testing.T) {
	m, model, errs := newTestMap(t)
	other := &Errors{}

	m.Bind(other).AddBranch()

	assert.Equal(t, 0, errs.Len())
	assert.Equal(t, 1, other.Len())
	assert.Same(t, model, m.Bind(other).Model())
}

func TestSignature(t *testing.T) {
	specs := map[string]Spec{}
	for _, s := range MapOperations() {
		specs[s.Name] = s
	}
	assert.Equal(t, "addMapInsert(filename [, pos [, contentFilter]])", specs["addMapInsert"].Signature())
	assert.Equal(t, "addBranch()", specs["addBranch"].Signature())
}

func TestReference(t *testing.T) {
	ref := Reference()

	assert.True(t, strings.HasPrefix(ref, "# Script operations\n"))
	assert.Contains(t, ref, "| `vym.selectMap(n)` | void | Focus open document n. |")
	assert.Contains(t, ref, "| `map.branchCount()` | int | *selection* ")
	assert.Contains(t, ref, "`map.addMapInsert(filename [, pos [, contentFilter]])`")
}
