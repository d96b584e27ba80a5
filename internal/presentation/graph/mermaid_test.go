package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sz10101/vym/internal/presentation/graph"
	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		doc      memory.Document
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Center And Branch Shapes",
			doc: memory.Document{Centers: []memory.Outline{{
				ID: "c-1", Heading: "Root",
				Children: []memory.Outline{
					{ID: "b-1", Heading: "Plain"},
					{ID: "b-2", Heading: "Done", Task: domain.TaskFinished},
					{ID: "b-3", Heading: "Doing", Task: domain.TaskWIP},
				},
			}}},
			contains: []string{
				"graph LR\n",
				`nc_1(("Root"))`,
				`nb_1["Plain"]`,
				`nb_2(["Done"])`,
				`nb_3[/"Doing"/]`,
				"nc_1 --> nb_1",
				"nc_1 --> nb_3",
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Labels Are Escaped",
			doc: memory.Document{Centers: []memory.Outline{{
				ID: "c", Heading: "say \"hi\"\nthere", Flags: []string{"flag-1"},
			}}},
			contains: []string{`nc(("say 'hi' <br/> there <br/> flag-1"))`},
		},
		{
			name: "XLinks And Selection",
			doc: memory.Document{
				Centers: []memory.Outline{{ID: "c", Children: []memory.Outline{{ID: "a"}, {ID: "b"}}}},
				Links:   []memory.LinkOutline{{BeginID: "a", EndID: "b"}},
			},
			overlay: &graph.GraphOverlay{SelectedID: "b"},
			contains: []string{
				"na -.- nb",
				"classDef selected",
				"class nb selected;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.doc, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.False(t, strings.Contains(got, unwanted), "unexpected %q in\n%s", unwanted, got)
			}
		})
	}
}

func TestGenerateMermaid_FromModel(t *testing.T) {
	m := memory.NewModel()
	m.Select("mc:0")
	m.AddNewBranch()

	got := graph.GenerateMermaid(m.Document(), &graph.GraphOverlay{SelectedID: m.SelectedID()})

	assert.Equal(t, 1, strings.Count(got, " --> "))
	assert.Contains(t, got, `(("New map"))`)
}
