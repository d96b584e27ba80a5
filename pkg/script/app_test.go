package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

func TestAppSelectMap(t *testing.T) {
	host := &fakeHost{models: []ports.Model{newFakeModel(), newFakeModel()}}
	errs := &Errors{}
	app := NewApp(host, WithScriptContext(errs))

	app.SelectMap(1)
	assert.Equal(t, 0, errs.Len())
	assert.Equal(t, 1, host.current)

	for _, n := range []int{-1, 2, 7} {
		app.SelectMap(n)
	}
	require.Equal(t, 3, errs.Len())
	for _, e := range errs.List() {
		assert.ErrorIs(t, e, domain.ErrRange)
	}
	assert.Equal(t, "RangeError: Map '2' not available.", errs.List()[1].Error())
	assert.Equal(t, 1, host.current)
}

func TestAppGetCurrentMap(t *testing.T) {
	first, second := newFakeModel(), newFakeModel()
	host := &fakeHost{models: []ports.Model{first, second}}
	errs := &Errors{}
	app := NewApp(host, WithScriptContext(errs))

	m := app.GetCurrentMap()
	require.NotNil(t, m)
	assert.Same(t, first, m.Model())
	assert.Same(t, m, app.GetCurrentMap(), "one façade per document")

	app.SelectMap(1)
	assert.Same(t, second, app.GetCurrentMap().Model())

	// Errors raised through the map land in the same script context.
	app.GetCurrentMap().AddBranch()
	require.Equal(t, 1, errs.Len())
	assert.ErrorIs(t, errs.Err(), domain.ErrReference)

	host.models = host.models[1:]
	host.current = 0
	app.CurrentMap()
	assert.Len(t, app.maps, 1, "closed documents are dropped")
}

func TestAppNoMapOpened(t *testing.T) {
	errs := &Errors{}
	app := NewApp(&fakeHost{}, WithScriptContext(errs))

	assert.Nil(t, app.GetCurrentMap())
	require.Equal(t, 1, errs.Len())
	assert.Equal(t, "ReferenceError: No map opened", errs.List()[0].Error())
}

func TestAppToggleTreeEditor(t *testing.T) {
	host := &fakeHost{}
	app := NewApp(host)

	app.ToggleTreeEditor()
	assert.True(t, host.editor)
	app.Call(context.Background(), "toggleTreeEditor")
	assert.False(t, host.editor)
}

func TestAppBind(t *testing.T) {
	host := &fakeHost{models: []ports.Model{newFakeModel()}}
	app := NewApp(host)
	m := app.CurrentMap()

	errs := &Errors{}
	bound := app.Bind(errs)
	bound.SelectMap(5)
	bound.GetCurrentMap().AddBranch()

	assert.Equal(t, 2, errs.Len())
	assert.Same(t, m.Model(), bound.CurrentMap().Model())
	assert.NotSame(t, m, bound.CurrentMap())
}

func TestAppOperations(t *testing.T) {
	var names []string
	for _, s := range AppOperations() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"getCurrentMap", "selectMap", "toggleTreeEditor"}, names)
}
