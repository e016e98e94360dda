package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddishgreen/contentful-unique-references/internal/collection"
	"github.com/reddishgreen/contentful-unique-references/internal/storetest"
	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

const (
	fieldID = "related"
	locale  = "en-US"
)

type fixture struct {
	store    *storetest.Store
	field    *storetest.FieldHost
	dialogs  *storetest.Dialogs
	nav      *storetest.Navigator
	notifier *storetest.Notifier
	engine   *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := storetest.NewStore()
	s.PutType(&types.RecordType{ID: "page", Name: "Page", DisplayFieldID: "title"})
	s.PutType(&types.RecordType{ID: "article", Name: "Article", DisplayFieldID: "title"})
	s.Put(&types.Record{ID: "parent", TypeID: "page", Version: 1,
		Fields: types.Fields{"title": {locale: "Parent"}}})

	f := &fixture{
		store:    s,
		field:    storetest.NewFieldHost(fieldID, locale),
		dialogs:  &storetest.Dialogs{},
		nav:      &storetest.Navigator{},
		notifier: &storetest.Notifier{},
	}
	f.engine = New(Deps{
		Store:    s,
		Registry: storetest.Registry{S: s},
		Field:    f.field,
		Dialogs:  f.dialogs,
		Nav:      f.nav,
		Notifier: f.notifier,
		ParentID: "parent",
	})
	return f
}

func (f *fixture) putEntry(id, title string) *types.Record {
	rec := &types.Record{ID: id, TypeID: "article", Version: 1,
		Fields: types.Fields{"title": {locale: title}}}
	f.store.Put(rec)
	return rec
}

func (f *fixture) open(t *testing.T) {
	t.Helper()
	require.NoError(t, f.engine.Open(context.Background()))
}

func (f *fixture) fieldTargets() []string {
	return types.TargetIDs(f.field.Value())
}

func TestOpenLoadsFieldValue(t *testing.T) {
	f := newFixture(t)
	f.putEntry("a", "Alpha")
	f.field.ExternalChange(types.LinksFor([]string{"a"}))
	f.open(t)

	items := f.engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].TargetID)
	assert.NotEmpty(t, items[0].LocalKey)

	rows := f.engine.Rows(context.Background())
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0].Title)
	assert.Equal(t, types.StatusDraft, rows[0].Status)
}

func TestOpenUnknownParent(t *testing.T) {
	f := newFixture(t)
	f.engine.deps.ParentID = "ghost"
	assert.Error(t, f.engine.Open(context.Background()))
}

func TestAllowedTypesFromValidation(t *testing.T) {
	f := newFixture(t)
	f.field.AllowedTypes = []string{"article"}
	f.open(t)

	allowed := f.engine.AllowedTypes()
	require.Len(t, allowed, 1)
	assert.Equal(t, "article", allowed[0].ID)
}

func TestAllowedTypesFallbackToAll(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	assert.Len(t, f.engine.AllowedTypes(), 2)
}

func TestAddSelectedAppendsAndWrites(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	a := f.putEntry("a", "Alpha")
	b := f.putEntry("b", "Beta")
	f.dialogs.SelectQueue = [][]*types.Record{{a, b}}

	require.NoError(t, f.engine.AddSelected(context.Background()))

	assert.Equal(t, []string{"a", "b"}, f.fieldTargets())
	rows := f.engine.Rows(context.Background())
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Title)
}

func TestAddSelectedCancelledIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.open(t)

	require.NoError(t, f.engine.AddSelected(context.Background()))
	assert.Empty(t, f.engine.Items())
	assert.Zero(t, f.field.SetValueCalls)
}

func TestAddSelectedRejectsSameParentDuplicate(t *testing.T) {
	f := newFixture(t)
	a := f.putEntry("a", "Alpha")
	f.field.ExternalChange(types.LinksFor([]string{"a"}))
	f.open(t)
	f.dialogs.SelectQueue = [][]*types.Record{{a}}

	require.NoError(t, f.engine.AddSelected(context.Background()))

	assert.Equal(t, []string{"a"}, f.fieldTargets(), "no second entry added")
	assert.Len(t, f.notifier.Warnings, 1)
}

func TestAddSelectedMovesConflictedEntry(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	c := f.putEntry("c", "Candidate")
	other := &types.Record{ID: "other", TypeID: "page", Version: 1,
		Fields: types.Fields{"title": {locale: "Other parent"}}}
	other.SetLinkList(fieldID, locale, types.LinksFor([]string{"c"}))
	f.store.Put(other)
	f.dialogs.SelectQueue = [][]*types.Record{{c}}
	f.dialogs.ConfirmQueue = []bool{true}

	require.NoError(t, f.engine.AddSelected(context.Background()))

	assert.Equal(t, []string{"c"}, f.fieldTargets())
	links, _ := f.store.Record("other").LinkList(fieldID, locale)
	assert.Empty(t, links, "reference moved away from the other parent")
}

func TestAddSelectedDeclinedMoveChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	c := f.putEntry("c", "Candidate")
	other := &types.Record{ID: "other", TypeID: "page", Version: 1}
	other.SetLinkList(fieldID, locale, types.LinksFor([]string{"c"}))
	f.store.Put(other)
	f.dialogs.SelectQueue = [][]*types.Record{{c}}
	f.dialogs.ConfirmQueue = []bool{false}

	require.NoError(t, f.engine.AddSelected(context.Background()))

	assert.Empty(t, f.engine.Items())
	assert.Zero(t, f.field.SetValueCalls)
	links, _ := f.store.Record("other").LinkList(fieldID, locale)
	assert.Equal(t, []string{"c"}, types.TargetIDs(links))
}

func TestRemoveWritesImmediately(t *testing.T) {
	f := newFixture(t)
	f.putEntry("a", "Alpha")
	f.putEntry("b", "Beta")
	f.field.ExternalChange(types.LinksFor([]string{"a", "b"}))
	f.open(t)

	items := f.engine.Items()
	require.NoError(t, f.engine.Remove(context.Background(), items[0].LocalKey))
	assert.Equal(t, []string{"b"}, f.fieldTargets())

	assert.ErrorIs(t, f.engine.Remove(context.Background(), "nope"), types.ErrKeyNotFound)
}

func TestMoveToEdgeAndReorder(t *testing.T) {
	f := newFixture(t)
	f.field.ExternalChange(types.LinksFor([]string{"a", "b", "c"}))
	f.open(t)

	items := f.engine.Items()
	require.NoError(t, f.engine.MoveToEdge(context.Background(), items[2].LocalKey, collection.EdgeStart))
	assert.Equal(t, []string{"c", "a", "b"}, f.fieldTargets())

	require.NoError(t, f.engine.Reorder(context.Background(), 0, 2))
	assert.Equal(t, []string{"a", "b", "c"}, f.fieldTargets())

	assert.ErrorIs(t, f.engine.MoveToEdge(context.Background(), "nope", collection.EdgeEnd), types.ErrKeyNotFound)
	assert.ErrorIs(t, f.engine.Reorder(context.Background(), 0, 9), types.ErrIndexOutOfRange)
}

func TestExternalChangeReplacesCollection(t *testing.T) {
	f := newFixture(t)
	f.field.ExternalChange(types.LinksFor([]string{"a"}))
	f.open(t)
	before := f.engine.Items()

	f.putEntry("x", "Ex")
	f.field.ExternalChange(types.LinksFor([]string{"x", "a"}))

	after := f.engine.Items()
	require.Len(t, after, 2)
	assert.Equal(t, []string{"x", "a"}, []string{after[0].TargetID, after[1].TargetID})
	for _, prev := range before {
		for _, cur := range after {
			assert.NotEqual(t, prev.LocalKey, cur.LocalKey, "fresh local keys after replace")
		}
	}

	// The external record was fetched as part of the replace.
	rows := f.engine.Rows(context.Background())
	assert.Equal(t, "Ex", rows[0].Title)
}

func TestCreateAndLink(t *testing.T) {
	f := newFixture(t)
	f.open(t)

	require.NoError(t, f.engine.CreateAndLink(context.Background(), "article"))

	items := f.engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, f.fieldTargets(), []string{items[0].TargetID})
	assert.Equal(t, []string{items[0].TargetID}, f.nav.Opened)
}

func TestCreateAndLinkFailure(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	f.store.Fail["create"] = true

	assert.Error(t, f.engine.CreateAndLink(context.Background(), "article"))
	assert.Empty(t, f.engine.Items(), "collection unmodified")
	assert.Len(t, f.notifier.Errors, 1)
	assert.Empty(t, f.nav.Opened)
}

func TestOpenEditorMarksRefresh(t *testing.T) {
	f := newFixture(t)
	rec := f.putEntry("a", "Alpha")
	f.field.ExternalChange(types.LinksFor([]string{"a"}))
	f.open(t)

	items := f.engine.Items()
	require.NoError(t, f.engine.OpenEditor(context.Background(), items[0].LocalKey))
	assert.Equal(t, []string{"a"}, f.nav.Opened)

	// Simulate the record being edited elsewhere.
	rec.Fields["title"][locale] = "Renamed"
	f.store.Put(rec)

	f.engine.PointerReturned(context.Background())
	rows := f.engine.Rows(context.Background())
	assert.Equal(t, "Renamed", rows[0].Title)
}

func TestResyncSingleFlight(t *testing.T) {
	f := newFixture(t)
	f.putEntry("a", "Alpha")
	f.field.ExternalChange(types.LinksFor([]string{"a"}))
	f.open(t)

	items := f.engine.Items()
	require.NoError(t, f.engine.OpenEditor(context.Background(), items[0].LocalKey))

	f.engine.PointerReturned(context.Background())

	// A store outage now would surface only if the second trigger refetched.
	f.store.Fail["getmany"] = true
	f.engine.WindowFocused(context.Background())

	rows := f.engine.Rows(context.Background())
	assert.Equal(t, "Alpha", rows[0].Title, "second trigger did not refetch")
}

func TestRowsPlaceholdersAndDuplicates(t *testing.T) {
	f := newFixture(t)
	f.putEntry("a", "Alpha")
	f.field.ExternalChange(types.LinksFor([]string{"a", "ghost", "a"}))
	f.open(t)

	rows := f.engine.Rows(context.Background())
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[0].Title)
	assert.False(t, rows[0].Duplicate)
	assert.Equal(t, PlaceholderNotFound, rows[1].Title)
	assert.True(t, rows[1].Missing)
	assert.True(t, rows[2].Duplicate, "second occurrence flagged")
	assert.False(t, rows[1].Duplicate, "unique ghost not flagged")
}
