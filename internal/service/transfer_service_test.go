package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomazk/bucketlist/internal/domain"
	"github.com/tomazk/bucketlist/internal/testutil"
)

func TestExport_EmptyCollection(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	data, err := svc.Export()
	require.NoError(t, err)

	var doc ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, ExportVersion, doc.Version)
	assert.NotNil(t, doc.Items)
	assert.Empty(t, doc.Items)
	assert.False(t, doc.ExportDate.IsZero())
}

func TestExport_IsPrettyPrinted(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	data, err := svc.Export()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  \"items\""), "expected indented JSON")
}

func TestExport_FullCollectionNotFilteredView(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	active, err := store.Create(domain.Draft{Title: "Active one", WhoAdded: "Ana"})
	require.NoError(t, err)
	completed, err := store.Create(domain.Draft{Title: "Done one", WhoAdded: "Bor"})
	require.NoError(t, err)
	_, err = store.ToggleComplete(completed.ID)
	require.NoError(t, err)

	data, err := svc.Export()
	require.NoError(t, err)

	var doc ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, active.ID, doc.Items[0].ID)
	assert.Equal(t, completed.ID, doc.Items[1].ID)
}

func TestExportFilename_DateOnly(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	name := svc.ExportFilename()
	assert.Regexp(t, `^bucket-list-\d{4}-\d{2}-\d{2}\.json$`, name)
}

func TestImport_RoundTripReproducesCollection(t *testing.T) {
	source := NewItemService(testutil.NewMockGateway(), 3)
	sourceTransfer := NewTransferService(source)

	first, err := source.Create(domain.Draft{
		Title:       "Walk the Camino",
		Description: "French way",
		WhoAdded:    "Ana",
		Location:    "Spain",
		Photos:      []string{"data:image/jpeg;base64,AAAA"},
	})
	require.NoError(t, err)
	second, err := source.Create(domain.Draft{Title: "Dive the reef", WhoAdded: "Bor"})
	require.NoError(t, err)
	_, err = source.ToggleComplete(second.ID)
	require.NoError(t, err)

	data, err := sourceTransfer.Export()
	require.NoError(t, err)

	target := NewItemService(testutil.NewMockGateway(), 3)
	targetTransfer := NewTransferService(target)

	imported, err := targetTransfer.Import(data)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	assert.Equal(t, first.ID, imported[0].ID)
	assert.Equal(t, first.Title, imported[0].Title)
	assert.Equal(t, first.Description, imported[0].Description)
	assert.Equal(t, first.WhoAdded, imported[0].WhoAdded)
	assert.Equal(t, first.Location, imported[0].Location)
	assert.Equal(t, first.Photos, imported[0].Photos)
	assert.True(t, first.CreatedAt.Equal(imported[0].CreatedAt))

	assert.Equal(t, second.ID, imported[1].ID)
	assert.True(t, imported[1].Completed)
	require.NotNil(t, imported[1].CompletedAt)
}

func TestImport_MissingItems(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	_, err := svc.Import([]byte(`{"exportDate": "2024-01-01T00:00:00Z", "version": "1.0"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidImportDocument)
}

func TestImport_ItemsNotAnArray(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	_, err := svc.Import([]byte(`{"items": "not an array"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidImportDocument)
}

func TestImport_MalformedJSON(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	_, err := svc.Import([]byte(`{not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidImportDocument)
}

func TestImport_AssignsMissingIDs(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	doc := `{"items": [
		{"title": "No id here", "whoAdded": "Ana", "photos": [], "completed": false, "createdAt": "2024-01-01T00:00:00Z"},
		{"id": "keep-me", "title": "Has id", "whoAdded": "Bor", "photos": [], "completed": false, "createdAt": "2024-02-01T00:00:00Z"}
	]}`

	imported, err := svc.Import([]byte(doc))
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.NotEmpty(t, imported[0].ID)
	assert.Equal(t, "keep-me", imported[1].ID)
	assert.Equal(t, "No id here", imported[0].Title)
}

func TestImport_ReplacesWholeCollection(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	_, err := store.Create(domain.Draft{Title: "Will be replaced", WhoAdded: "Ana"})
	require.NoError(t, err)

	doc := `{"items": [{"id": "imported-1", "title": "The import", "whoAdded": "Bor", "photos": [], "completed": false, "createdAt": "2024-01-01T00:00:00Z"}]}`

	imported, err := svc.Import([]byte(doc))
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "imported-1", imported[0].ID)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "imported-1", items[0].ID)
}

func TestImport_EmptyItemsArrayClearsCollection(t *testing.T) {
	store := NewItemService(testutil.NewMockGateway(), 3)
	svc := NewTransferService(store)

	_, err := store.Create(domain.Draft{Title: "Doomed", WhoAdded: "Ana"})
	require.NoError(t, err)

	imported, err := svc.Import([]byte(`{"items": []}`))
	require.NoError(t, err)
	assert.Empty(t, imported)
	assert.Empty(t, store.Items())
}
