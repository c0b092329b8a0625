package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/labmath/labmath-site/internal/models"
	"github.com/labmath/labmath-site/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContentService(t *testing.T) *ContentService {
	t.Helper()
	return NewContentService(storage.NewStore(filepath.Join(t.TempDir(), "data.json")))
}

func TestUpsertActiviteAppliesDefaults(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	id, err := svc.UpsertActivite(ctx, "a1", models.Activite{Titre: "Atelier"})
	require.NoError(t, err)
	assert.Equal(t, "a1", id)

	got, err := svc.GetActivite(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, DefaultAuthor, got.Auteur)
	assert.True(t, got.Published())
	assert.NotEmpty(t, got.DateCreation)
	assert.NotEmpty(t, got.DateModification)
}

func TestUpsertActiviteIsIdempotent(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	in := models.Activite{Titre: "Atelier", Description: "initiation"}
	_, err := svc.UpsertActivite(ctx, "a1", in)
	require.NoError(t, err)
	first, err := svc.GetActivite(ctx, "a1")
	require.NoError(t, err)

	_, err = svc.UpsertActivite(ctx, "a1", in)
	require.NoError(t, err)

	list := svc.ListActivites(ctx)
	require.Len(t, list, 1, "upsert must not duplicate records")

	second, err := svc.GetActivite(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, first.Titre, second.Titre)
	assert.Equal(t, first.Description, second.Description)
	assert.Equal(t, first.DateCreation, second.DateCreation, "creation date survives replacement")
}

func TestUpsertReplacesInPlace(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		_, err := svc.UpsertActivite(ctx, id, models.Activite{
			Titre:        "t-" + id,
			DateCreation: "2024-01-01T00:00:00Z",
		})
		require.NoError(t, err)
	}

	_, err := svc.UpsertActivite(ctx, "a2", models.Activite{
		Titre:        "replaced",
		DateCreation: "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	list := svc.ListActivites(ctx)
	require.Len(t, list, 3)
	ids := []string{list[0].SyncID, list[1].SyncID, list[2].SyncID}
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids, "replacement keeps record order")
	assert.Equal(t, "replaced", list[1].Titre)
}

func TestUpsertGeneratesSyncID(t *testing.T) {
	svc := newTestContentService(t)

	id, err := svc.UpsertOffre(context.Background(), "", models.Offre{Titre: "Stage"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestDeleteThenGetReturnsNotFound(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	_, err := svc.UpsertActivite(ctx, "a1", models.Activite{Titre: "Atelier"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteActivite(ctx, "a1"))

	_, err = svc.GetActivite(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	svc := newTestContentService(t)
	assert.ErrorIs(t, svc.DeleteActivite(context.Background(), "ghost"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteOffre(context.Background(), "ghost"), ErrNotFound)
}

func TestListActivitesSortsNewestFirst(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	dates := map[string]string{
		"a1": "2024-01-01T00:00:00Z",
		"a2": "2024-02-01T00:00:00Z",
		"a3": "2024-03-01T00:00:00Z",
	}
	for id, date := range dates {
		_, err := svc.UpsertActivite(ctx, id, models.Activite{Titre: id, DateCreation: date})
		require.NoError(t, err)
	}

	list := svc.ListActivites(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, "a3", list[0].SyncID)
	assert.Equal(t, "a2", list[1].SyncID)
	assert.Equal(t, "a1", list[2].SyncID)
}

func TestListActivitesSortsMissingDatesLast(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	err := svc.store.Update(func(doc *models.Document) error {
		doc.Activites = []models.Activite{
			{SyncID: "undated", Titre: "no date"},
			{SyncID: "garbled", Titre: "garbled", DateCreation: "zzz-not-a-date"},
			{SyncID: "dated", Titre: "dated", DateCreation: "2024-01-01T00:00:00Z"},
		}
		return nil
	})
	require.NoError(t, err)

	list := svc.ListActivites(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, "dated", list[0].SyncID)
	// Missing and unparseable dates both sort as empty, keeping their
	// relative order.
	assert.Equal(t, "undated", list[1].SyncID)
	assert.Equal(t, "garbled", list[2].SyncID)
}

func TestListActivitesHidesUnpublished(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	_, err := svc.UpsertActivite(ctx, "visible", models.Activite{Titre: "v"})
	require.NoError(t, err)
	_, err = svc.UpsertActivite(ctx, "hidden", models.Activite{Titre: "h", EstPublie: models.Bool(false)})
	require.NoError(t, err)

	list := svc.ListActivites(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].SyncID)
}

func TestCountsReportsAllCollections(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	_, err := svc.UpsertActivite(ctx, "a1", models.Activite{Titre: "a"})
	require.NoError(t, err)
	_, err = svc.UpsertRealisation(ctx, "r1", models.Realisation{Titre: "r"})
	require.NoError(t, err)
	_, err = svc.UpsertOffre(ctx, "o1", models.Offre{Titre: "o", EstActive: models.Bool(false)})
	require.NoError(t, err)

	counts := svc.Counts(ctx)
	assert.Equal(t, 1, counts.Activites)
	assert.Equal(t, 1, counts.Realisations)
	assert.Equal(t, 0, counts.Annonces)
	assert.Equal(t, 1, counts.Offres, "status counts ignore visibility")
	assert.NotEmpty(t, counts.LastUpdate)
}
