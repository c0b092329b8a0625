package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labmath/labmath-site/internal/models"
	"github.com/labmath/labmath-site/internal/storage"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no record carries the requested sync_id.
var ErrNotFound = errors.New("record not found")

// DefaultAuthor is stamped on activities submitted without an author.
const DefaultAuthor = "Lab_Math"

// ContentService implements upsert, delete and public listing for the four
// content collections. All four share the same upsert semantics: replace in
// place by sync_id, preserving the order of every other record, else append.
type ContentService struct {
	store *storage.Store
}

func NewContentService(store *storage.Store) *ContentService {
	return &ContentService{store: store}
}

// UpsertActivite inserts or replaces the activity with the given sync_id and
// returns the resolved id (generated when the caller supplied none).
func (s *ContentService) UpsertActivite(ctx context.Context, syncID string, in models.Activite) (string, error) {
	syncID = resolveSyncID(syncID)
	now := time.Now().Format(time.RFC3339)

	err := s.store.Update(func(doc *models.Document) error {
		rec := in
		rec.SyncID = syncID
		if rec.Auteur == "" {
			rec.Auteur = DefaultAuthor
		}
		if rec.EstPublie == nil {
			rec.EstPublie = models.Bool(true)
		}
		rec.DateModification = now

		for i := range doc.Activites {
			if doc.Activites[i].SyncID == syncID {
				if rec.DateCreation == "" {
					rec.DateCreation = doc.Activites[i].DateCreation
				}
				doc.Activites[i] = rec
				return nil
			}
		}
		if rec.DateCreation == "" {
			rec.DateCreation = now
		}
		doc.Activites = append(doc.Activites, rec)
		return nil
	})
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"collection": "activites", "sync_id": syncID}).Info("Record upserted")
	return syncID, nil
}

// UpsertRealisation inserts or replaces an achievement.
func (s *ContentService) UpsertRealisation(ctx context.Context, syncID string, in models.Realisation) (string, error) {
	syncID = resolveSyncID(syncID)
	now := time.Now().Format(time.RFC3339)

	err := s.store.Update(func(doc *models.Document) error {
		rec := in
		rec.SyncID = syncID
		rec.DateModification = now

		for i := range doc.Realisations {
			if doc.Realisations[i].SyncID == syncID {
				if rec.DateCreation == "" {
					rec.DateCreation = doc.Realisations[i].DateCreation
				}
				doc.Realisations[i] = rec
				return nil
			}
		}
		if rec.DateCreation == "" {
			rec.DateCreation = now
		}
		doc.Realisations = append(doc.Realisations, rec)
		return nil
	})
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"collection": "realisations", "sync_id": syncID}).Info("Record upserted")
	return syncID, nil
}

// UpsertAnnonce inserts or replaces an announcement.
func (s *ContentService) UpsertAnnonce(ctx context.Context, syncID string, in models.Annonce) (string, error) {
	syncID = resolveSyncID(syncID)
	now := time.Now().Format(time.RFC3339)

	err := s.store.Update(func(doc *models.Document) error {
		rec := in
		rec.SyncID = syncID
		if rec.EstActive == nil {
			rec.EstActive = models.Bool(true)
		}
		rec.DateModification = now

		for i := range doc.Annonces {
			if doc.Annonces[i].SyncID == syncID {
				if rec.DateCreation == "" {
					rec.DateCreation = doc.Annonces[i].DateCreation
				}
				doc.Annonces[i] = rec
				return nil
			}
		}
		if rec.DateCreation == "" {
			rec.DateCreation = now
		}
		doc.Annonces = append(doc.Annonces, rec)
		return nil
	})
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"collection": "annonces", "sync_id": syncID}).Info("Record upserted")
	return syncID, nil
}

// UpsertOffre inserts or replaces an offer.
func (s *ContentService) UpsertOffre(ctx context.Context, syncID string, in models.Offre) (string, error) {
	syncID = resolveSyncID(syncID)
	now := time.Now().Format(time.RFC3339)

	err := s.store.Update(func(doc *models.Document) error {
		rec := in
		rec.SyncID = syncID
		if rec.EstActive == nil {
			rec.EstActive = models.Bool(true)
		}
		rec.DateModification = now

		for i := range doc.Offres {
			if doc.Offres[i].SyncID == syncID {
				if rec.DateCreation == "" {
					rec.DateCreation = doc.Offres[i].DateCreation
				}
				doc.Offres[i] = rec
				return nil
			}
		}
		if rec.DateCreation == "" {
			rec.DateCreation = now
		}
		doc.Offres = append(doc.Offres, rec)
		return nil
	})
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"collection": "offres", "sync_id": syncID}).Info("Record upserted")
	return syncID, nil
}

// DeleteActivite removes the activity with the given sync_id. ErrNotFound
// when nothing matched; the document is not rewritten in that case.
func (s *ContentService) DeleteActivite(ctx context.Context, syncID string) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.Activites[:0]
		for _, a := range doc.Activites {
			if a.SyncID != syncID {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(doc.Activites) {
			return ErrNotFound
		}
		doc.Activites = kept
		return nil
	})
}

// DeleteRealisation removes the achievement with the given sync_id.
func (s *ContentService) DeleteRealisation(ctx context.Context, syncID string) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.Realisations[:0]
		for _, r := range doc.Realisations {
			if r.SyncID != syncID {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(doc.Realisations) {
			return ErrNotFound
		}
		doc.Realisations = kept
		return nil
	})
}

// DeleteAnnonce removes the announcement with the given sync_id.
func (s *ContentService) DeleteAnnonce(ctx context.Context, syncID string) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.Annonces[:0]
		for _, a := range doc.Annonces {
			if a.SyncID != syncID {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(doc.Annonces) {
			return ErrNotFound
		}
		doc.Annonces = kept
		return nil
	})
}

// DeleteOffre removes the offer with the given sync_id.
func (s *ContentService) DeleteOffre(ctx context.Context, syncID string) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.Offres[:0]
		for _, o := range doc.Offres {
			if o.SyncID != syncID {
				kept = append(kept, o)
			}
		}
		if len(kept) == len(doc.Offres) {
			return ErrNotFound
		}
		doc.Offres = kept
		return nil
	})
}

// GetActivite returns a single activity by sync_id, published or not.
func (s *ContentService) GetActivite(ctx context.Context, syncID string) (models.Activite, error) {
	doc := s.store.Load()
	for _, a := range doc.Activites {
		if a.SyncID == syncID {
			return a, nil
		}
	}
	return models.Activite{}, ErrNotFound
}

// ListActivites returns published activities, most recent first.
func (s *ContentService) ListActivites(ctx context.Context) []models.Activite {
	doc := s.store.Load()
	out := []models.Activite{}
	for _, a := range doc.Activites {
		if a.Published() {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return creationSortKey(out[i].DateCreation) > creationSortKey(out[j].DateCreation)
	})
	return out
}

// ListRealisations returns all achievements, most recent first. Achievements
// carry no visibility flag.
func (s *ContentService) ListRealisations(ctx context.Context) []models.Realisation {
	doc := s.store.Load()
	out := append([]models.Realisation{}, doc.Realisations...)
	sort.SliceStable(out, func(i, j int) bool {
		return creationSortKey(out[i].DateCreation) > creationSortKey(out[j].DateCreation)
	})
	return out
}

// ListAnnonces returns active announcements whose visibility window contains
// now, most recent first.
func (s *ContentService) ListAnnonces(ctx context.Context, now time.Time) []models.Annonce {
	doc := s.store.Load()
	out := []models.Annonce{}
	for _, a := range doc.Annonces {
		if annonceVisible(a, now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return creationSortKey(out[i].DateCreation) > creationSortKey(out[j].DateCreation)
	})
	return out
}

// ListOffres returns active offers whose deadline has not passed, most recent
// first. Deadlines are compared at day granularity.
func (s *ContentService) ListOffres(ctx context.Context, now time.Time) []models.Offre {
	doc := s.store.Load()
	out := []models.Offre{}
	for _, o := range doc.Offres {
		if offreVisible(o, now) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return creationSortKey(out[i].DateCreation) > creationSortKey(out[j].DateCreation)
	})
	return out
}

// CollectionCounts is the /api/status payload.
type CollectionCounts struct {
	Activites    int    `json:"activites"`
	Realisations int    `json:"realisations"`
	Annonces     int    `json:"annonces"`
	Offres       int    `json:"offres"`
	LastUpdate   string `json:"last_update"`
}

// Counts reports unfiltered per-collection counts and the document's last
// update timestamp.
func (s *ContentService) Counts(ctx context.Context) CollectionCounts {
	doc := s.store.Load()
	return CollectionCounts{
		Activites:    len(doc.Activites),
		Realisations: len(doc.Realisations),
		Annonces:     len(doc.Annonces),
		Offres:       len(doc.Offres),
		LastUpdate:   doc.LastUpdate,
	}
}

// creationSortKey normalizes a creation timestamp for sorting: anything that
// does not parse sorts as the empty string, i.e. last in the
// newest-first listings.
func creationSortKey(s string) string {
	if _, ok := parseWhen(s); !ok {
		return ""
	}
	return s
}

func resolveSyncID(syncID string) string {
	if syncID == "" {
		return uuid.NewString()
	}
	return syncID
}

func annonceVisible(a models.Annonce, now time.Time) bool {
	if !a.Active() {
		return false
	}
	// A date that does not parse imposes no constraint. That leniency is part
	// of the published behavior; see DESIGN.md before tightening it.
	if start, ok := parseWhen(a.DateDebut); ok && start.After(now) {
		return false
	}
	if end, ok := parseWhen(a.DateFin); ok && end.Before(now) {
		return false
	}
	return true
}

func offreVisible(o models.Offre, now time.Time) bool {
	if !o.Active() {
		return false
	}
	deadline, ok := parseWhen(o.DateLimite)
	if !ok {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, now.Location())
	return !day.Before(today)
}

// parseWhen accepts the timestamp shapes found in the data file: RFC3339, a
// bare ISO datetime, or a bare date.
func parseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
