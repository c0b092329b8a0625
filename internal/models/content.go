package models

// Document is the whole dataset persisted as a single JSON file. Every write
// rewrites it wholesale; see internal/storage.
type Document struct {
	Activites    []Activite    `json:"activites"`
	Realisations []Realisation `json:"realisations"`
	Annonces     []Annonce     `json:"annonces"`
	Offres       []Offre       `json:"offres"`
	LastUpdate   string        `json:"last_update"`
}

// Activite is a news/activity entry. Field names follow the public JSON
// schema, which is French.
type Activite struct {
	SyncID           string `json:"sync_id"`
	Titre            string `json:"titre"`
	Description      string `json:"description"`
	Contenu          string `json:"contenu"`
	ImageURL         string `json:"image_url"`
	Auteur           string `json:"auteur"`
	DateCreation     string `json:"date_creation"`
	DateModification string `json:"date_modification,omitempty"`
	EstPublie        *bool  `json:"est_publie"`
}

// Published reports visibility. An absent flag means visible.
func (a *Activite) Published() bool {
	return a.EstPublie == nil || *a.EstPublie
}

// Realisation is an achievement entry. Always publicly visible.
type Realisation struct {
	SyncID           string `json:"sync_id"`
	Titre            string `json:"titre"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	Categorie        string `json:"categorie"`
	DateRealisation  string `json:"date_realisation"`
	DateCreation     string `json:"date_creation"`
	DateModification string `json:"date_modification,omitempty"`
}

// Annonce is an announcement with an optional visibility window
// [DateDebut, DateFin].
type Annonce struct {
	SyncID           string `json:"sync_id"`
	Titre            string `json:"titre"`
	Contenu          string `json:"contenu"`
	Type             string `json:"type"`
	DateDebut        string `json:"date_debut,omitempty"`
	DateFin          string `json:"date_fin,omitempty"`
	EstActive        *bool  `json:"est_active"`
	DateCreation     string `json:"date_creation"`
	DateModification string `json:"date_modification,omitempty"`
}

// Active reports the flag with absent meaning active.
func (a *Annonce) Active() bool {
	return a.EstActive == nil || *a.EstActive
}

// Offre is a job or opportunity posting with an optional deadline.
type Offre struct {
	SyncID           string `json:"sync_id"`
	Titre            string `json:"titre"`
	Description      string `json:"description"`
	TypeOffre        string `json:"type_offre"`
	Lieu             string `json:"lieu"`
	DateLimite       string `json:"date_limite,omitempty"`
	EstActive        *bool  `json:"est_active"`
	DateCreation     string `json:"date_creation"`
	DateModification string `json:"date_modification,omitempty"`
}

// Active reports the flag with absent meaning active.
func (o *Offre) Active() bool {
	return o.EstActive == nil || *o.EstActive
}

// Bool returns a pointer to b, for filling the optional flag fields.
func Bool(b bool) *bool {
	return &b
}
