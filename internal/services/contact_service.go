package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/labmath/labmath-site/internal/models"
	"github.com/labmath/labmath-site/internal/repository"
	"github.com/labmath/labmath-site/internal/storage"
	"github.com/labmath/labmath-site/pkg/email"
	log "github.com/sirupsen/logrus"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidationError marks a user error in a contact submission. Handlers map it
// to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitResult reports what actually happened to a submission. Persistence
// and notification failures never fail the request; they only show up here.
type SubmitResult struct {
	ContactID *int64
	Timestamp string
	Persisted bool
	Notified  bool
}

// ContactService validates submissions, persists them to the database when
// one is configured (falling back to the JSON file otherwise or on failure),
// and sends best-effort email notifications.
type ContactService struct {
	repo       *repository.ContactRepository
	fallback   *storage.ContactFileStore
	mailer     email.Sender
	adminEmail string
}

// NewContactService wires the pipeline. repo and mailer may be nil, which
// disables the database path and email notifications respectively.
func NewContactService(repo *repository.ContactRepository, fallback *storage.ContactFileStore, mailer email.Sender, adminEmail string) *ContactService {
	return &ContactService{
		repo:       repo,
		fallback:   fallback,
		mailer:     mailer,
		adminEmail: adminEmail,
	}
}

// Submit runs the full pipeline for one contact form submission. A
// *ValidationError return means the caller's input was rejected; any other
// outcome is success from the submitter's point of view.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*SubmitResult, error) {
	if err := validateContact(req); err != nil {
		return nil, err
	}

	contact := models.Contact{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().Format(time.RFC3339),
		Status:    models.ContactStatusPending,
	}

	result := &SubmitResult{Timestamp: contact.CreatedAt}
	s.persist(ctx, &contact, result)
	s.notify(contact, result)
	return result, nil
}

// persist tries the database first, then the JSON fallback file. The two
// paths are mutually exclusive per call.
func (s *ContactService) persist(ctx context.Context, contact *models.Contact, result *SubmitResult) {
	if s.repo != nil {
		err := s.repo.Insert(ctx, contact)
		if err == nil {
			s.repo.LogAction(ctx, contact.ID, "created", "contact form submission")
			id := contact.ID
			result.ContactID = &id
			result.Persisted = true
			return
		}
		log.WithError(err).Warn("Database insert failed, falling back to JSON file")
	}

	id, err := s.fallback.Append(*contact)
	if err != nil {
		// Accepted data-loss risk: the submitter still gets a success
		// response. See §7 of the service contract in SPEC_FULL.md.
		log.WithError(err).Error("Contact fallback persistence failed, submission lost")
		return
	}
	contact.ID = id
	result.ContactID = &id
	result.Persisted = true
}

// notify sends the acknowledgment and the admin alert. Both are best-effort.
func (s *ContactService) notify(contact models.Contact, result *SubmitResult) {
	if s.mailer == nil {
		return
	}

	ack := fmt.Sprintf(
		`<html><body>
<h2>Merci de nous avoir contactés</h2>
<p>Bonjour %s,</p>
<p>Nous avons bien reçu votre message concernant « %s ». Notre équipe vous répondra dans les plus brefs délais.</p>
<p>L'équipe Lab_Math</p>
</body></html>`,
		contact.Name, contact.Subject)

	if err := s.mailer.Send(contact.Email, "Votre message a bien été reçu", ack); err != nil {
		log.WithError(err).WithField("to", contact.Email).Warn("Failed to send contact acknowledgment")
	} else {
		result.Notified = true
	}

	if s.adminEmail == "" {
		return
	}

	contactRef := "json-fallback"
	if result.Persisted && result.ContactID != nil {
		contactRef = fmt.Sprintf("%d", *result.ContactID)
	}
	alert := fmt.Sprintf(
		`<html><body>
<h2>Nouveau message de contact (#%s)</h2>
<ul>
<li><strong>Nom:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
<li><strong>Sujet:</strong> %s</li>
</ul>
<p>%s</p>
</body></html>`,
		contactRef, contact.Name, contact.Email, contact.Subject, contact.Message)

	if err := s.mailer.Send(s.adminEmail, "Nouveau message de contact: "+contact.Subject, alert); err != nil {
		log.WithError(err).WithField("to", s.adminEmail).Warn("Failed to send admin alert")
	}
}

// ListContacts returns up to limit submissions, newest first, from whichever
// store is configured.
func (s *ContactService) ListContacts(ctx context.Context, limit int) ([]models.Contact, error) {
	if s.repo != nil {
		contacts, err := s.repo.ListRecent(ctx, limit)
		if err == nil {
			return contacts, nil
		}
		log.WithError(err).Warn("Database contact listing failed, falling back to JSON file")
	}
	return s.fallback.List(limit), nil
}

func validateContact(req ContactRequest) error {
	fields := []struct {
		label string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Message: fmt.Sprintf("Le champ '%s' est requis", f.label)}
		}
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return &ValidationError{Message: "Adresse email invalide"}
	}
	return nil
}
