package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/labmath/labmath-site/internal/models"
	log "github.com/sirupsen/logrus"
)

// ContactRepository persists contact submissions in PostgreSQL.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Insert stores the contact and fills in its database-assigned id and
// creation timestamp.
func (r *ContactRepository) Insert(ctx context.Context, contact *models.Contact) error {
	query :=
		`INSERT INTO contacts (name, email, subject, message, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		contact.Name, contact.Email, contact.Subject, contact.Message, contact.Status,
	).Scan(&contact.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	contact.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// LogAction records an audit row for a contact. Failures are logged and
// swallowed; the audit trail is best-effort.
func (r *ContactRepository) LogAction(ctx context.Context, contactID int64, action, details string) {
	query :=
		`INSERT INTO contact_logs (contact_id, action, details)
		 VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, contactID, action, details); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"contact_id": contactID,
			"action":     action,
		}).Warn("Failed to write contact log")
	}
}

// ListRecent returns up to limit contacts, newest first.
func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]models.Contact, error) {
	query :=
		`SELECT id, name, email, subject, message, created_at, status
		 FROM contacts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		var createdAt time.Time
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &createdAt, &c.Status); err != nil {
			return nil, fmt.Errorf("error scanning contact row: %w", err)
		}
		c.CreatedAt = createdAt.Format(time.RFC3339)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading contact rows: %w", err)
	}
	return contacts, nil
}
