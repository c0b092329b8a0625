package models

// Contact is a contact form submission. The ID is database-assigned when a
// relational store is configured, otherwise sequential within the fallback
// JSON file.
type Contact struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}

// ContactStatusPending is the status every new submission starts in.
const ContactStatusPending = "pending"
