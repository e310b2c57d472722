package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"furniro/internal/models"
)

// ErrContactValidation signals that a submission failed validation; the
// accompanying field→message map carries the details.
var ErrContactValidation = errors.New("contact form validation failed")

// ContactService validates and records contact-form submissions. Accepted
// submissions are published on the event queue for the notification worker.
type ContactService struct {
	events EventPublisher
}

// NewContactService creates a new ContactService.
func NewContactService(events EventPublisher) *ContactService {
	return &ContactService{
		events: events,
	}
}

// ValidateContact checks a submission and returns a field→message map for
// every failing field.
func ValidateContact(data models.ContactSubmission) (bool, map[string]string) {
	fieldErrors := make(map[string]string)

	name := strings.TrimSpace(data.Name)
	if name == "" {
		fieldErrors["name"] = "Name is required"
	} else if len(data.Name) > 100 {
		fieldErrors["name"] = "Name must be less than 100 characters"
	}

	email := strings.TrimSpace(data.Email)
	if email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !simpleEmailRe.MatchString(email) {
		fieldErrors["email"] = "Invalid email address"
	} else if len(data.Email) > 255 {
		fieldErrors["email"] = "Email is too long"
	}

	message := strings.TrimSpace(data.Message)
	if message == "" {
		fieldErrors["message"] = "Message is required"
	} else if len(message) < 10 {
		fieldErrors["message"] = "Message must be at least 10 characters"
	} else if len(data.Message) > 5000 {
		fieldErrors["message"] = "Message must be less than 5000 characters"
	}

	if data.Subject != "" && len(data.Subject) > 200 {
		fieldErrors["subject"] = "Subject must be less than 200 characters"
	}

	return len(fieldErrors) == 0, fieldErrors
}

// Submit validates and records a submission. On validation failure the
// returned map names the offending fields.
func (s *ContactService) Submit(data models.ContactSubmission) (map[string]string, error) {
	ok, fieldErrors := ValidateContact(data)
	if !ok {
		return fieldErrors, ErrContactValidation
	}

	submission := map[string]interface{}{
		"id":        fmt.Sprintf("contact-%d", time.Now().UnixMilli()),
		"name":      sanitizeField(data.Name),
		"email":     sanitizeField(data.Email),
		"subject":   sanitizeField(data.Subject),
		"message":   sanitizeField(data.Message),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if s.events == nil {
		log.Printf("Contact form submission (eventing disabled): %v", submission)
		return nil, nil
	}
	if err := s.events.PublishEvent("contact.received", submission); err != nil {
		// The submission was accepted; delivery to the notification worker
		// is best-effort.
		log.Printf("Warning: failed to publish contact.received event: %v", err)
	}
	return nil, nil
}

// sanitizeField trims a field and strips angle brackets so submitted text can
// never carry HTML tags downstream.
func sanitizeField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if len(s) > 10000 {
		s = s[:10000]
	}
	return s
}
