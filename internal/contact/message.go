// Package contact validates the portfolio contact form and delivers it
// through the EmailJS REST API.
package contact

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const DefaultSubject = "Portfolio Contact"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	errRequired     = errors.New("This field is required")
	errEmail        = errors.New("Enter a valid email address")
	errNameTooShort = errors.New("Name must be at least 2 characters")
	errBodyTooShort = errors.New("Message must be at least 10 characters")
)

// Message is a submitted contact form.
type Message struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// Normalize trims every field and fills the default subject.
func (m Message) Normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
	if m.Subject == "" {
		m.Subject = DefaultSubject
	}
	return m
}

// ValidationErrors maps form field names to their message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

// Validate applies the form rules to every field and returns all failures.
func (m Message) Validate() error {
	errs := ValidationErrors{}
	check := func(field string, err error) {
		if err != nil {
			errs[field] = err.Error()
		}
	}
	check("name", ValidateName(m.Name))
	check("email", ValidateEmail(m.Email))
	check("message", ValidateBody(m.Body))
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired
	}
	if utf8.RuneCountInString(s) < 2 {
		return errNameTooShort
	}
	return nil
}

func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired
	}
	if !emailPattern.MatchString(s) {
		return errEmail
	}
	return nil
}

func ValidateBody(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired
	}
	if utf8.RuneCountInString(s) < 10 {
		return errBodyTooShort
	}
	return nil
}

// TemplateParams returns the variables both email templates expect. The
// auto-reply template addresses the sender, hence the to_* aliases.
func (m Message) TemplateParams() map[string]string {
	m = m.Normalize()
	return map[string]string{
		"from_name":        m.Name,
		"from_email":       m.Email,
		"message":          m.Body,
		"subject":          m.Subject,
		"phone":            m.Phone,
		"to_email":         m.Email,
		"to_name":          m.Name,
		"original_subject": m.Subject,
	}
}
