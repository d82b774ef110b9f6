// Package errors provides the JSON error envelope returned by the back office API.
package errors

import (
	"fmt"
	"net/http"
)

// Problem is the error body written to clients: {"error":..., "detail":..., "fields":...}.
// Status only selects the HTTP status code and is never serialized.
type Problem struct {
	Status int               `json:"-"`
	Title  string            `json:"error"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface.
func (p Problem) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p Problem) WithDetail(detail string) Problem {
	p.Detail = detail
	return p
}

// WithField returns a copy with an additional field error.
func (p Problem) WithField(field, message string) Problem {
	fields := make(map[string]string, len(p.Fields)+1)
	for k, v := range p.Fields {
		fields[k] = v
	}
	fields[field] = message
	p.Fields = fields
	return p
}

// Pre-defined problems. Titles are the user-facing messages of the API.
var (
	ErrEndpointNotFound = Problem{Status: http.StatusNotFound, Title: "Endpoint introuvable"}
	ErrIDRequired       = Problem{Status: http.StatusBadRequest, Title: "Identifiant requis"}
	ErrInvalidID        = Problem{Status: http.StatusBadRequest, Title: "Identifiant invalide"}
	ErrMethodNotAllowed = Problem{Status: http.StatusMethodNotAllowed, Title: "Méthode non autorisée"}
	ErrInvalidBody      = Problem{Status: http.StatusBadRequest, Title: "Corps de requête invalide"}
	ErrValidation       = Problem{Status: http.StatusBadRequest, Title: "Données invalides"}
	ErrInternal         = Problem{Status: http.StatusInternalServerError, Title: "Erreur interne du serveur"}
)

// NewNotFoundProblem builds a 404 with a resource specific message.
func NewNotFoundProblem(message string) Problem {
	return Problem{Status: http.StatusNotFound, Title: message}
}

// NewValidationProblem creates a validation error with field-level details.
func NewValidationProblem(detail string, fieldErrors map[string]string) Problem {
	p := ErrValidation.WithDetail(detail)
	for field, msg := range fieldErrors {
		p = p.WithField(field, msg)
	}
	return p
}
