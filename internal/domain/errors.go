package domain

import "errors"

// Business errors, mapped to HTTP codes in the transport layer.
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500

	// ErrNoWorkspace: the authenticated profile owns no workspace row.
	ErrNoWorkspace = errors.New("workspace_not_found")
	// ErrDuplicateDocumentNumber: CPF/CNPJ already registered in this workspace.
	ErrDuplicateDocumentNumber = errors.New("duplicate_document_number")
)

// Envelope error codes (stable, independent of HTTP status).
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeForbidden        = 1003
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeUnexpected       = 1500
)
