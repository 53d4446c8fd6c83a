package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base identifiers
type ProfileID = uuid.UUID
type WorkspaceID = uuid.UUID
type ClientID = uuid.UUID
type CaseID = uuid.UUID
type DocumentID = uuid.UUID

// Profile is the account identity (also the auth subject).
type Profile struct {
	ID        ProfileID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	PassHash  []byte    `json:"-"` // never rendered
	CreatedAt time.Time `json:"created_at"`
}

// Workspace is the tenant-isolation unit: exactly one per owning profile.
// Created at sign-up, never mutated or deleted in-app.
type Workspace struct {
	ID        WorkspaceID `json:"id"`
	OwnerID   ProfileID   `json:"owner_id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
}

type Client struct {
	ID             ClientID    `json:"id"`
	WorkspaceID    WorkspaceID `json:"-"`
	Name           string      `json:"name"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	DocumentNumber string      `json:"document_number,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type CaseStatus string

const (
	CaseOpen    CaseStatus = "open"
	CasePending CaseStatus = "pending"
	CaseClosed  CaseStatus = "closed"
)

// ValidCaseStatus reports whether s is one of the three known states.
// Transitions are free: any state is reachable from any other.
func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseOpen, CasePending, CaseClosed:
		return true
	}
	return false
}

type Case struct {
	ID          CaseID      `json:"id"`
	WorkspaceID WorkspaceID `json:"-"`
	ClientID    ClientID    `json:"client_id"`
	ClientName  string      `json:"client_name,omitempty"` // projected from clients(name)
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      CaseStatus  `json:"status"`
	CaseNumber  string      `json:"case_number,omitempty"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Document pairs a blob-store object with a metadata row. DownloadURL is
// derived per read (presigned, expires after SignedURLTTL) and never stored.
type Document struct {
	ID          DocumentID  `json:"id"`
	WorkspaceID WorkspaceID `json:"-"`
	CaseID      CaseID      `json:"case_id"`
	CaseTitle   string      `json:"case_title,omitempty"` // projected from cases(title)
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	CreatedAt   time.Time   `json:"created_at"`
	DownloadURL string      `json:"download_url,omitempty"`
}

// SignedURLTTL is how long a minted download link stays valid.
const SignedURLTTL = 3600 * time.Second

// ActionResult is the uniform outcome of every mutating operation.
// Message carries user-facing (pt-BR) copy only.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ResultOK(msg string) ActionResult   { return ActionResult{Success: true, Message: msg} }
func ResultFail(msg string) ActionResult { return ActionResult{Success: false, Message: msg} }
