package web

import "github.com/nelsferreir/meuescritoriodigital/internal/domain"

type Repos struct {
	Profiles   domain.ProfilesRepo
	Workspaces domain.WorkspacesRepo
	Clients    domain.ClientsRepo
	Cases      domain.CasesRepo
	Documents  domain.DocumentsRepo
	Dashboard  domain.DashboardRepo
}

type AuthDeps struct {
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
	Resets    domain.ResetTokens
	Mailer    domain.Mailer
}
