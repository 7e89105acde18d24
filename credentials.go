package reminders

import (
	"context"

	"github.com/kelseyhightower/envconfig"
)

// Role distinguishes which backend feed a caller polls: administrators
// get the pre-filtered "due across all monitored staff" feed, everyone
// else gets their own pending list.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Credentials is what the engine needs from the host application's
// auth layer: a bearer token and the caller's role.
type Credentials struct {
	Token string
	Role  Role
}

// CredentialProvider supplies credentials from wherever the host keeps
// them. The engine only reads it; a missing token is "not yet ready",
// never an error the poll loop surfaces.
type CredentialProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials is a fixed-value provider, mostly for tests and
// short-lived tooling.
type StaticCredentials Credentials

// Credentials implements CredentialProvider.
func (s StaticCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// EnvCredentials reads REMINDER_TOKEN and REMINDER_ROLE on every call,
// so a token rotated by the host process is picked up without restarts.
type EnvCredentials struct{}

type envCredentialValues struct {
	Token string `envconfig:"TOKEN"`
	Role  string `envconfig:"ROLE" default:"employee"`
}

// Credentials implements CredentialProvider.
func (EnvCredentials) Credentials(context.Context) (Credentials, error) {
	var v envCredentialValues
	if err := envconfig.Process("reminder", &v); err != nil {
		return Credentials{}, err
	}
	role := Role(v.Role)
	if role == "" {
		role = RoleEmployee
	}
	return Credentials{Token: v.Token, Role: role}, nil
}
