package repository

import (
	"context"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// CredentialRepository obtains delegated credentials for the tenants account.
type CredentialRepository interface {
	// AssumeRole troca a identidade atual por credenciais temporárias da role informada.
	// Falhas retornam erros que casam com types.ErrAuthorization.
	AssumeRole(ctx context.Context, roleARN, sessionName string) (entity.Credentials, error)
	// CallerAccountID returns the account behind creds, or the invoking identity when creds is nil.
	CallerAccountID(ctx context.Context, creds *entity.Credentials) (string, error)
}

// CostRepository defines the interface for billing API interactions.
type CostRepository interface {
	// FetchCosts retorna um registro por período da janela. Com creds nil a chamada usa a
	// identidade central; caso contrário, as credenciais delegadas. Tudo ou nada.
	FetchCosts(ctx context.Context, window entity.TimeWindow, granularity entity.Granularity, creds *entity.Credentials) ([]entity.CostRecord, error)
}

// SecretRepository resolves secret values by identifier.
type SecretRepository interface {
	GetSecret(ctx context.Context, secretID string) (string, error)
}
