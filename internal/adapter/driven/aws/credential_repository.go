package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// stsClientFunc devolve um cliente STS; creds nil usa a identidade central.
type stsClientFunc func(ctx context.Context, creds *entity.Credentials) (STSAPI, error)

// CredentialRepositoryImpl assume a role da conta de tenants via STS.
type CredentialRepositoryImpl struct {
	client stsClientFunc
}

// NewCredentialRepository cria o broker de credenciais sobre a fábrica de clientes.
func NewCredentialRepository(factory *ClientFactory) repository.CredentialRepository {
	return &CredentialRepositoryImpl{client: factory.STS}
}

// AssumeRole troca a identidade central por credenciais temporárias da role informada.
// Não há retry nem cache: cada execução assume a role de novo.
func (r *CredentialRepositoryImpl) AssumeRole(ctx context.Context, roleARN, sessionName string) (entity.Credentials, error) {
	if roleARN == "" {
		return entity.Credentials{}, fmt.Errorf("%w: tenants role ARN is empty", types.ErrConfiguration)
	}
	if sessionName == "" {
		sessionName = types.DefaultRoleSessionName
	}

	client, err := r.client(ctx, nil)
	if err != nil {
		return entity.Credentials{}, fmt.Errorf("%w: %w", types.ErrAuthorization, err)
	}

	out, err := client.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(sessionName),
	})
	if err != nil {
		return entity.Credentials{}, fmt.Errorf("%w: assume role %s: %w", types.ErrAuthorization, roleARN, err)
	}
	if out.Credentials == nil || out.Credentials.AccessKeyId == nil || out.Credentials.SecretAccessKey == nil {
		return entity.Credentials{}, fmt.Errorf("%w: assume role %s returned no credentials", types.ErrAuthorization, roleARN)
	}

	creds := entity.Credentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
	}
	if out.Credentials.Expiration != nil {
		creds.Expiration = *out.Credentials.Expiration
	}
	return creds, nil
}

// CallerAccountID retorna a conta da identidade em uso (central quando creds é nil).
func (r *CredentialRepositoryImpl) CallerAccountID(ctx context.Context, creds *entity.Credentials) (string, error) {
	client, err := r.client(ctx, creds)
	if err != nil {
		return "", err
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}
