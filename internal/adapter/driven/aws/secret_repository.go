package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
)

type secretsClientFunc func(ctx context.Context) (SecretsManagerAPI, error)

// SecretRepositoryImpl lê segredos do Secrets Manager.
type SecretRepositoryImpl struct {
	client secretsClientFunc
}

// NewSecretRepository cria o repositório de segredos sobre a fábrica de clientes.
func NewSecretRepository(factory *ClientFactory) repository.SecretRepository {
	return &SecretRepositoryImpl{client: factory.SecretsManager}
}

// GetSecret returns the secret string, falling back to the binary payload.
func (r *SecretRepositoryImpl) GetSecret(ctx context.Context, secretID string) (string, error) {
	client, err := r.client(ctx)
	if err != nil {
		return "", err
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(secretID)})
	if err != nil {
		return "", fmt.Errorf("error reading secret %s: %w", secretID, err)
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if len(out.SecretBinary) > 0 {
		return string(out.SecretBinary), nil
	}
	return "", fmt.Errorf("secret %s has no value", secretID)
}
