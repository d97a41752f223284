package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// costExplorerRegion é a única região onde o Cost Explorer responde.
const costExplorerRegion = "us-east-1"

// CostExplorerAPI is the subset of the Cost Explorer client used by the report.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// STSAPI is the subset of the STS client used by the credential broker.
type STSAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client used to resolve the webhook.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ClientFactory carrega a configuração AWS uma única vez e cria os clientes de serviço.
// Clientes com credenciais delegadas nunca são cacheados.
type ClientFactory struct {
	profile string
	region  string

	mu  sync.Mutex
	cfg *aws.Config
}

// NewClientFactory cria uma fábrica para o profile e a região informados.
func NewClientFactory(profile, region string) *ClientFactory {
	return &ClientFactory{profile: profile, region: region}
}

func (f *ClientFactory) awsConfig(ctx context.Context) (aws.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cfg != nil {
		return *f.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if f.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(f.profile))
	}
	if f.region != "" {
		opts = append(opts, config.WithRegion(f.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", f.profile, err)
	}

	f.cfg = &cfg
	return cfg, nil
}

// CostExplorer returns a client for the central identity when creds is nil, or one
// signed with the delegated credentials otherwise.
func (f *ClientFactory) CostExplorer(ctx context.Context, creds *entity.Credentials) (CostExplorerAPI, error) {
	cfg, err := f.awsConfig(ctx)
	if err != nil {
		return nil, err
	}

	ceCfg := cfg.Copy()
	ceCfg.Region = costExplorerRegion
	if creds != nil {
		ceCfg.Credentials = staticProvider(*creds)
	}
	return costexplorer.NewFromConfig(ceCfg), nil
}

// STS returns a client for the central identity, or for creds when not nil.
func (f *ClientFactory) STS(ctx context.Context, creds *entity.Credentials) (STSAPI, error) {
	cfg, err := f.awsConfig(ctx)
	if err != nil {
		return nil, err
	}

	stsCfg := cfg.Copy()
	if stsCfg.Region == "" {
		stsCfg.Region = costExplorerRegion
	}
	if creds != nil {
		stsCfg.Credentials = staticProvider(*creds)
	}
	return sts.NewFromConfig(stsCfg), nil
}

// SecretsManager returns a client for the central identity.
func (f *ClientFactory) SecretsManager(ctx context.Context) (SecretsManagerAPI, error) {
	cfg, err := f.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

func staticProvider(c entity.Credentials) aws.CredentialsProvider {
	return aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken))
}
