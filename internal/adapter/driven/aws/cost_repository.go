package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// amortizedCostMetric é a única métrica pedida ao Cost Explorer.
const amortizedCostMetric = "AmortizedCost"

type costExplorerClientFunc func(ctx context.Context, creds *entity.Credentials) (CostExplorerAPI, error)

// CostRepositoryImpl consulta o custo amortizado no Cost Explorer.
type CostRepositoryImpl struct {
	client costExplorerClientFunc
}

// NewCostRepository cria a fonte de custos sobre a fábrica de clientes.
func NewCostRepository(factory *ClientFactory) repository.CostRepository {
	return &CostRepositoryImpl{client: factory.CostExplorer}
}

// FetchCosts returns one record per period in the window. creds nil queries the
// central account; otherwise the delegated credentials sign the request. Pages are
// followed until NextPageToken is empty and nothing partial is ever returned.
func (r *CostRepositoryImpl) FetchCosts(ctx context.Context, window entity.TimeWindow, granularity entity.Granularity, creds *entity.Credentials) ([]entity.CostRecord, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDataSource, err)
	}

	var ceGranularity ceTypes.Granularity
	switch granularity {
	case entity.GranularityMonthly:
		ceGranularity = ceTypes.GranularityMonthly
	case entity.GranularityDaily:
		ceGranularity = ceTypes.GranularityDaily
	default:
		return nil, fmt.Errorf("%w: unsupported granularity %q", types.ErrDataSource, granularity)
	}

	client, err := r.client(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDataSource, err)
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(entity.DateLayout)),
			End:   aws.String(window.End.Format(entity.DateLayout)),
		},
		Granularity: ceGranularity,
		Metrics:     []string{amortizedCostMetric},
	}

	var records []entity.CostRecord
	for {
		out, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: GetCostAndUsage %s %s: %w", types.ErrDataSource, granularity, window, err)
		}

		for _, result := range out.ResultsByTime {
			rec, err := toCostRecord(result)
			if err != nil {
				return nil, fmt.Errorf("%w: result %d: %w", types.ErrDataSource, len(records), err)
			}
			records = append(records, rec)
		}

		if aws.ToString(out.NextPageToken) == "" {
			break
		}
		input.NextPageToken = out.NextPageToken
	}

	return records, nil
}

func toCostRecord(result ceTypes.ResultByTime) (entity.CostRecord, error) {
	if result.TimePeriod == nil || aws.ToString(result.TimePeriod.Start) == "" {
		return entity.CostRecord{}, errors.New("missing time period")
	}
	metric, ok := result.Total[amortizedCostMetric]
	if !ok || metric.Amount == nil {
		return entity.CostRecord{}, fmt.Errorf("missing %s for period %s", amortizedCostMetric, aws.ToString(result.TimePeriod.Start))
	}

	return entity.CostRecord{
		PeriodStart:     aws.ToString(result.TimePeriod.Start),
		AmortizedAmount: aws.ToString(metric.Amount),
		Unit:            aws.ToString(metric.Unit),
		Estimated:       result.Estimated,
	}, nil
}
