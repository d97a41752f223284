package costseries

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

var errDuplicatePeriod = errors.New("duplicate period")

// Normalize converte os registros brutos de uma conta em uma série indexada pela data
// de início do período. Valores que não podem ser interpretados nunca viram zero.
func Normalize(account string, records []entity.CostRecord) (entity.CostSeries, error) {
	series := entity.NewCostSeries(account)

	for i, rec := range records {
		start, err := time.Parse(entity.DateLayout, strings.TrimSpace(rec.PeriodStart))
		if err != nil {
			return entity.CostSeries{}, &types.MalformedRecordError{
				Account: account, Index: i, Field: "period start", Value: rec.PeriodStart, Err: err,
			}
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec.AmortizedAmount))
		if err != nil {
			return entity.CostSeries{}, &types.MalformedRecordError{
				Account: account, Index: i, Field: "amortized amount", Value: rec.AmortizedAmount, Err: err,
			}
		}

		if _, dup := series.Points[start]; dup {
			return entity.CostSeries{}, &types.MalformedRecordError{
				Account: account, Index: i, Field: "period start", Value: rec.PeriodStart, Err: errDuplicatePeriod,
			}
		}
		series.Points[start] = amount
	}

	return series, nil
}
