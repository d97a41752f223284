package costseries

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// Merge faz o outer join das duas séries pela data de início. Um período presente em
// apenas uma conta aparece com a outra célula ausente (Present=false), nunca zero.
func Merge(central, tenants entity.CostSeries, granularity entity.Granularity) entity.CombinedTable {
	seen := make(map[time.Time]struct{}, central.Len()+tenants.Len())
	dates := make([]time.Time, 0, central.Len()+tenants.Len())
	for _, s := range []entity.CostSeries{central, tenants} {
		for _, d := range s.Dates() {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}
	sortDates(dates)

	rows := make([]entity.CombinedRow, 0, len(dates))
	for _, d := range dates {
		row := entity.CombinedRow{PeriodStart: d}
		if v, ok := central.Points[d]; ok {
			row.Central = entity.Value(v)
		}
		if v, ok := tenants.Points[d]; ok {
			row.Tenants = entity.Value(v)
		}
		rows = append(rows, row)
	}

	return entity.CombinedTable{Granularity: granularity, Rows: rows}
}

// Settle é a etapa de coerção numérica. Com MissingPeriodError a primeira célula ausente
// vira IncompleteCoverageError; com MissingPeriodZero ela vira $0 explicitamente.
func Settle(table entity.CombinedTable, policy types.MissingPeriodPolicy) (entity.CombinedTable, error) {
	if policy != types.MissingPeriodError && policy != types.MissingPeriodZero {
		return entity.CombinedTable{}, fmt.Errorf("%w: unknown missing period policy %q", types.ErrConfiguration, policy)
	}

	out := entity.CombinedTable{Granularity: table.Granularity, Rows: make([]entity.CombinedRow, len(table.Rows))}
	for i, row := range table.Rows {
		cells := []struct {
			cell    *entity.Cell
			account string
		}{
			{&row.Central, entity.CentralAccount},
			{&row.Tenants, entity.TenantsAccount},
		}
		for _, c := range cells {
			if c.cell.Present {
				continue
			}
			if policy == types.MissingPeriodZero {
				*c.cell = entity.Value(decimal.Zero)
				continue
			}
			return entity.CombinedTable{}, &types.IncompleteCoverageError{
				Period:         row.PeriodStart,
				MissingAccount: c.account,
				Granularity:    string(table.Granularity),
			}
		}
		out.Rows[i] = row
	}
	return out, nil
}
