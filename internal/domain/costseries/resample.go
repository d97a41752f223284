package costseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// WeekStartOf returns the weekStart day on or before d.
func WeekStartOf(d time.Time, weekStart time.Weekday) time.Time {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// Resample agrega uma tabela diária em semanas que começam em weekStart, somando os
// valores de cada conta. Semanas entre a primeira e a última observadas aparecem mesmo
// sem dias (com $0); nenhuma semana fora desse intervalo é criada.
func Resample(table entity.CombinedTable, weekStart time.Weekday) (entity.CombinedTable, error) {
	if table.Granularity != entity.GranularityDaily {
		return entity.CombinedTable{}, fmt.Errorf("resample requires %s granularity, got %s",
			entity.GranularityDaily, table.Granularity)
	}

	out := entity.CombinedTable{Granularity: entity.GranularityWeekly}
	if len(table.Rows) == 0 {
		return out, nil
	}

	first := WeekStartOf(table.Rows[0].PeriodStart, weekStart)
	last := WeekStartOf(table.Rows[len(table.Rows)-1].PeriodStart, weekStart)

	index := make(map[time.Time]int)
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		index[w] = len(out.Rows)
		out.Rows = append(out.Rows, entity.CombinedRow{PeriodStart: w})
	}

	// Semanas sem nenhum dia ainda contam como $0 para as duas contas.
	contributed := make([]bool, len(out.Rows))
	for _, row := range table.Rows {
		i := index[WeekStartOf(row.PeriodStart, weekStart)]
		contributed[i] = true
		bucket := &out.Rows[i]
		if row.Central.Present {
			bucket.Central = entity.Value(bucket.Central.Amount.Add(row.Central.Amount))
		}
		if row.Tenants.Present {
			bucket.Tenants = entity.Value(bucket.Tenants.Amount.Add(row.Tenants.Amount))
		}
	}
	for i, ok := range contributed {
		if !ok {
			out.Rows[i].Central = entity.Value(out.Rows[i].Central.Amount)
			out.Rows[i].Tenants = entity.Value(out.Rows[i].Tenants.Amount)
		}
	}

	return out, nil
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
