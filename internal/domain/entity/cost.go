package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout é o formato de data usado pelo Cost Explorer e pelo relatório.
const DateLayout = "2006-01-02"

// Rótulos das duas contas que compõem o relatório.
const (
	CentralAccount = "Central"
	TenantsAccount = "Tenants"
)

// Granularity is the period size of a cost series.
type Granularity string

const (
	GranularityMonthly Granularity = "MONTHLY"
	GranularityDaily   Granularity = "DAILY"
	// GranularityWeekly só existe após o resample; o Cost Explorer não oferece semanas.
	GranularityWeekly Granularity = "WEEKLY"
)

// TimeWindow is a range of calendar dates. End is exclusive when sent to Cost Explorer.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate garante Start <= End.
func (w TimeWindow) Validate() error {
	if w.Start.After(w.End) {
		return fmt.Errorf("invalid time window: start %s is after end %s",
			w.Start.Format(DateLayout), w.End.Format(DateLayout))
	}
	return nil
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

// Credentials is a short-lived credential bundle obtained by assuming a role.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

// CostRecord is one raw period returned by the billing API for one account.
type CostRecord struct {
	PeriodStart     string `json:"period_start"`
	AmortizedAmount string `json:"amortized_amount"`
	Unit            string `json:"unit,omitempty"`
	Estimated       bool   `json:"estimated,omitempty"`
}

// CostPoint is a normalized (period start, amount) pair.
type CostPoint struct {
	PeriodStart time.Time
	Amount      decimal.Decimal
}

// CostSeries indexa os valores de uma conta pela data de início do período.
type CostSeries struct {
	Account string
	Points  map[time.Time]decimal.Decimal
}

// NewCostSeries cria uma série vazia para a conta informada.
func NewCostSeries(account string) CostSeries {
	return CostSeries{Account: account, Points: make(map[time.Time]decimal.Decimal)}
}

// Dates returns the period starts in ascending order.
func (s CostSeries) Dates() []time.Time {
	dates := make([]time.Time, 0, len(s.Points))
	for d := range s.Points {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Len returns the number of periods in the series.
func (s CostSeries) Len() int { return len(s.Points) }

// Cell is one account's amount for one period. Present=false means the account
// reported nothing for that period.
type Cell struct {
	Amount  decimal.Decimal
	Present bool
}

// Value builds a present cell.
func Value(amount decimal.Decimal) Cell { return Cell{Amount: amount, Present: true} }

// CombinedRow joins both accounts for one period.
type CombinedRow struct {
	PeriodStart time.Time
	Central     Cell
	Tenants     Cell
}

// CombinedTable is the outer join of the two account series, sorted by PeriodStart.
type CombinedTable struct {
	Granularity Granularity
	Rows        []CombinedRow
}

// Totals soma cada conta considerando apenas as células presentes.
func (t CombinedTable) Totals() (central, tenants decimal.Decimal) {
	for _, r := range t.Rows {
		if r.Central.Present {
			central = central.Add(r.Central.Amount)
		}
		if r.Tenants.Present {
			tenants = tenants.Add(r.Tenants.Amount)
		}
	}
	return central, tenants
}
