package entity

import (
	"strings"
	"time"
)

// periodColumnWidth is the width of "2006-01-02: ".
const periodColumnWidth = len(DateLayout) + 2

// FormattedRow is a display-only row; every amount is already a currency string.
type FormattedRow struct {
	PeriodStart string `json:"period_start"`
	Central     string `json:"central"`
	Tenants     string `json:"tenants"`
}

// FormattedTable is the render-only projection of a combined or resampled table.
type FormattedTable struct {
	Title       string         `json:"title"`
	Granularity Granularity    `json:"granularity"`
	Rows        []FormattedRow `json:"rows"`
}

// String renderiza a tabela em largura fixa, com cabeçalho e valores alinhados à direita:
//
//	            Central | Tenants
//	2024-01-01:  $  100 |  $   50
func (t FormattedTable) String() string {
	centralWidth, tenantsWidth := len(CentralAccount), len(TenantsAccount)
	for _, r := range t.Rows {
		centralWidth = max(centralWidth, len(r.Central))
		tenantsWidth = max(tenantsWidth, len(r.Tenants))
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", periodColumnWidth))
	b.WriteString(padLeft(CentralAccount, centralWidth))
	b.WriteString(" | ")
	b.WriteString(padLeft(TenantsAccount, tenantsWidth))
	for _, r := range t.Rows {
		b.WriteString("\n")
		b.WriteString(r.PeriodStart + ": ")
		b.WriteString(padLeft(r.Central, centralWidth))
		b.WriteString(" | ")
		b.WriteString(padLeft(r.Tenants, tenantsWidth))
	}
	return b.String()
}

// Line renders a single row without column padding, e.g. "2024-01-01: $  100 | $   50".
func (r FormattedRow) Line() string {
	return r.PeriodStart + ": " + r.Central + " | " + r.Tenants
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// Report is the rendered text plus the tables it was built from.
type Report struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Monthly     FormattedTable `json:"monthly"`
	Weekly      FormattedTable `json:"weekly"`
	Text        string         `json:"text"`
}

// Result is what the invoking wrapper receives after a successful run.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
