package costseries

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// amountWidth é a largura mínima do número após o "$" ("${:>5,}").
const amountWidth = 5

// missingCell é exibido quando uma célula chega ausente ao formatador.
const missingCell = "    -"

// FormatAmount arredonda para dólares inteiros (metade para longe do zero), agrupa
// milhares com vírgula e alinha à direita: 100.4 -> "$  100", 1234 -> "$1,234".
func FormatAmount(amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	grouped := p.Sprintf("%d", RoundAmount(amount))
	return fmt.Sprintf("$%*s", amountWidth, grouped)
}

// RoundAmount is the single rounding rule used by the report.
func RoundAmount(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

// ParseAmount reverses FormatAmount, returning the whole-dollar value.
func ParseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency string %q: %w", s, err)
	}
	return n, nil
}

// Format projeta a tabela numérica em strings de exibição sem alterá-la.
func Format(table entity.CombinedTable, title string) entity.FormattedTable {
	out := entity.FormattedTable{
		Title:       title,
		Granularity: table.Granularity,
		Rows:        make([]entity.FormattedRow, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		out.Rows = append(out.Rows, entity.FormattedRow{
			PeriodStart: row.PeriodStart.Format(entity.DateLayout),
			Central:     formatCell(row.Central),
			Tenants:     formatCell(row.Tenants),
		})
	}
	return out
}

func formatCell(c entity.Cell) string {
	if !c.Present {
		return missingCell
	}
	return FormatAmount(c.Amount)
}
