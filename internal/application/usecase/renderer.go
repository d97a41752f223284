package usecase

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

const fence = "```"

// defaultTemplate é a mensagem enviada ao canal: duas seções, cada uma com a tabela
// dentro de um bloco de código.
var defaultTemplate = `:money_with_wings:  :aws:  :money_with_wings:

*{{ .Monthly.Title | trim }}*
` + fence + `
{{ .Monthly.String }}
` + fence + `

*{{ .Weekly.Title | trim }}*
` + fence + `
{{ .Weekly.String }}
` + fence + `
`

// Renderer monta o texto final do relatório a partir das duas tabelas formatadas.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer usa o template padrão, ou o arquivo informado quando templateFile não é vazio.
// Funções do sprig ficam disponíveis em ambos.
func NewRenderer(templateFile string) (*Renderer, error) {
	text := defaultTemplate
	name := "report"
	if templateFile != "" {
		data, err := os.ReadFile(templateFile)
		if err != nil {
			return nil, fmt.Errorf("%w: error reading template file: %w", types.ErrConfiguration, err)
		}
		text = string(data)
		name = templateFile
	}

	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing report template: %w", types.ErrConfiguration, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type reportData struct {
	Monthly entity.FormattedTable
	Weekly  entity.FormattedTable
}

// Render não faz trabalho numérico; só falha com tabela malformada.
func (r *Renderer) Render(monthly, weekly entity.FormattedTable) (string, error) {
	for _, t := range []entity.FormattedTable{monthly, weekly} {
		if err := validateTable(t); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, reportData{Monthly: monthly, Weekly: weekly}); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrRender, err)
	}
	return buf.String(), nil
}

func validateTable(t entity.FormattedTable) error {
	if t.Title == "" {
		return fmt.Errorf("%w: table without title", types.ErrRender)
	}
	for i, row := range t.Rows {
		if row.PeriodStart == "" || row.Central == "" || row.Tenants == "" {
			return fmt.Errorf("%w: %s row %d is incomplete", types.ErrRender, t.Title, i)
		}
	}
	return nil
}
