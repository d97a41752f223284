package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/diillson/aws-finops-report-go/internal/domain/costseries"
	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// Formatos de saída aceitos por --output.
const (
	OutputTable = "table"
	OutputText  = "text"
	OutputJSON  = "json"
)

// ReportUseCase gera o relatório de custos das contas central e de tenants e o entrega.
type ReportUseCase struct {
	cfg        *types.Config
	credRepo   repository.CredentialRepository
	costRepo   repository.CostRepository
	notifier   repository.NotifierRepository
	exportRepo repository.ExportRepository
	metrics    repository.MetricsRecorder
	renderer   *Renderer
	console    types.ConsoleInterface

	now      func() time.Time
	newRunID func() string
}

// NewReportUseCase creates a new report use case. cfg must already be validated.
func NewReportUseCase(
	cfg *types.Config,
	credRepo repository.CredentialRepository,
	costRepo repository.CostRepository,
	notifier repository.NotifierRepository,
	exportRepo repository.ExportRepository,
	metrics repository.MetricsRecorder,
	renderer *Renderer,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		cfg:        cfg,
		credRepo:   credRepo,
		costRepo:   costRepo,
		notifier:   notifier,
		exportRepo: exportRepo,
		metrics:    metrics,
		renderer:   renderer,
		console:    console,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// ReportWindows calcula as janelas a partir de "hoje":
// mensal = dia 1 de (hoje - monthsBack meses) até hoje; semanal = hoje - weeksBack semanas até hoje.
// As datas saem em UTC para casar com as datas devolvidas pelo Cost Explorer.
func ReportWindows(now time.Time, monthsBack, weeksBack int) (monthly, weekly entity.TimeWindow) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	monthly = entity.TimeWindow{Start: firstOfMonth.AddDate(0, -monthsBack, 0), End: today}
	weekly = entity.TimeWindow{Start: today.AddDate(0, 0, -7*weeksBack), End: today}
	return monthly, weekly
}

// GenerateReport executa o pipeline completo e devolve o relatório renderizado.
// Nada é entregue aqui.
func (uc *ReportUseCase) GenerateReport(ctx context.Context) (entity.Report, error) {
	runID := uc.newRunID()
	now := uc.now().In(uc.cfg.Location())
	monthlyWindow, weeklyWindow := ReportWindows(now, uc.cfg.LookbackMonths(), uc.cfg.LookbackWeeks())

	weekStart, err := types.ParseWeekday(uc.cfg.WeekStart)
	if err != nil {
		return entity.Report{}, err
	}

	status := uc.console.Status(fmt.Sprintf("[%s] Assuming tenants role...", runID))
	defer status.Stop()

	// A role é assumida antes de qualquer consulta; sem ela nada é buscado.
	assumeCtx, cancel := context.WithTimeout(ctx, uc.cfg.AWSTimeout())
	creds, err := uc.credRepo.AssumeRole(assumeCtx, uc.cfg.TenantsRoleARN, uc.cfg.RoleSessionName)
	cancel()
	if err != nil {
		return entity.Report{}, err
	}
	uc.logTenantsAccount(ctx, &creds)

	status.Update(fmt.Sprintf("[%s] Fetching monthly costs (%s)...", runID, monthlyWindow))
	monthly, err := uc.buildTable(ctx, monthlyWindow, entity.GranularityMonthly, creds)
	if err != nil {
		return entity.Report{}, err
	}

	status.Update(fmt.Sprintf("[%s] Fetching daily costs (%s)...", runID, weeklyWindow))
	daily, err := uc.buildTable(ctx, weeklyWindow, entity.GranularityDaily, creds)
	if err != nil {
		return entity.Report{}, err
	}
	weekly, err := costseries.Resample(daily, weekStart)
	if err != nil {
		return entity.Report{}, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveTable(monthly)
		uc.metrics.ObserveTable(weekly)
	}

	report := entity.Report{
		RunID:       runID,
		GeneratedAt: now,
		Monthly:     costseries.Format(monthly, fmt.Sprintf("Rolling %d Months", uc.cfg.LookbackMonths()+1)),
		Weekly:      costseries.Format(weekly, fmt.Sprintf("Rolling %d Weeks", uc.cfg.LookbackWeeks()+1)),
	}

	report.Text, err = uc.renderer.Render(report.Monthly, report.Weekly)
	if err != nil {
		return entity.Report{}, err
	}
	return report, nil
}

// buildTable busca as duas contas em paralelo e só junta depois que ambas terminam.
func (uc *ReportUseCase) buildTable(
	ctx context.Context,
	window entity.TimeWindow,
	granularity entity.Granularity,
	creds entity.Credentials,
) (entity.CombinedTable, error) {
	var central, tenants []entity.CostRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := uc.fetch(gctx, window, granularity, nil)
		if err != nil {
			return fmt.Errorf("%s account: %w", entity.CentralAccount, err)
		}
		central = records
		return nil
	})
	g.Go(func() error {
		records, err := uc.fetch(gctx, window, granularity, &creds)
		if err != nil {
			return fmt.Errorf("%s account: %w", entity.TenantsAccount, err)
		}
		tenants = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.CombinedTable{}, err
	}

	uc.warnEstimated(entity.CentralAccount, granularity, central)
	uc.warnEstimated(entity.TenantsAccount, granularity, tenants)

	centralSeries, err := costseries.Normalize(entity.CentralAccount, central)
	if err != nil {
		return entity.CombinedTable{}, err
	}
	tenantsSeries, err := costseries.Normalize(entity.TenantsAccount, tenants)
	if err != nil {
		return entity.CombinedTable{}, err
	}

	return costseries.Settle(costseries.Merge(centralSeries, tenantsSeries, granularity), uc.cfg.MissingPeriodPolicy)
}

func (uc *ReportUseCase) fetch(ctx context.Context, window entity.TimeWindow, granularity entity.Granularity, creds *entity.Credentials) ([]entity.CostRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.AWSTimeout())
	defer cancel()
	return uc.costRepo.FetchCosts(ctx, window, granularity, creds)
}

func (uc *ReportUseCase) warnEstimated(account string, granularity entity.Granularity, records []entity.CostRecord) {
	estimated := 0
	for _, r := range records {
		if r.Estimated {
			estimated++
		}
	}
	if estimated > 0 {
		uc.console.LogWarning("%s: %d %s period(s) are still estimated", account, estimated, granularity)
	}
}

func (uc *ReportUseCase) logTenantsAccount(ctx context.Context, creds *entity.Credentials) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.AWSTimeout())
	defer cancel()

	accountID, err := uc.credRepo.CallerAccountID(ctx, creds)
	if err != nil {
		uc.console.LogWarning("Could not resolve tenants account id: %s", err)
		return
	}
	uc.console.LogInfo("Tenants account: %s", accountID)
}

// Run gera o relatório e, se não for dry-run, entrega. A entrega só acontece depois que
// o relatório inteiro foi renderizado; qualquer erro antes disso impede o envio.
func (uc *ReportUseCase) Run(ctx context.Context, args *types.CLIArgs) (entity.Result, error) {
	start := time.Now()

	report, err := uc.GenerateReport(ctx)
	if err != nil {
		uc.finish(ctx, false, start)
		return entity.Result{}, err
	}

	if args.DryRun {
		uc.console.LogInfo("Dry run: report was not delivered")
	} else {
		deliverCtx, cancel := context.WithTimeout(ctx, uc.cfg.DeliveryTimeout())
		err := uc.notifier.Deliver(deliverCtx, report.Text)
		cancel()
		if err != nil {
			uc.finish(ctx, false, start)
			return entity.Result{}, err
		}
		uc.console.LogSuccess("[%s] Report delivered", report.RunID)
	}

	if args.Output == "" || args.Output == OutputTable {
		uc.displayTables(report)
	}
	uc.exportReport(report, args)
	uc.finish(ctx, true, start)

	return entity.Result{StatusCode: http.StatusOK, Body: report.Text}, nil
}

func (uc *ReportUseCase) displayTables(report entity.Report) {
	for _, t := range []entity.FormattedTable{report.Monthly, report.Weekly} {
		table := uc.console.CreateTable()
		table.AddColumn(t.Title)
		table.AddColumn(entity.CentralAccount)
		table.AddColumn(entity.TenantsAccount)
		for _, row := range t.Rows {
			table.AddRow(row.PeriodStart, row.Central, row.Tenants)
		}
		uc.console.Println(table.Render())
	}
}

func (uc *ReportUseCase) finish(ctx context.Context, success bool, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveRun(success, time.Since(start))

	pushCtx, cancel := context.WithTimeout(ctx, uc.cfg.DeliveryTimeout())
	defer cancel()
	if err := uc.metrics.Push(pushCtx); err != nil {
		uc.console.LogWarning("Failed to push metrics: %s", err)
	}
}

// exportReport grava os arquivos pedidos; falhas de exportação só são logadas.
func (uc *ReportUseCase) exportReport(report entity.Report, args *types.CLIArgs) {
	if uc.exportRepo == nil || args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportReportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportReportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
