package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

type stubCredentials struct {
	creds       entity.Credentials
	err         error
	assumeCalls int
}

func (s *stubCredentials) AssumeRole(context.Context, string, string) (entity.Credentials, error) {
	s.assumeCalls++
	return s.creds, s.err
}

func (s *stubCredentials) CallerAccountID(context.Context, *entity.Credentials) (string, error) {
	return "222222222222", nil
}

type fetchCall struct {
	window      entity.TimeWindow
	granularity entity.Granularity
	delegated   bool
}

// stubCosts devolve registros por (granularidade, conta); delegated=true é a conta de tenants.
type stubCosts struct {
	mu      sync.Mutex
	records map[entity.Granularity]map[bool][]entity.CostRecord
	errs    map[bool]error
	calls   []fetchCall
}

func (s *stubCosts) FetchCosts(_ context.Context, window entity.TimeWindow, granularity entity.Granularity, creds *entity.Credentials) ([]entity.CostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delegated := creds != nil
	s.calls = append(s.calls, fetchCall{window: window, granularity: granularity, delegated: delegated})
	if err := s.errs[delegated]; err != nil {
		return nil, err
	}
	return s.records[granularity][delegated], nil
}

type stubNotifier struct {
	texts []string
	err   error
}

func (s *stubNotifier) Deliver(_ context.Context, text string) error {
	s.texts = append(s.texts, text)
	return s.err
}

type stubExport struct {
	calls []string
}

func (s *stubExport) ExportReportToCSV(entity.Report, string, string) (string, error) {
	s.calls = append(s.calls, "csv")
	return "/tmp/report.csv", nil
}

func (s *stubExport) ExportReportToJSON(entity.Report, string, string) (string, error) {
	s.calls = append(s.calls, "json")
	return "/tmp/report.json", nil
}

func (s *stubExport) ExportReportToPDF(entity.Report, string, string) (string, error) {
	s.calls = append(s.calls, "pdf")
	return "/tmp/report.pdf", nil
}

type stubMetrics struct {
	runs          []bool
	tables        []entity.CombinedTable
	pushes        int
	pushDeadlines []time.Time
}

func (s *stubMetrics) ObserveRun(success bool, _ time.Duration) { s.runs = append(s.runs, success) }
func (s *stubMetrics) ObserveTable(t entity.CombinedTable)      { s.tables = append(s.tables, t) }
func (s *stubMetrics) Push(ctx context.Context) error {
	s.pushes++
	if deadline, ok := ctx.Deadline(); ok {
		s.pushDeadlines = append(s.pushDeadlines, deadline)
	}
	return nil
}

type stubConsole struct {
	warnings []string
}

func (c *stubConsole) Print(...interface{})              {}
func (c *stubConsole) Printf(string, ...interface{})     {}
func (c *stubConsole) Println(...interface{})            {}
func (c *stubConsole) LogInfo(string, ...interface{})    {}
func (c *stubConsole) LogError(string, ...interface{})   {}
func (c *stubConsole) LogSuccess(string, ...interface{}) {}
func (c *stubConsole) Status(string) types.StatusHandle  { return stubStatus{} }
func (c *stubConsole) CreateTable() types.TableInterface { return &stubTable{} }
func (c *stubConsole) LogWarning(format string, _ ...interface{}) {
	c.warnings = append(c.warnings, format)
}

type stubStatus struct{}

func (stubStatus) Update(string) {}
func (stubStatus) Stop()         {}

type stubTable struct {
	rows int
}

func (t *stubTable) AddColumn(string, ...interface{}) {}
func (t *stubTable) AddRow(...interface{})            { t.rows++ }
func (t *stubTable) Render() string                   { return "" }
