package repository

import (
	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// ExportRepository writes the current run's report to local files.
type ExportRepository interface {
	ExportReportToCSV(report entity.Report, filename string, outputDir string) (string, error)
	ExportReportToJSON(report entity.Report, filename string, outputDir string) (string, error)
	ExportReportToPDF(report entity.Report, filename string, outputDir string) (string, error)
}
