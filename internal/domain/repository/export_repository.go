package repository

import (
	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(result entity.ScanResult, filename, outputDir string) (string, error)
	ExportToJSON(result entity.ScanResult, filename, outputDir string) (string, error)
	ExportToPDF(result entity.ScanResult, filename, outputDir string) (string, error)
}
