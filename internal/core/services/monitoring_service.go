package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// LargeTransactionThreshold flags transactions above this amount
const LargeTransactionThreshold = 500000.0

// MonitoringService handles transaction monitoring and compliance tracking
type MonitoringService struct {
	db        *gorm.DB
	txnRepo   repositories.TransactionRepository
	auditRepo repositories.AuditLogRepository
}

// NewMonitoringService creates a new monitoring service
func NewMonitoringService(db *gorm.DB, txnRepo repositories.TransactionRepository, auditRepo repositories.AuditLogRepository) *MonitoringService {
	return &MonitoringService{db: db, txnRepo: txnRepo, auditRepo: auditRepo}
}

// MonitoringResult represents the monitoring sweep output
type MonitoringResult struct {
	TotalTransactions int                   `json:"total_transactions"`
	FlaggedCount      int                   `json:"flagged_count"`
	Threshold         float64               `json:"threshold"`
	Flagged           []*models.Transaction `json:"flagged"`
}

// MonitorTransactions sweeps the last 24 hours of ledger entries and
// flags large-value transactions. One audit alert is written when
// anything is flagged.
func (s *MonitoringService) MonitorTransactions(ctx context.Context) (*MonitoringResult, error) {
	since := time.Now().Add(-24 * time.Hour)
	txns, err := s.txnRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	flagged := make([]*models.Transaction, 0)
	for _, txn := range txns {
		if txn.Amount > LargeTransactionThreshold {
			flagged = append(flagged, txn)
		}
	}

	if len(flagged) > 0 {
		if err := s.auditRepo.Create(ctx, &models.AuditLog{
			Action: "large_transaction_alert",
			Entity: "transaction",
			Details: fmt.Sprintf("%d transaction(s) above %.2f in the last 24h",
				len(flagged), LargeTransactionThreshold),
		}); err != nil {
			log.Printf("⚠️ Large transaction alert write failed: %v", err)
		}
	}

	return &MonitoringResult{
		TotalTransactions: len(txns),
		FlaggedCount:      len(flagged),
		Threshold:         LargeTransactionThreshold,
		Flagged:           flagged,
	}, nil
}

// ComplianceSummary represents the compliance tracking output
type ComplianceSummary struct {
	Total          int64            `json:"total"`
	CountsByStatus map[string]int64 `json:"counts_by_status"`
	ComplianceRate int              `json:"compliance_rate"`
}

// TrackCompliance computes counts per compliance status and the
// overall compliance rate. Rate is 0 when there are no records.
func (s *MonitoringService) TrackCompliance(ctx context.Context) (*ComplianceSummary, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.ComplianceRecord{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &ComplianceSummary{CountsByStatus: map[string]int64{}}
	for _, row := range rows {
		summary.CountsByStatus[row.Status] = row.Count
		summary.Total += row.Count
	}

	if summary.Total > 0 {
		compliant := summary.CountsByStatus[models.ComplianceStatusCompliant]
		summary.ComplianceRate = int(math.Round(100 * float64(compliant) / float64(summary.Total)))
	}

	return summary, nil
}

// ComplianceRecordInput represents a new compliance record
type ComplianceRecordInput struct {
	MemberID    *uint      `json:"member_id,omitempty"`
	Requirement string     `json:"requirement" validate:"required,max=100"`
	Status      string     `json:"status,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// AddComplianceRecord inserts a compliance record
func (s *MonitoringService) AddComplianceRecord(ctx context.Context, input *ComplianceRecordInput) (*models.ComplianceRecord, error) {
	record := &models.ComplianceRecord{
		MemberID:    input.MemberID,
		Requirement: input.Requirement,
		Status:      input.Status,
		DueDate:     input.DueDate,
		Notes:       input.Notes,
	}
	if record.Status == "" {
		record.Status = models.ComplianceStatusPending
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}

	return record, nil
}
