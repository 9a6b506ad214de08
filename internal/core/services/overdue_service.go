package services

import (
	"context"
	"log"
	"time"

	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// OverdueService scans the ledger daily and reports loans that have been
// out longer than the configured window. Report only: fees accrue at
// return time, the scanner never mutates stock or debt.
type OverdueService struct {
	cron   *cron.Cron
	txRepo *repositories.TransactionRepository
	policy config.LendingConfig
}

// NewOverdueService creates a new overdue service
func NewOverdueService(db *gorm.DB, policy config.LendingConfig) *OverdueService {
	return &OverdueService{
		cron:   cron.New(),
		txRepo: repositories.NewTransactionRepository(db),
		policy: policy,
	}
}

// Start schedules the daily scan (08:30)
func (s *OverdueService) Start() {
	s.cron.AddFunc("30 8 * * *", s.ScanOverdue)
	s.cron.Start()
	log.Println("🚀 OverdueService started (daily scan at 08:30)")
}

// Stop stops the scheduler
func (s *OverdueService) Stop() {
	s.cron.Stop()
	log.Println("🛑 OverdueService stopped")
}

// ScanOverdue logs every loan out past the overdue window
func (s *OverdueService) ScanOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -s.policy.OverdueAfterDays)
	overdue, err := s.txRepo.ListOverdue(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Overdue scan failed: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("✅ Overdue scan: no overdue loans")
		return
	}

	for _, loan := range overdue {
		daysOut := int(time.Since(loan.IssueDate).Hours() / 24)
		accrued := float64(daysOut) * s.policy.DailyFee

		title, name := "?", "?"
		if loan.Book != nil {
			title = loan.Book.Title
		}
		if loan.Member != nil {
			name = loan.Member.Name
		}

		log.Printf("⚠️ Overdue: transaction %d, %q held by %s for %d days (accrued fee %.2f)",
			loan.ID, title, name, daysOut, accrued)
	}

	log.Printf("⚠️ Overdue scan: %d loans past %d days", len(overdue), s.policy.OverdueAfterDays)
}
