package jobs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
	"lendhub.backend/internal/usecases"
	"lendhub.backend/pkg/logger"
)

// OpenLoanMatcherJob periodically sweeps the open pool and retries the
// matching engine. Loans stay open when no lender qualifies at creation
// time; this job picks them up once lender capacity appears.
type OpenLoanMatcherJob struct {
	loanRepo domainRepos.LoanRequestRepository
	engine   *usecases.MatchingEngine
	interval time.Duration
	stop     chan struct{}
}

func NewOpenLoanMatcherJob(loanRepo domainRepos.LoanRequestRepository, engine *usecases.MatchingEngine, interval time.Duration) *OpenLoanMatcherJob {
	return &OpenLoanMatcherJob{
		loanRepo: loanRepo,
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *OpenLoanMatcherJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting open loan matcher job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Open loan matcher job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Open loan matcher job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *OpenLoanMatcherJob) Stop() {
	close(j.stop)
}

func (j *OpenLoanMatcherJob) sweep(ctx context.Context) {
	open, err := j.loanRepo.FindOpen(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to fetch open loan requests", zap.Error(err))
		return
	}
	if len(open) == 0 {
		return
	}

	matched := 0
	for _, loan := range open {
		lender, err := j.engine.AttemptMatch(ctx, loan)
		if err != nil {
			// A version conflict means a request claimed the loan while
			// we were sweeping; the next tick sees the fresh state.
			if errors.Is(err, domainerrors.ErrConflict) {
				continue
			}
			logger.Error(ctx, "Match attempt failed",
				zap.String("loan_id", loan.ID.String()),
				zap.Error(err))
			continue
		}
		if lender != nil {
			matched++
			logger.Info(ctx, "Loan request matched by sweep",
				zap.String("loan_id", loan.ID.String()),
				zap.String("lender_id", lender.ID.String()))
		}
	}

	if matched > 0 {
		logger.Info(ctx, "Sweep finished", zap.Int("open", len(open)), zap.Int("matched", matched))
	}
}
