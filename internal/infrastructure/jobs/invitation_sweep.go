package jobs

import (
	"context"
	"log"
	"time"

	"team-hub.backend/internal/domain/repositories"
)

// InvitationSweepJob deletes pending invitations that were never accepted.
type InvitationSweepJob struct {
	repo     repositories.InvitationRepository
	maxAge   time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewInvitationSweepJob(repo repositories.InvitationRepository, maxAge, interval time.Duration) *InvitationSweepJob {
	return &InvitationSweepJob{
		repo:     repo,
		maxAge:   maxAge,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *InvitationSweepJob) Start(ctx context.Context) {
	log.Println("🕐 Starting invitation sweep job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Invitation sweep job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Invitation sweep job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *InvitationSweepJob) Stop() {
	close(j.stop)
}

func (j *InvitationSweepJob) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.maxAge)
	deleted, err := j.repo.DeleteStalePending(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Error sweeping stale invitations: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Swept %d stale invitations", deleted)
	}
}
