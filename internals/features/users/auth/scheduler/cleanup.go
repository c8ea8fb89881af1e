package scheduler

import (
	"context"
	"log"
	"time"

	authModel "schoolerp_backend/internals/features/users/auth/model"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	"schoolerp_backend/internals/resource"

	"github.com/robfig/cron/v3"
)

// RunAuthCleanup drops expired blacklist entries and stale reset tokens.
func RunAuthCleanup(ctx context.Context, bl authRepo.Blacklist, resets resource.Store[authModel.PasswordResetModel], now time.Time) {
	if bl != nil {
		if n, err := bl.Cleanup(ctx, now); err != nil {
			log.Printf("[CLEANUP ERROR] token_blacklist: %v", err)
		} else if n > 0 {
			log.Printf("[CLEANUP] %d expired blacklist entries removed", n)
		}
	}
	if n, err := authRepo.CleanupPasswordResets(ctx, resets, now); err != nil {
		log.Printf("[CLEANUP ERROR] password_resets: %v", err)
	} else if n > 0 {
		log.Printf("[CLEANUP] %d expired password resets removed", n)
	}
}

// ScheduleAuthCleanup registers the cleanup on c (default daily 03:00).
func ScheduleAuthCleanup(c *cron.Cron, bl authRepo.Blacklist, be resource.Backend, spec string) error {
	if spec == "" {
		spec = "0 3 * * *"
	}
	resets := resource.StoreFor[authModel.PasswordResetModel](be)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		RunAuthCleanup(ctx, bl, resets, time.Now().UTC())
	})
	return err
}
