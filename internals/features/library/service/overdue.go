package service

import (
	"context"
	"log"
	"time"

	"schoolerp_backend/internals/features/library/model"
	"schoolerp_backend/internals/resource"

	"github.com/robfig/cron/v3"
)

const overdueBatch = 500

// MarkOverdue flips every issued record whose due date is before now to
// overdue, across all schools. Returns how many were updated.
func MarkOverdue(ctx context.Context, store resource.Store[model.BookIssueModel], now time.Time) (int, error) {
	before := now.Add(-time.Nanosecond)
	q := resource.Query{
		AllTenants: true,
		Where:      map[string]any{"status": model.IssueIssued},
		Ranges:     []resource.Range{{Column: "due_date", To: &before}},
		Sort:       resource.Sort{Column: "due_date"},
		Limit:      overdueBatch,
	}

	updated := 0
	for {
		items, err := store.Find(ctx, q)
		if err != nil {
			return updated, err
		}
		for i := range items {
			it := &items[i]
			it.Status = model.IssueOverdue
			it.UpdatedAt = now.UTC()
			if err := store.Replace(ctx, it); err != nil {
				return updated, err
			}
			updated++
		}
		if len(items) < overdueBatch {
			return updated, nil
		}
	}
}

// ScheduleOverdue registers the overdue sweep on c (default daily 00:30).
func ScheduleOverdue(c *cron.Cron, be resource.Backend, spec string) error {
	if spec == "" {
		spec = "30 0 * * *"
	}
	store := resource.StoreFor[model.BookIssueModel](be)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		n, err := MarkOverdue(ctx, store, time.Now())
		if err != nil {
			log.Printf("[LIBRARY][OVERDUE] error after %d updates: %v", n, err)
			return
		}
		if n > 0 {
			log.Printf("[LIBRARY][OVERDUE] %d book issues marked overdue", n)
		}
	})
	return err
}
