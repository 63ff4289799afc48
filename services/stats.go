package services

import (
	"context"
	"fmt"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"golang.org/x/sync/errgroup"
)

// GetStats counts every registry concurrently for the dashboard.
func GetStats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	g, ctx := errgroup.WithContext(ctx)

	count := func(table string, dst *int64) {
		g.Go(func() error {
			n, err := initializers.DB.From(table).CountContext(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", table, err)
			}
			*dst = n
			return nil
		})
	}
	count(memberTable, &stats.Members)
	count(serviceTable, &stats.Services)
	count(churchdayTable, &stats.Churchdays)
	count(attendanceTable, &stats.AttendanceRecords)

	g.Go(func() error {
		n, err := CountOpenSessions(ctx, "")
		stats.OpenSessions = n
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}
