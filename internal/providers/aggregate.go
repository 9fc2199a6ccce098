package providers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ai-quota-dash-go/internal/models"
)

// FetchAll queries all providers concurrently and returns one record per
// provider in canonical order, regardless of completion order. Individual
// fetches never fail, so the whole operation never fails either; a slow
// provider only delays the join.
func (c *Client) FetchAll(ctx context.Context) []models.ServiceUsage {
	results := make([]models.ServiceUsage, len(models.Services))

	var g errgroup.Group
	for i, svc := range models.Services {
		i, svc := i, svc
		g.Go(func() error {
			results[i] = c.Fetch(ctx, svc)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
