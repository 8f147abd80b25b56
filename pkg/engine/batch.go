package engine

import (
	"context"
	"runtime"

	"github.com/sanonone/wayfinder/pkg/spatial"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one request in a batch.
type BatchItem struct {
	Request RouteRequest `json:"request"`
	Result  *RouteResult `json:"result,omitempty"`
	Err     error        `json:"-"`
}

// RouteBatch routes every request against the same node set in parallel.
//
// A failing request does not abort the others; its error is recorded in the
// corresponding item. Items not started before ctx is done carry ctx.Err().
// parallelism <= 0 uses GOMAXPROCS.
func (e *Engine) RouteBatch(ctx context.Context, nodes spatial.Nodes, reqs []RouteRequest, parallelism int) []BatchItem {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, req := range reqs {
		items[i].Request = req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			res, err := e.Route(nodes, req)
			if err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result = &res
			return nil
		})
	}
	// Workers never return an error; failures live in the items.
	_ = g.Wait()
	return items
}
