package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mobicorp/storefront/internal/core/ports"
)

const defaultWorkers = 4

type job struct {
	index     int
	productID int
}

// Dispatcher routes batch suggestion jobs to a fixed set of workers using
// hashing on the product id, so repeated ids in a batch run one after another
// on the same worker.
type Dispatcher struct {
	workers int
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers per batch.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{workers: numWorkers, log: log}
}

// Dispatch runs fn for every product id and returns the results in input
// order. Jobs not started before ctx is cancelled report ctx.Err().
func (d *Dispatcher) Dispatch(ctx context.Context, productIDs []int, fn func(ctx context.Context, productID int) ports.SuggestionResult) []ports.SuggestionResult {
	results := make([]ports.SuggestionResult, len(productIDs))
	if len(productIDs) == 0 {
		return results
	}

	n := d.workers
	if n > len(productIDs) {
		n = len(productIDs)
	}
	queues := make([]chan job, n)
	for i := range queues {
		queues[i] = make(chan job, len(productIDs))
	}
	for i, id := range productIDs {
		queues[d.shardIndex(id, n)] <- job{index: i, productID: id}
	}

	var wg sync.WaitGroup
	for i, q := range queues {
		close(q)
		wg.Add(1)
		go func(id int, q <-chan job) {
			defer wg.Done()
			d.runWorker(ctx, id, q, fn, results)
		}(i, q)
	}
	wg.Wait()
	return results
}

// shardIndex maps a product id deterministically to a worker index.
func (d *Dispatcher) shardIndex(productID, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.Itoa(productID)))
	return int(h.Sum32() % uint32(n))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, q <-chan job, fn func(context.Context, int) ports.SuggestionResult, results []ports.SuggestionResult) {
	for j := range q {
		if err := ctx.Err(); err != nil {
			results[j.index] = ports.SuggestionResult{ProductID: j.productID, Err: err}
			continue
		}
		res := fn(ctx, j.productID)
		if res.Err != nil {
			d.log.Debug().Err(res.Err).
				Int("product_id", j.productID).
				Int("worker_id", id).
				Msg("suggestion job failed")
		}
		results[j.index] = res
	}
}
