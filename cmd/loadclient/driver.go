package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// driver dispara requisições GET contra o serviço para forçar o autoscaling.
type driver struct {
	client   *http.Client
	url      string
	workers  int
	requests int
	// limiter nil dispara sem espaçamento.
	limiter *rate.Limiter
	logger  *zap.Logger
}

type result struct {
	status  int
	latency time.Duration
	err     error
}

type summary struct {
	sent   int
	ok     int
	failed int
	min    time.Duration
	max    time.Duration
	total  time.Duration
}

func (s *summary) add(r result) {
	s.sent++
	if r.err != nil || r.status != http.StatusOK {
		s.failed++
		return
	}

	s.ok++
	s.total += r.latency
	if s.min == 0 || r.latency < s.min {
		s.min = r.latency
	}
	if r.latency > s.max {
		s.max = r.latency
	}
}

// avg considera só as respostas 200.
func (s summary) avg() time.Duration {
	if s.ok == 0 {
		return 0
	}
	return s.total / time.Duration(s.ok)
}

func (s summary) String() string {
	return fmt.Sprintf("sent=%d ok=%d failed=%d min=%s avg=%s max=%s", s.sent, s.ok, s.failed, s.min, s.avg(), s.max)
}

// run bloqueia até todas as requisições terminarem ou o ctx ser cancelado.
func (d driver) run(ctx context.Context) summary {
	workers := max(d.workers, 1)

	jobs := make(chan int)
	results := make(chan result)

	go func() {
		defer close(jobs)
		for i := 0; i < d.requests; i++ {
			if d.limiter != nil {
				if err := d.limiter.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- d.do(ctx, i)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var sum summary
	for r := range results {
		sum.add(r)
	}
	return sum
}

func (d driver) do(ctx context.Context, i int) result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return result{err: err}
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("request failed", zap.Int("n", i), zap.Error(err))
		return result{err: err, latency: time.Since(start)}
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)
	latency := time.Since(start)

	d.logger.Info("response",
		zap.Int("n", i),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
	)
	return result{status: resp.StatusCode, latency: latency, err: err}
}
