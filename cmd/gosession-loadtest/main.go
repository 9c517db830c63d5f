package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		ops         = flag.Int("ops", 100000, "sessions to establish (save phase) and tear down (destroy phase)")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gs", "session key prefix")
	)
	flag.Parse()

	if *ops <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "ops and concurrency must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := goSession.DefaultConfig()
	cfg.Session.RedisPrefix = *prefix

	def, err := goSession.New().
		WithConfig(cfg).
		WithRedis(client).
		WithValidator(goSession.ValidatorFunc(func(_ context.Context, sess *goSession.Session, errs *goSession.ErrorSet) {
			if sess.Attribute(goSession.AttrIdentifier) == "" {
				errs.Add("identifier can not be blank")
			}
		})).
		WithResolver(goSession.ResolverFunc(func(_ context.Context, sess *goSession.Session) (*goSession.Record, error) {
			return &goSession.Record{
				ID:             "user-" + sess.Attribute(goSession.AttrIdentifier),
				Identifier:     sess.Attribute(goSession.AttrIdentifier),
				Role:           "member",
				AccountVersion: 1,
			}, nil
		})).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	defer def.Close()

	live, saveStats := runSavePhase(ctx, def, *ops, *concurrency)
	destroyStats := runDestroyPhase(ctx, live, *concurrency)

	fmt.Println("---- results ----")
	printStats("save", saveStats)
	printStats("destroy", destroyStats)
}

func runSavePhase(ctx context.Context, def *goSession.Definition, ops, concurrency int) ([]*goSession.Session, phaseStats) {
	var (
		wg       sync.WaitGroup
		cursor   int64
		failures int64
		mu       sync.Mutex
	)
	latencies := make([]time.Duration, 0, ops)
	live := make([]*goSession.Session, 0, ops)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				attrs := map[string]string{
					goSession.AttrIdentifier: fmt.Sprintf("load-%d", i),
					goSession.AttrPassword:   "unchecked",
				}
				t0 := time.Now()
				sess, err := def.Create(ctx, attrs)
				d := time.Since(t0)
				if err != nil || !sess.Errors().Empty() {
					atomic.AddInt64(&failures, 1)
					sess = nil
				}
				mu.Lock()
				latencies = append(latencies, d)
				if sess != nil {
					live = append(live, sess)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return live, computeStats(total, latencies, failures)
}

func runDestroyPhase(ctx context.Context, live []*goSession.Session, concurrency int) phaseStats {
	var (
		wg       sync.WaitGroup
		cursor   int64
		failures int64
		mu       sync.Mutex
	)
	latencies := make([]time.Duration, 0, len(live))

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				// The cursor hands each session to exactly one worker, so
				// the single-goroutine ownership contract holds.
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= len(live) {
					return
				}
				t0 := time.Now()
				err := live[i].Destroy(ctx)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
