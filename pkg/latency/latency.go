// Package latency measures request/stream latency against a venue's
// MarketDataSource, producing percentile and reliability statistics. It is
// a library-only measurement helper, not a shippable benchmarking CLI.
package latency

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/exactkit/exact/pkg/connector"
	"github.com/exactkit/exact/pkg/domain"
)

// Config tunes how many samples a Tester takes and how it paces them.
type Config struct {
	MarketsTestCount      int
	KlinesTestCount       int
	WebSocketTestCount    int
	MarketsDelay          time.Duration
	KlinesDelay           time.Duration
	WebSocketTimeout      time.Duration
	OutlierThresholdSigma float64
}

// DefaultConfig matches a full-depth run: 100 samples per REST probe, 10
// WebSocket connection attempts.
func DefaultConfig() Config {
	return Config{
		MarketsTestCount:      100,
		KlinesTestCount:       100,
		WebSocketTestCount:    10,
		MarketsDelay:          50 * time.Millisecond,
		KlinesDelay:           50 * time.Millisecond,
		WebSocketTimeout:      5 * time.Second,
		OutlierThresholdSigma: 3.0,
	}
}

// QuickConfig trades sample depth for a faster run, suitable for CI smoke
// checks.
func QuickConfig() Config {
	return Config{
		MarketsTestCount:      20,
		KlinesTestCount:       20,
		WebSocketTestCount:    3,
		MarketsDelay:          100 * time.Millisecond,
		KlinesDelay:           100 * time.Millisecond,
		WebSocketTimeout:      5 * time.Second,
		OutlierThresholdSigma: 3.0,
	}
}

// ComprehensiveConfig runs twice the default depth at a tighter pace.
func ComprehensiveConfig() Config {
	return Config{
		MarketsTestCount:      200,
		KlinesTestCount:       200,
		WebSocketTestCount:    20,
		MarketsDelay:          25 * time.Millisecond,
		KlinesDelay:           25 * time.Millisecond,
		WebSocketTimeout:      10 * time.Second,
		OutlierThresholdSigma: 3.0,
	}
}

// Metrics summarizes a sample set of request latencies.
type Metrics struct {
	Min               time.Duration
	P50               time.Duration
	P95               time.Duration
	P99               time.Duration
	Max               time.Duration
	Mean              time.Duration
	Jitter            time.Duration
	SuccessRate       float64
	ReliabilityScore  float64
	OutlierThreshold  time.Duration
	OutlierFrequency  float64
}

// NewMetrics computes percentile, jitter and reliability statistics over
// samples out of totalAttempts requests (totalAttempts >= len(samples);
// the difference is the failure count).
func NewMetrics(samples []time.Duration, totalAttempts int) Metrics {
	if len(samples) == 0 {
		return Metrics{}
	}

	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mean := meanOf(samples)
	jitter := jitterOf(samples, mean)
	successRate := float64(len(samples)) / float64(totalAttempts)
	threshold, frequency := detectOutliers(samples, mean, jitter, 3.0)

	return Metrics{
		Min:              sorted[0],
		P50:              percentile(sorted, 50),
		P95:              percentile(sorted, 95),
		P99:              percentile(sorted, 99),
		Max:              sorted[len(sorted)-1],
		Mean:             mean,
		Jitter:           jitter,
		SuccessRate:      successRate,
		ReliabilityScore: reliabilityScore(successRate, jitter, mean),
		OutlierThreshold: threshold,
		OutlierFrequency: frequency,
	}
}

// LogSummary writes one structured info-level log event carrying every
// metric as its own field, tagged with the operation name.
func (m Metrics) LogSummary(operation string) {
	log.Info().
		Str("operation", operation).
		Dur("min", m.Min).
		Dur("p50", m.P50).
		Dur("p95", m.P95).
		Dur("p99", m.P99).
		Dur("max", m.Max).
		Dur("mean", m.Mean).
		Dur("jitter", m.Jitter).
		Float64("success_rate", m.SuccessRate).
		Float64("reliability_score", m.ReliabilityScore).
		Dur("outlier_threshold", m.OutlierThreshold).
		Float64("outlier_frequency", m.OutlierFrequency).
		Msg("latency summary")
}

// WebSocketMetrics summarizes repeated subscribe attempts: time to open
// the stream and time to the first decoded message.
type WebSocketMetrics struct {
	AvgConnection   time.Duration
	AvgFirstMessage time.Duration
	SuccessRate     float64
}

// Tester drives repeated calls against a MarketDataSource and aggregates
// the resulting Metrics.
type Tester struct {
	cfg Config
}

// NewTester constructs a Tester with the given Config.
func NewTester(cfg Config) *Tester { return &Tester{cfg: cfg} }

// TestMarketsLatency samples GetMarkets repeatedly.
func (t *Tester) TestMarketsLatency(ctx context.Context, src connector.MarketDataSource, exchangeName string) Metrics {
	samples := make([]time.Duration, 0, t.cfg.MarketsTestCount)
	attempts := 0

	for i := 0; i < t.cfg.MarketsTestCount; i++ {
		attempts++
		start := time.Now()
		markets, err := src.GetMarkets(ctx)
		elapsed := time.Since(start)

		if err != nil {
			log.Debug().Str("exchange", exchangeName).Err(err).Dur("elapsed", elapsed).Msg("markets probe failed")
		} else {
			samples = append(samples, elapsed)
			log.Debug().Str("exchange", exchangeName).Int("markets", len(markets)).Dur("elapsed", elapsed).Msg("markets probe ok")
		}

		sleep(ctx, t.cfg.MarketsDelay)
	}

	metrics := NewMetrics(samples, attempts)
	metrics.LogSummary(exchangeName + " markets")
	return metrics
}

// TestKlinesLatency samples GetKlines for each symbol at a 1-minute
// interval, requesting a short 10-candle window each time.
func (t *Tester) TestKlinesLatency(ctx context.Context, src connector.MarketDataSource, exchangeName string, symbols []domain.Symbol) Metrics {
	samples := make([]time.Duration, 0, t.cfg.KlinesTestCount*len(symbols))
	attempts := 0

	for _, symbol := range symbols {
		for i := 0; i < t.cfg.KlinesTestCount; i++ {
			attempts++
			start := time.Now()
			klines, err := src.GetKlines(ctx, symbol, domain.Interval1m, 10, 0, 0)
			elapsed := time.Since(start)

			if err != nil {
				log.Debug().Str("exchange", exchangeName).Str("symbol", symbol.String()).Err(err).Dur("elapsed", elapsed).Msg("klines probe failed")
			} else {
				samples = append(samples, elapsed)
				log.Debug().Str("exchange", exchangeName).Str("symbol", symbol.String()).Int("klines", len(klines)).Dur("elapsed", elapsed).Msg("klines probe ok")
			}

			sleep(ctx, t.cfg.KlinesDelay)
		}
	}

	metrics := NewMetrics(samples, attempts)
	metrics.LogSummary(exchangeName + " klines")
	return metrics
}

// TestWebSocketPerformance subscribes to a ticker stream repeatedly,
// timing connection setup and time-to-first-message.
func (t *Tester) TestWebSocketPerformance(ctx context.Context, src connector.MarketDataSource, exchangeName string, symbol domain.Symbol) WebSocketMetrics {
	var connectionTimes, firstMessageTimes []time.Duration
	successCount := 0

	for i := 0; i < t.cfg.WebSocketTestCount; i++ {
		start := time.Now()
		ch, err := src.SubscribeMarketData(ctx, []domain.Symbol{symbol}, []domain.SubscriptionType{domain.TickerSubscription{}})
		if err != nil {
			log.Debug().Str("exchange", exchangeName).Err(err).Dur("elapsed", time.Since(start)).Msg("websocket subscribe failed")
			sleep(ctx, 100*time.Millisecond)
			continue
		}
		connectionTime := time.Since(start)
		connectionTimes = append(connectionTimes, connectionTime)

		msgStart := time.Now()
		select {
		case _, ok := <-ch:
			if ok {
				firstMessageTime := time.Since(msgStart)
				firstMessageTimes = append(firstMessageTimes, firstMessageTime)
				successCount++
				log.Debug().Str("exchange", exchangeName).Dur("connection", connectionTime).Dur("first_message", firstMessageTime).Msg("websocket probe ok")
			}
		case <-time.After(t.cfg.WebSocketTimeout):
			log.Debug().Str("exchange", exchangeName).Msg("websocket probe timed out waiting for first message")
		case <-ctx.Done():
			return WebSocketMetrics{}
		}

		sleep(ctx, 100*time.Millisecond)
	}

	result := WebSocketMetrics{
		AvgConnection:   meanOf(connectionTimes),
		AvgFirstMessage: meanOf(firstMessageTimes),
		SuccessRate:     float64(successCount) / float64(t.cfg.WebSocketTestCount),
	}

	log.Info().
		Str("exchange", exchangeName).
		Dur("avg_connection", result.AvgConnection).
		Dur("avg_first_message", result.AvgFirstMessage).
		Float64("success_rate", result.SuccessRate).
		Msg("websocket summary")

	return result
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func meanOf(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range samples {
		total += s
	}
	return total / time.Duration(len(samples))
}

func jitterOf(samples []time.Duration, mean time.Duration) time.Duration {
	if len(samples) < 2 {
		return 0
	}
	meanUs := float64(mean.Microseconds())
	var variance float64
	for _, s := range samples {
		diff := float64(s.Microseconds()) - meanUs
		variance += diff * diff
	}
	variance /= float64(len(samples) - 1)
	return time.Duration(math.Sqrt(variance)) * time.Microsecond
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Round(p / 100.0 * float64(len(sorted)-1)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func reliabilityScore(successRate float64, jitter, mean time.Duration) float64 {
	if mean <= 0 {
		return 0
	}
	jitterPenalty := math.Min(float64(jitter)/float64(mean), 1.0)
	score := successRate * (1.0 - jitterPenalty) * 100.0
	return math.Max(score, 0)
}

func detectOutliers(samples []time.Duration, mean, jitter time.Duration, sigma float64) (time.Duration, float64) {
	if len(samples) < 2 {
		return 0, 0
	}
	threshold := mean + time.Duration(sigma*float64(jitter))
	count := 0
	for _, s := range samples {
		if s > threshold {
			count++
		}
	}
	return threshold, float64(count) / float64(len(samples)) * 100.0
}
