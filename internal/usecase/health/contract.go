package health

import "context"

// CorpusPinger checks corpus database availability.
type CorpusPinger interface {
	Ping(ctx context.Context) error
}

// EnrichmentChecker checks summarization provider availability.
type EnrichmentChecker interface {
	HealthCheck(ctx context.Context) error
}
