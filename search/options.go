package search

// unlimited is the sentinel maxSolutions value meaning "no cap" — the
// default, matching the spec's max_solutions = ∞.
const unlimited = -1

// config holds the tunables a solve runs with.
type config struct {
	maxSolutions    int
	reorderInterval int
}

// Option customizes a Solve call.
type Option func(*config)

func newConfig(opts ...Option) *config {
	cfg := &config{maxSolutions: unlimited, reorderInterval: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithMaxSolutions caps the number of solutions Solve collects before it
// stops. n <= 0 means unlimited (the default).
func WithMaxSolutions(n int) Option {
	return func(cfg *config) {
		if n <= 0 {
			cfg.maxSolutions = unlimited
			return
		}
		cfg.maxSolutions = n
	}
}

// WithReorderInterval sets K, the number of odometer iterations between
// constraint reorderings (design §4.6: "exploring = iteration mod K == 0").
// K <= 0 is treated as 1, the default — reorder every iteration.
func WithReorderInterval(k int) Option {
	return func(cfg *config) {
		if k <= 0 {
			k = 1
		}
		cfg.reorderInterval = k
	}
}

func (c *config) solutionCapReached(found int) bool {
	return c.maxSolutions != unlimited && found >= c.maxSolutions
}
