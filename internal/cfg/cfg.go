package cfg

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Config adds app-specific configuration fields to the
// common cfg.Registerable and cfg.Validatable interfaces
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int

	// APIToken is a comma-separated list of accepted bearer tokens; empty
	// leaves the API unauthenticated.
	APIToken string

	MaxItems         int
	MaxBatchSize     int
	BatchConcurrency int
	MaxBodyKB        int
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.APIToken, "api-token", "", "comma-separated bearer tokens accepted by the API (empty = no auth)")
	fs.IntVar(&c.MaxItems, "max-items", 64, "maximum items per grouping request (1..4096)")
	fs.IntVar(&c.MaxBatchSize, "max-batch-size", 32, "maximum requests per batch (1..1024)")
	fs.IntVar(&c.BatchConcurrency, "batch-concurrency", 4, "grouping requests computed in parallel per batch (1..64)")
	fs.IntVar(&c.MaxBodyKB, "max-body-kb", 256, "maximum API request body size in KiB (1..16384)")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// a token list made only of separators is almost certainly a typo
	if strings.TrimSpace(c.APIToken) != "" && strings.Trim(c.APIToken, ", \t") == "" {
		errs = append(errs, errors.New("API_TOKEN contains no tokens"))
	}

	// Grouping limits
	if c.MaxItems <= 0 || c.MaxItems > 4096 {
		errs = append(errs, fmt.Errorf("invalid MAX_ITEMS %d (must be 1..4096)", c.MaxItems))
	}
	if c.MaxBatchSize <= 0 || c.MaxBatchSize > 1024 {
		errs = append(errs, fmt.Errorf("invalid MAX_BATCH_SIZE %d (must be 1..1024)", c.MaxBatchSize))
	}
	if c.BatchConcurrency <= 0 || c.BatchConcurrency > 64 {
		errs = append(errs, fmt.Errorf("invalid BATCH_CONCURRENCY %d (must be 1..64)", c.BatchConcurrency))
	}
	if c.MaxBodyKB <= 0 || c.MaxBodyKB > 16384 {
		errs = append(errs, fmt.Errorf("invalid MAX_BODY_KB %d (must be 1..16384)", c.MaxBodyKB))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
