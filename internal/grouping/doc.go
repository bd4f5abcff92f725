// Package grouping is the business boundary for homogeneous group requests.
// It defines the Service (limits, relation building, batching), the request
// and result models, and the Prometheus metrics wired through Hooks.
package grouping
