package revenue

import "context"

// Source abstracts one external revenue provider. Balance returns the funds
// currently available for collection in the source's currency. A failing
// source never aborts a collection cycle; the collector logs the error and
// counts the source as zero for that cycle.
type Source interface {
	Name() string
	Balance(ctx context.Context) (float64, error)
}
