// Package statsview is an optional package that is fully built only when
// the statsview build constraint is present.
//
// It provides an HTTP server running locally offering runtime statistics,
// backed by "github.com/go-echarts/statsview".
package statsview
