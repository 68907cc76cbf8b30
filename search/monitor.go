package search

import (
	"github.com/poiesic/toolsearch/core"
)

// QueryMonitor provides hooks to observe the query process.
// Implement this interface to track intermediate steps and results during a query.
type QueryMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterRanking(results []core.RankedResult)
	// Finish is always called once Start was called. err is the failure that
	// was converted into an empty result, if any.
	Finish(results []core.RankedResult, err error)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)       {}
func (n *noopMonitor) AfterRanking(_ []core.RankedResult)    {}
func (n *noopMonitor) Finish(_ []core.RankedResult, _ error) {}
