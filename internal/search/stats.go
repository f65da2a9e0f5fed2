package search

import "time"

// Stats describes the work done by one search
type Stats struct {
	LeafEvaluations int
	NodesExpanded   int
	Cutoffs         int
	Duration        time.Duration
}
