package domain

import "time"

// LatencySummary describes the latency distribution of one operation.
type LatencySummary struct {
	Operation string
	Count     int64
	Min       time.Duration
	Mean      time.Duration
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
	Max       time.Duration
}
