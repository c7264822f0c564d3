package services

import (
	"sync/atomic"
	"time"
)

// Metrics is a set of process-lifetime counters, reset on restart. Handed to
// the middleware and controllers explicitly rather than living in package
// globals.
type Metrics struct {
	startedAt time.Time

	requestsTotal   atomic.Int64
	requestsSuccess atomic.Int64
	requestsErrors  atomic.Int64
	signups         atomic.Int64
	logins          atomic.Int64
	chatRequests    atomic.Int64
	foodSearches    atomic.Int64
	foodEntries     atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{startedAt: time.Now()}
}

// RecordRequest counts one finished HTTP request; statuses >= 400 count as
// errors.
func (m *Metrics) RecordRequest(status int) {
	m.requestsTotal.Add(1)
	if status >= 400 {
		m.requestsErrors.Add(1)
	} else {
		m.requestsSuccess.Add(1)
	}
}

func (m *Metrics) RecordSignup()     { m.signups.Add(1) }
func (m *Metrics) RecordLogin()      { m.logins.Add(1) }
func (m *Metrics) RecordChat()       { m.chatRequests.Add(1) }
func (m *Metrics) RecordFoodSearch() { m.foodSearches.Add(1) }
func (m *Metrics) RecordFoodEntry()  { m.foodEntries.Add(1) }

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	UptimeSeconds   int64 `json:"uptimeSeconds"`
	RequestsTotal   int64 `json:"requestsTotal"`
	RequestsSuccess int64 `json:"requestsSuccess"`
	RequestsErrors  int64 `json:"requestsErrors"`
	Signups         int64 `json:"signups"`
	Logins          int64 `json:"logins"`
	ChatRequests    int64 `json:"chatRequests"`
	FoodSearches    int64 `json:"foodSearches"`
	FoodEntries     int64 `json:"foodEntries"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		UptimeSeconds:   int64(time.Since(m.startedAt).Seconds()),
		RequestsTotal:   m.requestsTotal.Load(),
		RequestsSuccess: m.requestsSuccess.Load(),
		RequestsErrors:  m.requestsErrors.Load(),
		Signups:         m.signups.Load(),
		Logins:          m.logins.Load(),
		ChatRequests:    m.chatRequests.Load(),
		FoodSearches:    m.foodSearches.Load(),
		FoodEntries:     m.foodEntries.Load(),
	}
}
