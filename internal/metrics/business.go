package metrics

// IncrementLeadCreated increments the lead capture counter
func (m *Metrics) IncrementLeadCreated() {
	m.safeExecute("IncrementLeadCreated", func() {
		m.LeadCreatedTotal.Inc()
	})
}

// IncrementStageMove increments the stage transition counter for a stage
func (m *Metrics) IncrementStageMove(toStage string) {
	m.safeExecute("IncrementStageMove", func() {
		m.StageMoveTotal.WithLabelValues(toStage).Inc()
	})
}

// IncrementActivityLogged increments the activity counter for a type
func (m *Metrics) IncrementActivityLogged(activityType string) {
	m.safeExecute("IncrementActivityLogged", func() {
		m.ActivityLoggedTotal.WithLabelValues(activityType).Inc()
	})
}

// IncrementLeadAssigned increments the assignment counter
func (m *Metrics) IncrementLeadAssigned() {
	m.safeExecute("IncrementLeadAssigned", func() {
		m.LeadAssignedTotal.Inc()
	})
}

// IncrementOverviewCacheHit increments the overview cache hit counter
func (m *Metrics) IncrementOverviewCacheHit() {
	m.safeExecute("IncrementOverviewCacheHit", func() {
		m.OverviewCacheHits.Inc()
	})
}

// IncrementOverviewCacheMiss increments the overview cache miss counter
func (m *Metrics) IncrementOverviewCacheMiss() {
	m.safeExecute("IncrementOverviewCacheMiss", func() {
		m.OverviewCacheMisses.Inc()
	})
}

// SetLeadsTotal sets the total leads gauge
func (m *Metrics) SetLeadsTotal(count int64) {
	m.safeExecute("SetLeadsTotal", func() {
		m.LeadsTotal.Set(float64(count))
	})
}

// SetStaleLeadsTotal sets the stale leads gauge
func (m *Metrics) SetStaleLeadsTotal(count int64) {
	m.safeExecute("SetStaleLeadsTotal", func() {
		m.StaleLeadsTotal.Set(float64(count))
	})
}
