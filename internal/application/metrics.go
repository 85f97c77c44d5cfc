package application

import "expvar"

// Process counters published on /api/debug/vars.
var (
	ratingsSubmitted    = expvar.NewInt("ratings_submitted")
	loginsFailed        = expvar.NewInt("logins_failed")
	universitiesCreated = expvar.NewInt("universities_created")
)
