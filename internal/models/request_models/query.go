package request_models

// Query strings. Dates are YYYY-MM-DD and both bounds are inclusive.

type DateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type ActivityQuery struct {
	DateRangeQuery
	Type  string `form:"type"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type SummaryQuery struct {
	DateRangeQuery
	Type     string `form:"type"`
	Interval string `form:"interval"`
	TZ       string `form:"tz"`
}

type StatusQuery struct {
	Status string `form:"status"`
}
