package structs

// Statistics is an aggregate view over executions in a window.
type Statistics struct {
	JobName string `json:"job_name,omitempty"`
	Period  Window `json:"period"`

	Total      int64 `json:"total"`
	Successful int64 `json:"successful"`
	Failed     int64 `json:"failed"`

	// SuccessRate is a percentage in [0, 100], 0 when Total is 0
	SuccessRate float64 `json:"success_rate"`

	// only statuses with a non zero count appear
	ByStatus map[Status]int64 `json:"by_status"`
}

// SuccessRateResponse is the answer to a per job success rate lookup.
type SuccessRateResponse struct {
	JobName     string  `json:"job_name"`
	SuccessRate float64 `json:"success_rate"`
}

// Dashboard bundles the numbers a monitoring front page shows.
type Dashboard struct {
	Statistics *Statistics     `json:"statistics"`
	Recent     []*JobExecution `json:"recent"`
	Failed     []*JobExecution `json:"failed"`
}
