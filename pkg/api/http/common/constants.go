package common

const (
	// API_HEALTH reports liveness
	API_HEALTH = "/healthz"

	// API_JOBS lists recent executions
	API_JOBS = "/api/v1/jobs"

	// API_JOBS_START starts a new execution
	API_JOBS_START = "/api/v1/jobs/start"

	// API_JOBS_FILTER lists executions matching optional filters
	API_JOBS_FILTER = "/api/v1/jobs/filter"

	// API_JOBS_STATISTICS aggregates executions over a window
	API_JOBS_STATISTICS = "/api/v1/jobs/statistics"

	// API_JOBS_FAILED lists recently failed executions
	API_JOBS_FAILED = "/api/v1/jobs/failed"

	// API_JOB_BY_NAME returns the last execution of a job
	API_JOB_BY_NAME = "/api/v1/jobs/by-name/{name}"

	// API_JOB_HISTORY lists executions of a job
	API_JOB_HISTORY = "/api/v1/jobs/by-name/{name}/history"

	// API_JOB_SUCCESS_RATE is the success rate of a job
	API_JOB_SUCCESS_RATE = "/api/v1/jobs/by-name/{name}/success-rate"

	// API_EXECUTION returns one execution
	API_EXECUTION = "/api/v1/jobs/{id:[0-9]+}"

	// API_EXECUTION_FINISH finishes an execution
	API_EXECUTION_FINISH = "/api/v1/jobs/{id:[0-9]+}/finish"

	// API_EXECUTION_DETAILS lists the steps of an execution
	API_EXECUTION_DETAILS = "/api/v1/jobs/{id:[0-9]+}/details"

	// API_EXECUTION_STEPS starts a step of an execution
	API_EXECUTION_STEPS = "/api/v1/jobs/{id:[0-9]+}/steps"

	// API_STEP_FINISH finishes a step
	API_STEP_FINISH = "/api/v1/steps/{id:[0-9]+}/finish"

	// API_DASHBOARD bundles statistics, recent & failed executions
	API_DASHBOARD = "/api/v1/dashboard"
)

// Query string keys
const (
	QueryLimit     = "limit"
	QueryOffset    = "offset"
	QueryJobName   = "job_name"
	QueryStatus    = "status"
	QueryStartDate = "start_date"
	QueryEndDate   = "end_date"
	QueryRecent    = "recent"
	QueryFailed    = "failed"
)

// HeaderRequestID carries the per request id set by the server
const HeaderRequestID = "X-Request-ID"
