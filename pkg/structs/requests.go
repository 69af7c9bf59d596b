package structs

type StartExecutionRequest struct {
	JobName    string     `json:"job_name" validate:"required,max=200,jobname"`
	Attributes Attributes `json:"attributes,omitempty"`
}

type StartExecutionResponse struct {
	ID int64 `json:"id"`
}

type FinishExecutionRequest struct {
	Status       Status     `json:"status" validate:"required"`
	ErrorMessage *string    `json:"error_message,omitempty" validate:"omitempty,max=4000"`
	Attributes   Attributes `json:"attributes,omitempty"`
}

type StartStepRequest struct {
	StepName    string  `json:"step_name" validate:"required,max=200"`
	StepOrder   int     `json:"step_order"`
	StepMessage *string `json:"step_message,omitempty" validate:"omitempty,max=4000"`
}

type StartStepResponse struct {
	ID int64 `json:"id"`
}

type FinishStepRequest struct {
	Status      Status  `json:"status" validate:"required"`
	StepMessage *string `json:"step_message,omitempty" validate:"omitempty,max=4000"`
}
