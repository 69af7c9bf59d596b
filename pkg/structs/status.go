package structs

import (
	"strings"
)

// Status is the lifecycle state of an execution or one of its steps.
//
// Values are the canonical wire / storage tokens.
type Status string

const (
	// transient state
	RUNNING Status = "EmExecucao"

	// end states
	SUCCESS   Status = "Sucesso"
	FAILURE   Status = "Falha"
	PARTIAL   Status = "Parcial"
	CANCELLED Status = "Cancelado"
)

// AllStatuses in display order.
var AllStatuses = []Status{RUNNING, SUCCESS, FAILURE, PARTIAL, CANCELLED}

// IsFinalStatus returns true if an execution may be finished with the given status.
func IsFinalStatus(status Status) bool {
	switch status {
	case SUCCESS, FAILURE, PARTIAL, CANCELLED:
		return true
	default:
		return false
	}
}

// IsStepFinalStatus returns true if a step may be finished with the given status.
// Steps are only ever successful or failed.
func IsStepFinalStatus(status Status) bool {
	switch status {
	case SUCCESS, FAILURE:
		return true
	default:
		return false
	}
}

// KeepsErrorMessage returns true if an execution finished with this status should
// record an error message.
func KeepsErrorMessage(status Status) bool {
	return status == FAILURE || status == PARTIAL
}

// ToStatus matches the given string case-insensitively against the wire tokens
// (and a few English aliases). Returns "" if nothing matches.
func ToStatus(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EMEXECUCAO", "RUNNING":
		return RUNNING
	case "SUCESSO", "SUCCESS":
		return SUCCESS
	case "FALHA", "FAILURE", "FAILED", "ERROR":
		return FAILURE
	case "PARCIAL", "PARTIAL":
		return PARTIAL
	case "CANCELADO", "CANCELLED", "CANCELED":
		return CANCELLED
	default:
		return ""
	}
}
