package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinalStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  Status
		Expect bool
	}{
		{"StatusUndefined", "x", false},
		{"StatusRunning", RUNNING, false},
		{"StatusSuccess", SUCCESS, true},
		{"StatusFailure", FAILURE, true},
		{"StatusPartial", PARTIAL, true},
		{"StatusCancelled", CANCELLED, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, IsFinalStatus(c.Given))
		})
	}
}

func TestIsStepFinalStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  Status
		Expect bool
	}{
		{"StatusUndefined", "", false},
		{"StatusRunning", RUNNING, false},
		{"StatusSuccess", SUCCESS, true},
		{"StatusFailure", FAILURE, true},
		{"StatusPartial", PARTIAL, false},
		{"StatusCancelled", CANCELLED, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, IsStepFinalStatus(c.Given))
		})
	}
}

func TestToStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect Status
	}{
		{"StatusUndefined", "x", ""},
		{"StatusEmpty", "", ""},
		{"StatusRunning", "EmExecucao", RUNNING},
		{"StatusRunningLower", "emexecucao", RUNNING},
		{"StatusRunningAlias", "running", RUNNING},
		{"StatusSuccess", "Sucesso", SUCCESS},
		{"StatusSuccessUpper", "SUCESSO", SUCCESS},
		{"StatusSuccessAlias", "Success", SUCCESS},
		{"StatusFailure", "Falha", FAILURE},
		{"StatusFailureAlias", "failed", FAILURE},
		{"StatusPartial", " parcial ", PARTIAL},
		{"StatusCancelled", "Cancelado", CANCELLED},
		{"StatusCanceledAlias", "canceled", CANCELLED},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, ToStatus(c.Given))
		})
	}
}

func TestKeepsErrorMessage(t *testing.T) {
	assert.True(t, KeepsErrorMessage(FAILURE))
	assert.True(t, KeepsErrorMessage(PARTIAL))
	assert.False(t, KeepsErrorMessage(SUCCESS))
	assert.False(t, KeepsErrorMessage(CANCELLED))
}
