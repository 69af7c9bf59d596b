package core

import (
	"strings"
	"time"

	"github.com/voidshard/etlmon/pkg/errors"
	"github.com/voidshard/etlmon/pkg/structs"
)

const (
	maxNameLength    = 200
	maxMessageLength = 4000
)

func validateJobName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Wrap(errors.ErrInvalidArg, "job name is required")
	}
	if len(name) > maxNameLength {
		return "", errors.Wrapf(errors.ErrInvalidArg, "job name exceeds %d characters", maxNameLength)
	}
	return name, nil
}

func validateStepName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Wrap(errors.ErrInvalidArg, "step name is required")
	}
	if len(name) > maxNameLength {
		return "", errors.Wrapf(errors.ErrInvalidArg, "step name exceeds %d characters", maxNameLength)
	}
	return name, nil
}

func validateMessage(field string, msg *string) error {
	if msg != nil && len(*msg) > maxMessageLength {
		return errors.Wrapf(errors.ErrInvalidArg, "%s exceeds %d characters", field, maxMessageLength)
	}
	return nil
}

func validateAttributes(attrs structs.Attributes) error {
	if !attrs.ValidKeys() {
		return errors.Wrap(errors.ErrInvalidArg, "attribute keys must be non empty and at most 128 bytes")
	}
	return nil
}

// toExecutionFinalStatus normalises a caller supplied status, which must be terminal.
func toExecutionFinalStatus(id int64, in structs.Status) (structs.Status, error) {
	st := structs.ToStatus(string(in))
	if !structs.IsFinalStatus(st) {
		return "", errors.Wrapf(errors.ErrInvalidArg, "execution %d: status %q is not one of %s, %s, %s, %s",
			id, in, structs.SUCCESS, structs.FAILURE, structs.PARTIAL, structs.CANCELLED)
	}
	return st, nil
}

// toStepFinalStatus normalises a caller supplied step status, which must be terminal.
func toStepFinalStatus(id int64, in structs.Status) (structs.Status, error) {
	st := structs.ToStatus(string(in))
	if !structs.IsStepFinalStatus(st) {
		return "", errors.Wrapf(errors.ErrInvalidArg, "step %d: status %q is not one of %s, %s",
			id, in, structs.SUCCESS, structs.FAILURE)
	}
	return st, nil
}

func validateWindow(w structs.Window) error {
	if !w.Valid() {
		return errors.Wrapf(errors.ErrInvalidArg, "window end %s must be after start %s",
			w.To.Format(time.RFC3339), w.From.Format(time.RFC3339))
	}
	return nil
}

// notBefore returns t, or floor if t is earlier. Wall clocks between callers
// (and hosts) disagree, recorded intervals must not go negative.
func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}
