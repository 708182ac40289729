package domain

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition возвращается при попытке недопустимого перехода
// статуса (например, возврат завершённого бронирования в pending)
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrUnknownCommand возвращается для неизвестной команды смены статуса
var ErrUnknownCommand = errors.New("unknown status command")

// StatusCommand is a tagged status-change command. Transitions are driven
// explicitly by staff actions; there is no automatic advancement.
type StatusCommand string

const (
	CommandConfirm    StatusCommand = "confirm"
	CommandSeat       StatusCommand = "seat"
	CommandComplete   StatusCommand = "complete"
	CommandCancel     StatusCommand = "cancel"
	CommandMarkNoShow StatusCommand = "mark_no_show"
)

// commandTargets target status of each command
var commandTargets = map[StatusCommand]ReservationStatus{
	CommandConfirm:    StatusConfirmed,
	CommandSeat:       StatusSeated,
	CommandComplete:   StatusCompleted,
	CommandCancel:     StatusCancelled,
	CommandMarkNoShow: StatusNoShow,
}

// legalSources statuses a command may be applied from. Terminal statuses
// (completed, cancelled, no_show) appear in no source set.
var legalSources = map[StatusCommand][]ReservationStatus{
	CommandConfirm:    {StatusPending},
	CommandSeat:       {StatusPending, StatusConfirmed},
	CommandComplete:   {StatusSeated},
	CommandCancel:     {StatusPending, StatusConfirmed, StatusSeated},
	CommandMarkNoShow: {StatusPending, StatusConfirmed},
}

// Target returns the status the command transitions to
func (c StatusCommand) Target() (ReservationStatus, error) {
	target, ok := commandTargets[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, c)
	}
	return target, nil
}

// ApplyCommand validates and applies a status command to the current
// status, returning the new status
func ApplyCommand(current ReservationStatus, cmd StatusCommand) (ReservationStatus, error) {
	target, err := cmd.Target()
	if err != nil {
		return "", err
	}

	sources, ok := legalSources[cmd]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	for _, source := range sources {
		if current == source {
			return target, nil
		}
	}

	return "", fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, target)
}

// CommandForStatus maps a requested target status to the corresponding
// command. Used by the status-update endpoint, which carries a target
// status on the wire. Pending has no command: nothing transitions back to
// the initial state.
func CommandForStatus(target ReservationStatus) (StatusCommand, error) {
	for cmd, cmdTarget := range commandTargets {
		if cmdTarget == target {
			return cmd, nil
		}
	}
	return "", fmt.Errorf("%w: no command targets status %q", ErrIllegalTransition, target)
}

// ParseStatus validates a wire status value
func ParseStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("invalid reservation status %q", s)
	}
}
