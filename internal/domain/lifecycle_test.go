package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCommand_HappyPath(t *testing.T) {
	status, err := ApplyCommand(StatusPending, CommandConfirm)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	status, err = ApplyCommand(status, CommandSeat)
	require.NoError(t, err)
	assert.Equal(t, StatusSeated, status)

	status, err = ApplyCommand(status, CommandComplete)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
}

func TestApplyCommand_SeatFromPending(t *testing.T) {
	// компанию можно посадить и без явного подтверждения
	status, err := ApplyCommand(StatusPending, CommandSeat)
	require.NoError(t, err)
	assert.Equal(t, StatusSeated, status)
}

func TestApplyCommand_TerminalStatesHaveNoExits(t *testing.T) {
	terminals := []ReservationStatus{StatusCompleted, StatusCancelled, StatusNoShow}
	commands := []StatusCommand{CommandConfirm, CommandSeat, CommandComplete, CommandCancel, CommandMarkNoShow}

	for _, from := range terminals {
		for _, cmd := range commands {
			_, err := ApplyCommand(from, cmd)
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s must not leave %s", cmd, from)
		}
	}
}

func TestApplyCommand_NoShowOnlyBeforeSeating(t *testing.T) {
	_, err := ApplyCommand(StatusSeated, CommandMarkNoShow)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	status, err := ApplyCommand(StatusConfirmed, CommandMarkNoShow)
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)
}

func TestApplyCommand_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []ReservationStatus{StatusPending, StatusConfirmed, StatusSeated} {
		status, err := ApplyCommand(from, CommandCancel)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, status)
	}
}

func TestApplyCommand_UnknownCommand(t *testing.T) {
	_, err := ApplyCommand(StatusPending, StatusCommand("promote"))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCommandForStatus(t *testing.T) {
	cmd, err := CommandForStatus(StatusSeated)
	require.NoError(t, err)
	assert.Equal(t, CommandSeat, cmd)

	// возврат в pending невозможен: команды с такой целью нет
	_, err = CommandForStatus(StatusPending)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)

	_, err = ParseStatus("waiting")
	assert.Error(t, err)
}
