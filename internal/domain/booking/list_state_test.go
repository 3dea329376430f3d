//go:build unit

package booking_test

import (
	"testing"

	"gearshare/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListState(t *testing.T) {
	for _, valid := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		t.Run(valid, func(t *testing.T) {
			state, err := booking.ParseListState(valid)
			require.NoError(t, err)
			assert.Equal(t, valid, state.String())
		})
	}

	for _, invalid := range []string{"", "all", "Current", "APPROVED", "CANCELED", "UNKNOWN"} {
		t.Run("rejects "+invalid, func(t *testing.T) {
			_, err := booking.ParseListState(invalid)
			assert.ErrorIs(t, err, booking.ErrUnknownListState)
		})
	}
}
