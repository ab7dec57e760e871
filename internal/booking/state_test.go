package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("accepts every token in any case", func(t *testing.T) {
		cases := map[string]State{
			"ALL":      StateAll,
			"all":      StateAll,
			"Current":  StateCurrent,
			"past":     StatePast,
			"FUTURE":   StateFuture,
			"waiting":  State(StatusWaiting),
			"Approved": State(StatusApproved),
			"REJECTED": State(StatusRejected),
			"canceled": State(StatusCanceled),
		}
		for token, want := range cases {
			got, err := ParseState(token)
			require.NoError(t, err, token)
			assert.Equal(t, want, got, token)
		}
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		for _, token := range []string{"", "SOMEDAY", "ALL ", "CANCELLED"} {
			_, err := ParseState(token)
			require.Error(t, err, token)
			assert.EqualError(t, err, "Unknown state: UNSUPPORTED_STATUS")
		}
	})
}

func TestStateAsStatus(t *testing.T) {
	status, ok := State(StatusWaiting).AsStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusWaiting, status)

	_, ok = StateAll.AsStatus()
	assert.False(t, ok)
	_, ok = StateCurrent.AsStatus()
	assert.False(t, ok)
}
