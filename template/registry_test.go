package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRegistryFirstMatchWins(t *testing.T) {
	var calls []string
	r := New()
	r.Register("{{a}}", func(*excelize.File, string, int, int, string) (Change, error) {
		calls = append(calls, "a")
		return Change{}, nil
	})
	r.Register("{{b}}", func(*excelize.File, string, int, int, string) (Change, error) {
		calls = append(calls, "b")
		return Change{Replaced: true, Inserted: 4}, nil
	})

	assert.Equal(t, []string{"{{a}}", "{{b}}"}, r.Placeholders())

	matched, change, err := r.Process(nil, "Sheet1", 0, 0, "{{b}} and {{a}}")
	require.NoError(t, err)
	assert.Equal(t, "{{a}}", matched)
	assert.Zero(t, change.Shift())

	matched, change, err = r.Process(nil, "Sheet1", 0, 0, "only {{b}}")
	require.NoError(t, err)
	assert.Equal(t, "{{b}}", matched)
	assert.Equal(t, 3, change.Shift())

	matched, _, err = r.Process(nil, "Sheet1", 0, 0, "plain text")
	require.NoError(t, err)
	assert.Empty(t, matched)

	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestRegistryHandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := New()
	r.Register("{{x}}", func(*excelize.File, string, int, int, string) (Change, error) { return Change{}, boom })

	matched, _, err := r.Process(nil, "Sheet1", 0, 0, "{{x}}")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, matched)
}

func TestChangeShift(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   int
	}{
		{"edited in place", Change{}, 0},
		{"row replaced by three", Change{Replaced: true, Inserted: 3}, 2},
		{"row replaced by one", Change{Replaced: true, Inserted: 1}, 0},
		{"row removed", Change{Replaced: true}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.change.Shift())
		})
	}
}
