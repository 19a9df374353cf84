package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: 570},
		{name: "postgres time column", input: "17:45:00", want: 1065},
		{name: "midnight", input: "00:00", want: 0},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "garbage", input: "9 am", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := MustTimeString("11:45")

	end, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "12:15", end.String())
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))

	_, err = MustTimeString("23:50").AddMinutes(20)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = MustTimeString("00:10").AddMinutes(-20)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("09:15").On(date, loc)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, loc), got)
}

func TestTimeString_ScanAndValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("13:00:00")))
	assert.Equal(t, "13:00", ts.String())

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "13:00", v)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	v, err = ts.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_JSON(t *testing.T) {
	type payload struct {
		Start TimeString `json:"start"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:05"}`), &p))
	assert.Equal(t, 485, p.Start.Minutes())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"08:05"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"8h"}`), &p))
}
