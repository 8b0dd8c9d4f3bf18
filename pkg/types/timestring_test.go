package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "with seconds", input: "18:00:00", want: "18:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "minutes overflow", input: "10:60", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "garbage", input: "nueve", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("11:30")

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:15"), end)
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))

	_, err = TimeString("23:50").AddMinutes(20)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	day := time.Date(2025, 3, 10, 17, 45, 0, 0, loc)

	got := TimeString("09:15").On(day)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:00:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan("13:20"))
	assert.Equal(t, TimeString("13:20"), ts)

	assert.Error(t, ts.Scan(42))
}
