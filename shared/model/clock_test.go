package model_test

import (
	"agenda/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Clock
		wantErr bool
	}{
		{name: "full", input: "09:30:00", want: "09:30:00"},
		{name: "short", input: "14:15", want: "14:15:00"},
		{name: "padded", input: " 08:00 ", want: "08:00:00"},
		{name: "garbage", input: "nine thirty", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseClock(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClock_Short(t *testing.T) {
	assert.Equal(t, "09:30", model.Clock("09:30:00").Short())
	assert.Equal(t, "weird", model.Clock("weird").Short())
}

func TestClock_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want model.Clock
	}{
		{name: "time", src: time.Date(0, 1, 1, 10, 45, 0, 0, time.UTC), want: "10:45:00"},
		{name: "bytes", src: []byte("11:00:00"), want: "11:00:00"},
		{name: "string with fraction", src: "12:30:00.000000", want: "12:30:00"},
		{name: "nil", src: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c model.Clock

			require.NoError(t, c.Scan(tt.src))
			assert.Equal(t, tt.want, c)
		})
	}

	var c model.Clock
	assert.Error(t, c.Scan(42))
}

func TestClock_Value(t *testing.T) {
	v, err := model.Clock("09:00:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", v)

	v, err = model.Clock("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
