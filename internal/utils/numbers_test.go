package utils

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    float64
		wantErr bool
	}{
		{"json number", 0.91, 0.91, false},
		{"numeric string", " 65 ", 65, false},
		{"zero", 0.0, 0, false},
		{"word", "abc", 0, true},
		{"bool", true, 0, true},
		{"nil", nil, 0, true},
		{"nan string", "NaN", 0, true},
		{"infinity", math.Inf(1), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOperationTimer(t *testing.T) {
	stop := OperationTimer("test", zerolog.Nop())
	time.Sleep(time.Millisecond)
	assert.Greater(t, stop(), time.Duration(0))
}
