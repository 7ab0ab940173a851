package aig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{"additive", StrategyAdditive, false},
		{"projection", StrategyProjection, false},
		{"hspace", StrategyHSpace, false},
		{"", StrategyAdditive, false},
		{"Additive", 0, true},
		{"orthogonal", 0, true},
	}

	for _, tt := range tests {
		t.Run("Parse_"+tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownStrategy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "additive", StrategyAdditive.String())
	assert.Equal(t, "projection", StrategyProjection.String())
	assert.Equal(t, "hspace", StrategyHSpace.String())
	assert.Equal(t, "Unknown(99)", Strategy(99).String())
}
