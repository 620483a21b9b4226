package arweave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinstonToAR(t *testing.T) {
	tests := []struct {
		winston string
		want    string
	}{
		{"0", "0"},
		{"1", "0.000000000001"},
		{"1000000000000", "1"},
		{"1500000000000", "1.5"},
		{"1000000000000000", "1000"},
		{"123456789012345678", "123456.789012345678"},
	}

	for _, tt := range tests {
		t.Run(tt.winston, func(t *testing.T) {
			got, err := WinstonToAR(tt.winston)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := WinstonToAR("12ab")
	assert.Error(t, err)
}

func TestARToWinston(t *testing.T) {
	got, err := ARToWinston("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000", got)

	got, err = ARToWinston("1000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", got)

	_, err = ARToWinston("0.0000000000001")
	assert.Error(t, err, "more than 12 decimals")

	_, err = ARToWinston("lots")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		ar       string
		want     string
		positive bool
	}{
		{"0.000000000000", "0 AR", false},
		{"", "0 AR", false},
		{"garbage", "0 AR", false},
		{"-1", "0 AR", false},
		{"1.000000000000", "1 AR", true},
		{"0.250000000000", "0.25 AR", true},
	}

	for _, tt := range tests {
		got, positive := formatAmount(tt.ar)
		assert.Equal(t, tt.want, got, tt.ar)
		assert.Equal(t, tt.positive, positive, tt.ar)
	}
}
