package kube

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSINumber(t *testing.T) {
	cases := []struct {
		Input    string
		Expected float64
		Error    string
	}{
		{Input: "42", Expected: 42},
		{Input: "1.5", Expected: 1.5},
		{Input: "500m", Expected: 0.5},
		{Input: "2K", Expected: 2000},
		{Input: "2Ki", Expected: 2048},
		{Input: "3G", Expected: 3e9},
		{Input: "3Gi", Expected: 3 * (1 << 30)},
		{Input: "1E", Expected: 1e18},
		{Input: "1Ei", Expected: 1 << 60},
		{Input: "-1K", Expected: -1000},
		{Input: "5Q", Error: `unrecognized suffix "Q" in "5Q"`},
		{Input: "5KB", Error: `unrecognized suffix "KB" in "5KB"`},
		{Input: "5k", Error: `unrecognized suffix "k" in "5k"`},
	}

	for _, tc := range cases {
		t.Run(tc.Input, func(t *testing.T) {
			actual, err := SINumber(tc.Input)

			if tc.Error != "" {
				require.EqualError(t, err, tc.Error)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.Expected, actual)
		})
	}
}
