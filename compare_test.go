package branchver

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// producibleChain lists representative generator outputs for one semantic
// line, in ascending order. The pre-release suffixes sort before the
// unqualified release, "next" sorts after it, and every snapshot sorts before
// the version it leads up to.
var producibleChain = []string{
	"0.13next_102",
	"0.13next",
	"0.14rc2_249",
	"0.14rc2",
	"0.14",
	"0.14next_1",
	"0.14next_20",
	"0.14next",
	"0.14.1_1",
	"0.14.1",
}

func TestCompareChain(t *testing.T) {
	for i, a := range producibleChain {
		for j, b := range producibleChain {
			switch {
			case i < j:
				require.True(t, Less(a, b), "%q should order before %q", a, b)
				require.Equal(t, -1, Compare(a, b))
			case i > j:
				require.True(t, Less(b, a), "%q should order before %q", b, a)
				require.Equal(t, 1, Compare(a, b))
			default:
				require.Equal(t, 0, Compare(a, b))
			}
		}
	}
}

func TestCompareSortOrder(t *testing.T) {
	shuffled := []string{
		"0.14next", "0.14rc2", "0.14.1", "0.13next", "0.14",
		"0.14rc2_249", "0.14next_20", "0.14.1_1", "0.13next_102", "0.14next_1",
	}
	sort.Slice(shuffled, func(i, j int) bool {
		return Less(shuffled[i], shuffled[j])
	})
	require.Equal(t, producibleChain, shuffled)
}

func TestComparePairs(t *testing.T) {
	tests := []struct {
		lower, higher string
	}{
		{"0.14", "0.14next"},
		{"0.14rc7", "0.14next"},
		{"0.14next", "0.14.1"},
		{"0.14rc6", "0.14"},
		{"0.14.1", "0.14.2rc6"},
		{"0.14next_150", "0.14next"},
		{"0.14.1next_150", "0.14.1next"},
		{"0.14.1_149", "0.14.1"},
		{"0.14.1_149", "0.14.1_150"},
		{"0.13next_102", "0.13next"},
		{"0.13next", "0.14rc5_120"},
		{"0.14rc3_120", "0.14rc3"},
		{"0.14_120", "0.14"},
		{"0.14", "0.14next_20"},
		{"0.14next_20", "0.14next"},
	}

	for _, test := range tests {
		require.True(t, Less(test.lower, test.higher),
			"%q should order before %q", test.lower, test.higher)
		require.False(t, Less(test.higher, test.lower),
			"%q should not order before %q", test.higher, test.lower)
	}
}

func TestCompareEquivalentForms(t *testing.T) {
	// Trailing zero groups are insignificant, as are case differences.
	require.Equal(t, 0, Compare("0.14", "0.14.0"))
	require.Equal(t, 0, Compare("0.14rc2", "0.14RC2"))
	require.Equal(t, 0, Compare("1.2.3", "1.2.3"))
}

func TestCompareNumericNotLexicographic(t *testing.T) {
	require.True(t, Less("0.9", "0.14"))
	require.True(t, Less("0.14rc2", "0.14rc10"))
	require.True(t, Less("0.14next_99", "0.14next_100"))
}
