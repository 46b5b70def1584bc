package words_test

import (
	"math"
	"strings"
	"testing"

	"github.com/orayew2002/rast-words/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{9, "nine"},
		{-5, "negative five"},
		{10, "ten"},
		{13, "thirteen"},
		{19, "nineteen"},
		{20, "twenty"},
		{21, "twenty-one"},
		{90, "ninety"},
		{99, "ninety-nine"},
		{100, "one hundred"},
		{105, "one hundred and five"},
		{110, "one hundred and ten"},
		{342, "three hundred and forty-two"},
		{500, "five hundred"},
		{1000, "one thousand"},
		{1001, "one thousand one"},
		{1234, "one thousand two hundred and thirty-four"},
		{5000, "five thousand"},
		{20020, "twenty thousand twenty"},
		{100000, "one hundred thousand"},
		{999999, "nine hundred and ninety-nine thousand nine hundred and ninety-nine"},
		{-999999, "negative nine hundred and ninety-nine thousand nine hundred and ninety-nine"},
		{1000000, "number too large"},
		{math.MaxInt, "number too large"},
		{-1000000, "negative number too large"},
		{math.MinInt, "negative number too large"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, words.For(tt.n), "For(%d)", tt.n)
	}
}

func TestForWellFormed(t *testing.T) {
	check := func(n int) {
		w := words.For(n)
		require.NotEmpty(t, w, "For(%d)", n)
		assert.NotContains(t, w, "--", "For(%d)", n)
		assert.NotContains(t, w, "  ", "For(%d)", n)
		assert.False(t, strings.HasSuffix(w, "-"), "For(%d) = %q", n, w)
		assert.False(t, strings.HasSuffix(w, " and"), "For(%d) = %q", n, w)
		assert.False(t, strings.HasPrefix(w, " "), "For(%d) = %q", n, w)
		assert.LessOrEqual(t, strings.Count(w, "negative"), 1, "For(%d)", n)
		assert.NotContains(t, w, "zero", "For(%d)", n)
	}

	for n := -2000; n <= 2000; n++ {
		if n != 0 {
			check(n)
		}
	}
	for n := 1; n < 1_000_000; n += 997 {
		check(n)
		check(-n)
	}
}

func TestForIsPure(t *testing.T) {
	for _, n := range []int{0, -5, 21, 105, 1234, 999999, 1000000} {
		assert.Equal(t, words.For(n), words.For(n))
	}
}

func TestSequence(t *testing.T) {
	seq := words.Sequence(1, 5)
	require.Len(t, seq, 5)
	assert.Equal(t, []string{words.For(1), words.For(2), words.For(3), words.For(4), words.For(5)}, seq)

	assert.Equal(t, []string{"negative one", "zero", "one"}, words.Sequence(-1, 1))
	assert.Equal(t, []string{"seven"}, words.Sequence(7, 7))
}

func TestSequenceReversedBounds(t *testing.T) {
	seq := words.Sequence(10, 1)
	assert.NotNil(t, seq)
	assert.Empty(t, seq)
}

func TestRange(t *testing.T) {
	var nums []int
	var got []string
	for n, w := range words.Range(98, 101) {
		nums = append(nums, n)
		got = append(got, w)
	}

	assert.Equal(t, []int{98, 99, 100, 101}, nums)
	assert.Equal(t, []string{"ninety-eight", "ninety-nine", "one hundred", "one hundred and one"}, got)
}

func TestRangeEmpty(t *testing.T) {
	for range words.Range(10, 1) {
		t.Fatal("reversed bounds must not yield")
	}
}

func TestRangeStopsEarly(t *testing.T) {
	count := 0
	for n := range words.Range(1, math.MaxInt) {
		count++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestRangeEndsAtMaxInt(t *testing.T) {
	var nums []int
	for n, w := range words.Range(math.MaxInt-1, math.MaxInt) {
		nums = append(nums, n)
		assert.Equal(t, words.TooLarge, w)
	}
	assert.Equal(t, []int{math.MaxInt - 1, math.MaxInt}, nums)
}
