// Package words spells integers out in English.
package words

import "iter"

// TooLarge is returned by For for magnitudes of one million and above.
const TooLarge = "number too large"

const limit = 1_000_000

var (
	ones  = [10]string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	teens = [10]string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	tens  = [10]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
)

// For returns the English words for n (e.g. 1234 → "one thousand two hundred
// and thirty-four"). Magnitudes of a million or more yield TooLarge, prefixed
// with "negative " when n is negative.
func For(n int) string {
	switch {
	case n == 0:
		return "zero"
	case n <= -limit:
		// -n overflows for math.MinInt, so the sentinel is built directly.
		return "negative " + TooLarge
	case n < 0:
		return "negative " + For(-n)
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		s := tens[n/10]
		if o := n % 10; o > 0 {
			s += "-" + ones[o]
		}
		return s
	case n < 1000:
		s := ones[n/100] + " hundred"
		if r := n % 100; r > 0 {
			s += " and " + For(r)
		}
		return s
	case n < limit:
		s := For(n/1000) + " thousand"
		if r := n % 1000; r > 0 {
			s += " " + For(r)
		}
		return s
	}

	return TooLarge
}

// Range yields every number from start to end inclusive together with its
// words, in ascending order. Nothing is yielded when start > end.
func Range(start, end int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if start > end {
			return
		}
		for n := start; ; n++ {
			if !yield(n, For(n)) || n == end {
				return
			}
		}
	}
}

// Sequence is the materialized form of Range.
func Sequence(start, end int) []string {
	seq := []string{}
	for _, w := range Range(start, end) {
		seq = append(seq, w)
	}
	return seq
}
