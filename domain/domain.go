package domain

import (
	"fmt"

	"github.com/bxcodec/faker/v4"
	"github.com/orayew2002/rast-words/words"
)

// Row is one published line: a number and its English words.
type Row struct {
	Number int
	Words  string
}

// Rows converts every number from start to end inclusive.
// It returns an empty slice when start > end.
func Rows(start, end int) []Row {
	rows := []Row{}
	for n, w := range words.Range(start, end) {
		rows = append(rows, Row{Number: n, Words: w})
	}
	return rows
}

// Words extracts the words column from rows, preserving order.
func Words(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Words
	}
	return out
}

type sample struct {
	N int `faker:"boundary_start=-999999, boundary_end=999999"`
}

// RandomNumbers returns n random integers within the band words.For fully spells out.
func RandomNumbers(n int) ([]int, error) {
	nums := make([]int, 0, n)
	for i := range n {
		var s sample
		if err := faker.FakeData(&s); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		nums = append(nums, s.N)
	}
	return nums, nil
}
