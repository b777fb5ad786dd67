package partition

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// A NumberList is the input to the number-partitioning problem: an
// ordered, non-empty sequence of reals, immutable once loaded.
type NumberList []float64

// NewNumberList validates a slice of numbers.
func NewNumberList(values []float64) (NumberList, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("number list must not be empty")
	}
	nl := make(NumberList, len(values))
	copy(nl, values)
	return nl, nil
}

// NewRandomNumberList draws n values uniformly from [min, max) using
// the supplied random source.
func NewRandomNumberList(rng *rand.Rand, n int, min, max float64) (NumberList, error) {
	if n <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", n)
	}
	if max < min {
		return nil, fmt.Errorf("value range is inverted: [%v, %v)", min, max)
	}
	nl := make(NumberList, n)
	for i := range nl {
		nl[i] = min + rng.Float64()*(max-min)
	}
	return nl, nil
}

// ReadNumberList parses a whitespace- or comma-delimited stream of
// numbers. Parse failures report the line they occurred on.
func ReadNumberList(r io.Reader) (NumberList, error) {
	var values []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.ReplaceAll(scanner.Text(), ",", " ")
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q: %w", line, field, err)
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read number list: %w", err)
	}
	return NewNumberList(values)
}

// LoadNumberList reads a number list from a file.
func LoadNumberList(path string) (NumberList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open number list: %w", err)
	}
	defer f.Close()
	return ReadNumberList(f)
}

// Sum totals the list.
func (nl NumberList) Sum() float64 {
	total := 0.0
	for _, v := range nl {
		total += v
	}
	return total
}

// SubsetSums splits the list by an assignment and returns the sum of
// each half.
func (nl NumberList) SubsetSums(a Assignment) (zero, one float64) {
	for i, v := range nl {
		if a[i] == 0 {
			zero += v
		} else {
			one += v
		}
	}
	return zero, one
}
