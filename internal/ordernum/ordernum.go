// Package ordernum produces human-readable order numbers of the form
// ORD-<YYYYMMDD>-<NNNN>. The sequence is process-wide and keeps climbing
// across calendar days; the date segment alone distinguishes days.
package ordernum

import (
	"fmt"
	"sync/atomic"
	"time"
)

const maxAttempts = 5

// Generator owns the atomic sequence counter. One instance is shared per
// process; uniqueness across processes relies on the store-level unique
// constraint on order numbers.
type Generator struct {
	seq atomic.Uint64
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns a candidate order number that the exists check did not
// report as taken. After five colliding attempts the current Unix
// millisecond timestamp is appended to force uniqueness.
func (g *Generator) Next(exists func(number string) (bool, error)) (string, error) {
	var number string

	for attempt := 0; attempt < maxAttempts; attempt++ {
		number = fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102"), g.seq.Add(1))

		taken, err := exists(number)

		if err != nil {
			return "", err
		}

		if !taken {
			return number, nil
		}
	}

	return fmt.Sprintf("%s-%d", number, time.Now().UnixMilli()), nil
}
