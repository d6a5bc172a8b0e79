package sortedset

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/segcoll"
	"github.com/hupe1980/segcoll/core"
)

// MergeBuilder collects values in any order and produces a Sorted view.
//
// Values are buffered unsorted. When the buffer fills up it is sorted,
// deduplicated and merged into the accumulated result.
type MergeBuilder[T core.Integer] struct {
	temp     []T
	acc      []T
	finished bool

	logger  *segcoll.Logger
	metrics segcoll.MetricsCollector
	checks  bool
}

// NewMergeBuilder creates an empty builder.
func NewMergeBuilder[T core.Integer](optFns ...Option) (*MergeBuilder[T], error) {
	o, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}
	return &MergeBuilder[T]{
		temp:    make([]T, 0, o.bufferSize),
		logger:  o.logger.WithStructure("builder"),
		metrics: o.metrics,
		checks:  o.checks,
	}, nil
}

// Add buffers v.
func (b *MergeBuilder[T]) Add(v T) error {
	if b.finished {
		return segcoll.NewStateError("add", "builder is finished")
	}
	b.temp = append(b.temp, v)
	if len(b.temp) == cap(b.temp) {
		b.flush()
	}
	return nil
}

// AddAll buffers vals.
func (b *MergeBuilder[T]) AddAll(vals ...T) error {
	if b.finished {
		return segcoll.NewStateError("add_all", "builder is finished")
	}
	for len(vals) > 0 {
		n := copy(b.temp[len(b.temp):cap(b.temp)], vals)
		b.temp = b.temp[:len(b.temp)+n]
		vals = vals[n:]
		if len(b.temp) == cap(b.temp) {
			b.flush()
		}
	}
	return nil
}

// Len returns an upper bound of the number of distinct values added.
func (b *MergeBuilder[T]) Len() int { return len(b.acc) + len(b.temp) }

// Finish merges the remaining buffer and returns the result. The builder
// rejects further input afterwards.
func (b *MergeBuilder[T]) Finish() (*Sorted[T], error) {
	if b.finished {
		return nil, segcoll.NewStateError("finish", "builder is finished")
	}
	b.flush()
	b.finished = true
	b.temp = nil
	return &Sorted[T]{vals: b.acc}, nil
}

func (b *MergeBuilder[T]) flush() {
	if len(b.temp) == 0 {
		return
	}
	slices.Sort(b.temp)
	batch := slices.Compact(b.temp)
	b.acc = b.merge(b.acc, batch)
	b.temp = b.temp[:0]
	b.verify()
}

// merge folds the sorted unique batch into acc. When acc has room the merge
// runs high to low in place, so no element is overwritten before it is read.
func (b *MergeBuilder[T]) merge(acc, batch []T) []T {
	dups := 0
	for i, j := 0, 0; i < len(acc) && j < len(batch); {
		switch {
		case acc[i] < batch[j]:
			i++
		case acc[i] > batch[j]:
			j++
		default:
			dups++
			i++
			j++
		}
	}
	n := len(acc) + len(batch) - dups

	if n <= cap(acc) {
		i, j := len(acc)-1, len(batch)-1
		acc = acc[:n]
		for k := n - 1; j >= 0; k-- {
			switch {
			case i >= 0 && acc[i] > batch[j]:
				acc[k] = acc[i]
				i--
			case i >= 0 && acc[i] == batch[j]:
				acc[k] = acc[i]
				i--
				j--
			default:
				acc[k] = batch[j]
				j--
			}
		}
		return acc
	}

	out := make([]T, 0, max(n, 2*cap(acc)))
	i, j := 0, 0
	for i < len(acc) && j < len(batch) {
		switch {
		case acc[i] < batch[j]:
			out = append(out, acc[i])
			i++
		case acc[i] > batch[j]:
			out = append(out, batch[j])
			j++
		default:
			out = append(out, acc[i])
			i++
			j++
		}
	}
	out = append(out, acc[i:]...)
	out = append(out, batch[j:]...)

	b.metrics.RecordGrow("builder", cap(out))
	b.logger.LogGrow(context.Background(), "accumulator", cap(acc), cap(out))
	return out
}

func (b *MergeBuilder[T]) verify() {
	if !b.checks || strictlyAscending(b.acc) {
		return
	}
	err := &segcoll.InvariantError{Structure: "builder", Detail: fmt.Sprintf("accumulator not strictly ascending (len %d)", len(b.acc))}
	b.logger.LogInvariant(context.Background(), err)
	panic(err)
}
