// Package internal holds iterator helpers shared across the VM packages.
package internal

import (
	"iter"
	"slices"
)

// Concat joins several sequences into one, in argument order.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// Concat2 joins several key/value sequences into one, in argument order.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return
				}
			}
		}
	}
}

// SortedConcat collects the concatenation of seqs into a sorted slice.
// Duplicates are kept.
func SortedConcat[T interface{ ~uint16 | ~int }](seqs ...iter.Seq[T]) []T {
	return slices.Sorted(Concat(seqs...))
}
