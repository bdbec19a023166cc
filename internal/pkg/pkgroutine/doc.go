// Package pkgroutine runs background work with a bounded level of concurrency.
//
// Comparison runs are scheduled through a single Manager so a burst of uploads
// cannot spawn an unbounded number of goroutines, and shutdown can wait for
// in-flight merges to finish.
package pkgroutine
