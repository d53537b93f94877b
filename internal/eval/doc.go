// Package eval reduces decoded packet trees to numbers.
//
// Both reducers only read the tree, so one tree may be shared by concurrent
// callers without locking.
package eval
