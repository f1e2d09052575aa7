// Package sim provides the virtual-time clock and event scheduler that
// drive the battery model. Events execute synchronously on the caller's
// goroutine in timestamp order; time only advances when events run.
package sim
