// Package spool implements a rendezvous buffer between a push-style body
// producer and a pull-style body consumer.
//
// Neither Push nor Pull blocks. Each call either completes inline, which is
// reported by its return values, or parks the unfinished part of the request
// and returns async=true. A parked request is finished later by a call from
// the opposite side, which then invokes the notification registered with the
// parked request. A notification fires at most once, and never for an
// operation that already completed synchronously.
//
// At any moment the spool holds either queued writes (the producer is ahead)
// or parked reads (the consumer is ahead), never both.
//
// # End of stream
//
// An empty Push marks the end of the stream. Once every byte pushed before it
// has been pulled, the spool is closed: parked reads complete with whatever
// they have been filled with so far, and every later Pull returns 0
// synchronously. Pushing data after the end of stream fails with
// ErrStreamClosed.
//
// # Lifetime
//
// A spool serves exactly one message body. When the transfer is abandoned,
// call Discard: every notification still parked fires with ErrOrphaned so
// that neither side waits forever.
//
// # Concurrency
//
// A producer and a consumer may drive the spool from different goroutines,
// but each side must serialize its own calls. Notifications are invoked
// outside the spool's lock, on the goroutine of the call that resolved them,
// so a notification may safely call back into the spool.
package spool
