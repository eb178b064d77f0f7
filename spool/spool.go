package spool

import (
	"errors"
	"sync"
)

var (
	// ErrStreamClosed is returned by Push when data is pushed after the end of
	// stream
	ErrStreamClosed = errors.New("spool: push after end of stream")

	// ErrInvalidArgument is returned for non-positive buffer sizes
	ErrInvalidArgument = errors.New("spool: invalid argument")

	// ErrWouldBlock is returned by Pull without a notification when the spool
	// is open and has nothing buffered
	ErrWouldBlock = errors.New("spool: no data buffered")

	// ErrOrphaned is passed to the notifications still parked when the spool is
	// discarded
	ErrOrphaned = errors.New("spool: discarded while operation pending")
)

type pendingWrite struct {
	data   []byte
	pos    int
	notify *notification
	eos    bool // end-of-stream marker, data is empty
}

type pendingRead struct {
	buf    []byte
	pos    int
	notify *notification
}

// Spool is a rendezvous buffer between one producer and one consumer.
//
// The zero value is an open, empty spool.
type Spool struct {
	mu sync.Mutex

	// at most one of writes and reads is non-empty
	writes []*pendingWrite
	reads  []*pendingRead

	closing   bool // end of stream pushed, no more data accepted
	closed    bool // end of stream reached by the consumer
	discarded bool
}

// New creates an open spool
func New() *Spool {
	return &Spool{}
}

// Push offers data to the consumer.
//
// Bytes are copied into parked reads first. If data is consumed completely,
// Push returns async=false and onDrained is never invoked. Otherwise the rest
// of data is queued and consumed by future pulls; Push returns async=true if
// onDrained was given, and onDrained fires once the last byte is pulled. The
// spool keeps a reference to data until then, so the caller must not modify
// it.
//
// An empty data marks the end of stream, see the package documentation.
// Pushing an empty data after the end of stream is a no-op.
func (s *Spool) Push(data []byte, onDrained DrainedFn) (async bool, err error) {
	var out outbox
	s.mu.Lock()
	if len(data) == 0 {
		async = s.pushEOS(onDrained, &out)
	} else {
		async, err = s.push(data, onDrained, &out)
	}
	s.mu.Unlock()
	out.deliver()
	return async, err
}

func (s *Spool) push(data []byte, onDrained DrainedFn, out *outbox) (bool, error) {
	if s.closing {
		return false, ErrStreamClosed
	}
	for len(s.reads) > 0 && len(data) > 0 {
		r := s.reads[0]
		n := copy(r.buf[r.pos:], data)
		r.pos += n
		data = data[n:]
		if r.pos == len(r.buf) {
			s.reads = s.reads[1:]
			out.add(r.notify, r.pos, nil)
		}
	}
	if len(data) == 0 {
		return false, nil
	}
	w := &pendingWrite{data: data, notify: drained(onDrained)}
	s.writes = append(s.writes, w)
	return w.notify != nil, nil
}

func (s *Spool) pushEOS(onDrained DrainedFn, out *outbox) bool {
	if s.closing {
		return false
	}
	s.closing = true
	if len(s.writes) == 0 {
		s.close(out)
		return false
	}
	w := &pendingWrite{eos: true, notify: drained(onDrained)}
	s.writes = append(s.writes, w)
	return w.notify != nil
}

// close completes every parked read with its current fill
func (s *Spool) close(out *outbox) {
	s.closed = true
	for _, r := range s.reads {
		out.add(r.notify, r.pos, nil)
	}
	s.reads = nil
}

// Pull asks for len(buf) bytes.
//
// Queued writes are drained into buf in FIFO order, firing the notification of
// each asynchronous write whose last byte is consumed. If buf gets full, or
// the stream has ended, Pull returns the number of bytes written with
// async=false. A count less than len(buf) means the end of stream, and 0 means
// there is nothing more to read.
//
// Otherwise, if onFilled is given, the read is parked and Pull returns
// async=true and n=0. onFilled later receives the total number of bytes
// written into buf, counting those copied during this call.
//
// Without onFilled, Pull never parks: it returns the bytes it could get as a
// short read, or ErrWouldBlock if there were none. The caller is expected to
// try again later.
func (s *Spool) Pull(buf []byte, onFilled FilledFn) (n int, async bool, err error) {
	var out outbox
	s.mu.Lock()
	n, async, err = s.pull(buf, onFilled, &out)
	s.mu.Unlock()
	out.deliver()
	return n, async, err
}

func (s *Spool) pull(buf []byte, onFilled FilledFn, out *outbox) (int, bool, error) {
	n := s.drain(buf, out)
	if n == len(buf) || s.closed {
		return n, false, nil
	}
	if onFilled == nil {
		if n == 0 {
			return 0, false, ErrWouldBlock
		}
		return n, false, nil
	}
	s.reads = append(s.reads, &pendingRead{buf: buf, pos: n, notify: filled(onFilled)})
	return 0, true, nil
}

func (s *Spool) drain(buf []byte, out *outbox) int {
	n := 0
	for len(s.writes) > 0 {
		w := s.writes[0]
		if w.eos {
			s.writes = s.writes[1:]
			out.add(w.notify, 0, nil)
			s.close(out)
			break
		}
		if n == len(buf) {
			break
		}
		c := copy(buf[n:], w.data[w.pos:])
		n += c
		w.pos += c
		if w.pos == len(w.data) {
			s.writes = s.writes[1:]
			out.add(w.notify, len(w.data), nil)
		}
	}
	return n
}

// Discard ends the life of the spool.
//
// Every notification still parked fires with ErrOrphaned. Afterwards Push
// fails with ErrStreamClosed and Pull reports the end of stream.
func (s *Spool) Discard() {
	var out outbox
	s.mu.Lock()
	if !s.discarded {
		for _, w := range s.writes {
			out.add(w.notify, w.pos, ErrOrphaned)
		}
		for _, r := range s.reads {
			out.add(r.notify, r.pos, ErrOrphaned)
		}
		s.writes, s.reads = nil, nil
		s.closing, s.closed, s.discarded = true, true, true
	}
	s.mu.Unlock()
	out.deliver()
}

// Closed reports whether the consumer has reached the end of stream
func (s *Spool) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Buffered returns the number of pushed bytes not pulled yet
func (s *Spool) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, w := range s.writes {
		n += len(w.data) - w.pos
	}
	return n
}
