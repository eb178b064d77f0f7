package spool

import (
	"bytes"
	"context"
	"io"
)

// Sink receives a chunk of pulled bytes. The chunk is only valid until Sink
// returns false or calls resume.
//
// If Sink cannot finish with the chunk right away, it returns true and calls
// resume later, from any goroutine.
type Sink func(chunk []byte, resume func()) (async bool)

// Pump moves the contents of the spool to sink in chunks of up to size bytes
// until the end of stream. Then it calls done with nil, or with ErrOrphaned if
// the spool was discarded before the end of stream.
//
// Pump does not block: whenever the spool has no data, it parks a pull and
// returns, and the pumping continues on the goroutine of the producer.
func Pump(s *Spool, size int, sink Sink, done func(error)) error {
	if size <= 0 {
		return ErrInvalidArgument
	}
	p := &pump{spool: s, buf: make([]byte, size), sink: sink, done: done}
	p.run()
	return nil
}

type pump struct {
	spool *Spool
	buf   []byte
	sink  Sink
	done  func(error)
}

func (p *pump) run() {
	for {
		n, async, err := p.spool.Pull(p.buf, p.filled)
		if async || !p.send(n, err) {
			return
		}
	}
}

func (p *pump) filled(n int, err error) {
	if p.send(n, err) {
		p.run()
	}
}

// send returns whether the pump should pull again right away
func (p *pump) send(n int, err error) bool {
	if err != nil {
		p.done(err)
		return false
	}
	if n == 0 {
		p.done(nil)
		return false
	}
	return !p.sink(p.buf[:n], p.run)
}

// NewReader returns an io.Reader pulling from the spool.
//
// Read blocks until p is full or the stream ends. If ctx is closed while
// waiting, the spool is discarded and Read returns the context error.
func NewReader(ctx context.Context, s *Spool) io.Reader {
	return &reader{ctx: ctx, spool: s}
}

type reader struct {
	ctx   context.Context //nolint:containedctx // io.Reader is pre-context
	spool *Spool
}

type fill struct {
	n   int
	err error
}

func (r *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	ch := make(chan fill, 1)
	n, async, err := r.spool.Pull(p, func(n int, err error) {
		ch <- fill{n: n, err: err}
	})
	if err != nil {
		return 0, err
	}
	if async {
		select {
		case f := <-ch:
			n, err = f.n, f.err
		case <-r.ctx.Done():
			r.spool.Discard()
			return 0, r.ctx.Err()
		}
		if err != nil {
			return n, err
		}
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Writer is an io.WriteCloser pushing into the spool. Write copies the bytes
// and never blocks; Close pushes the end of stream.
type Writer struct {
	Spool *Spool
}

// Write implements io.Writer
func (w Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := w.Spool.Push(bytes.Clone(p), nil); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close implements io.Closer
func (w Writer) Close() error {
	_, err := w.Spool.Push(nil, nil)
	return err
}
