package spool

import "go.uber.org/atomic"

// DrainedFn is notified when every byte of an asynchronous Push has been
// pulled. err is ErrOrphaned if the spool was discarded first.
type DrainedFn func(err error)

// FilledFn is notified when an asynchronous Pull has been satisfied. n is the
// number of bytes written into the buffer passed to Pull. n is less than the
// buffer size only if the stream has ended, or if the spool was discarded, in
// which case err is ErrOrphaned.
type FilledFn func(n int, err error)

// notification wraps a callback so that invoking it twice panics
type notification struct {
	fired atomic.Bool
	fn    func(n int, err error)
}

func (nt *notification) fire(n int, err error) {
	if nt.fired.Swap(true) {
		panic("spool: notification fired twice")
	}
	nt.fn(n, err)
}

func drained(fn DrainedFn) *notification {
	if fn == nil {
		return nil
	}
	return &notification{fn: func(_ int, err error) { fn(err) }}
}

func filled(fn FilledFn) *notification {
	if fn == nil {
		return nil
	}
	return &notification{fn: fn}
}

// outbox collects notifications resolved under the lock, to be fired after it
// is released
type outbox []func()

func (o *outbox) add(nt *notification, n int, err error) {
	if nt == nil {
		return
	}
	*o = append(*o, func() { nt.fire(n, err) })
}

func (o outbox) deliver() {
	for _, fn := range o {
		fn()
	}
}
