package spool

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/ridge/gate/test"
	"github.com/ridge/parallel"
	"github.com/stretchr/testify/require"
)

func TestPumpSynchronous(t *testing.T) {
	s := New()
	w := Writer{Spool: s}
	_, err := io.WriteString(w, "hello, world")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var chunks []string
	var doneErr error
	done := false
	err = Pump(s, 5, func(chunk []byte, resume func()) bool {
		chunks = append(chunks, string(chunk))
		return false
	}, func(err error) {
		done = true
		doneErr = err
	})
	require.NoError(t, err)
	require.True(t, done)
	require.NoError(t, doneErr)
	require.Equal(t, []string{"hello", ", wor", "ld"}, chunks)
}

func TestPumpParksUntilProducerWrites(t *testing.T) {
	s := New()
	var chunks []string
	done := false
	require.NoError(t, Pump(s, 4, func(chunk []byte, resume func()) bool {
		chunks = append(chunks, string(chunk))
		return false
	}, func(err error) {
		require.NoError(t, err)
		done = true
	}))
	require.Empty(t, chunks)

	w := Writer{Spool: s}
	_, err := w.Write([]byte("abcdef"))
	require.NoError(t, err)
	require.Equal(t, []string{"abcd"}, chunks)
	require.False(t, done)

	require.NoError(t, w.Close())
	require.Equal(t, []string{"abcd", "ef"}, chunks)
	require.True(t, done)
}

func TestPumpHonorsSinkContinuation(t *testing.T) {
	s := New()
	_, err := s.Push([]byte("abcdef"), nil)
	require.NoError(t, err)
	_, err = s.Push(nil, nil)
	require.NoError(t, err)

	var chunks []string
	var resumeFn func()
	done := false
	require.NoError(t, Pump(s, 3, func(chunk []byte, resume func()) bool {
		chunks = append(chunks, string(chunk))
		resumeFn = resume
		return true
	}, func(err error) {
		require.NoError(t, err)
		done = true
	}))
	require.Equal(t, []string{"abc"}, chunks)

	resumeFn()
	require.Equal(t, []string{"abc", "def"}, chunks)
	require.False(t, done)

	resumeFn()
	require.True(t, done)
}

func TestPumpInvalidSize(t *testing.T) {
	require.ErrorIs(t, Pump(New(), 0, nil, nil), ErrInvalidArgument)
}

func TestPumpDiscarded(t *testing.T) {
	s := New()
	var doneErr error
	require.NoError(t, Pump(s, 8, func([]byte, func()) bool { return false }, func(err error) { doneErr = err }))
	s.Discard()
	require.ErrorIs(t, doneErr, ErrOrphaned)
}

func TestReaderWriterAcrossGoroutines(t *testing.T) {
	group := test.GroupWithTimeout(t, 10*time.Second)

	s := New()
	expected := data(100000, "The quick brown fox jumps over the lazy dog. ")
	result := make(chan []byte, 1)

	group.Spawn("producer", parallel.Continue, func(ctx context.Context) error {
		w := Writer{Spool: s}
		for rest := expected; len(rest) > 0; {
			n := min(len(rest), 777)
			if _, err := w.Write(rest[:n]); err != nil {
				return err
			}
			rest = rest[n:]
		}
		return w.Close()
	})
	group.Spawn("consumer", parallel.Continue, func(ctx context.Context) error {
		var got bytes.Buffer
		if _, err := io.CopyBuffer(&got, NewReader(ctx, s), make([]byte, 1000)); err != nil {
			return err
		}
		result <- got.Bytes()
		return nil
	})

	select {
	case got := <-result:
		require.Equal(t, expected, got)
	case <-group.Context().Done():
		t.Fatal("timeout")
	}
}

func TestReaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(test.Context(t))
	s := New()
	errs := make(chan error, 1)
	go func() {
		_, err := NewReader(ctx, s).Read(make([]byte, 10))
		errs <- err
	}()
	cancel()
	require.ErrorIs(t, <-errs, context.Canceled)
	require.True(t, s.Closed())
}
