package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ridge/gate"
	"github.com/ridge/gate/tlog"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	defaultStreamChunks = 10
	maxStreamChunks     = 1000
)

// apps are the demo gate applications
type apps struct {
	bufferSize int
	// streamInterval is the pause between chunks of /stream
	streamInterval time.Duration
}

func (a apps) response(result gate.ResultFn) *gate.Response {
	res := gate.NewResponse(result)
	res.BufferSize = a.bufferSize
	return res
}

func (a apps) badRequest(result gate.ResultFn, fault gate.FaultFn, err error) {
	res := a.response(result)
	res.SetStatus(http.StatusBadRequest)
	_, _ = fmt.Fprintln(res, err)
	if err := res.Finish(); err != nil {
		fault(err)
	}
}

// hello greets the client by the name in the query, "world" by default
func (a apps) hello(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
	query, err := gate.NewRequest(env).Query()
	if err != nil {
		a.badRequest(result, fault, err)
		return
	}
	name := query["name"]
	if name == "" {
		name = "world"
	}

	res := a.response(result)
	_, _ = fmt.Fprintf(res, "Hello, %s!\n", name)
	if err := res.Finish(); err != nil {
		fault(err)
	}
}

type echoReply struct {
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Host      string            `json:"host"`
	MediaType string            `json:"mediaType"`
	Headers   []string          `json:"headers"`
	Query     map[string]string `json:"query"`
	Cookies   map[string]string `json:"cookies"`
}

// echo describes the request as JSON
func (a apps) echo(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
	req := gate.NewRequest(env)
	query, err := req.Query()
	if err != nil {
		a.badRequest(result, fault, err)
		return
	}
	cookies, err := req.Cookies()
	if err != nil {
		a.badRequest(result, fault, err)
		return
	}
	headers := maps.Keys(req.Headers())
	slices.Sort(headers)

	res := a.response(result)
	res.SetContentType("application/json")
	if err := json.NewEncoder(res).Encode(echoReply{
		Method:    req.Method(),
		Path:      req.Path(),
		Host:      req.Host(),
		MediaType: req.MediaType(),
		Headers:   headers,
		Query:     query,
		Cookies:   cookies,
	}); err != nil {
		fault(err)
		return
	}
	if err := res.Finish(); err != nil {
		fault(err)
	}
}

// stream sends n lines (query parameter "n"), writing them from another
// goroutine after the response has started
func (a apps) stream(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
	query, err := gate.NewRequest(env).Query()
	if err != nil {
		a.badRequest(result, fault, err)
		return
	}
	n := defaultStreamChunks
	if s, ok := query["n"]; ok {
		n, err = strconv.Atoi(s)
		if err != nil || n < 0 || n > maxStreamChunks {
			a.badRequest(result, fault, fmt.Errorf("invalid chunk count %q", s))
			return
		}
	}

	ctx := env.Context()
	res := a.response(result)
	err = res.FinishWith(func(fault gate.FaultFn, complete func()) {
		go func() {
			for i := 0; i < n; i++ {
				if i > 0 && a.streamInterval > 0 {
					select {
					case <-ctx.Done():
						fault(ctx.Err())
						return
					case <-time.After(a.streamInterval):
					}
				}
				if _, err := fmt.Fprintf(res, "chunk %d\n", i); err != nil {
					tlog.Get(ctx).Debug("Stream abandoned", zap.Int("chunk", i), zap.Error(err))
					return
				}
			}
			complete()
		}()
	})
	if err != nil {
		fault(err)
	}
}
