package middleware

import (
	"net/http"
	"strings"

	"github.com/ridge/gate"
	"github.com/ridge/gate/tlog"
	"go.uber.org/zap"
)

// MethodOverrideHeader names the method a POST request stands for
const MethodOverrideHeader = "X-HTTP-Method-Override"

// MethodOverride lets clients that can only send GET and POST use other
// methods: the method of a POST request is replaced with the value of
// X-HTTP-Method-Override
func MethodOverride(next gate.App) gate.App {
	return func(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
		if env.String(gate.RequestMethodKey) == http.MethodPost {
			if method := strings.ToUpper(strings.TrimSpace(env.Headers().Get(MethodOverrideHeader))); method != "" {
				tlog.Get(env.Context()).Debug("Overriding request method", zap.String("method", method))
				env[gate.RequestMethodKey] = method
			}
		}
		next(env, result, fault)
	}
}
