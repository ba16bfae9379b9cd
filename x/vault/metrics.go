package vault

import (
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics counts operation outcomes. A nil *metrics records nothing.
type metrics struct {
	ops       *prometheus.CounterVec
	deposited prometheus.Counter
	claimed   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "vault",
			Name:      "operations_total",
			Help:      "Number of vault operations by outcome.",
		}, []string{"op", "result"}),
		deposited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "vault",
			Name:      "deposited_amount_total",
			Help:      "Sum of all accepted deposits, in deposit asset units.",
		}),
		claimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "vault",
			Name:      "claimed_amount_total",
			Help:      "Sum of all paid out claims, in reward asset units.",
		}),
	}
	reg.MustRegister(m.ops, m.deposited, m.claimed)
	return m
}

func (m *metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *metrics) addDeposited(amount uint64) {
	if m == nil {
		return
	}
	m.deposited.Add(float64(amount))
}

func (m *metrics) addClaimed(amount uint64) {
	if m == nil {
		return
	}
	m.claimed.Add(float64(amount))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case ErrTransfer.Is(err):
		// checked first, the gateway error may carry any cause
		return "transfer_failed"
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case IsPreconditionErr(err):
		return "precondition"
	case ErrReentrant.Is(err):
		return "reentrant"
	default:
		return "error"
	}
}
