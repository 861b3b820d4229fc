package imapparser

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	p := New(&Options{Logger: discardLogger{}})
	p.InstallExtensions()

	ok := counterValue(t, parseTotal.WithLabelValues("ok"))
	unknown := counterValue(t, parseTotal.WithLabelValues("unknown attribute"))
	unknownTotal := counterValue(t, unknownAttributes)

	_, err := p.ParseFetch([]byte("* 1 FETCH (X-GM-MSGID 1)\r\n"))
	require.NoError(t, err)
	_, err = p.ParseAttributes([]byte("(UID 1)"))
	require.NoError(t, err)
	_, err = p.ParseAttributes([]byte("(x-metrics-test 1)"))
	require.Error(t, err)
	_, err = p.ParseAttributes([]byte("(x-metrics-other 1)"))
	require.Error(t, err)

	assert.Equal(t, ok+2, counterValue(t, parseTotal.WithLabelValues("ok")))
	assert.Equal(t, unknown+2, counterValue(t, parseTotal.WithLabelValues("unknown attribute")))
	// Attribute names are logged, not used as labels
	assert.Equal(t, unknownTotal+2, counterValue(t, unknownAttributes))
}

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}
