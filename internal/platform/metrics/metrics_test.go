package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGatewayCall(t *testing.T) {
	before := testutil.ToFloat64(GatewayCalls.WithLabelValues("sale", "declined"))
	ObserveGatewayCall("sale", "declined", time.Now())
	assert.Equal(t, before+1, testutil.ToFloat64(GatewayCalls.WithLabelValues("sale", "declined")))
}

func TestHandlerServesRegistry(t *testing.T) {
	OrdersPlaced.Inc()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ecom_order_placed_total")
}
