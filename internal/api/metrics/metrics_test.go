package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObserveRemoteCall(t *testing.T) {
	before := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("get_user", "200"))
	beforeNet := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("get_user", "network_error"))

	Recorder{}.ObserveRemoteCall("get_user", http.StatusOK, 20*time.Millisecond)
	Recorder{}.ObserveRemoteCall("get_user", 0, time.Second)

	if got := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("get_user", "200")); got != before+1 {
		t.Fatalf("expected 200 counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("get_user", "network_error")); got != beforeNet+1 {
		t.Fatalf("expected network_error counter %v, got %v", beforeNet+1, got)
	}
}

func TestRecorder_Audit(t *testing.T) {
	before := testutil.ToFloat64(AuditDroppedTotal)
	Recorder{}.AuditDropped()
	Recorder{}.AuditQueueDepth("0", 3)

	if got := testutil.ToFloat64(AuditDroppedTotal); got != before+1 {
		t.Fatalf("expected dropped %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(AuditQueueDepth.WithLabelValues("0")); got != 3 {
		t.Fatalf("expected depth 3, got %v", got)
	}
}
