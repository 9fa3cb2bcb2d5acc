package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestVersionConflictsCounter(t *testing.T) {
	before := testutil.ToFloat64(VersionConflicts.WithLabelValues("lobbies"))
	VersionConflicts.WithLabelValues("lobbies").Inc()

	if got := testutil.ToFloat64(VersionConflicts.WithLabelValues("lobbies")); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}

func TestCollectorsRegistered(t *testing.T) {
	CacheLookups.WithLabelValues("memory", "hit").Inc()
	if n := testutil.CollectAndCount(CacheLookups); n == 0 {
		t.Error("expected cache lookup series")
	}
}
