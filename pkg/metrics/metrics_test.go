package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("testns"),
			WithSubsystem("testsub"),
			WithPrometheusRegistry(reg),
		)

		Convey("Then all collectors register without panicking", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Counters with no observations do not gather; exercise a few.
			m.evaluationsComputed.Inc()
			m.visaScores.WithLabelValues("schengen").Observe(75)
			m.queueSize.Set(3)
			families, err = reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package helpers accept updates without panicking", func() {
			So(func() {
				RecordEvaluationComputed()
				RecordEvaluationDuplicate()
				RecordEvaluationLatency(12.5)
				RecordSnapshotStored()
				RecordVisaScore("uk-gbe", 44)
				RecordOverallStatus("yellow")
				UpdateQueueSize(10)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.1)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(4)
				RecordWorkerError()
				RecordWorkerProcessingLatency(3.2)
				UpdateTrackedPlayers(7)
				UpdateSnapshotCount(7)
				RecordHTTPRequest("players", "POST", "201")
				RecordHTTPRequestDuration("players", "POST", "201", 1.5)
				RecordErrorByComponent("queue", "full")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(42)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
