// Package metrics exposes install and scan counters. A nil *Recorder is
// valid and records nothing.
package metrics

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "uvm"

const (
	OutcomeInstalled          = "installed"
	OutcomeFailed             = "failed"
	OutcomeVerificationFailed = "verification_failed"
)

type Recorder struct {
	registry      *prometheus.Registry
	scans         prometheus.Counter
	installations prometheus.Counter
	findings      prometheus.Counter
	fastPath      prometheus.Counter
	backendCalls  prometheus.Counter
	installs      *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Number of scans run, including targeted post-install scans.",
		}),
		installations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scanned_installations_total",
			Help:      "Installations discovered by scans.",
		}),
		findings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corrupt_installations_total",
			Help:      "Candidate directories excluded because their manifest was corrupt.",
		}),
		fastPath: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "already_satisfied_total",
			Help:      "Install requests answered by an existing installation.",
		}),
		backendCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installer_invocations_total",
			Help:      "Calls made to the installer backend.",
		}),
		installs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installs_total",
			Help:      "Finished install attempts by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.scans, r.installations, r.findings, r.fastPath, r.backendCalls, r.installs)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ScanCompleted(installations int, findings int) {
	if r == nil {
		return
	}
	r.scans.Inc()
	r.installations.Add(float64(installations))
	r.findings.Add(float64(findings))
}

func (r *Recorder) FastPath() {
	if r == nil {
		return
	}
	r.fastPath.Inc()
}

func (r *Recorder) BackendInvoked() {
	if r == nil {
		return
	}
	r.backendCalls.Inc()
}

func (r *Recorder) InstallFinished(outcome string) {
	if r == nil {
		return
	}
	r.installs.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes the current values in the node_exporter textfile
// format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}
