package statistics

import (
	"github.com/markusressel/pid2go/internal/simulation"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const loopSubsystem = "loop"

// LoopCollector exports the state of all running loop sessions.
type LoopCollector struct {
	sessions cmap.ConcurrentMap[string, *simulation.Session]

	setpoint *prometheus.Desc
	actual   *prometheus.Desc
	output   *prometheus.Desc
	diff     *prometheus.Desc
	pTerm    *prometheus.Desc
	iTerm    *prometheus.Desc
	dTerm    *prometheus.Desc
	fTerm    *prometheus.Desc
}

func NewLoopCollector(sessions cmap.ConcurrentMap[string, *simulation.Session]) *LoopCollector {
	return &LoopCollector{
		sessions: sessions,
		setpoint: newLoopDesc("setpoint", "Current target of the loop"),
		actual:   newLoopDesc("actual", "Current measured value of the loop"),
		output:   newLoopDesc("output", "Output computed in the last tick of the loop"),
		diff:     newLoopDesc("error", "Current difference between target and measured value"),
		pTerm:    newLoopDesc("p_term", "Proportional contribution to the last output"),
		iTerm:    newLoopDesc("i_term", "Integral contribution to the last output"),
		dTerm:    newLoopDesc("d_term", "Derivative contribution to the last output"),
		fTerm:    newLoopDesc("f_term", "Feed-forward contribution to the last output"),
	}
}

func newLoopDesc(name string, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, name),
		help,
		[]string{"id"}, nil,
	)
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.setpoint
	ch <- collector.actual
	ch <- collector.output
	ch <- collector.diff
	ch <- collector.pTerm
	ch <- collector.iTerm
	ch <- collector.dTerm
	ch <- collector.fTerm
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	for _, session := range collector.sessions.Items() {
		state := session.Snapshot()
		id := state.Id

		ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, state.Target, id)
		ch <- prometheus.MustNewConstMetric(collector.actual, prometheus.GaugeValue, state.Actual, id)
		ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, state.Output, id)
		ch <- prometheus.MustNewConstMetric(collector.diff, prometheus.GaugeValue, state.Error, id)

		// only pid loops have terms
		if state.Terms != nil {
			ch <- prometheus.MustNewConstMetric(collector.pTerm, prometheus.GaugeValue, state.Terms.P, id)
			ch <- prometheus.MustNewConstMetric(collector.iTerm, prometheus.GaugeValue, state.Terms.I, id)
			ch <- prometheus.MustNewConstMetric(collector.dTerm, prometheus.GaugeValue, state.Terms.D, id)
			ch <- prometheus.MustNewConstMetric(collector.fTerm, prometheus.GaugeValue, state.Terms.F, id)
		}
	}
}
