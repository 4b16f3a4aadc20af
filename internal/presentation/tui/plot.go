package tui

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/guptarohit/asciigraph"
)

// HeadPlot charts the head position at every configuration of a trace.
// It returns "" when the trace has fewer than two configurations.
func HeadPlot(trace *domain.Trace, width int) string {
	if trace == nil || len(trace.Configurations) < 2 {
		return ""
	}
	data := make([]float64, len(trace.Configurations))
	for i, c := range trace.Configurations {
		data[i] = float64(c.Head)
	}
	opts := []asciigraph.Option{
		asciigraph.Height(8),
		asciigraph.Caption("head position per step"),
	}
	if width > 0 && len(data) > width {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(data, opts...)
}
