package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func GetCounterValue(metric prometheus.Counter) (int64, error) {
	var m = &dto.Metric{}
	if err := metric.Write(m); err != nil {
		return 0, err
	}
	return int64(m.Counter.GetValue()), nil
}

// Collect the current value of every counter and gauge whose name
// starts with one of the prefixes. Keys are the metric name followed
// by its labels, e.g. recyclebin_records_parsed{status="ok"}
func GatherMetrics(gatherer prometheus.Gatherer,
	prefixes ...string) (*ordereddict.Dict, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	result := ordereddict.NewDict()
	for _, family := range families {
		if !hasAnyPrefix(family.GetName(), prefixes) {
			continue
		}

		for _, metric := range family.GetMetric() {
			var value float64
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				value = metric.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = metric.GetGauge().GetValue()
			default:
				continue
			}

			result.Set(metricKey(family.GetName(), metric), int64(value))
		}
	}
	return result, nil
}

func metricKey(name string, metric *dto.Metric) string {
	labels := []string{}
	for _, pair := range metric.GetLabel() {
		labels = append(labels,
			fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
	}
	if len(labels) == 0 {
		return name
	}
	sort.Strings(labels)
	return name + "{" + strings.Join(labels, ",") + "}"
}

func hasAnyPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
