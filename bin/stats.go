package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"www.velocidex.com/golang/recyclebin/index"
	"www.velocidex.com/golang/recyclebin/utils"
)

func writeStats(out io.Writer, idx *index.Index) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Counter", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	stats := idx.Stats()
	for _, row := range []struct {
		name  string
		value int
	}{
		{"Users", stats.Users},
		{"Valid", stats.Valid},
		{"Invalid", stats.Invalid},
		{"Truncated", stats.Truncated},
		{"Skipped", stats.Skipped},
		{"Companion missing", stats.CompanionMissing},
	} {
		table.Append([]string{row.name, fmt.Sprintf("%d", row.value)})
	}

	metrics, err := utils.GatherMetrics(prometheus.DefaultGatherer,
		"recyclebin_", "accessor_")
	if err != nil {
		return err
	}

	for _, k := range metrics.Keys() {
		v, _ := metrics.Get(k)
		table.Append([]string{k, fmt.Sprintf("%v", v)})
	}

	table.Render()
	return nil
}
