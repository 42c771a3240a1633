package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"www.velocidex.com/golang/recyclebin/accessors"
)

var (
	accessors_command = app.Command("accessors", "List the available accessors.")
)

func doListAccessors() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Accessor", "Description"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	descriptions := accessors.DescribeAccessors()
	for _, name := range descriptions.Keys() {
		description, _ := descriptions.GetString(name)
		table.Append([]string{name, description})
	}
	table.Render()
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command == accessors_command.FullCommand() {
			doListAccessors()
			return true
		}
		return false
	})
}
