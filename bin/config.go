package main

import (
	"fmt"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/recyclebin/config"
)

var (
	config_command = app.Command("config", "Manipulate the configuration.")
	config_show    = config_command.Command(
		"show", "Show the effective config after flags are applied.")
)

func doShowConfig() {
	config_obj, err := load_config()
	kingpin.FatalIfError(err, "Unable to load config.")

	res, err := config.Encode(config_obj)
	kingpin.FatalIfError(err, "Unable to encode config.")

	fmt.Printf("%v", string(res))
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case config_show.FullCommand():
			doShowConfig()

		default:
			return false
		}
		return true
	})
}
