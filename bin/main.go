/*
Velociraptor - Dig Deeper
Copyright (C) 2019-2025 Rapid7 Inc.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/recyclebin/config"
	"www.velocidex.com/golang/recyclebin/logging"

	// Register the accessors.
	_ "www.velocidex.com/golang/recyclebin/accessors/file"
	_ "www.velocidex.com/golang/recyclebin/accessors/zip"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("recyclebin",
		"Report on the contents of a Windows Vista or later recycle bin.")

	config_path = app.Flag("config", "The configuration file.").Short('c').
			Envar("RECYCLEBIN_CONFIG").String()

	verbose_flag = app.Flag(
		"verbose", "Enable debug logging.").Short('v').
		Default("false").Bool()

	format_flag = app.Flag("format",
		"Output format: text, csv, jsonl, json or table.").Short('f').
		Enum("text", "csv", "jsonl", "json", "table")

	output_flag = app.Flag("output",
		"Write output to this file instead of stdout.").Short('o').String()

	encoding_flag = app.Flag("output_encoding",
		"Encoding of the output (default utf-8).").Short('e').String()

	accessor_flag = app.Flag("accessor",
		"How to access the recycle bin: file or zip.").String()

	zip_flag = app.Flag("zip",
		"Zip archive to read with the zip accessor.").String()

	workers_flag = app.Flag("workers",
		"Number of index files parsed concurrently.").Int64()

	stats_flag = app.Flag("stats",
		"Print parse counters to stderr when done.").Bool()

	command_handlers []CommandHandler
)

// Load the config file if given and apply the command line on top.
func load_config() (*config.Config, error) {
	config_obj := config.GetDefaultConfig()
	if *config_path != "" {
		loaded, err := config.LoadConfig(*config_path)
		if err != nil {
			return nil, err
		}
		config_obj = loaded
	}

	apply_flags(config_obj)
	return config_obj, config_obj.Validate()
}

func apply_flags(config_obj *config.Config) {
	if *format_flag != "" {
		config_obj.Format = *format_flag
	}

	if *output_flag != "" {
		config_obj.Output = *output_flag
	}

	if *encoding_flag != "" {
		config_obj.OutputEncoding = *encoding_flag
	}

	if *zip_flag != "" {
		config_obj.ZipFile = *zip_flag

		// A zip file implies the zip accessor.
		if *accessor_flag == "" {
			config_obj.Accessor = "zip"
		}
	}

	if *accessor_flag != "" {
		config_obj.Accessor = *accessor_flag
	}

	if *workers_flag > 0 {
		config_obj.Workers = *workers_flag
	}

	if *verbose_flag {
		if config_obj.Logging == nil {
			config_obj.Logging = &config.LoggingConfig{}
		}
		config_obj.Logging.Level = "debug"
	}
}

func load_config_or_die() *config.Config {
	config_obj, err := load_config()
	kingpin.FatalIfError(err, "Unable to load config.")

	// Initialize the logging now that we have loaded the config.
	err = logging.InitLogging(config_obj)
	kingpin.FatalIfError(err, "Logging")

	return config_obj
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	app.Version(version_string())

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}
}
