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
	"fmt"
	"runtime/debug"

	"github.com/Velocidex/yaml/v2"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/recyclebin/config"
)

var (
	version = app.Command("version",
		"Show the tool version, and with --verbose the Go build info.")
)

// Used for --version.
func version_string() string {
	v := config.GetVersion()
	return fmt.Sprintf("%v v%v (%v)", v.Name, v.Version, v.GoVersion)
}

func doVersion() error {
	res, err := yaml.Marshal(config.GetVersion())
	if err != nil {
		return err
	}
	fmt.Printf("%v", string(res))

	if !*verbose_flag {
		return nil
	}

	// Module versions of the libraries linked in.
	info, ok := debug.ReadBuildInfo()
	if ok {
		fmt.Printf("\nmodules:\n")
		for _, dep := range info.Deps {
			fmt.Printf("  %v: %v\n", dep.Path, dep.Version)
		}
	}
	return nil
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command != version.FullCommand() {
			return false
		}

		err := doVersion()
		kingpin.FatalIfError(err, "Unable to encode version.")
		return true
	})
}
