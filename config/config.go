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
package config

import (
	"os"
	"regexp"
	"runtime"

	"github.com/Velocidex/yaml/v2"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/recyclebin/constants"
	"www.velocidex.com/golang/recyclebin/utils"
)

// Embed build time constants into here for reporting the version.
var (
	build_time  string
	commit_hash string
)

type LoggingConfig struct {
	// If set we also write JSON logs to this file.
	Filename string `json:"filename,omitempty"`

	// One of debug, info, warn, error
	Level string `json:"level,omitempty"`
}

type Config struct {
	Format         string `json:"format,omitempty"`
	OutputEncoding string `json:"output_encoding,omitempty"`

	// Write the report here instead of stdout.
	Output string `json:"output,omitempty"`

	Accessor string `json:"accessor,omitempty"`

	// The zip accessor reads from this archive.
	ZipFile string `json:"zip_file,omitempty"`

	// Number of $I files parsed concurrently. 1 means sequential.
	Workers int64 `json:"workers,omitempty"`

	// Directories in the recycle bin root matching this are user
	// directories.
	SidRegex string `json:"sid_regex,omitempty"`

	Logging *LoggingConfig `json:"logging,omitempty"`
}

type Version struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

func GetVersion() *Version {
	return &Version{
		Name:      constants.NAME,
		Version:   constants.VERSION,
		Commit:    commit_hash,
		BuildTime: build_time,
		GoVersion: runtime.Version(),
	}
}

func GetDefaultConfig() *Config {
	return &Config{
		Format:         constants.FORMAT_TEXT,
		OutputEncoding: constants.DEFAULT_ENCODING,
		Accessor:       constants.DEFAULT_ACCESSOR,
		Workers:        1,
		SidRegex:       constants.SID_DIRECTORY_REGEX,
		Logging: &LoggingConfig{
			Level: "warn",
		},
	}
}

// Load the config stored in the YAML file on top of the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "LoadConfig")
	}

	return ParseConfigFromString(data)
}

func ParseConfigFromString(data []byte) (*Config, error) {
	config_obj := GetDefaultConfig()
	err := yaml.UnmarshalStrict(data, config_obj)
	if err != nil {
		return nil, errors.Wrap(err, "ParseConfigFromString")
	}

	if config_obj.Logging == nil {
		config_obj.Logging = GetDefaultConfig().Logging
	}

	return config_obj, config_obj.Validate()
}

func Encode(config_obj *Config) ([]byte, error) {
	return yaml.Marshal(config_obj)
}

func (self *Config) Validate() error {
	switch self.Format {
	case constants.FORMAT_TEXT, constants.FORMAT_CSV, constants.FORMAT_JSONL,
		constants.FORMAT_JSON, constants.FORMAT_TABLE:
	default:
		return errors.Wrapf(utils.InvalidArgError,
			"format %q is not valid", self.Format)
	}

	if self.Workers < 1 {
		return errors.Wrapf(utils.InvalidArgError,
			"workers must be at least 1, not %v", self.Workers)
	}

	_, err := regexp.Compile(self.SidRegex)
	if err != nil {
		return errors.Wrapf(utils.InvalidArgError, "sid_regex: %v", err)
	}

	return nil
}
