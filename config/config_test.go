package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Velocidex/yaml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/recyclebin/utils"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config_obj := GetDefaultConfig()
	assert.NoError(t, config_obj.Validate())
	assert.Equal(t, "text", config_obj.Format)
	assert.Equal(t, "utf-8", config_obj.OutputEncoding)
	assert.Equal(t, int64(1), config_obj.Workers)
}

func TestLoadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(filename, []byte(`
format: csv
output_encoding: iso-8859-1
workers: 4
logging:
  level: debug
  filename: /tmp/recyclebin.log
`), 0600)
	require.NoError(t, err)

	config_obj, err := LoadConfig(filename)
	require.NoError(t, err)

	assert.Equal(t, "csv", config_obj.Format)
	assert.Equal(t, "iso-8859-1", config_obj.OutputEncoding)
	assert.Equal(t, int64(4), config_obj.Workers)
	assert.Equal(t, "debug", config_obj.Logging.Level)
	assert.Equal(t, "/tmp/recyclebin.log", config_obj.Logging.Filename)

	// Unset fields keep their defaults.
	assert.Equal(t, "file", config_obj.Accessor)
	assert.Equal(t, `^S-1-5`, config_obj.SidRegex)
}

func TestInvalidConfig(t *testing.T) {
	_, err := ParseConfigFromString([]byte("format: xml\n"))
	assert.ErrorIs(t, err, utils.InvalidArgError)

	_, err = ParseConfigFromString([]byte("workers: 0\n"))
	assert.ErrorIs(t, err, utils.InvalidArgError)

	_, err = ParseConfigFromString([]byte("sid_regex: \"S-1-(\"\n"))
	assert.ErrorIs(t, err, utils.InvalidArgError)

	// Unknown keys are rejected.
	_, err = ParseConfigFromString([]byte("colour: red\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, utils.IsNotFound(err))
}

func TestEncodeRoundTrip(t *testing.T) {
	config_obj := GetDefaultConfig()
	config_obj.Format = "jsonl"

	serialized, err := Encode(config_obj)
	require.NoError(t, err)

	decoded, err := ParseConfigFromString(serialized)
	require.NoError(t, err)
	assert.Equal(t, config_obj, decoded)
}

func TestAllDocumentedKeys(t *testing.T) {
	config_obj, err := ParseConfigFromString([]byte(`
format: table
output_encoding: iso-8859-1
output: /tmp/report.txt
accessor: zip
zip_file: c.zip
workers: 2
sid_regex: "^S-1-5-21"
logging:
  filename: /tmp/log.jsonl
  level: info
`))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Format:         "table",
		OutputEncoding: "iso-8859-1",
		Output:         "/tmp/report.txt",
		Accessor:       "zip",
		ZipFile:        "c.zip",
		Workers:        2,
		SidRegex:       "^S-1-5-21",
		Logging: &LoggingConfig{
			Filename: "/tmp/log.jsonl",
			Level:    "info",
		},
	}, config_obj)
}

func TestEncodeKeyNames(t *testing.T) {
	serialized, err := Encode(GetDefaultConfig())
	require.NoError(t, err)

	text := string(serialized)
	assert.Contains(t, text, "output_encoding: utf-8\n")
	assert.Contains(t, text, "sid_regex: ^S-1-5\n")

	// Empty fields are omitted.
	assert.NotContains(t, text, "zip_file")
	assert.NotContains(t, text, "output:")
}

func TestVersionKeyNames(t *testing.T) {
	v := GetVersion()
	v.Commit = ""
	v.BuildTime = ""

	serialized, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(serialized), "name: recyclebin\n")
	assert.Contains(t, string(serialized), "go_version: ")
	assert.NotContains(t, string(serialized), "build_time")
}
