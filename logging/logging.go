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
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"www.velocidex.com/golang/recyclebin/config"
)

var (
	ToolComponent     = "Tool"
	ScannerComponent  = "Scanner"
	ParserComponent   = "Parser"
	IndexComponent    = "Index"
	AccessorComponent = "Accessor"
	ReportComponent   = "Report"

	// Set when stderr is not a terminal.
	NoColor = !isatty.IsTerminal(os.Stderr.Fd()) &&
		!isatty.IsCygwinTerminal(os.Stderr.Fd())

	Manager = NewLogManager()
)

type LogManager struct {
	mu     sync.Mutex
	logger *logrus.Logger
	memory *memoryHook
}

func NewLogManager() *LogManager {
	result := &LogManager{
		memory: newMemoryHook(1000),
	}
	result.Reset()
	return result
}

// Go back to a warning level logger on stderr.
func (self *LogManager) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.logger = self.newLogger(os.Stderr, logrus.WarnLevel)
}

func (self *LogManager) newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&Formatter{NoColor: NoColor})
	logger.AddHook(self.memory)
	return logger
}

func (self *LogManager) Logger() *logrus.Logger {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.logger
}

// Initialize the logging from the config. Must be called once the
// config is loaded and the command line is parsed.
func InitLogging(config_obj *config.Config) error {
	return Manager.Init(config_obj, os.Stderr)
}

func (self *LogManager) Init(config_obj *config.Config, out io.Writer) error {
	level := logrus.WarnLevel
	if config_obj.Logging != nil && config_obj.Logging.Level != "" {
		parsed, err := logrus.ParseLevel(config_obj.Logging.Level)
		if err != nil {
			return errors.Wrap(err, "InitLogging")
		}
		level = parsed
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	logger := self.newLogger(out, level)

	// Mirror everything into a JSON log file if required.
	if config_obj.Logging != nil && config_obj.Logging.Filename != "" {
		fd, err := os.OpenFile(config_obj.Logging.Filename,
			os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return errors.Wrap(err, "InitLogging")
		}
		logger.AddHook(lfshook.NewHook(fd, &logrus.JSONFormatter{}))
	}

	self.logger = logger
	return nil
}

type LogContext struct {
	component string
	logger    *logrus.Logger
}

func GetLogger(config_obj *config.Config, component *string) *LogContext {
	return &LogContext{
		component: *component,
		logger:    Manager.Logger(),
	}
}

func (self *LogContext) entry() *logrus.Entry {
	return self.logger.WithField("component", self.component)
}

func (self *LogContext) WithFields(fields logrus.Fields) *logrus.Entry {
	return self.entry().WithFields(fields)
}

func (self *LogContext) Debug(format string, v ...interface{}) {
	self.entry().Debugf(format, v...)
}

func (self *LogContext) Info(format string, v ...interface{}) {
	self.entry().Infof(format, v...)
}

func (self *LogContext) Warn(format string, v ...interface{}) {
	self.entry().Warnf(format, v...)
}

func (self *LogContext) Error(format string, v ...interface{}) {
	self.entry().Errorf(format, v...)
}

// Used before the config is loaded.
func Prelog(format string, v ...interface{}) {
	Manager.Logger().WithField("component", ToolComponent).
		Infof(format, v...)
}
