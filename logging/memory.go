package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Keeps the most recent log lines in memory so tests can inspect
// what was logged.
type memoryHook struct {
	mu        sync.Mutex
	max       int
	lines     []string
	formatter *Formatter
}

func newMemoryHook(max int) *memoryHook {
	return &memoryHook{
		max:       max,
		formatter: &Formatter{NoColor: true},
	}
}

func (self *memoryHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (self *memoryHook) Fire(entry *logrus.Entry) error {
	serialized, err := self.formatter.Format(entry)
	if err != nil {
		return err
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	self.lines = append(self.lines, string(serialized))
	if len(self.lines) > self.max {
		self.lines = self.lines[len(self.lines)-self.max:]
	}
	return nil
}

func GetMemoryLogs() []string {
	Manager.memory.mu.Lock()
	defer Manager.memory.mu.Unlock()

	return append([]string{}, Manager.memory.lines...)
}

func ClearMemoryLogs() {
	Manager.memory.mu.Lock()
	defer Manager.memory.mu.Unlock()

	Manager.memory.lines = nil
}
