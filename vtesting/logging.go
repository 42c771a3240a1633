// Test utilities shared across packages.
package vtesting

import (
	"regexp"

	"github.com/stretchr/testify/assert"
	"www.velocidex.com/golang/recyclebin/logging"
)

func MemoryLogsContain(t assert.TestingT, regex string, msgAndArgs ...interface{}) {
	if !MemoryLogsContainRegex(regex) {
		t.Errorf("Unable to find '%v' in memory logs %v: %v", regex,
			logging.GetMemoryLogs(), msgAndArgs)
	}
}

func MemoryLogsContainRegex(regex string) bool {
	re := regexp.MustCompile(regex)

	for _, line := range logging.GetMemoryLogs() {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
