package recyclebin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"www.velocidex.com/golang/recyclebin/accessors"
	"www.velocidex.com/golang/recyclebin/logging"
	"www.velocidex.com/golang/recyclebin/utils"
)

var (
	recordsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recyclebin_records_parsed",
		Help: "Number of $I records parsed by outcome.",
	}, []string{"status"})

	companionsMissing = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recyclebin_companion_missing",
		Help: "Number of valid $I records without a $R data file.",
	})
)

// Parses $I files through an accessor and checks for the companion
// $R file next to them.
type Parser struct {
	accessor accessors.FileSystemAccessor
}

func NewParser(accessor accessors.FileSystemAccessor) *Parser {
	return &Parser{accessor: accessor}
}

// Errors are only returned when the file can not be opened or
// read. Bad records are reported through the Result.
func (self *Parser) ParseFile(index_path string) (Result, error) {
	result, err := self.parseIndexFile(index_path)
	if err != nil {
		return nil, err
	}

	record, ok := result.(*ValidRecord)
	if ok {
		record.CompanionPresent = self.exists(record.CompanionPath)
		if !record.CompanionPresent {
			companionsMissing.Inc()
		}
	}

	recordsParsed.WithLabelValues(string(result.Status())).Inc()

	return result, nil
}

// The file handle is released before the companion is looked up.
func (self *Parser) parseIndexFile(index_path string) (Result, error) {
	fd, err := self.accessor.Open(index_path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return ParseReader(fd, index_path)
}

func (self *Parser) exists(path string) bool {
	_, err := self.accessor.Stat(path)
	if err == nil {
		return true
	}

	if !utils.IsNotFound(err) {
		logger := logging.GetLogger(nil, &logging.ParserComponent)
		logger.WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Debug("Unable to check companion file")
	}
	return false
}
