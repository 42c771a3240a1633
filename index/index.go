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
package index

import (
	"context"

	"github.com/Velocidex/ordereddict"
	"github.com/alitto/pond/v2"
	"github.com/sirupsen/logrus"
	"www.velocidex.com/golang/recyclebin/logging"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/scanner"
)

// Parses a single $I file. An error means the file could not be
// read at all and the entry is skipped.
type ParseFunc func(path string) (recyclebin.Result, error)

type Options struct {
	// Number of files parsed concurrently. Less than 2 is sequential.
	Workers int
}

type Stats struct {
	Users     int
	Valid     int
	Invalid   int
	Truncated int
	Skipped   int

	// Valid records without a $R file.
	CompanionMissing int
}

// Parse results keyed by user SID in discovery order. An Index is not
// modified after Build returns.
type Index struct {
	results *ordereddict.Dict
	stats   Stats
}

func (self *Index) Users() []string {
	return self.results.Keys()
}

func (self *Index) Results(sid string) []recyclebin.Result {
	value, pres := self.results.Get(sid)
	if !pres {
		return nil
	}
	return value.([]recyclebin.Result)
}

// Total number of entries across all users.
func (self *Index) Len() int {
	total := 0
	for _, sid := range self.Users() {
		total += len(self.Results(sid))
	}
	return total
}

func (self *Index) Stats() Stats {
	return self.stats
}

// Holds the outcome for one candidate until the index is assembled.
type slot struct {
	result recyclebin.Result
	err    error
	done   bool
}

// Parse every candidate of every user. Results keep their discovery
// order regardless of the order in which workers finish. A bad file
// never stops its siblings. When the context is cancelled candidates
// not yet started are abandoned and the partial index is returned
// with the context's error.
func Build(ctx context.Context, scan *scanner.ScanResult,
	parse ParseFunc, options Options) (*Index, error) {

	slots := make([][]slot, len(scan.Users))
	for i, user := range scan.Users {
		slots[i] = make([]slot, len(user.Candidates))
	}

	var err error
	if options.Workers > 1 {
		err = parseConcurrently(ctx, scan, parse, options.Workers, slots)
	} else {
		err = parseSequentially(ctx, scan, parse, slots)
	}

	return assemble(scan, slots), err
}

func parseSequentially(ctx context.Context, scan *scanner.ScanResult,
	parse ParseFunc, slots [][]slot) error {
	for i, user := range scan.Users {
		for j, candidate := range user.Candidates {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := parse(candidate)
			slots[i][j] = slot{result: result, err: err, done: true}
		}
	}
	return nil
}

func parseConcurrently(ctx context.Context, scan *scanner.ScanResult,
	parse ParseFunc, workers int, slots [][]slot) error {

	pool := pond.NewPool(workers, pond.WithContext(ctx))

	// Each task writes only its own slot and StopAndWait() orders
	// those writes before assemble() reads them.
submit:
	for i, user := range scan.Users {
		for j, candidate := range user.Candidates {
			if ctx.Err() != nil {
				break submit
			}

			// Per-iteration copies for the closure (go < 1.22 loop semantics).
			i, j, candidate := i, j, candidate
			pool.Submit(func() {
				if ctx.Err() != nil {
					return
				}

				result, err := parse(candidate)
				slots[i][j] = slot{result: result, err: err, done: true}
			})
		}
	}

	pool.StopAndWait()
	return ctx.Err()
}

func assemble(scan *scanner.ScanResult, slots [][]slot) *Index {
	logger := logging.GetLogger(nil, &logging.IndexComponent)

	result := &Index{results: ordereddict.NewDict()}
	for i, user := range scan.Users {
		results := make([]recyclebin.Result, 0, len(slots[i]))
		for j, s := range slots[i] {
			if !s.done {
				continue
			}

			if s.err != nil || s.result == nil {
				logger.WithFields(logrus.Fields{
					"path":  user.Candidates[j],
					"error": s.err,
				}).Warn("Unable to read index file, skipping")
				result.stats.Skipped++
				continue
			}

			switch t := s.result.(type) {
			case *recyclebin.ValidRecord:
				result.stats.Valid++
				if !t.CompanionPresent {
					result.stats.CompanionMissing++
				}
			case *recyclebin.InvalidVersion:
				result.stats.Invalid++
				logger.Info("%v: unsupported header %v", t.IndexPath, t.Header)
			case *recyclebin.Truncated:
				result.stats.Truncated++
				logger.Info("%v: truncated at %v after %v bytes",
					t.IndexPath, t.Field, t.Size)
			}
			results = append(results, s.result)
		}

		result.results.Set(user.Sid, results)
		result.stats.Users++
	}

	return result
}
