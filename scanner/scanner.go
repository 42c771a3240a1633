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
package scanner

import (
	"context"
	"regexp"
	"strings"

	errors "github.com/go-errors/errors"
	pkg_errors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"www.velocidex.com/golang/recyclebin/accessors"
	"www.velocidex.com/golang/recyclebin/constants"
	"www.velocidex.com/golang/recyclebin/logging"
	"www.velocidex.com/golang/recyclebin/utils"
)

var (
	ErrRootNotFound      = errors.New("Recycle bin root does not exist")
	ErrRootNotADirectory = errors.New("Recycle bin root is not a directory")

	default_sid_regex = regexp.MustCompile(constants.SID_DIRECTORY_REGEX)
)

// A per-user directory inside the recycle bin and the $I files found
// in it.
type UserDirectory struct {
	Sid        string
	Path       string
	Candidates []string
}

type ScanResult struct {
	Root  string
	Users []*UserDirectory
}

func (self *ScanResult) TotalCandidates() int {
	total := 0
	for _, user := range self.Users {
		total += len(user.Candidates)
	}
	return total
}

type Options struct {
	// Matches user directory names. Defaults to ^S-1-5
	SidRegex *regexp.Regexp
}

// Discover user directories under root and the candidate $I files in
// each. Only problems with root itself are errors, anything else is
// logged and skipped. Nothing is parsed here.
func Scan(ctx context.Context,
	accessor accessors.FileSystemAccessor,
	root string, options Options) (*ScanResult, error) {

	sid_regex := options.SidRegex
	if sid_regex == nil {
		sid_regex = default_sid_regex
	}

	logger := logging.GetLogger(nil, &logging.ScannerComponent)

	err := CheckRoot(accessor, root)
	if err != nil {
		return nil, err
	}

	entries, err := accessor.ReadDir(root)
	if err != nil {
		return nil, pkg_errors.Wrapf(err, "Scan %v", root)
	}

	result := &ScanResult{Root: root}
	for _, entry := range entries {
		if !entry.IsDir() || !sid_regex.MatchString(entry.Name()) {
			continue
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		user_dir := &UserDirectory{
			Sid:  entry.Name(),
			Path: entry.FullPath(),
		}

		candidates, err := accessor.ReadDir(user_dir.Path)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"path":  user_dir.Path,
				"error": err,
			}).Warn("Unable to list user directory, skipping")
			continue
		}

		for _, candidate := range candidates {
			if IsIndexFile(candidate.Name()) {
				user_dir.Candidates = append(
					user_dir.Candidates, candidate.FullPath())
			}
		}

		logger.Debug("Found %v candidates for %v",
			len(user_dir.Candidates), user_dir.Sid)

		result.Users = append(result.Users, user_dir)
	}

	return result, nil
}

// The root must exist and be a directory. Scan does this first, it
// is exported so callers can fail before creating any output.
func CheckRoot(accessor accessors.FileSystemAccessor, root string) error {
	stat, err := accessor.Stat(root)
	if err != nil {
		if utils.IsNotFound(err) {
			return pkg_errors.Wrap(ErrRootNotFound, root)
		}
		return pkg_errors.Wrapf(err, "Scan %v", root)
	}

	if !stat.IsDir() {
		return pkg_errors.Wrap(ErrRootNotADirectory, root)
	}
	return nil
}

// Only the name prefix matters, no size or extension checks.
func IsIndexFile(name string) bool {
	return strings.HasPrefix(name, constants.INDEX_FILE_PREFIX)
}
