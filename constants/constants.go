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
package constants

var (
	VERSION = "0.4.0"
	NAME    = "recyclebin"
)

const (
	// Per-user recycle bin directories are named after the user's SID.
	SID_DIRECTORY_REGEX = `^S-1-5`

	// Index records hold the metadata, data files hold the content.
	INDEX_FILE_PREFIX = "$I"
	DATA_FILE_PREFIX  = "$R"

	// Formats understood by the reporting package.
	FORMAT_TEXT  = "text"
	FORMAT_CSV   = "csv"
	FORMAT_JSONL = "jsonl"
	FORMAT_JSON  = "json"
	FORMAT_TABLE = "table"

	DEFAULT_ENCODING = "utf-8"
	DEFAULT_ACCESSOR = "file"

	// Deletion times are always rendered in UTC.
	TIME_FORMAT = "2006-01-02 15:04:05 UTC"
)
