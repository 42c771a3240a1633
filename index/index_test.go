package index

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/recyclebin/accessors/file"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/scanner"
	"www.velocidex.com/golang/recyclebin/utils"
	"www.velocidex.com/golang/recyclebin/vtesting"
)

func makeScan(users map[string]int, order ...string) *scanner.ScanResult {
	result := &scanner.ScanResult{Root: "/bin"}
	for _, sid := range order {
		user := &scanner.UserDirectory{Sid: sid, Path: "/bin/" + sid}
		for i := 0; i < users[sid]; i++ {
			user.Candidates = append(user.Candidates,
				fmt.Sprintf("/bin/%s/$I%03d", sid, i))
		}
		result.Users = append(result.Users, user)
	}
	return result
}

// Fakes a parser: the outcome depends on the candidate index.
func fakeParse(delay bool) ParseFunc {
	return func(path string) (recyclebin.Result, error) {
		var i int
		_, err := fmt.Sscanf(filepath.Base(path), "$I%03d", &i)
		if err != nil {
			return nil, err
		}

		if delay {
			// Later files finish first.
			time.Sleep(time.Duration(20-i%20) * time.Millisecond)
		}

		switch i % 4 {
		case 1:
			return &recyclebin.InvalidVersion{IndexPath: path, Header: 2}, nil
		case 2:
			return &recyclebin.Truncated{IndexPath: path, Size: 10}, nil
		case 3:
			return nil, errors.New("Access is denied")
		}
		return &recyclebin.ValidRecord{IndexPath: path, FileSize: int64(i)}, nil
	}
}

func checkOrder(t *testing.T, idx *Index, scan *scanner.ScanResult) {
	for _, user := range scan.Users {
		results := idx.Results(user.Sid)

		// Every fourth file could not be read.
		expected := []string{}
		for i, candidate := range user.Candidates {
			if i%4 != 3 {
				expected = append(expected, candidate)
			}
		}

		paths := []string{}
		for _, r := range results {
			paths = append(paths, r.Path())
		}
		assert.Equal(t, expected, paths, user.Sid)
	}
}

func TestBuildSequential(t *testing.T) {
	scan := makeScan(map[string]int{
		"S-1-5-21-2222": 8,
		"S-1-5-21-1111": 3,
		"S-1-5-18":      0,
	}, "S-1-5-21-2222", "S-1-5-21-1111", "S-1-5-18")

	idx, err := Build(context.Background(), scan, fakeParse(false), Options{})
	require.NoError(t, err)

	// Users keep discovery order, not sorted order.
	assert.Equal(t, []string{"S-1-5-21-2222", "S-1-5-21-1111", "S-1-5-18"},
		idx.Users())
	assert.Empty(t, idx.Results("S-1-5-18"))
	assert.Nil(t, idx.Results("S-1-5-21-9999"))
	checkOrder(t, idx, scan)

	results := idx.Results("S-1-5-21-1111")
	require.Equal(t, 3, len(results))
	assert.IsType(t, &recyclebin.ValidRecord{}, results[0])
	assert.IsType(t, &recyclebin.InvalidVersion{}, results[1])
	assert.IsType(t, &recyclebin.Truncated{}, results[2])

	assert.Equal(t, 9, idx.Len())
	assert.Equal(t, Stats{
		Users:            3,
		Valid:            3,
		Invalid:          3,
		Truncated:        3,
		Skipped:          2,
		CompanionMissing: 3,
	}, idx.Stats())

	vtesting.MemoryLogsContain(t, "Unable to read index file, skipping")
}

func TestBuildConcurrentKeepsOrder(t *testing.T) {
	scan := makeScan(map[string]int{
		"S-1-5-21-1111": 40,
		"S-1-5-21-2222": 25,
	}, "S-1-5-21-1111", "S-1-5-21-2222")

	idx, err := Build(context.Background(), scan, fakeParse(true),
		Options{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, []string{"S-1-5-21-1111", "S-1-5-21-2222"}, idx.Users())
	checkOrder(t, idx, scan)

	sequential, err := Build(context.Background(), scan, fakeParse(false),
		Options{Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, sequential.Stats(), idx.Stats())
	assert.Equal(t, sequential.Len(), idx.Len())
}

func TestBuildCancelled(t *testing.T) {
	scan := makeScan(map[string]int{
		"S-1-5-21-1111": 5,
		"S-1-5-21-2222": 5,
	}, "S-1-5-21-1111", "S-1-5-21-2222")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	parse := func(path string) (recyclebin.Result, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return &recyclebin.ValidRecord{IndexPath: path}, nil
	}

	idx, err := Build(ctx, scan, parse, Options{})
	assert.ErrorIs(t, err, context.Canceled)

	// The record in flight completes, nothing after it starts.
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, len(idx.Results("S-1-5-21-1111")))
	assert.Empty(t, idx.Results("S-1-5-21-2222"))
}

// The scenario from a real triage: one user, one record at the epoch.
func TestEndToEnd(t *testing.T) {
	for _, with_companion := range []bool{false, true} {
		root := t.TempDir()
		vtesting.MakeRecycleBin(t, root, []vtesting.IndexFile{{
			Sid:  "S-1-5-21-1111",
			Name: "$I3K2L8F.docx",
			Data: vtesting.MakeIndexRecord(
				2048, time.Unix(0, 0), `C:\Users\alice\report.docx`),
			WithCompanion: with_companion,
		}})

		accessor := file.NewOSFileSystemAccessor()
		scan, err := scanner.Scan(context.Background(), accessor, root,
			scanner.Options{})
		require.NoError(t, err)

		parser := recyclebin.NewParser(accessor)
		idx, err := Build(context.Background(), scan, parser.ParseFile,
			Options{Workers: 2})
		require.NoError(t, err)

		require.Equal(t, []string{"S-1-5-21-1111"}, idx.Users())
		results := idx.Results("S-1-5-21-1111")
		require.Equal(t, 1, len(results))

		record, ok := results[0].(*recyclebin.ValidRecord)
		require.True(t, ok)
		assert.Equal(t, int64(2048), record.FileSize)
		assert.Equal(t, `C:\Users\alice\report.docx`, record.OriginalPath)
		assert.Equal(t, "1970-01-01 00:00:00 UTC",
			utils.FormatTime(record.DeletionTime))
		assert.Equal(t, with_companion, record.CompanionPresent)
		assert.Equal(t,
			filepath.Join(root, "S-1-5-21-1111", "$R3K2L8F.docx"),
			record.CompanionPath)
	}
}
