package utils

import "time"

const (
	// Number of 100ns intervals between 1601-01-01 and 1970-01-01
	FILETIME_EPOCH_OFFSET uint64 = 116444736000000000

	FILETIME_TICKS_PER_SECOND uint64 = 10000000
)

// Combine the two halves of a Windows FILETIME into the number of
// 100ns intervals since 1601-01-01 UTC.
func FiletimeTicks(low, high uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}

// Convert a split FILETIME to whole seconds since the Unix
// epoch. Division truncates toward zero so times before 1970 round
// up to the next second. This never fails: garbage input simply
// produces an implausible date.
func FiletimeToUnix(low, high uint32) int64 {
	ticks := FiletimeTicks(low, high)
	if ticks >= FILETIME_EPOCH_OFFSET {
		return int64((ticks - FILETIME_EPOCH_OFFSET) / FILETIME_TICKS_PER_SECOND)
	}

	return -int64((FILETIME_EPOCH_OFFSET - ticks) / FILETIME_TICKS_PER_SECOND)
}

func FiletimeToTime(low, high uint32) time.Time {
	return time.Unix(FiletimeToUnix(low, high), 0).UTC()
}

// The inverse of FiletimeToTime, used to build test records.
func TimeToFiletime(t time.Time) (low, high uint32) {
	ticks := uint64(t.Unix())*FILETIME_TICKS_PER_SECOND + FILETIME_EPOCH_OFFSET
	return uint32(ticks), uint32(ticks >> 32)
}
