package history

import (
	"cmp"
	"encoding/json"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"
	"weak"

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/falling"
	"github.com/vovakirdan/tui-drmario/internal/games/drmario/pill"
)

// checksumState fixes the field order hashed by ComputeChecksum.
type checksumState struct {
	FallingPills []fallingJSON `json:"fallingPills"`
	LockedPills  []pillJSON    `json:"lockedPills"`
	Seed         int64         `json:"seed"`
	MinY         int           `json:"minY"`
	FallSpeed    int           `json:"fallSpeed"`
	Frame        int           `json:"frame"`
}

func comparePills(a, b pill.Pill) int {
	return cmp.Or(
		cmp.Compare(a.X, b.X),
		cmp.Compare(a.Y, b.Y),
		cmp.Compare(a.Rotation, b.Rotation),
		strings.Compare(string(a.Colors[0]), string(b.Colors[0])),
	)
}

// canonical serializes the state with both pill lists sorted by
// position, rotation and first color.
func canonical(s GameState) []byte {
	fallingSorted := slices.Clone(s.Falling)
	slices.SortStableFunc(fallingSorted, func(a, b falling.Pill) int {
		return comparePills(a.Pill, b.Pill)
	})
	lockedSorted := slices.Clone(s.Locked)
	slices.SortStableFunc(lockedSorted, comparePills)

	out, err := json.Marshal(checksumState{
		FallingPills: toFallingJSON(fallingSorted),
		LockedPills:  toPillJSON(lockedSorted),
		Seed:         s.Seed,
		MinY:         s.MinY,
		FallSpeed:    s.FallSpeed,
		Frame:        s.Frame,
	})
	if err != nil {
		// Only plain ints, strings and fixed arrays are marshaled.
		panic(err)
	}
	return out
}

// djb2 hashes UTF-16 code units with 32-bit wrapping and returns the
// magnitude of the signed result in lower-case hex.
func djb2(s string) string {
	var h int32 = 5381
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) + h + int32(c)
	}
	mag := int64(h)
	if mag < 0 {
		mag = -mag
	}
	return strconv.FormatInt(mag, 16)
}

// ComputeChecksum hashes the canonical form of the state. Pill order
// does not affect the result; every other field does.
func ComputeChecksum(s GameState) string {
	return djb2(string(canonical(s)))
}

// ChecksumCache memoizes checksums by state identity. A different
// pointer to an equal state is hashed again. Entries disappear once the
// state is garbage collected.
type ChecksumCache struct {
	mu      sync.Mutex
	entries map[weak.Pointer[GameState]]string
}

// NewChecksumCache creates an empty cache.
func NewChecksumCache() *ChecksumCache {
	return &ChecksumCache{entries: make(map[weak.Pointer[GameState]]string)}
}

// Checksum returns the cached checksum for s, computing it on first use.
// A state must not be mutated after it has been hashed through a cache.
func (c *ChecksumCache) Checksum(s *GameState) string {
	key := weak.Make(s)

	c.mu.Lock()
	if sum, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return sum
	}
	c.mu.Unlock()

	sum := ComputeChecksum(*s)

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = sum
		runtime.AddCleanup(s, c.evict, key)
	}
	c.mu.Unlock()
	return sum
}

// Len returns the number of cached entries.
func (c *ChecksumCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ChecksumCache) evict(key weak.Pointer[GameState]) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

var defaultCache = NewChecksumCache()

// Checksum is ComputeChecksum memoized by the identity of s.
func Checksum(s *GameState) string {
	return defaultCache.Checksum(s)
}
