package usecases

// DefaultYearSeconds is one registration year in seconds.
const DefaultYearSeconds int64 = 31536000

// MinStandardNameLength is the minimum name length (in code points) on the
// standard paid path. The contract owner may register shorter names through
// the pass path.
const MinStandardNameLength = 3
