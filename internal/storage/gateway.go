package storage

// Gateway is the persistence medium the store reads and writes through.
// The whole item collection lives under a single key as one JSON value;
// Set stores the full value or fails, never a partial write.
type Gateway interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
