package litespeed

// Store is the capability set a generic caller can program against without
// depending on the history and duration features of DB.
type Store interface {
	Put(key string, value []byte) error
	Erase(key string) error
	Get(key string) ([]byte, bool)
	Recover() error
	Snapshot() error
}

var _ Store = (*DB)(nil)

// Put stores value under key with a zero duration.
func (db *DB) Put(key string, value []byte) error {
	return db.engine.Set(key, value, 0)
}

// Erase removes key. Erasing a missing key is not an error.
func (db *DB) Erase(key string) error {
	_, err := db.engine.Remove(key)
	return err
}

// Recover rebuilds the index from the log. A truncated tail is not an error.
func (db *DB) Recover() error {
	_, err := db.engine.Recover()
	return err
}

// Snapshot is not supported yet and always returns ErrSnapshotUnsupported.
func (db *DB) Snapshot() error {
	return ErrSnapshotUnsupported
}
