package kvstore

import "sync"

// memoryDB is an ephemeral, map-backed Database, the "persistent" backend
// used in tests and for scratch State instances. Grounded on
// ethdb/memorydb/memorydb.go's Has/Get/Put/Delete/Batch shape.
type memoryDB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryDB returns a Database backed by an in-process map.
func NewMemoryDB() Database {
	return &memoryDB{data: make(map[string][]byte)}
}

func (db *memoryDB) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	v, ok := db.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (db *memoryDB) Has(key []byte) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.data[string(key)]
	return ok, nil
}

func (db *memoryDB) put(key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	db.data[string(key)] = v
}

func (db *memoryDB) del(key []byte) {
	delete(db.data, string(key))
}

func (db *memoryDB) Close() error { return nil }

func (db *memoryDB) NewBatch() Batch {
	return &memoryBatch{db: db}
}

type memoryOp struct {
	key   []byte
	value []byte // nil means delete
}

type memoryBatch struct {
	db  *memoryDB
	ops []memoryOp
}

func (b *memoryBatch) Put(key, value []byte) {
	b.ops = append(b.ops, memoryOp{key: append([]byte{}, key...), value: append([]byte{}, value...)})
}

func (b *memoryBatch) Delete(key []byte) {
	b.ops = append(b.ops, memoryOp{key: append([]byte{}, key...), value: nil})
}

func (b *memoryBatch) Write() error {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	for _, op := range b.ops {
		if op.value == nil {
			b.db.del(op.key)
		} else {
			b.db.put(op.key, op.value)
		}
	}
	return nil
}
