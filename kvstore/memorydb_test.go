package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDBGetPutHas(t *testing.T) {
	db := NewMemoryDB()
	_, err := db.Get([]byte("missing"))
	assert.Equal(t, ErrNotFound, err, "Get on a missing key should return ErrNotFound")
	has, _ := db.Has([]byte("missing"))
	assert.False(t, has, "Has(missing) should be false")

	batch := db.NewBatch()
	batch.Put([]byte("k"), []byte("v1"))
	assert.NoError(t, batch.Write())

	has, _ = db.Has([]byte("k"))
	assert.True(t, has, "Has(k) should be true after Put")
	got, err := db.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestMemoryDBBatchDelete(t *testing.T) {
	db := NewMemoryDB()
	b1 := db.NewBatch()
	b1.Put([]byte("a"), []byte("1"))
	b1.Put([]byte("b"), []byte("2"))
	assert.NoError(t, b1.Write())

	b2 := db.NewBatch()
	b2.Delete([]byte("a"))
	assert.NoError(t, b2.Write())

	_, err := db.Get([]byte("a"))
	assert.Equal(t, ErrNotFound, err, "Get(a) after Delete should return ErrNotFound")
	got, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, "2", string(got))
}

func TestMemoryDBGetReturnsCopy(t *testing.T) {
	db := NewMemoryDB()
	b := db.NewBatch()
	b.Put([]byte("k"), []byte("v1"))
	b.Write()

	got, _ := db.Get([]byte("k"))
	got[0] = 'X'
	got2, _ := db.Get([]byte("k"))
	assert.Equal(t, "v1", string(got2), "mutating a Get result must not affect the stored value")
}

func TestNamespace(t *testing.T) {
	got := Namespace([]byte("account_info"), []byte("addr"))
	assert.Equal(t, "account_info:addr", string(got))
}
