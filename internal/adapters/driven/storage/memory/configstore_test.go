package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("embedding.provider", "ollama"))
	val, ok := store.Get("embedding.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)

	require.NoError(t, store.Set("embedding.provider", "openai"))
	assert.Equal(t, "openai", store.GetString("embedding.provider"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("string", "value")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(43))
	_ = store.Set("float", 3.14)
	_ = store.Set("bool", true)

	assert.Equal(t, "value", store.GetString("string"))
	assert.Equal(t, "", store.GetString("int"))

	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 43, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("string"))

	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("string"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("key-"+string(rune('A'+id%26)), id)
		}(i)
		go func(id int) {
			defer wg.Done()
			_ = store.GetInt("key-" + string(rune('A'+id%26)))
		}(i)
	}
	wg.Wait()
}

func TestConfigStore_MultipleInstances(t *testing.T) {
	store1 := NewConfigStore()
	store2 := NewConfigStore()

	_ = store1.Set("key1", "value1")
	_, ok := store2.Get("key1")
	assert.False(t, ok)
}
