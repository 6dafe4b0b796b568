package container

import (
	"sync"
	"sync/atomic"
)

type RCUMapElement[Key comparable, Val any] struct {
	Key   Key
	Value Val
}

// RCUMap 这个Map的实现只适合少量key-value, 或者几乎无写的场景
// 编译好的thunk以读为主, 写入只在第一次绑定时发生
type RCUMap[Key comparable, Val any] struct {
	mu      sync.Mutex // 串行写入操作, 读取操作不需要上锁
	pointer atomic.Pointer[map[Key]Val]
}

func NewRCUMap[K comparable, V any]() *RCUMap[K, V] {
	m := new(RCUMap[K, V])
	tmp := make(map[K]V, 64)
	m.pointer.Store(&tmp)
	return m
}

func (R *RCUMap[Key, Val]) LoadOk(key Key) (Val, bool) {
	snapshot := R.pointer.Load()
	val, ok := (*snapshot)[key]
	return val, ok
}

func (R *RCUMap[Key, Val]) Range(fn func(key Key, val Val) bool) {
	snapshot := R.pointer.Load()
	for k, v := range *snapshot {
		if !fn(k, v) {
			break
		}
	}
}

func (R *RCUMap[Key, Val]) Store(key Key, val Val) {
	R.StoreMulti([]RCUMapElement[Key, Val]{{Key: key, Value: val}})
}

func (R *RCUMap[Key, Val]) StoreMulti(kvs []RCUMapElement[Key, Val]) {
	if len(kvs) == 0 {
		return
	}
	R.mu.Lock()
	defer R.mu.Unlock()
	copyMap := R.copy()
	for _, kv := range kvs {
		copyMap[kv.Key] = kv.Value
	}
	R.pointer.Store(&copyMap)
}

func (R *RCUMap[Key, Val]) Len() int {
	return len(*R.pointer.Load())
}

func (R *RCUMap[Key, Val]) copy() map[Key]Val {
	snapshot := *R.pointer.Load()
	copyMap := make(map[Key]Val, len(snapshot))
	for k, v := range snapshot {
		copyMap[k] = v
	}
	return copyMap
}
