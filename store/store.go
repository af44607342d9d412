// Package store 提供 core.Store / core.HashStore 的实现：内存（测试、单机）与 Redis（共享目录快照）。
//
// 接口定义在 core 包：
//
//	var s core.HashStore = store.NewMemoryStore()
//	var r core.HashStore, _ = store.NewRedisStore(store.RedisConfig{Addr: "localhost:6379"})
package store
