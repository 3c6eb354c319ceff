// Package store 提供 core.Store 的具体实现，用于持久化离线产物（目录、编码器、特征矩阵）。
//
//	var s core.Store = store.NewMemoryStore()
//	fs, err := store.NewFileStore("./artifacts")
package store
