// Package xmemo 提供带 TTL 与容量上限的进程内记忆化缓存，
// 以及把缓存值落到内容寻址磁盘存储上的 DiskCache。
//
// # 淘汰策略
//
// 两种策略叠加生效：
//   - TTL：条目自最后一次访问起超过 TTL 即视为过期。过期是惰性的，
//     只在 Get、淘汰扫描或显式 Sweep 时被发现，没有后台定时器。
//   - 容量：Save 插入新条目后条目数超过 MaxSize 时触发一次淘汰，
//     丢弃过期条目，再按最后访问时间保留最新的 MaxSize 个。
//
// # 值钩子
//
// [Hooks] 决定值如何存取：Fake 在写入索引前转换值，Real 在读取时还原，
// Clean 在条目被回收时释放外部资源。[Identity] 原样存放值；
// [DiskHooks] 把值写入 [BlobStore]，索引中只保存摘要。
//
// # 错误
//
// 钩子错误会返回给调用方：Fake 失败返回 [ErrFakeValue]，Real 失败返回
// [ErrRealValue]，Clean 失败返回 [ErrCleanValue]。Clean 失败时条目已被移出
// 索引，Save 的新值也已写入，错误同时计入 Stats.CleanErrors。
//
// # 并发
//
// 所有方法并发安全，但 Save/Get 的“查找后修改”不是原子的：
// 同一 key 的并发未命中可能重复计算，后写入者覆盖先写入者。
// Caching 不提供 singleflight。淘汰扫描由独立的互斥锁串行化。
// 包内不启动任何 goroutine。
//
// # 基本用法
//
//	cache, err := xmemo.NewMemory[int](xmemo.Config{MaxSize: 3, TTL: 5 * time.Second})
//	if err != nil {
//	    return err
//	}
//	square := cache.Caching(func(args ...any) (int, error) {
//	    n := args[0].(int)
//	    return n * n, nil
//	})
//	v, err := square(4) // 计算并缓存
//	v, err = square(4)  // 命中缓存
//
// 磁盘版本：
//
//	store, _ := xcas.New("./caches")
//	defer store.Close()
//	disk, _ := xmemo.NewDisk(xmemo.DefaultConfig(), store)
//	render := disk.Caching(func(args ...any) (any, error) {
//	    return fmt.Sprintf("page %v", args[0]), nil
//	})
//	data, err := render(1) // data 为 []byte
package xmemo
