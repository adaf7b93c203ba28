package xmemo_test

import (
	"fmt"
	"os"
	"time"

	"github.com/omeyang/xmemo/pkg/storage/xcas"
	"github.com/omeyang/xmemo/pkg/storage/xmemo"
	"github.com/omeyang/xmemo/pkg/util/xkey"
)

func ExampleCache_Caching() {
	cache, err := xmemo.NewMemory[int](xmemo.Config{MaxSize: 3, TTL: 5 * time.Second})
	if err != nil {
		panic(err)
	}

	square := cache.Caching(func(args ...any) (int, error) {
		n := args[0].(int)
		fmt.Println("computing", n)
		return n * n, nil
	})

	v, _ := square(4)
	fmt.Println(v)
	v, _ = square(4)
	fmt.Println(v)

	// Output:
	// computing 4
	// 16
	// 16
}

func ExampleMemoize() {
	cache, err := xmemo.NewMemory[string](xmemo.DefaultConfig())
	if err != nil {
		panic(err)
	}

	greet := xmemo.Memoize(cache, func(name string) (string, error) {
		return "hello " + name, nil
	})
	v, _ := greet("gopher")
	fmt.Println(v, cache.Len())

	// Output:
	// hello gopher 1
}

func ExampleCache_Save() {
	cache, err := xmemo.NewMemory[string](xmemo.DefaultConfig())
	if err != nil {
		panic(err)
	}

	_, _, _ = cache.Save("v1", "user", xkey.Named{"id": 1})
	prev, replaced, _ := cache.Save("v2", "user", xkey.Named{"id": 1})
	fmt.Println(prev, replaced)

	v, ok, _ := cache.Get("user", xkey.Named{"id": 1})
	fmt.Println(v, ok)

	// Output:
	// v1 true
	// v2 true
}

func ExampleNewDisk() {
	root, err := os.MkdirTemp("", "xmemo-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(root)

	store, err := xcas.New(root)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	disk, err := xmemo.NewDisk(xmemo.Config{MaxSize: 3, TTL: time.Hour}, store)
	if err != nil {
		panic(err)
	}

	render := disk.Caching(func(args ...any) (any, error) {
		return fmt.Sprintf("page %v", args[0]), nil
	})
	for i := range 10 {
		_, _ = render(i)
	}

	entries, _ := store.List()
	data, ok, _ := disk.Get(9)
	fmt.Println(disk.Engine().Len(), len(entries), string(data), ok)

	// Output:
	// 3 3 page 9 true
}
