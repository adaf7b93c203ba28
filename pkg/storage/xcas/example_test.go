package xcas_test

import (
	"fmt"
	"os"

	"github.com/omeyang/xmemo/pkg/storage/xcas"
)

func Example() {
	root, err := os.MkdirTemp("", "xcas-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(root)

	store, err := xcas.New(root)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	digest, _ := store.Put(xcas.EnsureBytes(42))
	data, ok, _ := store.Get(digest)
	fmt.Println(digest[:12], string(data), ok)

	_ = store.Delete(digest)
	_, ok, _ = store.Get(digest)
	fmt.Println(ok)

	// Output:
	// 73475cb40a56 42 true
	// false
}
