package xkey_test

import (
	"fmt"

	"github.com/omeyang/xmemo/pkg/util/xkey"
)

func ExampleDerive() {
	fmt.Println(xkey.Derive(1, "a", xkey.Named{"b": 2, "a": 1}))
	fmt.Println(xkey.Derive(xkey.Named{"a": 1, "b": 2}, 1, "a") == xkey.Derive(1, "a", xkey.Named{"b": 2, "a": 1}))

	// Output:
	// (1, a) {a=1, b=2}
	// true
}
