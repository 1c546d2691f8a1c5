// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dynv_test

import (
	"fmt"

	"code.hybscloud.com/dynv"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

func ExampleNew() {
	v := dynv.New[shape](&rect{w: 3, h: 4})
	fmt.Println(v.Get().name(), v.Get().area())
	// Output: rect 12
}

func ExampleEmplace() {
	// An 8-byte pointer-free payload fits a 16-byte capacity inline.
	v := dynv.Emplace[shape](circle{r: 2}, dynv.WithCapacity(16))
	fmt.Println(v.Local(), v.Get().name())
	// Output: true circle
}

func ExampleMove() {
	src := dynv.Emplace[shape](rect{w: 2, h: 5})
	dst := dynv.Move[shape](src)
	fmt.Println(dst.Get().area(), src.Moved())
	// Output: 10 true
}

func ExampleNewFunc() {
	double := dynv.NewFunc(func(x int) int { return x * 2 })
	fmt.Println(double.Call(21))

	other := dynv.NewFunc(func(x int) int { return x })
	other.MoveFrom(double)
	fmt.Println(other.Call(21))
	// Output:
	// 42
	// 42
}

// Example_ownershipHandoff transfers containers between goroutines by
// ownership handoff through an SPSC queue: the producer enqueues each
// container and never touches it again, so no synchronization of the
// payload itself is needed.
func Example_ownershipHandoff() {
	q := lfq.NewSPSC[*dynv.Value[shape]](4)
	done := make(chan float64)

	go func() {
		backoff := iox.Backoff{}
		var total float64
		for n := 0; n < 2; {
			v, err := q.Dequeue()
			if err != nil {
				backoff.Wait()
				continue
			}
			backoff.Reset()
			total += v.Get().area()
			n++
		}
		done <- total
	}()

	for _, s := range []*dynv.Value[shape]{
		dynv.Emplace[shape](rect{w: 4, h: 5}),
		dynv.Emplace[shape](rect{w: 2, h: 4}),
	} {
		for q.Enqueue(&s) != nil {
		}
	}

	fmt.Println(<-done)
	// Output: 28
}
