package pool_test

import (
	"fmt"

	"github.com/joshuapare/chunkpool/pool"
)

func Example() {
	c, err := pool.New(4, 16, nil)
	if err != nil {
		panic(err)
	}
	defer pool.Destroy(&c)

	var chunks [][]byte
	for range 5 {
		chunk, err := c.Allocate()
		if err != nil {
			panic(err)
		}
		chunks = append(chunks, chunk)
	}

	st := c.Stats()
	fmt.Println("pools:", st.Pools)
	fmt.Println("free in head:", st.PerPool[0].FreeChunks)
	fmt.Println("free in tail:", st.PerPool[1].FreeChunks)

	if err := c.Free(chunks[4]); err != nil {
		panic(err)
	}
	fmt.Println("free after release:", c.Stats().FreeChunks)
	// Output:
	// pools: 2
	// free in head: 0
	// free in tail: 3
	// free after release: 4
}

func ExampleChain_Clear() {
	c, _ := pool.New(8, 32, nil)
	defer pool.Destroy(&c)

	for range 12 {
		_, _ = c.Allocate()
	}
	c.Clear()

	st := c.Stats()
	fmt.Println(st.Pools, st.FreeChunks, st.TotalChunks)
	// Output: 2 16 16
}

func ExampleDestroy() {
	c, _ := pool.New(8, 32, nil)
	_ = pool.Destroy(&c)
	fmt.Println(c == nil)
	// Output: true
}

func ExampleAlloc() {
	type record struct {
		id    uint32
		score float64
	}

	records, _ := pool.NewFor[record](64, nil)
	defer pool.Destroy(&records)

	r, _ := pool.Alloc[record](records)
	r.id, r.score = 7, 0.5
	fmt.Println(r.id, r.score, records.Stats().UsedChunks)

	_ = pool.Release(records, r)
	fmt.Println(records.Stats().UsedChunks)
	// Output:
	// 7 0.5 1
	// 0
}
