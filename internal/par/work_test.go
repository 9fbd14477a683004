package par

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWork(t *testing.T) {
	var w Work[int]

	const N = 10000
	n := int32(0)
	w.Add(N)
	w.Do(100, func(x int) {
		atomic.AddInt32(&n, 1)
		if x >= 2 {
			w.Add(x - 1)
			w.Add(x - 2)
		}
		w.Add(x >> 1)
		w.Add((x >> 1) ^ 1)
	})
	if n != N+1 {
		t.Fatalf("ran %d items, expected %d", n, N+1)
	}
}

func TestWorkParallel(t *testing.T) {
	for tries := 0; tries < 10; tries++ {
		var w Work[int]
		const N = 100
		for i := 0; i < N; i++ {
			w.Add(i)
		}
		start := time.Now()
		var n int32
		w.Do(N, func(x int) {
			time.Sleep(1 * time.Millisecond)
			atomic.AddInt32(&n, +1)
		})
		if n != N {
			t.Fatalf("par.Work.Do did not do all the work")
		}
		if time.Since(start) < N/2*time.Millisecond {
			return
		}
	}
	t.Fatalf("par.Work.Do does not seem to be parallel")
}

func TestMap(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	var running, peak int32
	out, err := Map(in, 3, func(x int) (int, error) {
		cur := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
		return x * x, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range in {
		if out[i] != x*x {
			t.Errorf("out[%d] = %d, want %d", i, out[i], x*x)
		}
	}
	if peak > 3 {
		t.Errorf("peak concurrency %d exceeds limit 3", peak)
	}
}

func TestMapErrors(t *testing.T) {
	errOdd := errors.New("odd")
	_, err := Map([]int{1, 2, 3}, 2, func(x int) (int, error) {
		if x%2 == 1 {
			return 0, errOdd
		}
		return x, nil
	})
	if !errors.Is(err, errOdd) {
		t.Fatalf("Map error = %v, want %v", err, errOdd)
	}

	out, err := Map[int, int](nil, 4, func(int) (int, error) { return 0, errOdd })
	if err != nil || len(out) != 0 {
		t.Fatalf("Map(nil) = %v, %v", out, err)
	}
}
