package batch

import (
	"reflect"
	"testing"
)

func countingCursor(batches [][]int) *Cursor[int] {
	return NewCursor(func() func() ([]int, bool) {
		i := 0
		return func() ([]int, bool) {
			if i >= len(batches) {
				return nil, false
			}
			out := batches[i]
			i++
			return out, true
		}
	})
}

func TestFromSlice(t *testing.T) {
	cur := FromSlice([]int{1, 2, 3})
	rows, ok := cur.Next()
	if !ok || !reflect.DeepEqual(rows, []int{1, 2, 3}) {
		t.Fatalf("unexpected first batch: %v %v", rows, ok)
	}
	if _, ok := cur.Next(); ok {
		t.Fatal("expected exhaustion after single batch")
	}
}

func TestFromSliceEmpty(t *testing.T) {
	if _, ok := FromSlice([]int(nil)).Next(); ok {
		t.Fatal("empty slice cursor yielded a batch")
	}
}

func TestResetReplays(t *testing.T) {
	cur := countingCursor([][]int{{1}, {2}, {3}})
	first := Drain(cur)
	second := Drain(cur)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("replay diverged: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(first, []int{1, 2, 3}) {
		t.Fatalf("unexpected rows: %v", first)
	}
}

func TestConcat(t *testing.T) {
	a := countingCursor([][]int{{1, 2}})
	b := countingCursor([][]int{{3}, {4}})
	got := Drain(Concat(a, b))
	if !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Fatalf("unexpected concat result: %v", got)
	}

	// Draining again replays both sides.
	got = Drain(Concat(a, b))
	if !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Fatalf("concat replay diverged: %v", got)
	}
}

func TestConcatWithEmptySide(t *testing.T) {
	got := Drain(Concat(FromSlice([]int(nil)), FromSlice([]int{7})))
	if !reflect.DeepEqual(got, []int{7}) {
		t.Fatalf("unexpected rows: %v", got)
	}
}
