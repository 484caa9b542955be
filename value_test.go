package phpserial

import "testing"

func TestIsIndexedArray(t *testing.T) {
	indexed := PhpValue{
		Kind: KindArray,
		Pairs: []KV{
			{Key: intVal(0), Value: strVal("a")},
			{Key: intVal(1), Value: strVal("b")},
		},
	}
	if !indexed.IsIndexedArray() {
		t.Errorf("expected contiguous 0..n-1 keys to be indexed")
	}

	gappy := PhpValue{
		Kind: KindArray,
		Pairs: []KV{
			{Key: intVal(0), Value: strVal("a")},
			{Key: intVal(5), Value: strVal("b")},
		},
	}
	if gappy.IsIndexedArray() {
		t.Errorf("expected non-contiguous keys to be rejected")
	}

	stringKeyed := PhpValue{
		Kind:  KindArray,
		Pairs: []KV{{Key: strVal("a"), Value: intVal(1)}},
	}
	if stringKeyed.IsIndexedArray() {
		t.Errorf("expected string-keyed array to be rejected")
	}
}

func TestRefTableAllocation(t *testing.T) {
	var t1 RefTable
	if got := t1.Allocate(KindInt); got != 1 {
		t.Errorf("expected first slot 1, got %d", got)
	}
	if got := t1.Allocate(KindString); got != 2 {
		t.Errorf("expected second slot 2, got %d", got)
	}
	if t1.Len() != 2 {
		t.Errorf("expected length 2, got %d", t1.Len())
	}
}
