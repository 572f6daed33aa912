package model

import (
	"testing"
	"time"
)

// Тест: при слиянии побеждает более новая версия, теги и привязки объединяются
func TestMergeItems_NewerWinsUnionsMetadata(t *testing.T) {
	older := NewTextItem("hello", "TermApp", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	older.Tags = []string{"work", "shared"}
	older.AttachPinboard("board-a")

	newer := older
	newer.Timestamp = older.Timestamp.Add(time.Hour)
	newer.Tags = []string{"shared", "urgent"}
	newer.PinboardIDs = []string{"board-b"}

	merged := MergeItems(older, newer)

	if !merged.Timestamp.Equal(newer.Timestamp) {
		t.Fatalf("expected newer timestamp to win, got %v", merged.Timestamp)
	}
	wantTags := []string{"shared", "urgent", "work"}
	if len(merged.Tags) != len(wantTags) {
		t.Fatalf("tags union mismatch: %v", merged.Tags)
	}
	for i, tag := range wantTags {
		if merged.Tags[i] != tag {
			t.Fatalf("tags union mismatch at %d: %v", i, merged.Tags)
		}
	}
	if len(merged.PinboardIDs) != 2 {
		t.Fatalf("pinboard union mismatch: %v", merged.PinboardIDs)
	}
	if !merged.Pinned {
		t.Fatalf("merged item with pinboards must be pinned")
	}
}

// Тест: порядок аргументов не влияет на исход слияния
func TestMergeItems_Symmetric(t *testing.T) {
	a := NewTextItem("x", "", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	b := a
	b.Timestamp = a.Timestamp.Add(time.Minute)
	b.Tags = []string{"t"}

	m1 := MergeItems(a, b)
	m2 := MergeItems(b, a)
	if !m1.Timestamp.Equal(m2.Timestamp) || len(m1.Tags) != len(m2.Tags) {
		t.Fatalf("merge must be order-independent: %v vs %v", m1, m2)
	}
}

// Тест: инвариант Pinned поддерживается привязкой/отвязкой досок
func TestItem_PinnedInvariant(t *testing.T) {
	it := NewTextItem("note", "", time.Now())
	if it.Pinned {
		t.Fatalf("fresh item must not be pinned")
	}
	it.AttachPinboard("b1")
	it.AttachPinboard("b1") // повтор не создаёт дубль
	it.AttachPinboard("b2")
	if !it.Pinned || len(it.PinboardIDs) != 2 {
		t.Fatalf("expected 2 pinboards and pinned, got %v pinned=%v", it.PinboardIDs, it.Pinned)
	}
	it.DetachPinboard("b1")
	if !it.Pinned {
		t.Fatalf("item still on a board must remain pinned")
	}
	it.DetachPinboard("b2")
	if it.Pinned || len(it.PinboardIDs) != 0 {
		t.Fatalf("item off all boards must be unpinned, got %v", it.PinboardIDs)
	}
}

// Тест: превью укорачивается, содержимое остаётся полным
func TestMakePreview_Limit(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	it := NewTextItem(string(long), "", time.Now())
	if len(it.Preview) != 200 {
		t.Fatalf("preview length = %d, want 200", len(it.Preview))
	}
	if len(it.RawContent()) != 500 {
		t.Fatalf("raw content must not be truncated")
	}
}
