package cache

import "testing"

func TestMemo_GetPut(t *testing.T) {
	m := NewMemo[string]()

	if _, ok := m.Get("2024-01"); ok {
		t.Fatal("empty cache should miss")
	}

	m.Put("2024-01", "january")
	v, ok := m.Get("2024-01")
	if !ok || v != "january" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	// overwrite is allowed
	m.Put("2024-01", "revised")
	v, _ = m.Get("2024-01")
	if v != "revised" {
		t.Errorf("Get after overwrite = %q", v)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1 after overwrite", m.Len())
	}
}

func TestMemo_Clear(t *testing.T) {
	m := NewMemo[int]()
	m.Put("a", 1)
	m.Put("b", 2)

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Len = %d after Clear", m.Len())
	}
	if _, ok := m.Get("a"); ok {
		t.Error("cleared cache should miss")
	}

	// usable after Clear
	m.Put("c", 3)
	if v, ok := m.Get("c"); !ok || v != 3 {
		t.Errorf("Get after Clear = %d, %v", v, ok)
	}
}
