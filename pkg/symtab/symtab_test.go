package symtab

import "testing"

func TestInsertNewSymbol(t *testing.T) {
	tab := New()
	if !tab.Insert("FOO", 100, Code) {
		t.Fatal("Insert() = false; want true for a new symbol")
	}
	sym, ok := tab.Lookup("FOO")
	if !ok || sym.Address != 100 || sym.Flags != Code {
		t.Errorf("Lookup() = %+v, %v; want {FOO 100 Code}, true", sym, ok)
	}
}

func TestInsertCodeAndDataConflict(t *testing.T) {
	tab := New()
	tab.Insert("FOO", 100, Code)
	if tab.Insert("FOO", 100, Data) {
		t.Error("Insert() = true; want false, Code and Data are mutually exclusive")
	}
}

func TestInsertExternConflictsWithCode(t *testing.T) {
	tab := New()
	tab.Insert("FOO", 100, Code)
	if tab.Insert("FOO", 0, Extern) {
		t.Error("Insert() = true; want false, Extern conflicts with Code")
	}
}

func TestInsertEntryTwiceFails(t *testing.T) {
	tab := New()
	tab.Insert("FOO", 0, Entry)
	if tab.Insert("FOO", 0, Entry) {
		t.Error("Insert() = true; want false, Entry may not be asserted twice")
	}
}

func TestInsertEntryThenExternConflict(t *testing.T) {
	tab := New()
	tab.Insert("FOO", 0, Entry)
	if tab.Insert("FOO", 0, Extern) {
		t.Error("Insert() = true; want false, Entry and Extern are mutually exclusive")
	}
}

func TestInsertEntryForwardReferenceThenDefinition(t *testing.T) {
	tab := New()
	if !tab.Insert("MAIN", 0, Entry) {
		t.Fatal("Insert() = false for forward .entry declaration")
	}
	if !tab.Insert("MAIN", 100, Code) {
		t.Fatal("Insert() = false merging the later Code definition")
	}
	sym, _ := tab.Lookup("MAIN")
	if sym.Address != 100 || sym.Flags != Code|Entry {
		t.Errorf("Lookup() = %+v; want address 100, flags Code|Entry", sym)
	}
}

func TestBumpDataAddresses(t *testing.T) {
	tab := New()
	tab.Insert("A", 100, Data)
	tab.Insert("B", 100, Code)
	tab.BumpDataAddresses(5)

	a, _ := tab.Lookup("A")
	if a.Address != 105 {
		t.Errorf("A.Address = %d; want 105", a.Address)
	}
	b, _ := tab.Lookup("B")
	if b.Address != 100 {
		t.Errorf("B.Address = %d; want unchanged 100", b.Address)
	}
}

func TestIterVisitsEverySymbolOnce(t *testing.T) {
	tab := New()
	tab.Insert("A", 1, Code)
	tab.Insert("B", 2, Data)
	seen := map[string]int{}
	tab.Iter(func(s *Symbol) { seen[s.Name]++ })
	if len(seen) != 2 || seen["A"] != 1 || seen["B"] != 1 {
		t.Errorf("Iter() visited = %v; want each symbol exactly once", seen)
	}
}
