package source

import "testing"

func TestLineCol_FirstLineFirstColumn(t *testing.T) {
	fe := New("a.go", "/abs/a.go", []byte("package main\nfunc f() {}\n"))
	line, col := fe.LineCol(0)
	if line != 1 || col != 1 {
		t.Fatalf("offset 0 = line %d col %d, want 1 1", line, col)
	}
}

func TestLineCol_SecondLine(t *testing.T) {
	fe := New("a.go", "/abs/a.go", []byte("package main\nfunc f() {}\n"))
	// "package main\n" is 13 bytes; offset 13 is the 'f' of "func".
	line, col := fe.LineCol(13)
	if line != 2 || col != 1 {
		t.Fatalf("offset 13 = line %d col %d, want 2 1", line, col)
	}
}

func TestLineIndex_CachedAcrossCalls(t *testing.T) {
	fe := New("a.go", "/abs/a.go", []byte("a\nb\nc\n"))
	first := fe.LineIndex()
	second := fe.LineIndex()
	if len(first) != len(second) {
		t.Fatalf("expected stable line index, got %v then %v", first, second)
	}
	want := []int{0, 2, 4, 6}
	for i, w := range want {
		if first[i] != w {
			t.Fatalf("lineIndex[%d] = %d, want %d", i, first[i], w)
		}
	}
}

func TestNew_DetectsLanguageFromExtension(t *testing.T) {
	fe := New("main.go", "/abs/main.go", []byte("package main\n"))
	if !fe.HasLanguage {
		t.Fatal("expected .go file to have a detected language")
	}

	unknown := New("README", "/abs/README", []byte("hello\n"))
	if unknown.HasLanguage {
		t.Fatal("expected a file with no recognized extension to have HasLanguage=false")
	}
}
