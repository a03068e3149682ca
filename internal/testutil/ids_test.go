package testutil

import (
	"sync"
	"testing"
)

func TestSequentialIDs_Order(t *testing.T) {
	g := NewSequentialIDs("rec")

	for i, want := range []string{"rec-1", "rec-2", "rec-3"} {
		if got := g.Generate(); got != want {
			t.Errorf("Generate() #%d = %q, want %q", i, got, want)
		}
	}
	if got := g.Issued(); got != 3 {
		t.Errorf("Issued() = %d, want 3", got)
	}
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	g := NewSequentialIDs("")
	if got := g.Generate(); got != "id-1" {
		t.Errorf("Generate() = %q, want %q", got, "id-1")
	}
}

func TestSequentialIDs_Reset(t *testing.T) {
	g := NewSequentialIDs("x")
	g.Generate()
	g.Generate()
	g.Reset()

	if got := g.Generate(); got != "x-1" {
		t.Errorf("after Reset, Generate() = %q, want %q", got, "x-1")
	}
}

func TestSequentialIDs_Concurrent(t *testing.T) {
	g := NewSequentialIDs("c")

	const goroutines = 50
	seen := make(chan string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- g.Generate()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]bool)
	for id := range seen {
		if unique[id] {
			t.Fatalf("duplicate id %q", id)
		}
		unique[id] = true
	}
	if len(unique) != goroutines {
		t.Errorf("got %d unique ids, want %d", len(unique), goroutines)
	}
}
