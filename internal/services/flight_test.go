package services

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gaborvas/wordtrainer/internal/models"
)

func TestFlightTableSingleEntry(t *testing.T) {
	flights := NewFlightTable()

	if !flights.TryEnter(1, models.KindRandom) {
		t.Fatal("first TryEnter should succeed")
	}
	if flights.TryEnter(1, models.KindRandom) {
		t.Fatal("second TryEnter for the same key should fail")
	}

	// Different kind and different user are independent keys.
	if !flights.TryEnter(1, models.KindSmart) {
		t.Error("different kind should not be blocked")
	}
	if !flights.TryEnter(2, models.KindRandom) {
		t.Error("different user should not be blocked")
	}

	flights.Exit(1, models.KindRandom)
	if !flights.TryEnter(1, models.KindRandom) {
		t.Fatal("TryEnter should succeed again after Exit")
	}
}

func TestFlightTableConcurrent(t *testing.T) {
	flights := NewFlightTable()

	const goroutines = 50
	var won int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if flights.TryEnter(7, models.KindSmart) {
				atomic.AddInt32(&won, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if won != 1 {
		t.Fatalf("exactly one concurrent TryEnter should win, got %d", won)
	}
}

func TestFlightTableExitUnknownKey(t *testing.T) {
	flights := NewFlightTable()
	// Must not panic or corrupt state.
	flights.Exit(99, models.KindRandom)
	if flights.InFlight(99, models.KindRandom) {
		t.Fatal("key should not be in flight")
	}
}
