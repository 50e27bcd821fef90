package client

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type fakeSuggestionAPI struct {
	mu        sync.Mutex
	responses map[string][]string
	err       error
	started   map[string]chan struct{} // closed when a request for the keyword begins
	block     map[string]chan struct{} // optional gate per keyword
}

func (f *fakeSuggestionAPI) Suggestions(ctx context.Context, keyword string) ([]string, error) {
	f.mu.Lock()
	started := f.started[keyword]
	gate := f.block[keyword]
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[keyword], nil
}

func TestSuggester_Fetch(t *testing.T) {
	t.Run("returns fresh suggestions", func(t *testing.T) {
		api := &fakeSuggestionAPI{responses: map[string][]string{
			"tay": {"Taylor Swift", "Taylor Tomlinson"},
		}}
		suggester := NewSuggester(api)

		got, err := suggester.Fetch(context.Background(), "tay")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"Taylor Swift", "Taylor Tomlinson"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if !reflect.DeepEqual(suggester.Current(), want) {
			t.Errorf("expected Current to match fetch result")
		}
	})

	t.Run("error clears suggestions", func(t *testing.T) {
		api := &fakeSuggestionAPI{err: errors.New("backend down")}
		suggester := NewSuggester(api)

		if _, err := suggester.Fetch(context.Background(), "x"); err == nil {
			t.Fatal("expected error")
		}
		if suggester.Current() != nil {
			t.Error("expected no suggestions after an error")
		}
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		slowGate := make(chan struct{})
		slowStarted := make(chan struct{})
		api := &fakeSuggestionAPI{
			responses: map[string][]string{
				"t":  {"The Weeknd"},
				"ta": {"Taylor Swift"},
			},
			started: map[string]chan struct{}{"t": slowStarted},
			block:   map[string]chan struct{}{"t": slowGate},
		}
		suggester := NewSuggester(api)

		var wg sync.WaitGroup
		wg.Add(1)
		slowResult := make(chan []string, 1)
		go func() {
			defer wg.Done()
			got, _ := suggester.Fetch(context.Background(), "t")
			slowResult <- got
		}()
		<-slowStarted

		// the newer keystroke completes first
		fresh, err := suggester.Fetch(context.Background(), "ta")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(slowGate)
		wg.Wait()

		want := []string{"Taylor Swift"}
		if !reflect.DeepEqual(fresh, want) {
			t.Errorf("expected %v, got %v", want, fresh)
		}
		if got := <-slowResult; !reflect.DeepEqual(got, want) {
			t.Errorf("expected stale fetch to yield the fresh list, got %v", got)
		}
		if !reflect.DeepEqual(suggester.Current(), want) {
			t.Errorf("expected the newer response to win, got %v", suggester.Current())
		}
	})

	t.Run("reset clears state and invalidates in-flight requests", func(t *testing.T) {
		api := &fakeSuggestionAPI{responses: map[string][]string{
			"a": {"Adele"},
		}}
		suggester := NewSuggester(api)

		if _, err := suggester.Fetch(context.Background(), "a"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		suggester.Reset()
		if suggester.Current() != nil {
			t.Error("expected no suggestions after reset")
		}
	})
}
