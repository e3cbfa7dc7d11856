package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_Do(t *testing.T) {
	var g Group[[]byte]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			body, err, _ := g.Do("matchDetails:4506263", func() ([]byte, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return []byte(`{"general":{}}`), nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if string(body) != `{"general":{}}` {
				t.Errorf("unexpected shared body: %s", body)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_DoRunsAgainAfterCompletion(t *testing.T) {
	var g Group[int]
	calls := 0
	for i := 0; i < 2; i++ {
		_, _, shared := g.Do("teams:8456", func() (int, error) {
			calls++
			return calls, nil
		})
		if shared {
			t.Fatalf("sequential calls must not be shared")
		}
	}
	if calls != 2 {
		t.Fatalf("expected two executions, got %d", calls)
	}
}
