package storage

import (
	"log"
	"sync"
	"time"
)

// Cleaner deletes archived documents off the request path. Invoice deletes
// enqueue the old PDF's URL and return immediately; a worker retries the
// removal with backoff and writes a dead-letter log line when it gives up.
// A lost PDF in the bucket costs storage, never correctness.
type Cleaner struct {
	store       DocumentStore
	tasks       chan string
	wg          sync.WaitGroup
	maxAttempts int
	backoff     time.Duration

	closeOnce sync.Once
}

func NewCleaner(store DocumentStore) *Cleaner {
	return NewCleanerWithPolicy(store, 3, 2*time.Second)
}

func NewCleanerWithPolicy(store DocumentStore, maxAttempts int, backoff time.Duration) *Cleaner {
	c := &Cleaner{
		store:       store,
		tasks:       make(chan string, 64),
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Enqueue hands a file URL to the worker. Never blocks: if the queue is full
// the task goes straight to the dead-letter log.
func (c *Cleaner) Enqueue(fileURL string) {
	if fileURL == "" {
		return
	}
	select {
	case c.tasks <- fileURL:
	default:
		log.Printf("archival cleanup dead-letter (queue full): %s", fileURL)
	}
}

func (c *Cleaner) run() {
	defer c.wg.Done()
	for fileURL := range c.tasks {
		c.deleteWithRetry(fileURL)
	}
}

func (c *Cleaner) deleteWithRetry(fileURL string) {
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err = c.store.Delete(fileURL); err == nil {
			return
		}
		if attempt < c.maxAttempts {
			time.Sleep(time.Duration(attempt) * c.backoff)
		}
	}
	log.Printf("archival cleanup dead-letter (after %d attempts): %s: %v", c.maxAttempts, fileURL, err)
}

// Close drains outstanding tasks and stops the worker.
func (c *Cleaner) Close() {
	c.closeOnce.Do(func() {
		close(c.tasks)
	})
	c.wg.Wait()
}
