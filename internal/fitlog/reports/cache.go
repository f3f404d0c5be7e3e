package reports

import (
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/fitlog/notify"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// Cache keeps rendered report JSON in memory so repeated report requests skip
// the store. Any entry or type change flushes the whole cache, reports are
// cheap to rebuild and correctness beats partial invalidation here.
type Cache struct {
	cache      *freecache.Cache
	ttlSeconds int
	cancelSub  func()
	done       chan struct{}
}

func NewCache(sizeBytes, ttlSeconds int, notifier *notify.Notifier) *Cache {
	c := &Cache{
		cache:      freecache.NewCache(sizeBytes),
		ttlSeconds: ttlSeconds,
		done:       make(chan struct{}),
	}

	changes, cancel := notifier.Subscribe(16)
	c.cancelSub = cancel
	go func() {
		defer close(c.done)
		for change := range changes {
			log.Tracef("report cache: flush on %s change", change.Kind)
			c.cache.Clear()
		}
	}()

	return c
}

func MonthlyKey(year int, month time.Month) string {
	return fmt.Sprintf("monthly:%d-%02d", year, month)
}

func YearlyKey(year int) string {
	return fmt.Sprintf("yearly:%d", year)
}

const OverviewKey = "overview"

func (c *Cache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *Cache) Set(key string, val []byte) {
	if err := c.cache.Set([]byte(key), val, c.ttlSeconds); err != nil {
		// oversized values are not cacheable, nothing else to do
		log.Errorf("report cache: set %s: %s", key, err)
	}
}

func (c *Cache) Flush() {
	c.cache.Clear()
}

// Close unsubscribes from store changes and waits for the flush loop to stop.
func (c *Cache) Close() {
	c.cancelSub()
	<-c.done
}
