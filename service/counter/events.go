package counter

import (
	"sync"

	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/traPtitech/pinboard/event"
)

var domainEventsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pinboard",
	Name:      "domain_events_total",
}, []string{"event"})

// EventCounter ドメインイベント数カウンタ
type EventCounter interface {
	// Get 指定したトピックのイベント数を返します
	Get(topic string) int64
}

type eventCounterImpl struct {
	counts map[string]int64
	sync.RWMutex
}

// NewEventCounter ドメインイベント数カウンタを生成します
func NewEventCounter(hub *hub.Hub) EventCounter {
	counter := &eventCounterImpl{counts: make(map[string]int64, len(event.AllTopics))}
	for _, topic := range event.AllTopics {
		domainEventsCounter.WithLabelValues(topic)
	}
	sub := hub.Subscribe(100, event.AllTopics...)
	go func() {
		for msg := range sub.Receiver {
			counter.inc(msg.Topic())
		}
	}()
	return counter
}

func (c *eventCounterImpl) Get(topic string) int64 {
	c.RLock()
	defer c.RUnlock()
	return c.counts[topic]
}

func (c *eventCounterImpl) inc(topic string) {
	c.Lock()
	c.counts[topic]++
	c.Unlock()
	domainEventsCounter.WithLabelValues(topic).Inc()
}
