package counter

import (
	"fmt"
	"sync"

	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/event"
	"github.com/traPtitech/pinboard/model"
)

var pinsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pinboard",
	Name:      "pins_count_total",
})

// PinCounter 全ピン数カウンタ
type PinCounter interface {
	// Get 全ピン数を返します
	Get() int64
}

type pinCounterImpl struct {
	count int64
	sync.RWMutex
}

// NewPinCounter 全ピン数カウンタを生成します
func NewPinCounter(db *gorm.DB, hub *hub.Hub) (PinCounter, error) {
	counter := &pinCounterImpl{}
	if err := db.Model(&model.Pin{}).Count(&counter.count).Error; err != nil {
		return nil, fmt.Errorf("failed to load pins count: %w", err)
	}
	pinsCounter.Add(float64(counter.count))
	go func() {
		for range hub.Subscribe(10, event.PinCreated).Receiver {
			counter.inc()
		}
	}()
	return counter, nil
}

func (c *pinCounterImpl) Get() int64 {
	c.RLock()
	defer c.RUnlock()
	return c.count
}

func (c *pinCounterImpl) inc() {
	c.Lock()
	c.count++
	c.Unlock()
	pinsCounter.Inc()
}
