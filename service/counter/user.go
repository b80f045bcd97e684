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

var usersCounter = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pinboard",
	Name:      "users_count",
})

// UserCounter ユーザー数カウンタ
type UserCounter interface {
	// Get ユーザー数を返します
	Get() int64
}

type userCounterImpl struct {
	count int64
	sync.RWMutex
}

// NewUserCounter ユーザー数カウンタを生成します
func NewUserCounter(db *gorm.DB, hub *hub.Hub) (UserCounter, error) {
	counter := &userCounterImpl{}
	if err := db.Model(&model.User{}).Count(&counter.count).Error; err != nil {
		return nil, fmt.Errorf("failed to load users count: %w", err)
	}
	usersCounter.Set(float64(counter.count))
	go func() {
		for range hub.Subscribe(10, event.UserCreated).Receiver {
			counter.inc()
		}
	}()
	return counter, nil
}

func (c *userCounterImpl) Get() int64 {
	c.RLock()
	defer c.RUnlock()
	return c.count
}

func (c *userCounterImpl) inc() {
	c.Lock()
	c.count++
	c.Unlock()
	usersCounter.Inc()
}
