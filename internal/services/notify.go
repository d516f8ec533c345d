package services

import (
	"log"
	"sync"
	"time"
)

// ValuationChanged is emitted after any successful write that affects a
// building's valuation: lease terms, factor overrides, or use periods.
// External aggregate caches (portfolio and company roll-ups) subscribe to
// invalidate themselves; this service does not manage those caches.
type ValuationChanged struct {
	BuildingID uint64    `json:"buildingId"`
	ChangedAt  time.Time `json:"changedAt"`
}

// ValuationListener receives change events. Listeners run synchronously on
// the writing request and must be quick.
type ValuationListener func(ValuationChanged)

var (
	listenerMu sync.RWMutex
	listeners  []ValuationListener
)

// RegisterValuationListener subscribes a listener for the process lifetime.
func RegisterValuationListener(l ValuationListener) {
	listenerMu.Lock()
	defer listenerMu.Unlock()
	listeners = append(listeners, l)
}

func notifyValuationChanged(buildingID uint64) {
	event := ValuationChanged{BuildingID: buildingID, ChangedAt: time.Now().UTC()}

	listenerMu.RLock()
	subscribed := make([]ValuationListener, len(listeners))
	copy(subscribed, listeners)
	listenerMu.RUnlock()

	for _, l := range subscribed {
		l(event)
	}
	if len(subscribed) == 0 {
		log.Printf("Valuation changed for building %d (no listeners registered)", buildingID)
	}
}
