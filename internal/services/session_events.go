package services

import (
	"sync"

	"kalasangam_backend/internal/events"
)

// sessionListener держит подписку на изменения сессий, пока не вызван stop.
// Handler вызывается в отдельной горутине последовательно для каждого события.
type sessionListener struct {
	unsubscribe func()
	done        chan struct{}
	once        sync.Once
}

func listenSessionEvents(bus events.Bus, handle func(events.Event)) *sessionListener {
	ch, unsubscribe := bus.Subscribe()
	l := &sessionListener{unsubscribe: unsubscribe, done: make(chan struct{})}

	go func() {
		defer close(l.done)
		for ev := range ch {
			handle(ev)
		}
	}()
	return l
}

// stop отписывается и ждет, пока обработчик завершится.
func (l *sessionListener) stop() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.unsubscribe()
		<-l.done
	})
}
