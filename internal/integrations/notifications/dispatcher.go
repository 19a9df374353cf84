package notifications

import (
	"context"
	"sync"
	"time"
)

// Sender отправляет событие во внешний сервис
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// Metrics метрики отправки уведомлений
type Metrics interface {
	IncNotification(event, result string)
}

// Dispatcher отправляет события в фоне (fire-and-forget)
// Ошибки отправки только логируются и не влияют на результат операции с записью
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	metrics Metrics
	log     Logger
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер. sender == nil отключает отправку (события только логируются)
func NewDispatcher(sender Sender, timeout time.Duration, metrics Metrics, log Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
		metrics: metrics,
		log:     log,
	}
}

// Dispatch запускает отправку события в отдельной горутине и сразу возвращает управление
func (d *Dispatcher) Dispatch(event Event) {
	if d.sender == nil {
		d.log.Info("Notifications: disabled, skip %s for appointment=%s", event.Type, event.AppointmentID)
		d.observe(event.Type, "skipped")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, event); err != nil {
			d.log.Warn("Notifications: failed to send %s for appointment=%s: %v", event.Type, event.AppointmentID, err)
			d.observe(event.Type, "failed")
			return
		}

		d.log.Info("Notifications: sent %s for appointment=%s", event.Type, event.AppointmentID)
		d.observe(event.Type, "sent")
	}()
}

// Wait ожидает завершения отправок, запущенных до вызова (используется при остановке сервиса)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) observe(eventType EventType, result string) {
	if d.metrics != nil {
		d.metrics.IncNotification(string(eventType), result)
	}
}
