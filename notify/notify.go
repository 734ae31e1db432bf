package notify

import (
	"sync"

	"iotreg/models"

	log "github.com/sirupsen/logrus"
)

type Event string

const (
	EventRegistrationConfirmation Event = "registration confirmation"
	EventStatusUpdate             Event = "status update"
	EventRegistrationReminder     Event = "registration reminder"
	EventCompetitionUpdate        Event = "competition update"
)

// Notifier is a one-way, best-effort signal of a workflow event. Delivery
// failures are handled inside the implementation and never reach the caller.
type Notifier interface {
	Notify(event Event, team *models.Team, message string)
}

// LogNotifier delivers notifications as structured log entries. A real
// deployment would swap this for an email producer with the same shape.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.StandardLogger()}
}

func NewLogNotifierWith(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(event Event, team *models.Team, message string) {
	fields := log.Fields{
		"team_id":       team.ID,
		"team_name":     team.TeamName,
		"contact_email": team.ContactEmail,
		"message":       message,
	}
	if event == EventStatusUpdate {
		fields["status"] = team.Status
	}

	switch event {
	case EventRegistrationConfirmation:
		n.logger.WithFields(fields).Info("Registration confirmation sent")
	case EventStatusUpdate:
		n.logger.WithFields(fields).Info("Status update notification sent")
	case EventRegistrationReminder:
		n.logger.WithFields(fields).Info("Registration reminder sent")
	case EventCompetitionUpdate:
		n.logger.WithFields(fields).Info("Competition update sent")
	default:
		n.logger.WithFields(fields).Info("Notification sent")
	}
}

type envelope struct {
	event   Event
	team    models.Team
	message string
}

// AsyncNotifier hands notifications off to a worker goroutine so delivery
// latency never blocks the workflow call that triggered them. When the buffer
// is full the notification is dropped and logged.
type AsyncNotifier struct {
	next Notifier
	ch   chan envelope
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewAsyncNotifier(next Notifier, buffer int) *AsyncNotifier {
	a := &AsyncNotifier{
		next: next,
		ch:   make(chan envelope, buffer),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *AsyncNotifier) run() {
	defer a.wg.Done()
	for e := range a.ch {
		a.deliver(e)
	}
}

func (a *AsyncNotifier) deliver(e envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("event", e.event).Warnf("notification delivery panicked: %v", r)
		}
	}()
	a.next.Notify(e.event, &e.team, e.message)
}

func (a *AsyncNotifier) Notify(event Event, team *models.Team, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	// The team is copied so the worker never shares state with the request.
	select {
	case a.ch <- envelope{event: event, team: *team, message: message}:
	default:
		log.WithFields(log.Fields{
			"event":   event,
			"team_id": team.ID,
		}).Warn("notification queue full, dropping notification")
	}
}

// Close stops accepting notifications and waits for queued ones to drain.
func (a *AsyncNotifier) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	a.wg.Wait()
}
