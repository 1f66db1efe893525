package command

import (
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/notify"
	"github.com/yndnr/examprep-go/internal/cli/output"
)

const recentNotifications = 50

// NotificationEntry is a notification with the time it was shown.
type NotificationEntry struct {
	notify.Notification `yaml:",inline"`
	Time                time.Time `json:"time" yaml:"time"`
}

// notificationLog keeps the most recent notifications of a runtime.
type notificationLog struct {
	mu      sync.Mutex
	entries []NotificationEntry
	max     int
}

func (l *notificationLog) consume(ch <-chan notify.Notification) {
	for n := range ch {
		l.mu.Lock()
		l.entries = append(l.entries, NotificationEntry{Notification: n, Time: time.Now()})
		if over := len(l.entries) - l.max; over > 0 {
			l.entries = append(l.entries[:0:0], l.entries[over:]...)
		}
		l.mu.Unlock()
	}
}

func (l *notificationLog) list() []NotificationEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]NotificationEntry(nil), l.entries...)
}

// NotificationsCommand lists the notifications shown so far. Useful in
// the REPL, where one runtime serves many commands.
func NotificationsCommand() *cli.Command {
	return &cli.Command{
		Name:   "notifications",
		Usage:  "List recent notifications",
		Action: notificationsList,
	}
}

type notificationList []NotificationEntry

func (l notificationList) Tables(bool) []*output.Table {
	t := output.NewTable("TIME", "VARIANT", "TITLE", "MESSAGE")
	t.Empty = "No notifications"
	for _, e := range l {
		t.AddRow(
			e.Time.Format(time.TimeOnly),
			string(e.Variant),
			output.Cell(e.Title),
			output.Cell(e.Message),
		)
	}
	return []*output.Table{t}
}

func notificationsList(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	return render(c, rt, notificationList(rt.RecentNotifications()))
}
