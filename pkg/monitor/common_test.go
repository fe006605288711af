package monitor

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"liyu1981.xyz/maternity-monitor-service/pkg/db"
	"liyu1981.xyz/maternity-monitor-service/pkg/monitor/mocks"
	"liyu1981.xyz/maternity-monitor-service/pkg/notify"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// testClock is a settable clock shared by a test and its monitor.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func GetMockMonitorWithMemorySqliteDialector(t *testing.T, useMockNotifier bool) (
	*gomock.Controller,
	*Monitor,
	*testClock,
	*mocks.MockINotifier,
) {
	ctrl := gomock.NewController(t)

	mockNotifier := mocks.NewMockINotifier(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations

	clock := &testClock{now: baseTime}

	var notifier INotifier = notify.NewLogNotifier()
	if useMockNotifier {
		notifier = mockNotifier
	}

	monitorInstance := New(*dbInstance, clock.Now, notifier)
	return ctrl, monitorInstance, clock, mockNotifier
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func f(v float64) *float64 { return &v }
