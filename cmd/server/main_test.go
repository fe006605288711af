package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/db"
	"liyu1981.xyz/maternity-monitor-service/pkg/monitor"
	"liyu1981.xyz/maternity-monitor-service/pkg/monitor/mocks"
	"liyu1981.xyz/maternity-monitor-service/pkg/notify"
	_ "liyu1981.xyz/maternity-monitor-service/pkg/testing"
)

func TestNewTransports_ShareLimiter(t *testing.T) {
	common.SetTestLoggerNop()
	gin.SetMode(gin.TestMode)

	core := monitor.New(*db.GetInstance(db.UseMemorySqliteDialector()), common.SystemClock, notify.NewLogNotifier())
	rs, gs := newTransports(&config{DefaultRate: 5, DefaultBurst: 10}, core, gin.New())
	require.Same(t, rs.RateLimiterStore, gs.RateLimiterStore)

	req := httptest.NewRequest(http.MethodPost, "/subjects/s-shared/limiter", strings.NewReader(`{"rate":1,"burst":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// the limit set over REST is the one the gRPC side enforces
	assert.Equal(t, 1, gs.GetLimiter("s-shared").Burst())
	assert.True(t, gs.CheckSubjectLimiter("s-shared"))
	assert.False(t, gs.CheckSubjectLimiter("s-shared"))
}

func TestRunPendingDelivery(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	alerts := mocks.NewMockIAlert(ctrl)

	called := make(chan struct{})
	var once sync.Once
	alerts.EXPECT().
		DeliverPendingAlerts(gomock.Any(), monitor.DefaultPendingDeliveryLimit).
		DoAndReturn(func(ctx context.Context, limit int) (int, error) {
			once.Do(func() { close(called) })
			return 0, nil
		}).
		MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runPendingDelivery(ctx, alerts, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("pending delivery never ran")
	}
	cancel()
	<-done
}
