package notify

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

func TestRedisNotifierIntegration(t *testing.T) {
	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("skipping integration test")
	}
	addr := os.Getenv(common.EnvKeyMaternityRedisAddr)
	if addr == "" {
		t.Skip("no redis address configured")
	}

	common.SetTestLoggerNop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, addr)
	require.NoError(t, err)
	defer client.Close()

	channel := "maternity:test:" + time.Now().Format("150405.000000")
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, NewRedisNotifier(client, channel).Notify(ctx, sampleNotification()))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var decoded models.Notification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &decoded))
	assert.Equal(t, "alert-1", decoded.AlertID)
}
