package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithNotificationID(t *testing.T) {
	ctx := WithNotificationID(context.Background(), "0192-abc")
	assert.Equal(t, "0192-abc", GetNotificationID(ctx))
}

func TestWithPushToken(t *testing.T) {
	ctx := WithPushToken(context.Background(), "ExponentPushToken[x]")
	assert.Equal(t, "ExponentPushToken[x]", GetPushToken(ctx))
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetNotificationID(ctx))
	assert.Empty(t, GetPushToken(ctx))
}

func TestBothValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithNotificationID(ctx, "n-1")
	ctx = WithPushToken(ctx, "t-1")

	assert.Equal(t, "n-1", GetNotificationID(ctx))
	assert.Equal(t, "t-1", GetPushToken(ctx))
}
