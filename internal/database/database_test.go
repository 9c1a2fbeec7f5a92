package database

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestOpenGormSQLite(t *testing.T) {
	db, err := OpenGorm(DriverSQLite, "file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestOpenGormRejectsUnknownDriver(t *testing.T) {
	_, err := OpenGorm("oracle", "dsn")
	require.Error(t, err)

	_, err = OpenGorm(DriverSQLite, "")
	require.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	client, err := ConnectRedis(context.Background(), "redis://"+mini.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = ConnectRedis(context.Background(), "")
	require.Error(t, err)
}

func TestConnectRedisHonoursCallerContext(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ConnectRedis(ctx, "redis://"+mini.Addr())
	require.Error(t, err)
}
