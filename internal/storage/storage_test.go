package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	require.NoError(t, InitRedis(mr.Addr(), "", 0))
	defer Close()

	require.NoError(t, Rdb.Set(Ctx, "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestInitRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	assert.Error(t, InitRedis(addr, "", 0))
	assert.Nil(t, Rdb)
}

func TestInitSQL_SQLite(t *testing.T) {
	require.NoError(t, InitSQL("sqlite", ":memory:"))
	defer func() {
		DB.Close()
		DB = nil
	}()

	var one int
	require.NoError(t, DB.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestInitSQL_UnknownDriver(t *testing.T) {
	assert.Error(t, InitSQL("mysql", "whatever"))
}
