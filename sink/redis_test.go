package sink

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

var _ Sink = (*Redis)(nil)
var _ Sink = (*Memory)(nil)

func TestRedis_ReplaceSet_ReplacesPreviousMembers(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = r.Close() })
	ctx := context.Background()

	require.NoError(t, r.Ping(ctx))
	require.NoError(t, r.ReplaceSet(ctx, "mac_addresses", []string{"aa", "bb", "aa"}))
	members, err := mr.Members("mac_addresses")
	require.NoError(t, err)
	require.Equal(t, []string{"aa", "bb"}, members)

	require.NoError(t, r.ReplaceSet(ctx, "mac_addresses", []string{"cc"}))
	members, err = mr.Members("mac_addresses")
	require.NoError(t, err)
	require.Equal(t, []string{"cc"}, members)
}

func TestRedis_ReplaceSet_EmptyDeletesKey(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = r.Close() })
	ctx := context.Background()

	require.NoError(t, r.ReplaceSet(ctx, "k", []string{"aa"}))
	require.True(t, mr.Exists("k"))
	require.NoError(t, r.ReplaceSet(ctx, "k", nil))
	require.False(t, mr.Exists("k"))
}

func TestRedis_ReplaceSet_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = r.Close() })
	mr.Close()

	err := r.ReplaceSet(context.Background(), "k", []string{"aa"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `redis replace "k"`)
	require.Error(t, r.Ping(context.Background()))
}

func TestMemory_ReplaceSet(t *testing.T) {
	var m Memory
	_, ok := m.Members("k")
	require.False(t, ok)

	require.NoError(t, m.ReplaceSet(context.Background(), "k", []string{"b", "a"}))
	got, ok := m.Members("k")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, m.ReplaceSet(context.Background(), "k", nil))
	got, ok = m.Members("k")
	require.True(t, ok)
	require.Empty(t, got)
	require.Equal(t, 2, m.Calls())
}
