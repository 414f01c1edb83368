package service

import (
	"context"
	"testing"

	"Aurora_Admin/internal/model"

	"github.com/stretchr/testify/require"
)

type fakeBlocklistStore struct {
	ips     map[string]model.BlockedIP
	devices map[string]model.BlockedDevice
}

func newFakeBlocklistStore() *fakeBlocklistStore {
	return &fakeBlocklistStore{
		ips:     map[string]model.BlockedIP{},
		devices: map[string]model.BlockedDevice{},
	}
}

func (f *fakeBlocklistStore) AddIP(_ context.Context, row *model.BlockedIP) error {
	// 已存在忽略，对齐 OnConflict DoNothing
	if _, ok := f.ips[row.IP]; !ok {
		f.ips[row.IP] = *row
	}
	return nil
}

func (f *fakeBlocklistStore) RemoveIP(_ context.Context, ip string) error {
	delete(f.ips, ip)
	return nil
}

func (f *fakeBlocklistStore) ListIPs(_ context.Context) ([]model.BlockedIP, error) {
	out := make([]model.BlockedIP, 0, len(f.ips))
	for _, row := range f.ips {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeBlocklistStore) AddDevice(_ context.Context, row *model.BlockedDevice) error {
	if _, ok := f.devices[row.DeviceID]; !ok {
		f.devices[row.DeviceID] = *row
	}
	return nil
}

func (f *fakeBlocklistStore) RemoveDevice(_ context.Context, deviceID string) error {
	delete(f.devices, deviceID)
	return nil
}

func (f *fakeBlocklistStore) ListDevices(_ context.Context) ([]model.BlockedDevice, error) {
	out := make([]model.BlockedDevice, 0, len(f.devices))
	for _, row := range f.devices {
		out = append(out, row)
	}
	return out, nil
}

type fakeBlocklistCache struct {
	ipSet     map[string]struct{}
	deviceSet map[string]struct{}
	ipWarm    bool
	devWarm   bool
	ipWarms   int
	devWarms  int
}

func newFakeBlocklistCache() *fakeBlocklistCache {
	return &fakeBlocklistCache{
		ipSet:     map[string]struct{}{},
		deviceSet: map[string]struct{}{},
	}
}

func (c *fakeBlocklistCache) AddIP(_ context.Context, ip string) error {
	c.ipSet[ip] = struct{}{}
	return nil
}

func (c *fakeBlocklistCache) RemoveIP(_ context.Context, ip string) error {
	delete(c.ipSet, ip)
	return nil
}

func (c *fakeBlocklistCache) IsIPBlockedCached(_ context.Context, ip string) (bool, bool, error) {
	if !c.ipWarm {
		return false, false, nil
	}
	_, ok := c.ipSet[ip]
	return ok, true, nil
}

func (c *fakeBlocklistCache) WarmIPs(_ context.Context, ips []string) error {
	c.ipSet = map[string]struct{}{}
	for _, ip := range ips {
		c.ipSet[ip] = struct{}{}
	}
	c.ipWarm = true
	c.ipWarms++
	return nil
}

func (c *fakeBlocklistCache) AddDevice(_ context.Context, deviceID string) error {
	c.deviceSet[deviceID] = struct{}{}
	return nil
}

func (c *fakeBlocklistCache) RemoveDevice(_ context.Context, deviceID string) error {
	delete(c.deviceSet, deviceID)
	return nil
}

func (c *fakeBlocklistCache) IsDeviceBlockedCached(_ context.Context, deviceID string) (bool, bool, error) {
	if !c.devWarm {
		return false, false, nil
	}
	_, ok := c.deviceSet[deviceID]
	return ok, true, nil
}

func (c *fakeBlocklistCache) WarmDevices(_ context.Context, deviceIDs []string) error {
	c.deviceSet = map[string]struct{}{}
	for _, id := range deviceIDs {
		c.deviceSet[id] = struct{}{}
	}
	c.devWarm = true
	c.devWarms++
	return nil
}

func TestBlocklistAddIP_ValidatesAddress(t *testing.T) {
	store := newFakeBlocklistStore()
	svc := &BlocklistService{repo: store, cache: newFakeBlocklistCache(), audit: &fakeAudit{}}

	require.ErrorIs(t, svc.AddIP(context.Background(), "a@x.com", "not-an-ip", ""), ErrInvalidParams)
	require.Empty(t, store.ips)

	require.NoError(t, svc.AddIP(context.Background(), "a@x.com", "203.0.113.7", "abuse"))
	require.NoError(t, svc.AddIP(context.Background(), "a@x.com", "2001:db8::1", "abuse"))
	require.Len(t, store.ips, 2)
}

// 重复添加和删除不存在的条目都不报错
func TestBlocklistIPs_Idempotent(t *testing.T) {
	store := newFakeBlocklistStore()
	audit := &fakeAudit{}
	svc := &BlocklistService{repo: store, cache: newFakeBlocklistCache(), audit: audit}

	require.NoError(t, svc.AddIP(context.Background(), "a@x.com", "203.0.113.7", "abuse"))
	require.NoError(t, svc.AddIP(context.Background(), "a@x.com", "203.0.113.7", "abuse again"))
	require.Len(t, store.ips, 1)
	require.Equal(t, "abuse", store.ips["203.0.113.7"].Reason, "first write wins")

	require.NoError(t, svc.RemoveIP(context.Background(), "a@x.com", "203.0.113.7"))
	require.NoError(t, svc.RemoveIP(context.Background(), "a@x.com", "203.0.113.7"))
	require.Empty(t, store.ips)

	require.Equal(t, "blocklist.ip.add", audit.entries[0].Action)
	require.Equal(t, "blocklist.ip.remove", audit.entries[2].Action)
}

// 缓存没预热时回源判断并整组重建，之后的查询走缓存
func TestBlocklistIsIPBlocked_ColdCacheRebuild(t *testing.T) {
	store := newFakeBlocklistStore()
	store.ips["203.0.113.7"] = model.BlockedIP{IP: "203.0.113.7"}
	cache := newFakeBlocklistCache()
	svc := &BlocklistService{repo: store, cache: cache, audit: &fakeAudit{}}

	blocked, err := svc.IsIPBlocked(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	require.True(t, blocked)
	require.Equal(t, 1, cache.ipWarms)

	blocked, err = svc.IsIPBlocked(context.Background(), "198.51.100.1")
	require.NoError(t, err)
	require.False(t, blocked)
	require.Equal(t, 1, cache.ipWarms, "warm cache must not rebuild")
}

func TestBlocklistDevices(t *testing.T) {
	store := newFakeBlocklistStore()
	cache := newFakeBlocklistCache()
	svc := &BlocklistService{repo: store, cache: cache, audit: &fakeAudit{}}

	require.ErrorIs(t, svc.AddDevice(context.Background(), "a@x.com", "", ""), ErrInvalidParams)

	require.NoError(t, svc.AddDevice(context.Background(), "a@x.com", "dev-abc", "fraud"))
	blocked, err := svc.IsDeviceBlocked(context.Background(), "dev-abc")
	require.NoError(t, err)
	require.True(t, blocked)
	require.Equal(t, 1, cache.devWarms)

	require.NoError(t, svc.RemoveDevice(context.Background(), "a@x.com", "dev-abc"))
	blocked, err = svc.IsDeviceBlocked(context.Background(), "dev-abc")
	require.NoError(t, err)
	require.False(t, blocked)
}
