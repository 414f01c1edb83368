package service

import (
	"context"
	"net"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/repository/mysql"
	rds "Aurora_Admin/internal/repository/redis"
)

type blocklistStore interface {
	AddIP(ctx context.Context, row *model.BlockedIP) error
	RemoveIP(ctx context.Context, ip string) error
	ListIPs(ctx context.Context) ([]model.BlockedIP, error)
	AddDevice(ctx context.Context, row *model.BlockedDevice) error
	RemoveDevice(ctx context.Context, deviceID string) error
	ListDevices(ctx context.Context) ([]model.BlockedDevice, error)
}

type blocklistCache interface {
	AddIP(ctx context.Context, ip string) error
	RemoveIP(ctx context.Context, ip string) error
	IsIPBlockedCached(ctx context.Context, ip string) (bool, bool, error)
	WarmIPs(ctx context.Context, ips []string) error
	AddDevice(ctx context.Context, deviceID string) error
	RemoveDevice(ctx context.Context, deviceID string) error
	IsDeviceBlockedCached(ctx context.Context, deviceID string) (bool, bool, error)
	WarmDevices(ctx context.Context, deviceIDs []string) error
}

type BlocklistService struct {
	repo  blocklistStore
	cache blocklistCache
	audit auditRecorder
}

func NewBlocklistService(repo *mysql.BlocklistRepository, cache *rds.BlocklistCacheRepository, audit *AuditService) *BlocklistService {
	return &BlocklistService{repo: repo, cache: cache, audit: audit}
}

func (s *BlocklistService) AddIP(ctx context.Context, adminEmail, ip, reason string) error {
	if net.ParseIP(ip) == nil {
		return ErrInvalidParams
	}
	if err := s.repo.AddIP(ctx, &model.BlockedIP{IP: ip, Reason: reason, CreatedBy: adminEmail}); err != nil {
		return err
	}
	// 集合更新尽力而为，miss 由读侧重建
	_ = s.cache.AddIP(ctx, ip)

	s.audit.Record(ctx, adminEmail, "blocklist.ip.add", "", map[string]any{"ip": ip, "reason": reason})
	return nil
}

func (s *BlocklistService) RemoveIP(ctx context.Context, adminEmail, ip string) error {
	if err := s.repo.RemoveIP(ctx, ip); err != nil {
		return err
	}
	_ = s.cache.RemoveIP(ctx, ip)

	s.audit.Record(ctx, adminEmail, "blocklist.ip.remove", "", map[string]any{"ip": ip})
	return nil
}

func (s *BlocklistService) ListIPs(ctx context.Context) ([]model.BlockedIP, error) {
	return s.repo.ListIPs(ctx)
}

// IsIPBlocked 缓存集合优先，未预热时回源并整组重建
func (s *BlocklistService) IsIPBlocked(ctx context.Context, ip string) (bool, error) {
	if blocked, warm, err := s.cache.IsIPBlockedCached(ctx, ip); err == nil && warm {
		return blocked, nil
	}

	rows, err := s.repo.ListIPs(ctx)
	if err != nil {
		return false, err
	}
	ips := make([]string, 0, len(rows))
	blocked := false
	for _, row := range rows {
		ips = append(ips, row.IP)
		if row.IP == ip {
			blocked = true
		}
	}
	_ = s.cache.WarmIPs(ctx, ips)
	return blocked, nil
}

func (s *BlocklistService) AddDevice(ctx context.Context, adminEmail, deviceID, reason string) error {
	if deviceID == "" {
		return ErrInvalidParams
	}
	if err := s.repo.AddDevice(ctx, &model.BlockedDevice{DeviceID: deviceID, Reason: reason, CreatedBy: adminEmail}); err != nil {
		return err
	}
	_ = s.cache.AddDevice(ctx, deviceID)

	s.audit.Record(ctx, adminEmail, "blocklist.device.add", "", map[string]any{"deviceId": deviceID, "reason": reason})
	return nil
}

func (s *BlocklistService) RemoveDevice(ctx context.Context, adminEmail, deviceID string) error {
	if err := s.repo.RemoveDevice(ctx, deviceID); err != nil {
		return err
	}
	_ = s.cache.RemoveDevice(ctx, deviceID)

	s.audit.Record(ctx, adminEmail, "blocklist.device.remove", "", map[string]any{"deviceId": deviceID})
	return nil
}

func (s *BlocklistService) ListDevices(ctx context.Context) ([]model.BlockedDevice, error) {
	return s.repo.ListDevices(ctx)
}

func (s *BlocklistService) IsDeviceBlocked(ctx context.Context, deviceID string) (bool, error) {
	if blocked, warm, err := s.cache.IsDeviceBlockedCached(ctx, deviceID); err == nil && warm {
		return blocked, nil
	}

	rows, err := s.repo.ListDevices(ctx)
	if err != nil {
		return false, err
	}
	ids := make([]string, 0, len(rows))
	blocked := false
	for _, row := range rows {
		ids = append(ids, row.DeviceID)
		if row.DeviceID == deviceID {
			blocked = true
		}
	}
	_ = s.cache.WarmDevices(ctx, ids)
	return blocked, nil
}
