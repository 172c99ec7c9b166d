package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

// Config selects and configures the disks.
type Config struct {
	Default   string // "local" or "s3"
	LocalRoot string
	LocalURL  string
	S3        S3Config
}

// FromEnv reads STORAGE_* and S3_* through the config package.
func FromEnv() Config {
	return Config{
		Default:   config.StorageDefault(),
		LocalRoot: config.StorageLocalRoot(),
		LocalURL:  config.StorageURL(),
		S3: S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		},
	}
}

// Manager holds the configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
	local       *LocalDisk
}

// NewManager always boots the local disk and boots S3 only when a bucket is
// configured. A failing S3 disk is logged and left out.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	local, err := NewLocalDisk(cfg.LocalRoot, cfg.LocalURL)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		disks:       map[string]Disk{"local": local},
		defaultDisk: cfg.Default,
		local:       local,
	}
	if m.defaultDisk == "" {
		m.defaultDisk = "local"
	}

	if cfg.S3.Bucket != "" {
		d, err := NewS3Disk(ctx, cfg.S3)
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.disks["s3"] = d
		}
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}
	return m, nil
}

// Register plugs in a custom Disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() Disk {
	d, _ := m.Disk(m.defaultDisk)
	return d
}

// Local returns the local disk, used to serve /files.
func (m *Manager) Local() *LocalDisk { return m.local }
