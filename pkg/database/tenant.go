package database

import (
	"fmt"
	"sync"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TenantManager hands out connections to per-tenant databases, keyed by the
// database alias stored on the tenant's registry record. Connections are
// opened lazily and cached for the lifetime of the process.
type TenantManager struct {
	cfg   *config.TenantDBConfig
	mu    sync.RWMutex
	conns map[string]*gorm.DB
}

// NewTenantManager creates a tenant connection manager from configuration
func NewTenantManager(cfg *config.TenantDBConfig) *TenantManager {
	return &TenantManager{
		cfg:   cfg,
		conns: make(map[string]*gorm.DB),
	}
}

// Get returns the connection for a tenant database alias, opening it on
// first use. Concurrent callers for the same alias share one connection.
func (m *TenantManager) Get(alias string) (*gorm.DB, error) {
	if alias == "" {
		return nil, fmt.Errorf("tenant database alias is empty")
	}

	m.mu.RLock()
	db, ok := m.conns[alias]
	m.mu.RUnlock()
	if ok {
		return db, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the write lock; another goroutine may have opened it
	if db, ok := m.conns[alias]; ok {
		return db, nil
	}

	pgConfig := postgres.Config{
		DSN:                  m.cfg.DSNFor(alias),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(m.cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to tenant database %q: %w", alias, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant database connection %q: %w", alias, err)
	}

	if m.cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(m.cfg.MaxIdleConns)
	}
	if m.cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(m.cfg.MaxOpenConns)
	}

	m.conns[alias] = db
	return db, nil
}
