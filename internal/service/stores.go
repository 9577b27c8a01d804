package service

import (
	"context"
	"errors"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/model"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/database"

	"gorm.io/gorm"
)

// gormRegistryStore is the central-database implementation of RegistryStore
type gormRegistryStore struct {
	db *gorm.DB
}

// NewRegistryStore creates a registry store over the central database
func NewRegistryStore(db *gorm.DB) RegistryStore {
	return &gormRegistryStore{db: db}
}

func (s *gormRegistryStore) FindByTenantID(ctx context.Context, tenantID string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *gormRegistryStore) SaveStatus(ctx context.Context, t *model.Tenant) error {
	return s.db.WithContext(ctx).Model(&model.Tenant{}).Where("id = ?", t.ID).Updates(map[string]any{
		"status":     t.Status,
		"active":     t.Active,
		"is_deleted": t.IsDeleted,
	}).Error
}

// gormPrincipalStore reaches into per-tenant databases through the tenant
// connection manager.
type gormPrincipalStore struct {
	tenants *database.TenantManager
}

// NewPrincipalStore creates a principal store over per-tenant databases
func NewPrincipalStore(tenants *database.TenantManager) PrincipalStore {
	return &gormPrincipalStore{tenants: tenants}
}

func (s *gormPrincipalStore) Find(ctx context.Context, dbAlias string) (*model.AdminUser, error) {
	db, err := s.tenants.Get(dbAlias)
	if err != nil {
		return nil, err
	}

	var user model.AdminUser
	err = db.WithContext(ctx).First(&user, model.PrincipalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPrincipalMissing
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormPrincipalStore) Save(ctx context.Context, dbAlias string, u *model.AdminUser) error {
	db, err := s.tenants.Get(dbAlias)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", u.ID).Updates(map[string]any{
		"status":     u.Status,
		"active":     u.Active,
		"is_deleted": u.IsDeleted,
	}).Error
}

// gormContactStore stores contact records inside the tenant's database
type gormContactStore struct {
	tenants *database.TenantManager
}

// NewContactStore creates a contact store over per-tenant databases
func NewContactStore(tenants *database.TenantManager) ContactStore {
	return &gormContactStore{tenants: tenants}
}

func (s *gormContactStore) Current(ctx context.Context, dbAlias string) (*model.ContactInfo, error) {
	db, err := s.tenants.Get(dbAlias)
	if err != nil {
		return nil, err
	}

	// First non-deleted row is the current record
	var info model.ContactInfo
	err = db.WithContext(ctx).Where("is_deleted = ?", false).Order("id").First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *gormContactStore) Create(ctx context.Context, dbAlias string, info *model.ContactInfo) error {
	db, err := s.tenants.Get(dbAlias)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(info).Error
}

func (s *gormContactStore) Update(ctx context.Context, dbAlias string, id uint, fields map[string]any) error {
	db, err := s.tenants.Get(dbAlias)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&model.ContactInfo{}).Where("id = ?", id).Updates(fields).Error
}

// gormAuditStore appends audit entries to the central database
type gormAuditStore struct {
	db *gorm.DB
}

// NewAuditStore creates an audit store over the central database
func NewAuditStore(db *gorm.DB) AuditStore {
	return &gormAuditStore{db: db}
}

func (s *gormAuditStore) Record(ctx context.Context, entry *model.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}
