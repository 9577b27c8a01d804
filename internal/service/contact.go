package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/model"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/logger"

	"go.uber.org/zap"
)

// ContactStore reads and writes the contact record inside a tenant's
// database.
type ContactStore interface {
	Current(ctx context.Context, dbAlias string) (*model.ContactInfo, error)
	Create(ctx context.Context, dbAlias string, info *model.ContactInfo) error
	Update(ctx context.Context, dbAlias string, id uint, fields map[string]any) error
}

// AuditStore appends entries to the audit trail
type AuditStore interface {
	Record(ctx context.Context, entry *model.AuditLog) error
}

// ContactInput carries a partial contact update; nil fields are left
// untouched.
type ContactInput struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

// AuditMeta identifies the actor and request behind an audited write
type AuditMeta struct {
	Actor     string
	RequestID string
	IP        string
}

// ContactService manages the tenant's contact record: created on first
// write, updated in place afterwards, never hard-deleted.
type ContactService struct {
	registry RegistryStore
	contacts ContactStore
	audit    AuditStore
}

// NewContactService creates a contact service
func NewContactService(registry RegistryStore, contacts ContactStore, audit AuditStore) *ContactService {
	return &ContactService{registry: registry, contacts: contacts, audit: audit}
}

// Get returns the tenant's current contact record, or ErrNotConfigured
// if none has been created yet.
func (s *ContactService) Get(ctx context.Context, tenantID string) (*model.ContactInfo, error) {
	tenant, err := s.registry.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.contacts.Current(ctx, tenant.DBAlias)
}

// Upsert creates the contact record if none exists, otherwise applies a
// partial update. Returns the record and whether it was created. Every
// successful write lands in the audit trail.
func (s *ContactService) Upsert(ctx context.Context, tenantID string, in ContactInput, meta AuditMeta) (*model.ContactInfo, bool, error) {
	tenant, err := s.registry.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, false, err
	}

	current, err := s.contacts.Current(ctx, tenant.DBAlias)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return nil, false, err
	}

	if current == nil {
		info := &model.ContactInfo{}
		applyInput(info, in)
		if err := s.contacts.Create(ctx, tenant.DBAlias, info); err != nil {
			return nil, false, err
		}
		recordAudit(ctx, s.audit, meta, "contact_created", fmt.Sprintf("Contact info created for tenant %s", tenantID))
		return info, true, nil
	}

	fields := changedFields(in)
	if len(fields) > 0 {
		if err := s.contacts.Update(ctx, tenant.DBAlias, current.ID, fields); err != nil {
			return nil, false, err
		}
	}
	applyInput(current, in)
	recordAudit(ctx, s.audit, meta, "contact_updated", fmt.Sprintf("Contact info updated for tenant %s", tenantID))
	return current, false, nil
}

// recordAudit appends an audit entry; a failed append is logged, never
// surfaced to the caller.
func recordAudit(ctx context.Context, audit AuditStore, meta AuditMeta, action, description string) {
	entry := &model.AuditLog{
		Actor:       meta.Actor,
		Action:      action,
		Description: description,
		RequestID:   meta.RequestID,
		IP:          meta.IP,
	}
	if err := audit.Record(ctx, entry); err != nil {
		logger.GetLogger().Error("Failed to record audit entry",
			zap.String("action", action),
			zap.Error(err))
	}
}

func applyInput(info *model.ContactInfo, in ContactInput) {
	if in.Email != nil {
		info.Email = *in.Email
	}
	if in.Phone != nil {
		info.Phone = *in.Phone
	}
	if in.Address != nil {
		info.Address = *in.Address
	}
	if in.City != nil {
		info.City = *in.City
	}
	if in.Country != nil {
		info.Country = *in.Country
	}
}

func changedFields(in ContactInput) map[string]any {
	fields := make(map[string]any)
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.Country != nil {
		fields["country"] = *in.Country
	}
	return fields
}
