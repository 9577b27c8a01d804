package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/model"
)

// Toggle outcome actions
const (
	ActionBlocked   = "blocked"
	ActionUnblocked = "unblocked"
)

// RegistryStore reads and writes tenant registry records in the central
// database.
type RegistryStore interface {
	FindByTenantID(ctx context.Context, tenantID string) (*model.Tenant, error)
	SaveStatus(ctx context.Context, t *model.Tenant) error
}

// PrincipalStore reads and writes the distinguished admin record inside a
// tenant's own database, addressed by the registry record's DB alias.
type PrincipalStore interface {
	Find(ctx context.Context, dbAlias string) (*model.AdminUser, error)
	Save(ctx context.Context, dbAlias string, u *model.AdminUser) error
}

// ToggleResult reports which direction a toggle took
type ToggleResult struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// Toggler flips a tenant between ACTIVE and BLOCKED. The registry record
// and the tenant's principal record live in separate databases and cannot
// share a transaction, so the two writes commit independently: registry
// first, then principal. Toggles of the same tenant are serialized with a
// per-tenant lock; different tenants proceed independently.
type Toggler struct {
	registry   RegistryStore
	principals PrincipalStore
	audit      AuditStore

	mu    sync.Mutex
	locks map[string]*tenantLock
}

// tenantLock serializes toggles for one tenant. Holders are counted so
// the entry can be dropped from the map once the last one releases;
// the map only holds tenants with a toggle in flight.
type tenantLock struct {
	sync.Mutex
	refs int
}

// NewToggler creates a tenant state toggler
func NewToggler(registry RegistryStore, principals PrincipalStore, audit AuditStore) *Toggler {
	return &Toggler{
		registry:   registry,
		principals: principals,
		audit:      audit,
		locks:      make(map[string]*tenantLock),
	}
}

func (t *Toggler) lockTenant(tenantID string) *tenantLock {
	t.mu.Lock()
	l, ok := t.locks[tenantID]
	if !ok {
		l = &tenantLock{}
		t.locks[tenantID] = l
	}
	l.refs++
	t.mu.Unlock()

	l.Lock()
	return l
}

func (t *Toggler) unlockTenant(tenantID string, l *tenantLock) {
	l.Unlock()

	t.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(t.locks, tenantID)
	}
	t.mu.Unlock()
}

// Toggle flips the tenant's status. A PENDING tenant cannot be toggled;
// an ACTIVE tenant becomes BLOCKED; anything else, per the deleted-flag
// check, counts as currently blocked and becomes ACTIVE.
func (t *Toggler) Toggle(ctx context.Context, tenantID string, meta AuditMeta) (*ToggleResult, error) {
	l := t.lockTenant(tenantID)
	defer t.unlockTenant(tenantID, l)

	tenant, err := t.registry.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if tenant.Status == model.StatusPending {
		return nil, ErrApprovalPending
	}

	principal, err := t.principals.Find(ctx, tenant.DBAlias)
	if err != nil {
		return nil, err
	}

	var action string
	if tenant.Blocked() {
		action = ActionUnblocked
		tenant.Status = model.StatusActive
		tenant.Active = true
		tenant.IsDeleted = false
	} else {
		action = ActionBlocked
		tenant.Status = model.StatusBlocked
		tenant.Active = false
		tenant.IsDeleted = true
	}

	// Registry write must commit before the principal write is attempted
	if err := t.registry.SaveStatus(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to update registry record: %w", err)
	}

	principal.Status = tenant.Status
	principal.Active = tenant.Active
	principal.IsDeleted = tenant.IsDeleted
	if err := t.principals.Save(ctx, tenant.DBAlias, principal); err != nil {
		// The registry committed but the tenant database did not: the two
		// stores now disagree until the next successful toggle. Reported,
		// never silently retried.
		return nil, fmt.Errorf("registry updated but tenant database write failed, tenant %s left inconsistent: %w", tenantID, err)
	}

	recordAudit(ctx, t.audit, meta, "tenant_"+action,
		fmt.Sprintf("Tenant %s %s", tenantID, action))

	return &ToggleResult{
		Action:  action,
		Message: fmt.Sprintf("Tenant %s %s successfully", tenantID, action),
	}, nil
}
