package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/model"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockContacts struct {
	mu      sync.Mutex
	records map[string]*model.ContactInfo
	nextID  uint
}

func newMockContacts() *mockContacts {
	return &mockContacts{records: make(map[string]*model.ContactInfo), nextID: 1}
}

func (m *mockContacts) Current(ctx context.Context, dbAlias string) (*model.ContactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.records[dbAlias]
	if !ok || info.IsDeleted {
		return nil, service.ErrNotConfigured
	}
	dup := *info
	return &dup, nil
}

func (m *mockContacts) Create(ctx context.Context, dbAlias string, info *model.ContactInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	info.ID = m.nextID
	m.nextID++
	stored := *info
	m.records[dbAlias] = &stored
	return nil
}

func (m *mockContacts) Update(ctx context.Context, dbAlias string, id uint, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.records[dbAlias]
	if v, ok := fields["email"]; ok {
		stored.Email = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		stored.Phone = v.(string)
	}
	if v, ok := fields["address"]; ok {
		stored.Address = v.(string)
	}
	if v, ok := fields["city"]; ok {
		stored.City = v.(string)
	}
	if v, ok := fields["country"]; ok {
		stored.Country = v.(string)
	}
	return nil
}

type mockAudit struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (m *mockAudit) Record(ctx context.Context, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func strPtr(s string) *string { return &s }

func newContactFixture() (*service.ContactService, *mockContacts, *mockAudit) {
	registry := newMockRegistry(activeTenant("t-1", "tenant_t1"))
	contacts := newMockContacts()
	audit := &mockAudit{}
	return service.NewContactService(registry, contacts, audit), contacts, audit
}

func TestContactGet_NotConfigured(t *testing.T) {
	svc, _, _ := newContactFixture()
	_, err := svc.Get(context.Background(), "t-1")
	assert.ErrorIs(t, err, service.ErrNotConfigured)
}

func TestContactGet_UnknownTenant(t *testing.T) {
	svc, _, _ := newContactFixture()
	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, service.ErrTenantNotFound)
}

func TestContactUpsert_CreatesOnFirstWrite(t *testing.T) {
	svc, contacts, audit := newContactFixture()

	info, created, err := svc.Upsert(context.Background(), "t-1", service.ContactInput{
		Email: strPtr("hello@acme.test"),
		Phone: strPtr("123"),
	}, service.AuditMeta{Actor: "admin@acme.test", RequestID: "req-1", IP: "10.0.0.1"})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "hello@acme.test", info.Email)
	assert.Equal(t, "123", info.Phone)

	stored := contacts.records["tenant_t1"]
	require.NotNil(t, stored)
	assert.Equal(t, "hello@acme.test", stored.Email)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "contact_created", audit.entries[0].Action)
	assert.Equal(t, "admin@acme.test", audit.entries[0].Actor)
	assert.Equal(t, "req-1", audit.entries[0].RequestID)
}

func TestContactUpsert_PartialUpdateLeavesOtherFields(t *testing.T) {
	svc, contacts, audit := newContactFixture()

	_, created, err := svc.Upsert(context.Background(), "t-1", service.ContactInput{
		Email:   strPtr("hello@acme.test"),
		Phone:   strPtr("123"),
		Country: strPtr("NL"),
	}, service.AuditMeta{Actor: "admin@acme.test"})
	require.NoError(t, err)
	require.True(t, created)

	info, created, err := svc.Upsert(context.Background(), "t-1", service.ContactInput{
		Phone: strPtr("456"),
	}, service.AuditMeta{Actor: "admin@acme.test"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "456", info.Phone)
	assert.Equal(t, "hello@acme.test", info.Email, "untouched field survives a partial update")
	assert.Equal(t, "NL", info.Country)

	stored := contacts.records["tenant_t1"]
	assert.Equal(t, "456", stored.Phone)
	assert.Equal(t, "hello@acme.test", stored.Email)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, "contact_updated", audit.entries[1].Action)
}

func TestContactUpsert_GetAfterWrite(t *testing.T) {
	svc, _, _ := newContactFixture()

	_, _, err := svc.Upsert(context.Background(), "t-1", service.ContactInput{
		Email: strPtr("hello@acme.test"),
	}, service.AuditMeta{})
	require.NoError(t, err)

	info, err := svc.Get(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "hello@acme.test", info.Email)
}
