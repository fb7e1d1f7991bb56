package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/repository"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memTxManager runs the callback without a real transaction; the in-memory
// repos below are safe for that.
type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

type memAccountRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Account
	saveErr error
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{store: make(map[string]*model.Account)}
}

func (m *memAccountRepo) Save(_ context.Context, _ repository.Tx, a *model.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAccountRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccountRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memAccountRepo) List(_ context.Context, _ repository.Tx, search string, offset, limit int) ([]*model.Account, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Account
	for _, a := range m.store {
		cp := *a
		out = append(out, &cp)
	}
	_ = search
	_ = offset
	_ = limit
	return out, len(out), nil
}

func (m *memAccountRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memAccountRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *memAccountRepo) CountWithPlan(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, a := range m.store {
		if a.PlanName != nil {
			n++
		}
	}
	return n, nil
}

type memCreditTxRepo struct {
	mu    sync.RWMutex
	store []*model.CreditTransaction
}

func newMemCreditTxRepo() *memCreditTxRepo { return &memCreditTxRepo{} }

func (m *memCreditTxRepo) Save(_ context.Context, _ repository.Tx, ct *model.CreditTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ct
	m.store = append(m.store, &cp)
	return nil
}

func (m *memCreditTxRepo) ListByAccount(_ context.Context, _ repository.Tx, accountID string) ([]*model.CreditTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.CreditTransaction
	for _, ct := range m.store {
		if ct.AccountID == accountID {
			cp := *ct
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCreditTxRepo) SumByKind(_ context.Context, _ repository.Tx, kind model.CreditTxKind) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, ct := range m.store {
		if ct.Kind == kind {
			amt := ct.Amount
			if amt < 0 {
				amt = -amt
			}
			sum += amt
		}
	}
	return sum, nil
}

type memPlanRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Plan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{store: make(map[string]*model.Plan)}
}

func (m *memPlanRepo) Save(_ context.Context, _ repository.Tx, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPlanRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Plan
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPlanRepo) ListActive(_ context.Context, _ repository.Tx) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Plan
	for _, p := range m.store {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPlanRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memPlanRepo) Count(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type memOrderRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{store: make(map[string]*model.Order)}
}

func (m *memOrderRepo) Save(_ context.Context, _ repository.Tx, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.store[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) ListByAccount(_ context.Context, _ repository.Tx, accountID string) ([]*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Order
	for _, o := range m.store {
		if o.AccountID == accountID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memOrderRepo) List(_ context.Context, _ repository.Tx, status model.OrderStatus) ([]*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Order
	for _, o := range m.store {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memOrderRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *memOrderRepo) CountByStatus(_ context.Context, _ repository.Tx, status model.OrderStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, o := range m.store {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memOrderRepo) SumAmountByStatus(_ context.Context, _ repository.Tx, status model.OrderStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, o := range m.store {
		if o.Status == status {
			sum += o.AmountCents
		}
	}
	return sum, nil
}

type memVoiceRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Voice
}

func newMemVoiceRepo() *memVoiceRepo {
	return &memVoiceRepo{store: make(map[string]*model.Voice)}
}

func (m *memVoiceRepo) Save(_ context.Context, _ repository.Tx, v *model.Voice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.store[v.ID] = &cp
	return nil
}

func (m *memVoiceRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Voice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVoiceRepo) ListByAccount(_ context.Context, _ repository.Tx, accountID string) ([]*model.Voice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Voice
	for _, v := range m.store {
		if v.AccountID == accountID && !v.IsPublic {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memVoiceRepo) ListPublic(_ context.Context, _ repository.Tx) ([]*model.Voice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Voice
	for _, v := range m.store {
		if v.IsPublic {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memVoiceRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memVoiceRepo) DeleteByAccount(_ context.Context, _ repository.Tx, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.store {
		if v.AccountID == accountID {
			delete(m.store, id)
		}
	}
	return nil
}

type memJobRepo struct {
	mu    sync.RWMutex
	store map[string]*model.GenerationJob
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{store: make(map[string]*model.GenerationJob)}
}

func (m *memJobRepo) Save(_ context.Context, _ repository.Tx, j *model.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.store[j.ID] = &cp
	return nil
}

func (m *memJobRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.GenerationJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobRepo) FetchAndMarkProcessing(_ context.Context) (*model.GenerationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldest *model.GenerationJob
	for _, j := range m.store {
		if j.Status != model.GenerationJobStatusQueued {
			continue
		}
		if oldest == nil || j.CreatedAt.Before(oldest.CreatedAt) {
			oldest = j
		}
	}
	if oldest == nil {
		return nil, domain.ErrNotFound
	}
	oldest.Status = model.GenerationJobStatusProcessing
	cp := *oldest
	return &cp, nil
}

func (m *memJobRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type memAdminRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{store: make(map[string]*model.Admin)}
}

func (m *memAdminRepo) Save(_ context.Context, _ repository.Tx, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAdminRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAdminRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// memSampleStore fakes object storage with a map.
type memSampleStore struct {
	mu     sync.Mutex
	store  map[string][]byte
	putErr error
}

func newMemSampleStore() *memSampleStore {
	return &memSampleStore{store: make(map[string][]byte)}
}

func (m *memSampleStore) Put(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = []byte("sample")
	return key, nil
}

func (m *memSampleStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

func (m *memSampleStore) URL(_ context.Context, key string) (string, error) {
	return "https://samples.test/" + key, nil
}
