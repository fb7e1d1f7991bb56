package web

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/jackc/pgx/v4"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/adapter"
	"voiceclone-backend/internal/domain/ports/repository"
)

// --- Mock Repositories (Ports) ---

type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

type mockAccountRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{store: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Save(_ context.Context, _ repository.Tx, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *mockAccountRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAccountRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.Account, error) {
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

func (m *mockAccountRepo) List(_ context.Context, _ repository.Tx, _ string, _, _ int) ([]*model.Account, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Account, 0, len(m.store))
	for _, a := range m.store {
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockAccountRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockAccountRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *mockAccountRepo) CountWithPlan(_ context.Context, _ repository.Tx) (int, error) {
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

type mockAdminRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{store: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Save(_ context.Context, _ repository.Tx, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *mockAdminRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAdminRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.Admin, error) {
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

type mockCreditTxRepo struct {
	mu    sync.RWMutex
	store []*model.CreditTransaction
}

func newMockCreditTxRepo() *mockCreditTxRepo { return &mockCreditTxRepo{} }

func (m *mockCreditTxRepo) Save(_ context.Context, _ repository.Tx, ct *model.CreditTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ct
	m.store = append(m.store, &cp)
	return nil
}

func (m *mockCreditTxRepo) ListByAccount(_ context.Context, _ repository.Tx, accountID string) ([]*model.CreditTransaction, error) {
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

func (m *mockCreditTxRepo) SumByKind(_ context.Context, _ repository.Tx, kind model.CreditTxKind) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, ct := range m.store {
		if ct.Kind == kind {
			if ct.Amount < 0 {
				sum -= ct.Amount
			} else {
				sum += ct.Amount
			}
		}
	}
	return sum, nil
}

type mockPlanRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Plan
}

func newMockPlanRepo() *mockPlanRepo { return &mockPlanRepo{store: make(map[string]*model.Plan)} }

func (m *mockPlanRepo) Save(_ context.Context, _ repository.Tx, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *mockPlanRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPlanRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Plan, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockPlanRepo) ListActive(_ context.Context, _ repository.Tx) ([]*model.Plan, error) {
	all, _ := m.ListAll(nil, repository.NoTX)
	var out []*model.Plan
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlanRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockPlanRepo) Count(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type mockOrderRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Order
}

func newMockOrderRepo() *mockOrderRepo { return &mockOrderRepo{store: make(map[string]*model.Order)} }

func (m *mockOrderRepo) Save(_ context.Context, _ repository.Tx, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.store[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListByAccount(_ context.Context, _ repository.Tx, accountID string) ([]*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Order
	for _, o := range m.store {
		if o.AccountID == accountID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) List(_ context.Context, _ repository.Tx, status model.OrderStatus) ([]*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Order
	for _, o := range m.store {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *mockOrderRepo) CountByStatus(_ context.Context, _ repository.Tx, status model.OrderStatus) (int, error) {
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

func (m *mockOrderRepo) SumAmountByStatus(_ context.Context, _ repository.Tx, status model.OrderStatus) (int64, error) {
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

type mockVoiceRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Voice
}

func newMockVoiceRepo() *mockVoiceRepo { return &mockVoiceRepo{store: make(map[string]*model.Voice)} }

func (m *mockVoiceRepo) Save(_ context.Context, _ repository.Tx, v *model.Voice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.store[v.ID] = &cp
	return nil
}

func (m *mockVoiceRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Voice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *mockVoiceRepo) ListByAccount(_ context.Context, _ repository.Tx, accountID string) ([]*model.Voice, error) {
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

func (m *mockVoiceRepo) ListPublic(_ context.Context, _ repository.Tx) ([]*model.Voice, error) {
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

func (m *mockVoiceRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockVoiceRepo) DeleteByAccount(_ context.Context, _ repository.Tx, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.store {
		if v.AccountID == accountID {
			delete(m.store, id)
		}
	}
	return nil
}

type mockJobRepo struct {
	mu    sync.RWMutex
	store map[string]*model.GenerationJob
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{store: make(map[string]*model.GenerationJob)}
}

func (m *mockJobRepo) Save(_ context.Context, _ repository.Tx, j *model.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.store[j.ID] = &cp
	return nil
}

func (m *mockJobRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.GenerationJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *mockJobRepo) FetchAndMarkProcessing(context.Context) (*model.GenerationJob, error) {
	return nil, domain.ErrNotFound
}

func (m *mockJobRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type mockPaymentAccountRepo struct {
	mu    sync.RWMutex
	store map[string]*model.PaymentAccount
}

func newMockPaymentAccountRepo() *mockPaymentAccountRepo {
	return &mockPaymentAccountRepo{store: make(map[string]*model.PaymentAccount)}
}

func (m *mockPaymentAccountRepo) Save(_ context.Context, _ repository.Tx, pa *model.PaymentAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pa
	m.store[pa.ID] = &cp
	return nil
}

func (m *mockPaymentAccountRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.PaymentAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pa, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pa
	return &cp, nil
}

func (m *mockPaymentAccountRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.PaymentAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.PaymentAccount, 0, len(m.store))
	for _, pa := range m.store {
		cp := *pa
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockPaymentAccountRepo) ListActive(_ context.Context, _ repository.Tx) ([]*model.PaymentAccount, error) {
	all, _ := m.ListAll(nil, repository.NoTX)
	var out []*model.PaymentAccount
	for _, pa := range all {
		if pa.IsActive {
			out = append(out, pa)
		}
	}
	return out, nil
}

func (m *mockPaymentAccountRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// --- Mock Adapters ---

type mockSampleStore struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMockSampleStore() *mockSampleStore {
	return &mockSampleStore{store: make(map[string][]byte)}
}

func (m *mockSampleStore) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = b
	return key, nil
}

func (m *mockSampleStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

func (m *mockSampleStore) URL(_ context.Context, key string) (string, error) {
	return "https://samples.test/" + key, nil
}

type mockSynth struct{}

func (mockSynth) Synthesize(context.Context, adapter.SynthesisRequest) (string, error) {
	return "outputs/test.wav", nil
}

func (mockSynth) GPUStats(context.Context) (model.GPUStats, error) {
	return model.GPUStats{}, nil
}

var (
	_ repository.AccountRepository           = (*mockAccountRepo)(nil)
	_ repository.AdminRepository             = (*mockAdminRepo)(nil)
	_ repository.CreditTransactionRepository = (*mockCreditTxRepo)(nil)
	_ repository.PlanRepository              = (*mockPlanRepo)(nil)
	_ repository.OrderRepository             = (*mockOrderRepo)(nil)
	_ repository.VoiceRepository             = (*mockVoiceRepo)(nil)
	_ repository.GenerationJobRepository     = (*mockJobRepo)(nil)
	_ repository.PaymentAccountRepository    = (*mockPaymentAccountRepo)(nil)
	_ adapter.SampleStore                    = (*mockSampleStore)(nil)
	_ adapter.SpeechSynthesizer              = (mockSynth{})
)
