package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
	"github.com/ayemen27/siteledger/internal/usecase"
)

type ledgerRecord struct {
	kind         domain.SourceKind
	projectID    string
	counterparty string
	workerID     string
	day          time.Time
	amount       decimal.Decimal
	paid         decimal.Decimal
	purchaseType string
	createdAt    time.Time
}

// FakeLedger is an in-memory set of transaction records that serves every
// transaction source and the staleness check.
type FakeLedger struct {
	mu              sync.RWMutex
	records         []ledgerRecord
	inactiveWorkers map[string]bool
	failures        map[domain.SourceKind]error
	rawTotals       map[domain.SourceKind]string
	calls           map[domain.SourceKind]int

	// Now stamps created_at on new records.
	Now func() time.Time
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		inactiveWorkers: make(map[string]bool),
		failures:        make(map[domain.SourceKind]error),
		rawTotals:       make(map[domain.SourceKind]string),
		calls:           make(map[domain.SourceKind]int),
		Now:             time.Now,
	}
}

func (l *FakeLedger) add(r ledgerRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r.day = domain.Day(r.day)
	r.createdAt = l.Now()
	l.records = append(l.records, r)
}

func (l *FakeLedger) AddFundTransfer(projectID string, day time.Time, amount string) {
	l.add(ledgerRecord{kind: domain.SourceFundTransfers, projectID: projectID, day: day, amount: decimal.RequireFromString(amount)})
}

// AddProjectTransfer records a transfer out of from and into to.
func (l *FakeLedger) AddProjectTransfer(from, to string, day time.Time, amount string) {
	l.add(ledgerRecord{kind: domain.SourceOutgoingProjectTransfers, projectID: from, counterparty: to, day: day, amount: decimal.RequireFromString(amount)})
}

func (l *FakeLedger) AddWage(projectID, workerID string, day time.Time, paid string) {
	l.add(ledgerRecord{kind: domain.SourceWorkerWages, projectID: projectID, workerID: workerID, day: day, paid: decimal.RequireFromString(paid)})
}

func (l *FakeLedger) AddMaterialPurchase(projectID string, day time.Time, purchaseType, total, paid string) {
	l.add(ledgerRecord{
		kind:         domain.SourceMaterialPurchases,
		projectID:    projectID,
		day:          day,
		amount:       decimal.RequireFromString(total),
		paid:         decimal.RequireFromString(paid),
		purchaseType: purchaseType,
	})
}

func (l *FakeLedger) AddTransportation(projectID string, day time.Time, amount string) {
	l.add(ledgerRecord{kind: domain.SourceTransportation, projectID: projectID, day: day, amount: decimal.RequireFromString(amount)})
}

func (l *FakeLedger) AddWorkerTransfer(projectID, workerID string, day time.Time, amount string) {
	l.add(ledgerRecord{kind: domain.SourceWorkerTransfers, projectID: projectID, workerID: workerID, day: day, amount: decimal.RequireFromString(amount)})
}

func (l *FakeLedger) AddMiscExpense(projectID string, day time.Time, amount string) {
	l.add(ledgerRecord{kind: domain.SourceMiscExpenses, projectID: projectID, day: day, amount: decimal.RequireFromString(amount)})
}

// DeactivateWorker flips a worker's current active flag off.
func (l *FakeLedger) DeactivateWorker(workerID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inactiveWorkers[workerID] = true
}

// FailSource makes every read of kind return err.
func (l *FakeLedger) FailSource(kind domain.SourceKind, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[kind] = err
}

// SetRawTotal replaces the aggregate text a source reports, to simulate
// corrupt stored values.
func (l *FakeLedger) SetRawTotal(kind domain.SourceKind, raw string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rawTotals[kind] = raw
}

// Calls returns how many reads of kind were served.
func (l *FakeLedger) Calls(kind domain.SourceKind) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.calls[kind]
}

// Sources returns one TransactionSource per source kind.
func (l *FakeLedger) Sources() []usecase.TransactionSource {
	kinds := domain.AllSourceKinds()
	sources := make([]usecase.TransactionSource, 0, len(kinds))
	for _, k := range kinds {
		sources = append(sources, &fakeSource{ledger: l, kind: k})
	}
	return sources
}

// HasBackdatedChanges implements usecase.StalenessChecker.
func (l *FakeLedger) HasBackdatedChanges(ctx context.Context, projectID string, through, since time.Time) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	through = domain.Day(through)
	for _, r := range l.records {
		if r.projectID != projectID && r.counterparty != projectID {
			continue
		}
		if !r.day.After(through) && r.createdAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func matches(day time.Time, f domain.Filter) bool {
	from, to, before := f.Bounds()
	if from != nil && day.Before(*from) {
		return false
	}
	if to != nil && day.After(*to) {
		return false
	}
	if before != nil && !day.Before(*before) {
		return false
	}
	return true
}

type fakeSource struct {
	ledger *FakeLedger
	kind   domain.SourceKind
}

func (s *fakeSource) Kind() domain.SourceKind {
	return s.kind
}

func (s *fakeSource) SumForProject(ctx context.Context, projectID string, filter domain.Filter) (domain.SourceTotals, error) {
	l := s.ledger

	l.mu.Lock()
	l.calls[s.kind]++
	l.mu.Unlock()

	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := l.failures[s.kind]; err != nil {
		return domain.SourceTotals{}, err
	}

	res := domain.SourceTotals{Kind: s.kind}
	total, credit := decimal.Zero, decimal.Zero
	days := make(map[time.Time]struct{})
	workers := make(map[string]struct{})

	for _, r := range l.records {
		if !matches(r.day, filter) {
			continue
		}

		switch s.kind {
		case domain.SourceIncomingProjectTransfers:
			if r.kind != domain.SourceOutgoingProjectTransfers || r.counterparty != projectID {
				continue
			}
		default:
			if r.kind != s.kind || r.projectID != projectID {
				continue
			}
		}

		switch s.kind {
		case domain.SourceWorkerWages:
			workers[r.workerID] = struct{}{}
			if !r.paid.IsPositive() {
				continue
			}
			res.Count++
			total = total.Add(r.paid)
			days[r.day] = struct{}{}
		case domain.SourceMaterialPurchases:
			t := domain.ParsePurchaseType(r.purchaseType)
			cash, cr := domain.MaterialContribution(t, r.amount, r.paid)
			switch t {
			case domain.PurchaseCash:
				res.Count++
				total = total.Add(cash)
			case domain.PurchaseCredit:
				res.CreditCount++
				credit = credit.Add(cr)
			}
		default:
			res.Count++
			total = total.Add(r.amount)
		}
	}

	res.Total = total.String()
	res.Credit = credit.String()
	res.Days = int64(len(days))
	res.Workers = int64(len(workers))
	for w := range workers {
		if !l.inactiveWorkers[w] {
			res.ActiveWorkers++
		}
	}

	if raw, ok := l.rawTotals[s.kind]; ok {
		res.Total = raw
	}

	return res, nil
}

// MemorySnapshotStore is an in-memory usecase.SnapshotStore.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]map[string]*domain.DailySnapshot

	LatestBeforeFunc func(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error)
	SaveFunc         func(ctx context.Context, snapshot *domain.DailySnapshot) (*domain.DailySnapshot, error)
	DeleteFunc       func(ctx context.Context, projectID string, day time.Time) (bool, error)
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]map[string]*domain.DailySnapshot),
	}
}

// Put stores a snapshot as-is, bypassing upsert semantics.
func (m *MemorySnapshotStore) Put(s *domain.DailySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshots[s.ProjectID] == nil {
		m.snapshots[s.ProjectID] = make(map[string]*domain.DailySnapshot)
	}
	cp := *s
	cp.Date = domain.Day(s.Date)
	m.snapshots[s.ProjectID][domain.FormatDate(cp.Date)] = &cp
}

// Get returns the snapshot for day, if any.
func (m *MemorySnapshotStore) Get(projectID string, day time.Time) (*domain.DailySnapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snapshots[projectID][domain.FormatDate(day)]
	return s, ok
}

func (m *MemorySnapshotStore) LatestBefore(ctx context.Context, projectID string, day time.Time) (*domain.DailySnapshot, error) {
	if m.LatestBeforeFunc != nil {
		return m.LatestBeforeFunc(ctx, projectID, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *domain.DailySnapshot
	for _, s := range m.snapshots[projectID] {
		if !s.Date.Before(domain.Day(day)) {
			continue
		}
		if best == nil || s.Date.After(best.Date) {
			best = s
		}
	}
	if best == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *MemorySnapshotStore) Save(ctx context.Context, snapshot *domain.DailySnapshot) (*domain.DailySnapshot, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snapshot)
	}
	if existing, ok := m.Get(snapshot.ProjectID, snapshot.Date); ok {
		cp := *snapshot
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
		m.Put(&cp)
	} else {
		m.Put(snapshot)
	}
	s, _ := m.Get(snapshot.ProjectID, snapshot.Date)
	cp := *s
	return &cp, nil
}

func (m *MemorySnapshotStore) Delete(ctx context.Context, projectID string, day time.Time) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, projectID, day)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := domain.FormatDate(day)
	if _, ok := m.snapshots[projectID][key]; !ok {
		return false, nil
	}
	delete(m.snapshots[projectID], key)
	return true, nil
}

func (m *MemorySnapshotStore) DeleteFrom(ctx context.Context, projectID string, day time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key, s := range m.snapshots[projectID] {
		if !s.Date.Before(domain.Day(day)) {
			delete(m.snapshots[projectID], key)
			n++
		}
	}
	return n, nil
}

func (m *MemorySnapshotStore) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.DailySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.DailySnapshot
	for _, s := range m.snapshots[projectID] {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if offset >= len(out) {
		return []*domain.DailySnapshot{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// MemoryProjectRepository is an in-memory usecase.ProjectRepository.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []*domain.Project

	ListActiveFunc func(ctx context.Context) ([]*domain.Project, error)
}

func NewMemoryProjectRepository(projects ...*domain.Project) *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: projects}
}

func (m *MemoryProjectRepository) Add(p *domain.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = append(m.projects, p)
}

func (m *MemoryProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
}

func (m *MemoryProjectRepository) ListActive(ctx context.Context) ([]*domain.Project, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Project
	for _, p := range m.projects {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// SequenceIDGenerator returns deterministic IDs.
type SequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("snap-%04d", g.n)
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []domain.SnapshotSavedEvent
	Err    error
}

func (p *RecordingPublisher) PublishSnapshotSaved(ctx context.Context, event domain.SnapshotSavedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}
