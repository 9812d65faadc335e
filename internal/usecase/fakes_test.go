package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
)

type fakeReportRepo struct {
	mu      sync.Mutex
	nextID  int64
	reports map[int64]*entity.Report
	err     error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[int64]*entity.Report{}}
}

func (f *fakeReportRepo) List(ctx context.Context) ([]*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Report{}
	for _, r := range f.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReportRepo) Get(ctx context.Context, id int64) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeReportRepo) Create(ctx context.Context, r *entity.Report) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	cp := *r
	cp.ID = f.nextID
	f.reports[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeReportRepo) Update(ctx context.Context, id int64, p entity.ReportPatch) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Company != nil {
		r.Company = p.Company
	}
	if p.Year != nil {
		r.Year = p.Year
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r, nil
}

func (f *fakeReportRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) ESGBreakdown(ctx context.Context) ([]*entity.ESGBreakdownItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := map[string]*entity.ESGBreakdownItem{}
	for _, r := range f.reports {
		if r.Company == nil || r.ESGScore == nil {
			continue
		}
		item, ok := sums[*r.Company]
		if !ok {
			item = &entity.ESGBreakdownItem{Company: *r.Company}
			sums[*r.Company] = item
		}
		item.AverageScore = (item.AverageScore*float64(item.Reports) + *r.ESGScore) / float64(item.Reports+1)
		item.Reports++
	}
	out := []*entity.ESGBreakdownItem{}
	for _, v := range sums {
		out = append(out, v)
	}
	return out, nil
}

type fakeFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (f *fakeFileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = data
	return "/uploads/" + name, nil
}

func (f *fakeFileStore) Read(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.files[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeFileStore) Remove(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[name]; !ok {
		return repository.ErrNotFound
	}
	delete(f.files, name)
	return nil
}

func (f *fakeFileStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// fakeText returns the document bytes as text, or err when set.
type fakeText struct {
	err error
}

func (f fakeText) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return string(data), nil
}

type fakeSheets struct{}

func (fakeSheets) ReportsXLSX(r []*entity.Report) ([]byte, error) { return []byte("xlsx"), nil }
func (fakeSheets) ReportsCSV(r []*entity.Report) ([]byte, error) { return []byte("csv"), nil }
func (fakeSheets) ContactsXLSX(c []*entity.Contact) ([]byte, error) { return []byte("contacts"), nil }

type fakeRenderer struct {
	html string
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.4"), nil
}

type fakeQueue struct {
	mu    sync.Mutex
	items []string
}

func (q *fakeQueue) Push(ctx context.Context, path string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, path)
	return nil
}

func (q *fakeQueue) Pop(ctx context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", repository.ErrNotFound
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p, nil
}

func (q *fakeQueue) Size(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.items)), nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	pending map[int64]*entity.PendingUser
	users   map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{pending: map[int64]*entity.PendingUser{}, users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) CreatePending(ctx context.Context, u *entity.PendingUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pending {
		if p.Email == u.Email {
			return repository.ErrConflict
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	f.pending[cp.ID] = &cp
	return nil
}

func (f *fakeUserRepo) ListPending(ctx context.Context) ([]*entity.PendingUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.PendingUser{}
	for _, p := range f.pending {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeUserRepo) Approve(ctx context.Context, id int64, role string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pending[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.pending, id)
	f.nextID++
	u := &entity.User{ID: f.nextID, Name: p.Name, Email: p.Email, Role: role, PasswordHash: p.PasswordHash}
	f.users[strings.ToLower(u.Email)] = u
	return u, nil
}

func (f *fakeUserRepo) DeletePending(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pending[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.pending, id)
	return nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	f.users[strings.ToLower(cp.Email)] = &cp
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
	ttls     map[string]time.Duration
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*entity.Session{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSessions) Save(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.Token] = s
	f.ttls[s.Token] = ttl
	return nil
}

func (f *fakeSessions) Find(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

type fakeSearchRepo struct {
	calls   int
	results []entity.SearchResult
}

func (f *fakeSearchRepo) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	f.calls++
	return f.results, nil
}

type fakeSearchCache struct {
	entries map[string][]entity.SearchResult
}

func (f *fakeSearchCache) Get(ctx context.Context, q string) ([]entity.SearchResult, bool, error) {
	r, ok := f.entries[strings.ToLower(q)]
	return r, ok, nil
}

func (f *fakeSearchCache) Set(ctx context.Context, q string, r []entity.SearchResult, ttl time.Duration) error {
	f.entries[strings.ToLower(q)] = r
	return nil
}

type fakeReminderRepo struct {
	reminder     *entity.Reminder
	notification *entity.Notification
}

func (f *fakeReminderRepo) List(ctx context.Context) ([]*entity.Reminder, error) { return nil, nil }

func (f *fakeReminderRepo) CreateWithNotification(ctx context.Context, r *entity.Reminder, n *entity.Notification) (*entity.Reminder, error) {
	f.reminder, f.notification = r, n
	cp := *r
	cp.ID = 1
	return &cp, nil
}

func (f *fakeReminderRepo) SetDone(ctx context.Context, id int64, done bool) (*entity.Reminder, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeReminderRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeActivityRepo struct {
	created *entity.Activity
}

func (f *fakeActivityRepo) List(ctx context.Context) ([]*entity.Activity, error) { return nil, nil }

func (f *fakeActivityRepo) Create(ctx context.Context, a *entity.Activity) (*entity.Activity, error) {
	f.created = a
	return a, nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeAnalyticsRepo struct {
	points  []*entity.AnalyticsPoint
	kpi     entity.KPI
	metrics entity.DashboardMetrics
}

func (f *fakeAnalyticsRepo) List(ctx context.Context) ([]*entity.AnalyticsPoint, error) {
	return f.points, nil
}

func (f *fakeAnalyticsRepo) Create(ctx context.Context, p *entity.AnalyticsPoint) (*entity.AnalyticsPoint, error) {
	f.points = append(f.points, p)
	return p, nil
}

func (f *fakeAnalyticsRepo) ListByMetricPrefix(ctx context.Context, prefix string) ([]*entity.AnalyticsPoint, error) {
	out := []*entity.AnalyticsPoint{}
	for _, p := range f.points {
		if strings.HasPrefix(p.Metric, prefix) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) KPI(ctx context.Context) (*entity.KPI, error) {
	k := f.kpi
	return &k, nil
}

func (f *fakeAnalyticsRepo) Metrics(ctx context.Context) (*entity.DashboardMetrics, error) {
	m := f.metrics
	return &m, nil
}
