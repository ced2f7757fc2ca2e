package service

import (
	"context"
	"io"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	calls               int
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockMonthRepo struct {
	createFunc   func(ctx context.Context, month *entity.Month) error
	getByIDFunc  func(ctx context.Context, id int64) (*entity.Month, error)
	getByKeyFunc func(ctx context.Context, key string) (*entity.Month, error)
	listFunc     func(ctx context.Context) ([]*entity.Month, error)
}

func (m *mockMonthRepo) Create(ctx context.Context, month *entity.Month) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, month)
	}
	month.ID = 1
	return nil
}

func (m *mockMonthRepo) GetByID(ctx context.Context, id int64) (*entity.Month, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Month{ID: id, MonthKey: "2026-03", Label: "Mar 2026"}, nil
}

func (m *mockMonthRepo) GetByKey(ctx context.Context, key string) (*entity.Month, error) {
	if m.getByKeyFunc != nil {
		return m.getByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockMonthRepo) List(ctx context.Context) ([]*entity.Month, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockPORepo struct {
	createFunc        func(ctx context.Context, po *entity.POFolder) error
	getByIDFunc       func(ctx context.Context, id int64) (*entity.POFolder, error)
	listSummariesFunc func(ctx context.Context) ([]*entity.POSummary, error)
	listByMonthFunc   func(ctx context.Context, monthID int64) ([]*entity.POSummary, error)
	touched           []int64
}

func (m *mockPORepo) Create(ctx context.Context, po *entity.POFolder) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, po)
	}
	po.ID = 10
	return nil
}

func (m *mockPORepo) GetByID(ctx context.Context, id int64) (*entity.POFolder, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPORepo) ListSummaries(ctx context.Context) ([]*entity.POSummary, error) {
	if m.listSummariesFunc != nil {
		return m.listSummariesFunc(ctx)
	}
	return nil, nil
}

func (m *mockPORepo) ListSummariesByMonth(ctx context.Context, monthID int64) ([]*entity.POSummary, error) {
	if m.listByMonthFunc != nil {
		return m.listByMonthFunc(ctx, monthID)
	}
	return nil, nil
}

func (m *mockPORepo) Touch(ctx context.Context, id int64, at time.Time) error {
	m.touched = append(m.touched, id)
	return nil
}

type mockStepRepo struct {
	steps           map[int64]*entity.Step
	createFunc      func(ctx context.Context, step *entity.Step) error
	pendingFunc     func(ctx context.Context, before time.Time) ([]*entity.PendingPayment, error)
	updateStateFunc func(ctx context.Context, id int64, actionDone, isDone bool, at time.Time) error
	created         []*entity.Step
}

func (m *mockStepRepo) Create(ctx context.Context, step *entity.Step) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, step); err != nil {
			return err
		}
	}
	step.ID = int64(len(m.created) + 1)
	m.created = append(m.created, step)
	return nil
}

func (m *mockStepRepo) GetByID(ctx context.Context, id int64) (*entity.Step, error) {
	if s, ok := m.steps[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (m *mockStepRepo) ListByPOID(ctx context.Context, poID int64) ([]*entity.Step, error) {
	var out []*entity.Step
	for no := 1; no <= entity.StepCount; no++ {
		for _, s := range m.steps {
			if s.POID == poID && s.StepNo == no {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (m *mockStepRepo) UpdateState(ctx context.Context, id int64, actionDone, isDone bool, at time.Time) error {
	if m.updateStateFunc != nil {
		return m.updateStateFunc(ctx, id, actionDone, isDone, at)
	}
	if s, ok := m.steps[id]; ok {
		s.ActionDone = actionDone
		s.IsDone = isDone
		s.UpdatedAt = at
	}
	return nil
}

func (m *mockStepRepo) ListPendingPayments(ctx context.Context, before time.Time) ([]*entity.PendingPayment, error) {
	if m.pendingFunc != nil {
		return m.pendingFunc(ctx, before)
	}
	return nil, nil
}

type mockFileRepo struct {
	files      []*entity.StepFile
	createFunc func(ctx context.Context, file *entity.StepFile) error
}

func (m *mockFileRepo) Create(ctx context.Context, file *entity.StepFile) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, file); err != nil {
			return err
		}
	}
	file.ID = int64(len(m.files) + 1)
	m.files = append(m.files, file)
	return nil
}

func (m *mockFileRepo) HasAny(ctx context.Context, stepID int64) (bool, error) {
	for _, f := range m.files {
		if f.StepID == stepID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFileRepo) ListByPOID(ctx context.Context, poID int64) ([]*entity.StepFile, error) {
	return m.files, nil
}

type mockStorage struct {
	stored  []string
	deleted []string
}

func (m *mockStorage) Store(ctx context.Context, originalName string, content io.Reader) (*port.StoredFile, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	name := "1000_" + originalName
	m.stored = append(m.stored, name)
	return &port.StoredFile{Name: name, PublicPath: "/uploads/" + name, Size: int64(len(data))}, nil
}

func (m *mockStorage) Delete(ctx context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockStorage) GetFullPath(name string) string {
	return "/tmp/" + name
}

type mockTrackedRepo struct {
	pos        map[int64]*entity.TrackedPO
	listFunc   func(ctx context.Context, filter entity.TrackedPOFilter) ([]*entity.TrackedPO, error)
	stages     []string
	lastFilter entity.TrackedPOFilter
	updates    int
}

func (m *mockTrackedRepo) Create(ctx context.Context, po *entity.TrackedPO) error {
	if m.pos == nil {
		m.pos = map[int64]*entity.TrackedPO{}
	}
	po.ID = int64(len(m.pos) + 1)
	copied := *po
	m.pos[po.ID] = &copied
	return nil
}

func (m *mockTrackedRepo) GetByID(ctx context.Context, id int64) (*entity.TrackedPO, error) {
	if po, ok := m.pos[id]; ok {
		copied := *po
		return &copied, nil
	}
	return nil, nil
}

func (m *mockTrackedRepo) Update(ctx context.Context, po *entity.TrackedPO) error {
	m.updates++
	copied := *po
	m.pos[po.ID] = &copied
	return nil
}

func (m *mockTrackedRepo) List(ctx context.Context, filter entity.TrackedPOFilter) ([]*entity.TrackedPO, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	var out []*entity.TrackedPO
	for _, po := range m.pos {
		out = append(out, po)
	}
	return out, nil
}

func (m *mockTrackedRepo) DistinctStages(ctx context.Context) ([]string, error) {
	return m.stages, nil
}

type mockDocRepo struct {
	docs []*entity.TrackedPODocument
}

func (m *mockDocRepo) Create(ctx context.Context, doc *entity.TrackedPODocument) error {
	doc.ID = int64(len(m.docs) + 1)
	m.docs = append(m.docs, doc)
	return nil
}

func (m *mockDocRepo) GetByURL(ctx context.Context, trackedPOID int64, url string) (*entity.TrackedPODocument, error) {
	for _, d := range m.docs {
		if d.TrackedPOID == trackedPOID && d.URL == url {
			return d, nil
		}
	}
	return nil, nil
}

func (m *mockDocRepo) ListByTrackedPOID(ctx context.Context, trackedPOID int64) ([]*entity.TrackedPODocument, error) {
	return m.docs, nil
}

type mockLogRepo struct {
	logs []*entity.StageLog
}

func (m *mockLogRepo) Create(ctx context.Context, log *entity.StageLog) error {
	log.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockLogRepo) ListByTrackedPOID(ctx context.Context, trackedPOID int64) ([]*entity.StageLog, error) {
	return m.logs, nil
}

type mockNotifier struct {
	messages []string
	err      error
}

func (m *mockNotifier) Notify(ctx context.Context, message string) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, message)
	return nil
}

type mockReportWriter struct {
	report *port.MonthReport
}

func (m *mockReportWriter) WriteMonthReport(w io.Writer, report *port.MonthReport) error {
	m.report = report
	_, err := w.Write([]byte("report"))
	return err
}

func (m *mockReportWriter) ContentType() string { return "text/plain" }
func (m *mockReportWriter) Extension() string   { return ".txt" }

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
