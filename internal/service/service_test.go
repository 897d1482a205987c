package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	db          *sql.DB
	templates   *repository.SQLiteTemplateRepo
	results     *repository.SQLiteResultRepo
	templateSvc TemplateService
	assessSvc   AssessmentService
	observer    *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	templates := repository.NewSQLiteTemplateRepo(database)
	results := repository.NewSQLiteResultRepo(database)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	return &fixture{
		db:          database,
		templates:   templates,
		results:     results,
		templateSvc: NewTemplateService(templates, uow, obs),
		assessSvc:   NewAssessmentService(templates, results, uow, obs),
		observer:    obs,
	}
}

func (f *fixture) seed(t *testing.T, opts ...testutil.TemplateOption) *domain.AssessmentTemplate {
	t.Helper()
	tmpl := testutil.NewTestTemplate("Seeded", opts...)
	require.NoError(t, f.templates.Create(context.Background(), tmpl))
	return tmpl
}
