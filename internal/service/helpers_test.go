package service

import (
	"context"
	"sync"
	"testing"

	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/repository/memory"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/pkg/search"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []dto.DocumentEventMessage
}

func (p *recordingPublisher) Publish(ctx context.Context, event dto.DocumentEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeIndex struct {
	mu      sync.Mutex
	healthy bool
	records map[string]search.Record
}

func newFakeIndex(healthy bool) *fakeIndex {
	return &fakeIndex{healthy: healthy, records: map[string]search.Record{}}
}

func (f *fakeIndex) Healthy() bool { return f.healthy }

func (f *fakeIndex) Upsert(record search.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.Id] = record
	return nil
}

func (f *fakeIndex) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeIndex) Query(organizationId, q string, limit int) ([]search.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []search.Record
	for _, r := range f.records {
		if r.OrganizationId == organizationId {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeIndex) Close() {}

func (f *fakeIndex) record(id string) (search.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	return r, ok
}

type fixture struct {
	uowFactory   unitofwork.RepositoryFactory
	publisher    *recordingPublisher
	documents    IDocumentService
	associations IAssociationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		uowFactory: memory.NewRepositoryFactory(memory.NewStore()),
		publisher:  &recordingPublisher{},
	}
	log := logger.NewNopLogger()
	f.documents = NewDocumentService(f.uowFactory, f.publisher, log, nil)
	f.associations = NewAssociationService(f.uowFactory, f.publisher, DefaultTargetRules(), log, nil)
	return f
}

func (f *fixture) createDocument(t *testing.T, org string, req *dto.CreateDocumentRequest) *dto.DocumentResponse {
	t.Helper()
	res, err := f.documents.Create(context.Background(), org, req)
	require.NoError(t, err)
	return res
}

func (f *fixture) createTarget(t *testing.T, org string, kind entity.TargetKind, id string) {
	t.Helper()
	ctx := context.Background()
	err := f.uowFactory.NewUnitOfWork(ctx).TargetRepository().Create(ctx, &entity.Target{
		Id:             id,
		Kind:           kind,
		OrganizationId: org,
		Name:           id,
	})
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }
