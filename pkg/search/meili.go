package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"
	"github.com/sony/gobreaker"
)

var ErrUnavailable = errors.New("search index unavailable")

// Meili is an Index backed by Meilisearch. Every call goes through a circuit breaker so
// a dead search node costs one fast failure per request instead of a timeout.
type Meili struct {
	client  meili.ServiceManager
	index   string
	breaker *gobreaker.CircuitBreaker
	healthy atomic.Bool
	done    chan struct{}
}

func NewMeili(url, apiKey, index string) *Meili {
	m := &Meili{
		client: meili.New(url, meili.WithAPIKey(apiKey)),
		index:  index,
		done:   make(chan struct{}),
	}
	m.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "meilisearch",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("search: circuit breaker '%s' %v -> %v", name, from, to)
		},
	})

	if _, err := m.client.Health(); err != nil {
		log.Printf("search: meilisearch unavailable at %s: %v", url, err)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{Uid: m.index, PrimaryKey: "id"}); err != nil {
		log.Printf("search: create index %s (may already exist): %v", m.index, err)
	}

	index := m.client.Index(m.index)
	filterable := []interface{}{"organization_id", "type", "visibility"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("search: update filterable attrs for %s: %v", m.index, err)
	}
	searchable := []string{"title", "content"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("search: update searchable attrs for %s: %v", m.index, err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("search: meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

func (m *Meili) Close() {
	close(m.done)
}

// Healthy is false while the node is unreachable or the breaker is open.
func (m *Meili) Healthy() bool {
	return m.healthy.Load() && m.breaker.State() != gobreaker.StateOpen
}

func (m *Meili) Upsert(record Record) error {
	_, err := m.execute(func() (interface{}, error) {
		return m.client.Index(m.index).AddDocuments([]Record{record}, nil)
	})
	return err
}

func (m *Meili) Delete(id string) error {
	_, err := m.execute(func() (interface{}, error) {
		return m.client.Index(m.index).DeleteDocument(id, nil)
	})
	return err
}

func (m *Meili) Query(organizationId, q string, limit int) ([]Record, error) {
	if !m.healthy.Load() {
		return nil, ErrUnavailable
	}

	res, err := m.execute(func() (interface{}, error) {
		return m.client.Index(m.index).Search(q, &meili.SearchRequest{
			Limit:  int64(limit),
			Filter: fmt.Sprintf("organization_id = %q", organizationId),
		})
	})
	if err != nil {
		return nil, err
	}

	resp := res.(*meili.SearchResponse)
	records := make([]Record, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		records = append(records, hitToRecord(hit))
	}
	return records, nil
}

func (m *Meili) execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := m.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return res, err
}

func hitToRecord(hit meili.Hit) Record {
	return Record{
		Id:             decodeString(hit, "id"),
		OrganizationId: decodeString(hit, "organization_id"),
		Title:          decodeString(hit, "title"),
		Type:           decodeString(hit, "type"),
		Visibility:     decodeString(hit, "visibility"),
	}
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
