package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/thbteam/patient-dashboard/source"
)

// Session is the data loaded for a single dashboard session.
type Session struct {
	Dataset    *Dataset
	Assets     *source.Assets
	LoadedTime time.Time
}

// Service keeps one dataset per session. Sessions are reloaded wholesale after eviction or expiry.
type Service interface {
	Load(ctx context.Context, sessionId string) (*Session, error)
	Get(ctx context.Context, sessionId string) (*Session, error)
	Evict(sessionId string)
}

type cacheEntry struct {
	session *Session
	expiry  time.Time
}

func (c cacheEntry) IsExpired() bool {
	return time.Now().After(c.expiry)
}

type service struct {
	expiration time.Duration
	layout     Layout
	loader     source.Loader
	logger     *zap.SugaredLogger

	lru   *simplelru.LRU
	mu    *sync.Mutex
	group *singleflight.Group
}

var _ Service = &service{}

func NewService(config *Config, layout Layout, loader source.Loader, logger *zap.SugaredLogger) (Service, error) {
	var onEvict simplelru.EvictCallback
	lru, err := simplelru.NewLRU(config.CacheSize, onEvict)
	if err != nil {
		return nil, err
	}

	return &service{
		expiration: config.CacheExpiration,
		layout:     layout,
		loader:     loader,
		logger:     logger,
		lru:        lru,
		mu:         &sync.Mutex{},
		group:      &singleflight.Group{},
	}, nil
}

// Load always fetches and cleans a fresh copy of the dataset for the session.
func (s *service) Load(ctx context.Context, sessionId string) (*Session, error) {
	res, err, _ := s.group.Do(sessionId, func() (interface{}, error) {
		session, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.setCacheEntry(sessionId, session)
		return session, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Session), nil
}

// Get returns the session's dataset, loading it when it isn't cached.
func (s *service) Get(ctx context.Context, sessionId string) (*Session, error) {
	if session := s.getCachedEntry(sessionId); session != nil {
		return session, nil
	}
	return s.Load(ctx, sessionId)
}

func (s *service) Evict(sessionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lru.Remove(sessionId)
}

func (s *service) load(ctx context.Context) (*Session, error) {
	assets, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := ReadWorkbook(assets.Workbook)
	if err != nil {
		return nil, err
	}

	ds, err := Clean(raw, s.layout)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("loaded patient dataset",
		"rows", ds.Len(),
		"columns", len(ds.Columns),
		"rawPatients", ds.RawPatients,
		"cleanedPatients", ds.CleanedPatients,
		"tests", len(ds.Groups.Tests),
		"diagnoses", len(ds.Groups.Diagnoses),
		"medications", len(ds.Groups.Medications),
	)

	return &Session{
		Dataset:    ds,
		Assets:     assets,
		LoadedTime: time.Now(),
	}, nil
}

func (s *service) getCachedEntry(sessionId string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.lru.Get(sessionId); ok {
		entry := e.(cacheEntry)
		if entry.IsExpired() {
			s.lru.Remove(sessionId)
			return nil
		}
		return entry.session
	}

	return nil
}

func (s *service) setCacheEntry(sessionId string, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.lru.Add(sessionId, cacheEntry{
		session: session,
		expiry:  time.Now().Add(s.expiration),
	})
}
