// Package directory keeps the live matches of the process, addressable by their generated identifier.
package directory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/match"
	"gitlab.com/prestrafe/spaceteam/model"
)

var (
	operationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spaceteam",
		Subsystem: "directory",
		Name:      "operations",
		Help:      "Counts the number of operations on the match directory",
	}, []string{"operation"})
)

// Defines the public API of the match directory. Matches register themselves once created and unregister while they are
// disposed. The directory never calls into a match while holding its own lock.
type Directory interface {
	// Assigns a fresh identifier to the match and makes it addressable by it.
	Register(m *match.Match) string
	// Forgets the match with the given identifier, if present.
	Unregister(id string)
	// Returns the match with the given identifier, if present.
	Get(id string) (m *match.Match, present bool)
	// Returns the lobby info of every public match that can still be joined, ordered by name.
	Public() []model.LobbyInfo
	// Returns the lobby info of every registered match, ordered by name.
	All() []model.LobbyInfo
	// Returns the number of registered matches.
	Len() int
	// Disposes every registered match and releases all resources held by the directory.
	Close()
}

type directory struct {
	internalCache *cache.Cache
	logger        *zap.Logger
}

// Creates a new, empty match directory.
func New(logger *zap.Logger) Directory {
	return newDirectory(logger)
}

func newDirectory(logger *zap.Logger) *directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &directory{cache.New(cache.NoExpiration, 0), logger.Named("directory")}
}

func (d *directory) Register(m *match.Match) string {
	operationsCounter.WithLabelValues("register").Inc()

	id := uuid.NewString()
	m.SetID(id)
	d.internalCache.Set(id, m, cache.NoExpiration)

	d.logger.Debug("Match registered", zap.String("match", id))
	return id
}

func (d *directory) Unregister(id string) {
	operationsCounter.WithLabelValues("unregister").Inc()

	d.internalCache.Delete(id)
	d.logger.Debug("Match unregistered", zap.String("match", id))
}

func (d *directory) Get(id string) (m *match.Match, present bool) {
	operationsCounter.WithLabelValues("get").Inc()

	if cached, isCached := d.internalCache.Get(id); isCached {
		m = cached.(*match.Match)
		present = isCached
	}
	return
}

func (d *directory) Public() []model.LobbyInfo {
	operationsCounter.WithLabelValues("public").Inc()

	listings := make([]model.LobbyInfo, 0)
	for _, m := range d.matches() {
		if info, listed := m.Listing(); listed {
			listings = append(listings, info)
		}
	}
	sortByName(listings)
	return listings
}

func (d *directory) All() []model.LobbyInfo {
	operationsCounter.WithLabelValues("all").Inc()

	listings := make([]model.LobbyInfo, 0)
	for _, m := range d.matches() {
		listings = append(listings, m.LobbyInfo())
	}
	sortByName(listings)
	return listings
}

func (d *directory) Len() int {
	return d.internalCache.ItemCount()
}

func (d *directory) Close() {
	for _, m := range d.matches() {
		if err := m.Dispose(); err != nil {
			d.logger.Debug("Match already disposing", zap.Error(err))
		}
	}
	d.internalCache.Flush()
}

// matches copies the registered matches so that callers can lock them without holding the cache lock.
func (d *directory) matches() []*match.Match {
	items := d.internalCache.Items()
	matches := make([]*match.Match, 0, len(items))
	for _, item := range items {
		matches = append(matches, item.Object.(*match.Match))
	}
	return matches
}

func sortByName(listings []model.LobbyInfo) {
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].Name != listings[j].Name {
			return listings[i].Name < listings[j].Name
		}
		return listings[i].GameID < listings[j].GameID
	})
}
