// Package match runs the per-match state machine: lobby, levels, the health economy, timed instructions and the
// crew-wide special events.
package match

import (
	"math/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/board"
	"gitlab.com/prestrafe/spaceteam/difficulty"
	"gitlab.com/prestrafe/spaceteam/instruction"
	"gitlab.com/prestrafe/spaceteam/labels"
	"gitlab.com/prestrafe/spaceteam/model"
	"gitlab.com/prestrafe/spaceteam/schedule"
)

const (
	MinPlayers     = 2
	MaxPlayers     = 4
	maxDeathLimit  = 90.0
	levelCompleted = 100.0
)

// Settings are the process-wide knobs every match is created with.
type Settings struct {
	// Lets a single participant start and play alone, always on their own board.
	SinglePlayer bool
	// Health at the start of every level.
	StartingHealth float64
	// Period of the health drain.
	HealthTick time.Duration
	// Delay after which a participant's special-event flag falls back to false.
	SpecialResetDelay time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		StartingHealth:    100,
		HealthTick:        2 * time.Second,
		SpecialResetDelay: 2 * time.Second,
	}
}

// Dependencies are the services a match is wired to. Only Notifier and Directory are mandatory.
type Dependencies struct {
	Notifier  Notifier
	Directory Directory
	Words     *labels.Words
	Clock     clock.Clock
	Rand      *rand.Rand
	Logger    *zap.Logger
}

// Slot is one participant's seat.
type Slot struct {
	participant Participant
	ready       bool
	host        bool
	introDone   bool

	board       *board.Board
	instruction *instruction.Instruction
	expiry      *schedule.Timer

	defeating [3]bool
	resets    [3]*schedule.Timer
}

func (s *Slot) ID() string {
	return s.participant.ID()
}

func (s *Slot) cancelTimers() {
	s.expiry.Cancel()
	for _, reset := range s.resets {
		if reset != nil {
			reset.Cancel()
		}
	}
}

// Match is one game session. Every exported method takes the match lock, and so does every timer callback, which
// serializes all mutation of the match.
type Match struct {
	mu sync.Mutex

	id         string
	name       string
	public     bool
	maxPlayers int
	slots      []*Slot

	level        int
	health       float64
	deathLimit   float64
	playing      bool
	disposing    bool
	over         bool
	levelStarted bool

	instructions []*instruction.Instruction
	params       difficulty.Parameters
	settings     Settings

	notifier  Notifier
	directory Directory
	words     *labels.Words
	rng       *rand.Rand
	logger    *zap.Logger

	scheduler *schedule.Scheduler
	drain     *schedule.Timer
	warmup    *schedule.Timer
	boards    *board.Generator
	factory   *instruction.Factory
}

// Creates a new match in the lobby state. The match has no id until a directory assigns one with SetID.
func New(name string, public bool, settings Settings, deps Dependencies) *Match {
	if deps.Words == nil {
		deps.Words = labels.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	m := &Match{
		name:       name,
		public:     public,
		maxPlayers: MinPlayers,
		level:      -1,
		health:     settings.StartingHealth,
		params:     difficulty.Base,
		settings:   settings,
		notifier:   deps.Notifier,
		directory:  deps.Directory,
		words:      deps.Words,
		rng:        deps.Rand,
		logger:     deps.Logger.Named("match"),
		boards:     board.NewGenerator(deps.Rand),
		factory:    instruction.NewFactory(deps.Rand),
	}

	m.scheduler = schedule.New(deps.Clock, &m.mu, m.logger)
	m.scheduler.OnPanic(m.abandon)
	m.drain = m.scheduler.NewTimer("health_drain")
	m.warmup = m.scheduler.NewTimer("warmup")

	lifecycleCounter.WithLabelValues("created").Inc()
	return m
}

// SetID assigns the match identifier. Assigning it twice is a programming error.
func (m *Match) SetID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id != "" {
		panic("match: id cannot be changed")
	}
	m.id = id
	m.logger = m.logger.With(zap.String("match", id))
}

func (m *Match) ID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

func (m *Match) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

func (m *Match) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// IsHost reports whether the session holds the host seat.
func (m *Match) IsHost(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot := m.slotOf(sessionID)
	return slot != nil && slot.host
}

func (m *Match) LobbyInfo() model.LobbyInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbyInfo()
}

// Listing returns the lobby info and whether the match belongs in the public listing: public, still in the lobby
// and not disposing.
func (m *Match) Listing() (model.LobbyInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbyInfo(), m.public && !m.playing && !m.disposing
}

func (m *Match) GameInfo() model.GameInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameInfo()
}

func (m *Match) room() string {
	return "game/" + m.id
}

func (m *Match) lobbyInfo() model.LobbyInfo {
	return model.LobbyInfo{
		Name:       m.name,
		GameID:     m.id,
		Players:    len(m.slots),
		MaxPlayers: m.maxPlayers,
		Public:     m.public,
	}
}

func (m *Match) gameInfo() model.GameInfo {
	info := model.GameInfo{LobbyInfo: m.lobbyInfo()}
	for _, slot := range m.slots {
		info.Slots = append(info.Slots, &model.SlotInfo{UID: slot.ID(), Ready: slot.ready, Host: slot.host})
	}
	for i := len(m.slots); i < m.maxPlayers; i++ {
		info.Slots = append(info.Slots, nil)
	}
	return info
}

func (m *Match) slotOf(sessionID string) *Slot {
	for _, slot := range m.slots {
		if slot.ID() == sessionID {
			return slot
		}
	}
	return nil
}

func (m *Match) newSlot(p Participant, host bool) *Slot {
	slot := &Slot{
		participant: p,
		host:        host,
		expiry:      m.scheduler.NewTimer("expiry/" + p.ID()),
	}
	slot.resets[instruction.Asteroid] = m.scheduler.NewTimer("reset_asteroid/" + p.ID())
	slot.resets[instruction.BlackHole] = m.scheduler.NewTimer("reset_black_hole/" + p.ID())
	return slot
}

func (m *Match) notifyGame() {
	m.notifier.Broadcast(m.room(), model.EventGameInfo, m.gameInfo())
}

func (m *Match) notifyLobby() {
	if m.public {
		m.notifier.Broadcast(LobbyRoom, model.EventLobbyInfo, m.lobbyInfo())
	}
}

func (m *Match) notifyLobbyDispose() {
	m.notifier.Broadcast(LobbyRoom, model.EventLobbyDisposed, model.GameID{GameID: m.id})
}

func (m *Match) notifyHealth() {
	m.notifier.Broadcast(m.room(), model.EventHealthInfo, model.HealthInfo{Health: m.health, DeathLimit: m.deathLimit})
}

// abandon runs with the lock held after a timer callback panicked.
func (m *Match) abandon(recovered interface{}) {
	if m.disposing {
		return
	}
	m.logger.Error("Abandoning match after a failed timer", zap.Any("panic", recovered))
	_ = m.dispose()
}
