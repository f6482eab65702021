package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/prestrafe/spaceteam/match"
)

type silentNotifier struct{}

func (silentNotifier) Notify(string, string, interface{}) {}
func (silentNotifier) Broadcast(string, string, interface{}) {}
func (silentNotifier) EnterRoom(string, string) {}
func (silentNotifier) LeaveRoom(string, string) {}

type participant string

func (p participant) ID() string { return string(p) }
func (p participant) Bind(*match.Match) {}
func (p participant) Unbind(*match.Match) {}

func newMatch(d *directory, name string, public bool) *match.Match {
	m := match.New(name, public, match.DefaultSettings(), match.Dependencies{
		Notifier:  silentNotifier{},
		Directory: d,
	})
	d.Register(m)
	return m
}

func TestRegistering(t *testing.T) {
	d := newDirectory(nil)
	m := newMatch(d, "crew", true)

	require.NotEmpty(t, m.ID())
	found, present := d.Get(m.ID())
	assert.True(t, present)
	assert.Same(t, m, found)
	assert.Equal(t, 1, d.Len())

	d.Unregister(m.ID())
	found, present = d.Get(m.ID())
	assert.False(t, present)
	assert.Nil(t, found)
}

func TestRegisteringAssignsDistinctIDs(t *testing.T) {
	d := newDirectory(nil)
	first := newMatch(d, "first", true)
	second := newMatch(d, "second", true)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 2, d.Len())
}

func TestDisposeUnregisters(t *testing.T) {
	d := newDirectory(nil)
	m := newMatch(d, "crew", true)

	require.NoError(t, m.Dispose())
	_, present := d.Get(m.ID())
	assert.False(t, present)
}

func TestPublicListing(t *testing.T) {
	d := newDirectory(nil)
	beta := newMatch(d, "beta", true)
	newMatch(d, "hidden", false)
	alpha := newMatch(d, "alpha", true)

	listings := d.Public()
	require.Len(t, listings, 2)
	assert.Equal(t, alpha.ID(), listings[0].GameID)
	assert.Equal(t, beta.ID(), listings[1].GameID)
	assert.Len(t, d.All(), 3)

	require.NoError(t, beta.Join(participant("a")))
	require.NoError(t, beta.ToggleReady(participant("a")))
	require.NoError(t, beta.Join(participant("b")))
	require.NoError(t, beta.ToggleReady(participant("b")))
	require.NoError(t, beta.Start())

	listings = d.Public()
	require.Len(t, listings, 1)
	assert.Equal(t, "alpha", listings[0].Name)
	assert.NotNil(t, d.Public())
}

func TestClose(t *testing.T) {
	d := newDirectory(nil)
	m := newMatch(d, "crew", true)
	newMatch(d, "other", false)

	d.Close()
	assert.Zero(t, d.Len())
	assert.ErrorIs(t, m.Dispose(), match.ErrDisposing)
}
