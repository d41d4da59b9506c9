package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, participantIDs ...string) *MemoryStore {
	t.Helper()
	logging.Log = logrus.New()

	store := NewMemoryStore()
	for _, id := range participantIDs {
		err := store.Participants().Create(context.Background(), &Participant{ID: id, Name: "Participant " + id})
		require.NoError(t, err)
	}
	return store
}

func entry(visitorID, participantID string) *VoteLedgerEntry {
	return &VoteLedgerEntry{
		VisitorID:     visitorID,
		EntryID:       "e-" + visitorID,
		ParticipantID: participantID,
		CreatedAt:     time.Now().UTC(),
	}
}

// tallyMatchesLedger asserts the central invariant: every participant's
// VoteCount equals the number of ledger entries referencing it.
func tallyMatchesLedger(t *testing.T, store *MemoryStore) {
	t.Helper()

	entries, err := store.Ledger().GetAll(context.Background())
	require.NoError(t, err)
	perParticipant := make(map[string]int)
	for _, e := range entries {
		perParticipant[e.ParticipantID]++
	}

	participants, err := store.Participants().GetAll(context.Background())
	require.NoError(t, err)
	for _, p := range participants {
		assert.Equal(t, perParticipant[p.ID], p.VoteCount, "tally for %s must match ledger", p.ID)
	}
}

func TestAdmitVote(t *testing.T) {
	store := newTestStore(t, "p1", "p2")
	admission := store.Admission()

	t.Run("first admission succeeds", func(t *testing.T) {
		require.NoError(t, admission.Admit(context.Background(), entry("v1", "p1")))
		tallyMatchesLedger(t, store)
	})

	t.Run("same visitor rejected for a different participant", func(t *testing.T) {
		err := admission.Admit(context.Background(), entry("v1", "p2"))
		assert.True(t, errors.Is(err, ErrVisitorAlreadyVoted))
		tallyMatchesLedger(t, store)
	})

	t.Run("unknown participant rejected without ledger write", func(t *testing.T) {
		err := admission.Admit(context.Background(), entry("v2", "missing"))
		assert.True(t, errors.Is(err, ErrParticipantNotFound))

		e, err := store.Ledger().Get(context.Background(), "v2")
		require.NoError(t, err)
		assert.Nil(t, e, "rejected admission must not leave a ledger entry")
	})
}

func TestAdmitVoteConcurrentSameVisitor(t *testing.T) {
	store := newTestStore(t, "p1", "p2")
	admission := store.Admission()

	const attempts = 64
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pid := "p1"
			if i%2 == 1 {
				pid = "p2"
			}
			e := entry("v-race", pid)
			e.EntryID = fmt.Sprintf("e-%d", i)
			results[i] = admission.Admit(context.Background(), e)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, ErrVisitorAlreadyVoted))
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one racing admission wins")
	tallyMatchesLedger(t, store)
}

func TestAdmitVoteConcurrentDistinctVisitors(t *testing.T) {
	store := newTestStore(t, "p1")
	admission := store.Admission()

	const voters = 100
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := entry(fmt.Sprintf("v-%d", i), "p1")
			assert.NoError(t, admission.Admit(context.Background(), e))
		}(i)
	}
	wg.Wait()

	p, err := store.Participants().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, voters, p.VoteCount, "no increment may be lost")
	tallyMatchesLedger(t, store)
}

func TestResetAll(t *testing.T) {
	store := newTestStore(t, "p1", "p2")
	admission := store.Admission()

	require.NoError(t, admission.Admit(context.Background(), entry("v1", "p1")))
	require.NoError(t, admission.Admit(context.Background(), entry("v2", "p1")))
	require.NoError(t, admission.Admit(context.Background(), entry("v3", "p2")))

	require.NoError(t, admission.ResetAll(context.Background()))

	entries, err := store.Ledger().GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	participants, err := store.Participants().GetAll(context.Background())
	require.NoError(t, err)
	for _, p := range participants {
		assert.Equal(t, 0, p.VoteCount)
	}

	// previously-seen visitors vote again
	require.NoError(t, admission.Admit(context.Background(), entry("v1", "p2")))
	tallyMatchesLedger(t, store)
}

func TestParticipantUpdateLeavesTallyAlone(t *testing.T) {
	store := newTestStore(t, "p1")
	require.NoError(t, store.Admission().Admit(context.Background(), entry("v1", "p1")))

	err := store.Participants().Update(context.Background(), &Participant{
		ID:        "p1",
		Name:      "Renamed",
		VoteCount: 999,
	})
	require.NoError(t, err)

	p, err := store.Participants().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, 1, p.VoteCount, "update must not write the tally")
}
