package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	testutils "github.com/alex-pricope/contest-voting/api/controllers/testing"
	"github.com/alex-pricope/contest-voting/api/models"
	"github.com/alex-pricope/contest-voting/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetVotes(t *testing.T) {
	_, router := setupTestServer(t)
	participant := createTestParticipant(t, router, "Band One", "01")

	vote := models.RegisterVoteRequest{ParticipantID: participant.ID, VisitorID: "fp-reset"}
	res := testutils.PerformRequest(router, http.MethodPost, "/api/vote", vote, nil)
	require.Equal(t, http.StatusOK, res.Code)

	t.Run("Unhappy path - missing token leaves state unchanged", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/votes/reset", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "Expected 401 without admin token")

		assert.Equal(t, 1, getParticipant(t, router, participant.ID).VoteCount, "Tally must survive a rejected reset")
	})

	t.Run("Unhappy path - wrong token leaves state unchanged", func(t *testing.T) {
		headers := map[string]string{"x-admin-token": "wrong"}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/votes/reset", nil, headers)
		assert.Equal(t, http.StatusUnauthorized, res.Code)

		assert.Equal(t, 1, getParticipant(t, router, participant.ID).VoteCount)
	})

	t.Run("Happy path - reset zeroes tallies and clears the ledger", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/votes/reset", nil, adminHeaders)
		assert.Equal(t, http.StatusOK, res.Code)

		assert.Equal(t, 0, getParticipant(t, router, participant.ID).VoteCount)

		ledgerRes := testutils.PerformRequest(router, http.MethodGet, "/api/admin/votes", nil, adminHeaders)
		require.Equal(t, http.StatusOK, ledgerRes.Code)
		var entries []*storage.VoteLedgerEntry
		require.NoError(t, json.Unmarshal(ledgerRes.Body.Bytes(), &entries))
		assert.Empty(t, entries)

		// the previously-seen fingerprint is admitted again
		voteRes := testutils.PerformRequest(router, http.MethodPost, "/api/vote", vote, nil)
		assert.Equal(t, http.StatusOK, voteRes.Code)
	})
}

func TestListVotes(t *testing.T) {
	_, router := setupTestServer(t)
	participant := createTestParticipant(t, router, "Band One", "01")

	t.Run("Unhappy path - requires admin token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/votes", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Happy path - lists ledger entries", func(t *testing.T) {
		vote := models.RegisterVoteRequest{ParticipantID: participant.ID, VisitorID: "fp-list"}
		voteRes := testutils.PerformRequest(router, http.MethodPost, "/api/vote", vote, nil)
		require.Equal(t, http.StatusOK, voteRes.Code)

		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/votes", nil, adminHeaders)
		assert.Equal(t, http.StatusOK, res.Code)

		var entries []*storage.VoteLedgerEntry
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "fp-list", entries[0].VisitorID)
		assert.Equal(t, participant.ID, entries[0].ParticipantID)
		assert.NotEmpty(t, entries[0].EntryID)
	})
}

func TestCreateUploadURL(t *testing.T) {
	_, router := setupTestServer(t)

	t.Run("Unhappy path - requires admin token", func(t *testing.T) {
		payload := models.UploadURLRequest{FileName: "photo.jpg"}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/uploads", payload, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - missing file name", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/uploads", models.UploadURLRequest{}, adminHeaders)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - issues an upload URL", func(t *testing.T) {
		payload := models.UploadURLRequest{FileName: "photo.jpg", ContentType: "image/jpeg"}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/uploads", payload, adminHeaders)
		assert.Equal(t, http.StatusOK, res.Code)

		var response models.UploadURLResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
		assert.NotEmpty(t, response.UploadURL)
		assert.NotEmpty(t, response.PublicURL)
		assert.True(t, strings.HasSuffix(response.PublicURL, "photo.jpg"))
	})
}
