package models

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterVoteRequest struct {
	ParticipantID string `json:"participantId"`
	VisitorID     string `json:"visitorId"`
}

type RegisterVoteResponse struct {
	Message string `json:"message"`
}

// VisitorStatusResponse tells a client whether its fingerprint already has a
// ledger entry. Advisory only: the client uses it to lock its voting UI, the
// admission endpoint stays the source of truth.
type VisitorStatusResponse struct {
	Voted         bool      `json:"voted"`
	ParticipantID string    `json:"participantId,omitempty"`
	VotedAt       time.Time `json:"votedAt,omitempty"`
}

type VoteResultsResponse struct {
	TotalVotes int                   `json:"totalVotes"`
	Results    []ParticipantResponse `json:"results"`
}
