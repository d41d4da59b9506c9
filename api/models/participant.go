package models

import (
	"github.com/alex-pricope/contest-voting/storage"
)

type ParticipantCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	Number      string `json:"number"`
}

type ParticipantUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	Number      string `json:"number"`
}

type ParticipantResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	Number      string `json:"number"`
	VoteCount   int    `json:"voteCount"`
}

type DeleteParticipantResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

func TransformParticipantFromStorage(p *storage.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PhotoURL:    p.PhotoURL,
		Number:      p.Number,
		VoteCount:   p.VoteCount,
	}
}
