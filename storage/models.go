package storage

import "time"

type Participant struct {
	ID          string    `dynamodbav:"PK" json:"id"`
	Name        string    `dynamodbav:"Name" json:"name"`
	Description string    `dynamodbav:"Description" json:"description"`
	PhotoURL    string    `dynamodbav:"PhotoURL" json:"photoUrl"`
	Number      string    `dynamodbav:"Number" json:"number"` // admin-facing participant number
	VoteCount   int       `dynamodbav:"VoteCount" json:"voteCount"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

// VoteLedgerEntry is keyed by the visitor fingerprint alone: one entry per
// visitor system-wide, regardless of which participant was voted for.
type VoteLedgerEntry struct {
	VisitorID     string    `dynamodbav:"PK" json:"visitorId"`
	EntryID       string    `dynamodbav:"EntryID" json:"entryId"`
	ParticipantID string    `dynamodbav:"ParticipantID" json:"participantId"`
	CreatedAt     time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
}

type Setting struct {
	Key   string `dynamodbav:"PK" json:"key"`
	Value string `dynamodbav:"Value" json:"value"`
}
