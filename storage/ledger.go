package storage

import (
	"context"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// VoteLedgerStorage is read-only access to the vote ledger. Entries are
// written exclusively through VoteAdmissionStorage so the tally increment
// can never be skipped.
type VoteLedgerStorage interface {
	Get(ctx context.Context, visitorID string) (*VoteLedgerEntry, error)
	GetAll(ctx context.Context) ([]*VoteLedgerEntry, error)
}

type DynamoVoteLedgerStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoVoteLedgerStorage) Get(ctx context.Context, visitorID string) (*VoteLedgerEntry, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": visitorID})
	if err != nil {
		logging.Log.Errorf("LEDGER: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("LEDGER: GetItem failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var entry VoteLedgerEntry
	if err := attributevalue.UnmarshalMap(out.Item, &entry); err != nil {
		logging.Log.Errorf("LEDGER: failed to unmarshal entry: %v", err)
		return nil, err
	}
	return &entry, nil
}

func (s *DynamoVoteLedgerStorage) GetAll(ctx context.Context) ([]*VoteLedgerEntry, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("LEDGER: scan failed: %v", err)
		return nil, err
	}

	var entries []*VoteLedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		logging.Log.Errorf("LEDGER: failed to unmarshal entry list: %v", err)
		return nil, err
	}
	return entries, nil
}
