package storage

import (
	"context"
	"errors"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// VoteAdmissionStorage owns every write to the ledger and the tallies.
// Admit appends a ledger entry and increments the participant tally as one
// indivisible unit; ResetAll clears both.
type VoteAdmissionStorage interface {
	Admit(ctx context.Context, entry *VoteLedgerEntry) error
	ResetAll(ctx context.Context) error
}

type DynamoVoteAdmissionStorage struct {
	Client                *dynamodb.Client
	LedgerTableName       string
	ParticipantsTableName string
}

// Admit runs a single TransactWriteItems with two elements, in this order:
//
//  1. Put of the ledger entry, conditioned on attribute_not_exists(PK).
//     The visitor fingerprint is the partition key, so this is the
//     storage-level uniqueness backstop: two racing admissions for the same
//     visitor cannot both commit, no matter what any pre-check saw.
//  2. ADD VoteCount :one on the participant, conditioned on
//     attribute_exists(PK). ADD is a server-side atomic increment, so
//     concurrent admissions for distinct visitors never lose updates.
//
// A cancelled transaction is mapped back by which condition failed:
// ledger condition -> ErrVisitorAlreadyVoted, participant condition ->
// ErrParticipantNotFound. Anything else surfaces as-is for the caller to
// treat as a transient storage failure.
func (s *DynamoVoteAdmissionStorage) Admit(ctx context.Context, entry *VoteLedgerEntry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		logging.Log.Errorf("ADMISSION: failed to marshal ledger entry: %v", err)
		return err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                item,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(s.ParticipantsTableName),
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: entry.ParticipantID},
					},
					UpdateExpression:    aws.String("ADD VoteCount :one"),
					ConditionExpression: aws.String("attribute_exists(PK)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) == 2 {
			if aws.ToString(tce.CancellationReasons[0].Code) == "ConditionalCheckFailed" {
				logging.Log.Warnf("ADMISSION: visitor %s already has a ledger entry", entry.VisitorID)
				return ErrVisitorAlreadyVoted
			}
			if aws.ToString(tce.CancellationReasons[1].Code) == "ConditionalCheckFailed" {
				logging.Log.Warnf("ADMISSION: participant %s does not exist", entry.ParticipantID)
				return ErrParticipantNotFound
			}
		}
		logging.Log.Errorf("ADMISSION: transaction failed: %v", err)
		return err
	}
	return nil
}

// ResetAll zeroes every participant tally, then clears the ledger.
// DynamoDB has no unbounded transaction, so the whole-set reset cannot be a
// single atomic unit; the tallies-first ordering keeps a partial failure
// safe: visitors stay blocked by their ledger entries and a retried reset
// completes the job. The reverse order would let visitors re-vote on top of
// stale tallies.
func (s *DynamoVoteAdmissionStorage) ResetAll(ctx context.Context) error {
	if err := s.zeroAllTallies(ctx); err != nil {
		return err
	}
	return s.clearLedger(ctx)
}

func (s *DynamoVoteAdmissionStorage) zeroAllTallies(ctx context.Context) error {
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		scanOutput, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(s.ParticipantsTableName),
			ExclusiveStartKey:    lastEvaluatedKey,
			ProjectionExpression: aws.String("PK"),
		})
		if err != nil {
			logging.Log.Errorf("ADMISSION: participant scan for reset failed: %v", err)
			return err
		}

		for _, item := range scanOutput.Items {
			_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
				TableName:        aws.String(s.ParticipantsTableName),
				Key:              map[string]types.AttributeValue{"PK": item["PK"]},
				UpdateExpression: aws.String("SET VoteCount = :zero"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":zero": &types.AttributeValueMemberN{Value: "0"},
				},
			})
			if err != nil {
				logging.Log.Errorf("ADMISSION: failed to zero tally: %v", err)
				return err
			}
		}

		if scanOutput.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = scanOutput.LastEvaluatedKey
	}

	logging.Log.Info("ADMISSION: zeroed all participant tallies")
	return nil
}

func (s *DynamoVoteAdmissionStorage) clearLedger(ctx context.Context) error {
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		scanOutput, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(s.LedgerTableName),
			ExclusiveStartKey:    lastEvaluatedKey,
			ProjectionExpression: aws.String("PK"),
		})
		if err != nil {
			logging.Log.Errorf("ADMISSION: ledger scan for reset failed: %v", err)
			return err
		}

		var writeRequests []types.WriteRequest
		for _, item := range scanOutput.Items {
			writeRequests = append(writeRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{"PK": item["PK"]},
				},
			})
		}

		for i := 0; i < len(writeRequests); i += 25 {
			end := i + 25
			if end > len(writeRequests) {
				end = len(writeRequests)
			}
			_, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.LedgerTableName: writeRequests[i:end],
				},
			})
			if err != nil {
				logging.Log.Errorf("ADMISSION: ledger batch delete failed: %v", err)
				return err
			}
			logging.Log.Infof("ADMISSION: deleted batch of %d ledger entries", end-i)
		}

		if scanOutput.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = scanOutput.LastEvaluatedKey
	}

	return nil
}
