package storage

import (
	"context"
	"errors"
	"time"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ParticipantStorage interface {
	Get(ctx context.Context, id string) (*Participant, error)
	GetAll(ctx context.Context) ([]*Participant, error)
	Create(ctx context.Context, participant *Participant) error
	Update(ctx context.Context, participant *Participant) error
	Delete(ctx context.Context, id string) error
}

type DynamoParticipantStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoParticipantStorage) Get(ctx context.Context, id string) (*Participant, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("PARTICIPANT: no participant found with ID %s", id)
		return nil, nil
	}

	var participant Participant
	if err := attributevalue.UnmarshalMap(out.Item, &participant); err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to unmarshal participant: %v", err)
		return nil, err
	}
	return &participant, nil
}

func (s *DynamoParticipantStorage) GetAll(ctx context.Context) ([]*Participant, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: scan failed: %v", err)
		return nil, err
	}

	var participants []*Participant
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &participants); err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to unmarshal participant list: %v", err)
		return nil, err
	}
	return participants, nil
}

func (s *DynamoParticipantStorage) Create(ctx context.Context, participant *Participant) error {
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = time.Now().UTC()
	}
	participant.VoteCount = 0

	item, err := attributevalue.MarshalMap(participant)
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to marshal participant: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("PARTICIPANT: item with ID %s already exists", participant.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("PARTICIPANT: failed to create participant: %v", err)
		return err
	}
	return nil
}

// Update writes the editable fields only. VoteCount is deliberately not part
// of the expression: only vote admission and reset may touch the tally.
func (s *DynamoParticipantStorage) Update(ctx context.Context, participant *Participant) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: participant.ID},
		},
		UpdateExpression:    aws.String("SET #n = :name, Description = :desc, PhotoURL = :photo, #num = :number"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#n":   "Name",
			"#num": "Number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":   &types.AttributeValueMemberS{Value: participant.Name},
			":desc":   &types.AttributeValueMemberS{Value: participant.Description},
			":photo":  &types.AttributeValueMemberS{Value: participant.PhotoURL},
			":number": &types.AttributeValueMemberS{Value: participant.Number},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("PARTICIPANT: cannot update missing participant %s", participant.ID)
			return ErrParticipantNotFound
		}
		logging.Log.Errorf("PARTICIPANT: failed to update participant: %v", err)
		return err
	}
	return nil
}

func (s *DynamoParticipantStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to delete participant with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("PARTICIPANT: deleted participant with ID %s", id)
	return nil
}
