package storage

import (
	"context"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// SettingStorage is a plain key-value mapping (event_name, logo_url).
// Last write wins, no concurrency contract.
type SettingStorage interface {
	Get(ctx context.Context, key string) (*Setting, error)
	GetAll(ctx context.Context) ([]*Setting, error)
	Put(ctx context.Context, setting *Setting) error
}

type DynamoSettingStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoSettingStorage) Get(ctx context.Context, key string) (*Setting, error) {
	k, err := attributevalue.MarshalMap(map[string]string{"PK": key})
	if err != nil {
		logging.Log.Errorf("SETTINGS: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       k,
	})
	if err != nil {
		logging.Log.Errorf("SETTINGS: GetItem for key %s failed: %v", key, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrSettingNotFound
	}

	var setting Setting
	if err := attributevalue.UnmarshalMap(out.Item, &setting); err != nil {
		logging.Log.Errorf("SETTINGS: failed to unmarshal setting: %v", err)
		return nil, err
	}
	return &setting, nil
}

func (s *DynamoSettingStorage) GetAll(ctx context.Context) ([]*Setting, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("SETTINGS: scan failed: %v", err)
		return nil, err
	}

	var settings []*Setting
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &settings); err != nil {
		logging.Log.Errorf("SETTINGS: failed to unmarshal settings list: %v", err)
		return nil, err
	}
	return settings, nil
}

func (s *DynamoSettingStorage) Put(ctx context.Context, setting *Setting) error {
	item, err := attributevalue.MarshalMap(setting)
	if err != nil {
		logging.Log.Errorf("SETTINGS: failed to marshal setting: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("SETTINGS: failed to put setting %s: %v", setting.Key, err)
		return err
	}
	return nil
}
