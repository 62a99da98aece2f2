package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/bitgrid/snapshot"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentCommit is returned when another writer committed the
// same version first.
var ErrConcurrentCommit = errors.New("concurrent commit detected")

// Commit is one entry of a board's commit log.
type Commit struct {
	// Version is the commit log position, starting at 1.
	Version uint64

	// SnapshotName is the store name of the committed snapshot.
	SnapshotName string

	// SeqNum is the journal sequence number the snapshot covers.
	SeqNum uint64
}

// CommitStore tracks the latest committed snapshot of each board in
// DynamoDB. S3 writes alone cannot tell concurrent writers apart;
// DynamoDB conditional writes give the compare-and-swap that makes the
// latest pointer safe to advance from several processes.
//
// Table schema:
//   - Partition key: board_id (string)
//   - Sort key: version (number), monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name bitgrid-commits \
//	  --attribute-definitions AttributeName=board_id,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=board_id,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	client    DDBClient
	tableName string
	boardID   string
}

// NewCommitStore creates a commit store for one board.
func NewCommitStore(client DDBClient, tableName, boardID string) *CommitStore {
	return &CommitStore{
		client:    client,
		tableName: tableName,
		boardID:   boardID,
	}
}

// Latest returns the most recent commit for the board.
// It returns snapshot.ErrNotFound when nothing has been committed yet.
func (s *CommitStore) Latest(ctx context.Context) (*Commit, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("board_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: s.boardID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query commit log: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, snapshot.ErrNotFound
	}
	return commitFromItem(resp.Items[0])
}

// Commit atomically appends the next commit log entry. A conditional
// write guards the version: if another writer claimed it first, the
// call fails with ErrConcurrentCommit and the caller should re-read
// Latest and retry.
func (s *CommitStore) Commit(ctx context.Context, snapshotName string, seqNum uint64) (*Commit, error) {
	var version uint64
	latest, err := s.Latest(ctx)
	switch {
	case err == nil:
		version = latest.Version + 1
	case errors.Is(err, snapshot.ErrNotFound):
		version = 1
	default:
		return nil, err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"board_id":      &types.AttributeValueMemberS{Value: s.boardID},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"snapshot_name": &types.AttributeValueMemberS{Value: snapshotName},
			"seq_num":       &types.AttributeValueMemberN{Value: strconv.FormatUint(seqNum, 10)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, ErrConcurrentCommit
		}
		return nil, fmt.Errorf("failed to write commit: %w", err)
	}

	return &Commit{Version: version, SnapshotName: snapshotName, SeqNum: seqNum}, nil
}

func commitFromItem(item map[string]types.AttributeValue) (*Commit, error) {
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, errors.New("invalid version attribute in commit log")
	}
	nameAttr, ok := item["snapshot_name"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("invalid snapshot_name attribute in commit log")
	}
	seqAttr, ok := item["seq_num"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, errors.New("invalid seq_num attribute in commit log")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commit version: %w", err)
	}
	seqNum, err := strconv.ParseUint(seqAttr.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commit seq_num: %w", err)
	}

	return &Commit{Version: version, SnapshotName: nameAttr.Value, SeqNum: seqNum}, nil
}
