// Package subscribers loads the destination phone numbers for a run.
package subscribers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Store returns the current subscriber set. The result holds no duplicates
// and its order carries no meaning.
type Store interface {
	Load(ctx context.Context) ([]string, error)
}

// FileStore reads one destination per line from a text file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load skips blank lines. A missing file is an empty subscriber set.
func (s *FileStore) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		zerolog.Ctx(ctx).Warn().Str("path", s.Path).Msg("subscribers file not found")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open subscribers file: %w", err)
	}
	defer f.Close()

	var subs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		subs = append(subs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscribers file: %w", err)
	}

	return normalize(subs), nil
}

// PhoneAttribute is the DynamoDB attribute holding a subscriber's number.
const PhoneAttribute = "phone"

// DynamoStore reads subscribers from every item of a DynamoDB table.
type DynamoStore struct {
	svc   dynamodbiface.DynamoDBAPI
	table string
}

func NewDynamoStore(svc dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{svc: svc, table: table}
}

func (s *DynamoStore) Load(ctx context.Context) ([]string, error) {
	var subs []string
	err := s.svc.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(s.table),
		ProjectionExpression: aws.String(PhoneAttribute),
	}, func(page *dynamodb.ScanOutput, _ bool) bool {
		for _, item := range page.Items {
			if v, ok := item[PhoneAttribute]; ok && v.S != nil {
				subs = append(subs, *v.S)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscribers table: %w", err)
	}

	return normalize(subs), nil
}

func normalize(subs []string) []string {
	subs = lo.Map(subs, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Uniq(lo.Compact(subs))
}
