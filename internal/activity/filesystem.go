package activity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"kycadmin/internal/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	schemaVersion    = "1"
	searchWindowDays = 30
	searchLimit      = 100
)

var schemaVersionKey = []byte("schema_version")

// FilesystemActivityEntry is the document shape indexed in bleve.
type FilesystemActivityEntry struct {
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	ObjectType string    `json:"object_type"`
	ObjectID   string    `json:"object_id"`
	UserType   string    `json:"user_type"`
	UserID     string    `json:"user_id"`
	BucketName string    `json:"bucket_name"`
	Object     string    `json:"object"`
}

// FilesystemClient implements IActivityLogger using a local bleve index.
type FilesystemClient struct {
	index bleve.Index
}

// NewFilesystemClient opens the bleve index in the configured directory,
// creating it on first use.
func NewFilesystemClient(config models.ActivityConfiguration) (*FilesystemClient, error) {
	dir := config.Filesystem.Directory

	index, err := bleve.Open(dir)
	if err != nil {
		index, err = bleve.New(dir, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create activity index: %w", err)
		}
		if err = index.SetInternal(schemaVersionKey, []byte(schemaVersion)); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to set schema version: %w", err)
		}
		zap.L().Info("Created activity index", zap.String("directory", dir))
		return &FilesystemClient{index: index}, nil
	}

	storedVersion, err := index.GetInternal(schemaVersionKey)
	if err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}
	if string(storedVersion) != schemaVersion {
		zap.L().Warn("Activity index schema version differs",
			zap.String("stored_version", string(storedVersion)),
			zap.String("expected_version", schemaVersion))
	}

	return &FilesystemClient{index: index}, nil
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	keywordMapping := bleve.NewKeywordFieldMapping()
	dateMapping := bleve.NewDateTimeFieldMapping()
	textMapping := bleve.NewTextFieldMapping()

	storedOnly := bleve.NewTextFieldMapping()
	storedOnly.Index = false
	storedOnly.Store = true

	docMapping := bleve.NewDocumentMapping()
	for _, field := range SearchableFields {
		docMapping.AddFieldMappingsAt(field, keywordMapping)
	}
	docMapping.AddFieldMappingsAt("timestamp", dateMapping)
	docMapping.AddFieldMappingsAt("message", textMapping)
	docMapping.AddFieldMappingsAt("object", storedOnly)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func (c *FilesystemClient) Close() error {
	return c.index.Close()
}

func (c *FilesystemClient) Send(activity models.Activity) error {
	ts, err := strconv.ParseInt(activity.Filter.Timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse timestamp: %w", err)
	}

	var objectJSON string
	if activity.Object != nil {
		b, marshalErr := json.Marshal(activity.Object)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal object: %w", marshalErr)
		}
		objectJSON = string(b)
	}

	fields := activity.Filter.Fields
	entry := FilesystemActivityEntry{
		Message:    activity.Message,
		Timestamp:  time.Unix(0, ts),
		Action:     fields["action"],
		ObjectType: fields["object_type"],
		ObjectID:   fields["object_id"],
		UserType:   fields["user_type"],
		UserID:     fields["user_id"],
		BucketName: fields["bucket_name"],
		Object:     objectJSON,
	}

	if err = c.index.Index(uuid.New().String(), entry); err != nil {
		return fmt.Errorf("failed to index activity: %w", err)
	}

	return nil
}

// Search returns the most recent matching entries of the last 30 days.
func (c *FilesystemClient) Search(searchCriteria map[string][]string) ([]models.ActivityEntry, error) {
	now := time.Now()
	dateQuery := bleve.NewDateRangeQuery(now.AddDate(0, 0, -searchWindowDays), now.Add(time.Second))
	dateQuery.SetField("timestamp")

	searchRequest := bleve.NewSearchRequest(bleve.NewConjunctionQuery(buildBleveQuery(searchCriteria), dateQuery))
	searchRequest.Size = searchLimit
	searchRequest.SortBy([]string{"-timestamp"})
	searchRequest.Fields = []string{"*"}

	result, err := c.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search activity: %w", err)
	}

	entries := make([]models.ActivityEntry, 0, len(result.Hits))
	for _, hit := range result.Hits {
		entry := models.ActivityEntry{}
		entry.Message, _ = hit.Fields["message"].(string)
		entry.Action, _ = hit.Fields["action"].(string)
		entry.ObjectType, _ = hit.Fields["object_type"].(string)
		entry.ObjectID, _ = hit.Fields["object_id"].(string)
		entry.UserType, _ = hit.Fields["user_type"].(string)
		entry.UserID, _ = hit.Fields["user_id"].(string)
		entry.BucketName, _ = hit.Fields["bucket_name"].(string)
		entry.Object, _ = hit.Fields["object"].(string)
		if s, ok := hit.Fields["timestamp"].(string); ok {
			entry.Timestamp, _ = time.Parse(time.RFC3339, s)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func buildBleveQuery(searchCriteria map[string][]string) query.Query {
	var queries []query.Query

	for key, values := range searchCriteria {
		switch {
		case len(values) == 1:
			termQuery := bleve.NewTermQuery(values[0])
			termQuery.SetField(key)
			queries = append(queries, termQuery)
		case len(values) > 1:
			var termQueries []query.Query
			for _, v := range values {
				tq := bleve.NewTermQuery(v)
				tq.SetField(key)
				termQueries = append(termQueries, tq)
			}
			disjunction := bleve.NewDisjunctionQuery(termQueries...)
			disjunction.SetMin(1)
			queries = append(queries, disjunction)
		}
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}
