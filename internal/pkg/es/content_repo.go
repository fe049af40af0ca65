package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type ContentRepo interface {
	IndexContent(ctx context.Context, content *ContentES, version int64) error
	DeleteContent(ctx context.Context, id uint64) error
	SearchContent(ctx context.Context, keyword string, contentType string, from, size int) ([]*ContentES, error)
}

type ContentRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewContentRepo(client *elasticsearch.TypedClient) ContentRepo {
	return &ContentRepoImpl{client: client}
}

// IndexContent 以外部版本号写入文档，旧版本写入直接忽略
func (s *ContentRepoImpl) IndexContent(ctx context.Context, content *ContentES, version int64) error {
	docID := strconv.FormatUint(content.ID, 10)

	_, err := s.client.Index(ContentIndex).
		Id(docID).
		Document(content).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *ContentRepoImpl) DeleteContent(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(ContentIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

// SearchContent 标题/正文关键词检索，索引内只有已发布内容，无需状态过滤
func (s *ContentRepoImpl) SearchContent(ctx context.Context, keyword string, contentType string, from, size int) ([]*ContentES, error) {
	if keyword == "" || from >= MaxSearchDepth {
		return []*ContentES{}, nil
	}

	var filters []types.Query
	if contentType != "" {
		filters = append(filters, types.Query{
			Term: map[string]types.TermQuery{
				"content_type": {Value: contentType},
			},
		})
	}

	query := &types.Query{
		Bool: &types.BoolQuery{
			Must: []types.Query{
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:  keyword,
						Fields: []string{"title^3", "body^1"},
					},
				},
			},
			Filter: filters,
		},
	}

	req := s.client.Search().
		Index(ContentIndex).
		Query(query).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"_score": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *ContentRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*ContentES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*ContentES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var content ContentES
		if err = json.Unmarshal(hit.Source_, &content); err != nil {
			continue
		}
		results = append(results, &content)
	}
	return results, nil
}
