// Package stackoverflow fetches questions from the Stack Exchange API and
// maps them to corpus records.
package stackoverflow

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/fetch"
	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/extractors/html"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ContentSource = (*Client)(nil)

const (
	defaultBaseURL = "https://api.stackexchange.com/2.3"

	// bodyFilter is a Stack Exchange custom filter that includes the
	// question body and answer details in search results.
	bodyFilter = "!nNPvSNdWme"

	// maxBodyChars truncates very long question bodies before ingestion.
	maxBodyChars = 2000
)

// Default fetch parameters.
const (
	DefaultPageSize = 25
	DefaultMinScore = 1
)

// DefaultQueries are the search terms used when none are configured.
var DefaultQueries = []string{
	"RAG retrieval augmented generation",
	"vector database embedding python",
	"LangChain retrieval",
	"LlamaIndex",
	"chromadb",
	"sentence transformers embedding",
	"semantic search python",
}

// Question is a single StackOverflow question in our normalized shape.
type Question struct {
	ID          int64    `json:"question_id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Score       int      `json:"score"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
	AnswerCount int      `json:"answer_count"`
	IsAnswered  bool     `json:"is_answered"`
	AcceptedID  int64    `json:"accepted_answer_id"`
}

// Config controls the client's search behavior.
type Config struct {
	Queries  []string
	PageSize int

	// MinScore drops questions scored below it. Zero applies
	// DefaultMinScore; negative floors are honored as given (math.MinInt
	// turns filtering off entirely).
	MinScore int

	Tagged string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if len(c.Queries) == 0 {
		c.Queries = DefaultQueries
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MinScore == 0 {
		c.MinScore = DefaultMinScore
	}
	return c
}

// Client searches StackOverflow and converts matching questions into records.
type Client struct {
	http   *fetch.Client
	config Config
	trace  logger.Tracer
}

// New creates a StackOverflow client.
func New(config Config) *Client {
	return &Client{
		http:   fetch.NewClient(1, nil),
		config: config.withDefaults(),
		trace:  logger.Pipeline("stackoverflow"),
	}
}

// Source returns the provider name used in fetch reports.
func (c *Client) Source() string { return "stackoverflow" }

// Queries returns the effective search queries.
func (c *Client) Queries() []string { return c.config.Queries }

type searchResponse struct {
	Items []Question `json:"items"`
}

// Search runs an advanced search sorted by votes. No score filtering
// happens here; FetchAll applies the minimum-score filter so that fetch
// reports can count what was dropped.
func (c *Client) Search(ctx context.Context, query string) ([]Question, error) {
	params := url.Values{
		"order":    {"desc"},
		"sort":     {"votes"},
		"q":        {query},
		"site":     {"stackoverflow"},
		"pagesize": {strconv.Itoa(c.config.PageSize)},
		"filter":   {bodyFilter},
	}
	if c.config.Tagged != "" {
		params.Set("tagged", c.config.Tagged)
	}

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.config.BaseURL+"/search/advanced", params, &resp); err != nil {
		return nil, fmt.Errorf("search stackoverflow: %w", err)
	}
	return resp.Items, nil
}

// FetchAll searches every configured query and returns score-filtered,
// deduplicated records plus the run's fetch report. Failures on individual
// queries are recorded in the report and skipped.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Record, *domain.FetchReport, error) {
	seen := make(map[int64]struct{})
	var records []domain.Record
	report := &domain.FetchReport{Source: c.Source()}

	for _, query := range c.config.Queries {
		c.trace.Debug("Searching StackOverflow for %q", query)
		outcome := domain.QueryOutcome{Query: query}

		questions, err := c.Search(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return records, report, ctx.Err()
			}
			c.trace.Warn("query %q: %v", query, err)
			outcome.Err = err
			report.Queries = append(report.Queries, outcome)
			continue
		}

		report.Fetched += len(questions)
		for _, q := range questions {
			if q.Score < c.config.MinScore {
				report.Filtered++
				continue
			}
			if _, ok := seen[q.ID]; ok {
				report.Deduplicated++
				continue
			}
			seen[q.ID] = struct{}{}
			records = append(records, ToRecord(q))
			outcome.Items++
		}
		report.Queries = append(report.Queries, outcome)
	}
	return records, report, nil
}

// ToRecord converts a question into a single-chunk corpus record. The API
// returns titles and bodies as HTML, so both are stripped to plain text.
func ToRecord(q Question) domain.Record {
	title := stripHTML(q.Title)
	body := truncateBody(stripHTML(q.Body))
	if body == "" {
		body = "(No body)"
	}

	tags := q.Tags
	if len(tags) > 5 {
		tags = tags[:5]
	}
	tagsStr := strings.Join(tags, ", ")

	parts := []string{
		fmt.Sprintf("StackOverflow Question: %s", title),
		fmt.Sprintf("Tags: %s | %d votes | %d answers", tagsStr, q.Score, q.AnswerCount),
		"",
		body,
	}
	if q.IsAnswered && q.AcceptedID != 0 {
		parts = append(parts, "\n[Has accepted answer]")
	}

	link := q.Link
	if link == "" {
		link = fmt.Sprintf("https://stackoverflow.com/q/%d", q.ID)
	}

	return domain.Record{
		ID:   fmt.Sprintf("so_%d", q.ID),
		Text: strings.Join(parts, "\n"),
		Metadata: domain.Metadata{
			Source:     link,
			DocType:    domain.DocTypeCommunityStackOverflow,
			ChunkIndex: domain.NoChunkIndex,
			Extra: map[string]string{
				domain.MetaKeyTitle: title,
				domain.MetaKeyTags:  tagsStr,
				domain.MetaKeyScore: strconv.Itoa(q.Score),
			},
		},
	}
}

// stripHTML removes markup and collapses whitespace to a single line.
func stripHTML(fragment string) string {
	text, err := html.StripTags(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(text), " ")
}

// truncateBody caps a body at maxBodyChars bytes without splitting a rune,
// so the stored text stays valid UTF-8.
func truncateBody(body string) string {
	if len(body) <= maxBodyChars {
		return body
	}
	cut := maxBodyChars
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
