// Package reddit fetches discussion posts from Reddit's public search API
// and maps them to corpus records.
package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/fetch"
	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ContentSource = (*Client)(nil)

const defaultBaseURL = "https://www.reddit.com"

// Default fetch parameters.
const (
	DefaultPostsPerQuery = 25
	DefaultMinScore      = 5
)

// DefaultSubreddits are the communities searched when none are configured.
var DefaultSubreddits = []string{
	"LocalLLaMA",
	"MachineLearning",
	"LangChain",
	"artificial",
	"learnmachinelearning",
}

// DefaultQueries are the search terms used when none are configured.
var DefaultQueries = []string{
	"RAG retrieval augmented generation",
	"vector database embedding",
	"chunking strategy",
	"LlamaIndex",
	"LangChain RAG",
}

// Post is a single Reddit submission in our normalized shape.
type Post struct {
	Title       string
	Body        string
	Score       int
	URL         string
	Subreddit   string
	NumComments int
}

// Config controls the client's search behavior.
type Config struct {
	Subreddits    []string
	Queries       []string
	PostsPerQuery int

	// MinScore drops posts scored below it. Zero applies DefaultMinScore;
	// negative floors are honored as given (math.MinInt turns filtering
	// off entirely).
	MinScore int

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if len(c.Subreddits) == 0 {
		c.Subreddits = DefaultSubreddits
	}
	if len(c.Queries) == 0 {
		c.Queries = DefaultQueries
	}
	if c.PostsPerQuery <= 0 {
		c.PostsPerQuery = DefaultPostsPerQuery
	}
	if c.MinScore == 0 {
		c.MinScore = DefaultMinScore
	}
	return c
}

// Client searches subreddits and converts matching posts into records.
type Client struct {
	http   *fetch.Client
	config Config
	trace  logger.Tracer
}

// New creates a Reddit client. Reddit throttles aggressively without a
// descriptive User-Agent, so the shared default is always sent.
func New(config Config) *Client {
	return &Client{
		http:   fetch.NewClient(1, nil),
		config: config.withDefaults(),
		trace:  logger.Pipeline("reddit"),
	}
}

// Source returns the provider name used in fetch reports.
func (c *Client) Source() string { return "reddit" }

// Queries returns the effective search queries.
func (c *Client) Queries() []string { return c.config.Queries }

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Score       int     `json:"score"`
				Permalink   string  `json:"permalink"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search fetches posts matching query from one subreddit. No score
// filtering happens here; FetchAll applies the minimum-score filter so
// that fetch reports can count what was dropped.
func (c *Client) Search(ctx context.Context, subreddit, query string) ([]Post, error) {
	params := url.Values{
		"q":           {query},
		"restrict_sr": {"on"},
		"limit":       {strconv.Itoa(c.config.PostsPerQuery)},
		"sort":        {"relevance"},
		"t":           {"all"},
	}

	var resp listing
	endpoint := fmt.Sprintf("%s/r/%s/search.json", c.config.BaseURL, url.PathEscape(subreddit))
	if err := c.http.GetJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("search r/%s: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		p := child.Data
		posts = append(posts, Post{
			Title:       p.Title,
			Body:        p.Selftext,
			Score:       p.Score,
			URL:         "https://reddit.com" + p.Permalink,
			Subreddit:   subreddit,
			NumComments: p.NumComments,
		})
	}
	return posts, nil
}

// FetchAll searches every configured subreddit/query pair and returns
// score-filtered, deduplicated records plus the run's fetch report.
// Failures on individual pairs are recorded in the report and skipped so
// one flaky subreddit does not sink the whole run.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Record, *domain.FetchReport, error) {
	seen := make(map[string]struct{})
	var records []domain.Record
	report := &domain.FetchReport{Source: c.Source()}

	for _, subreddit := range c.config.Subreddits {
		for _, query := range c.config.Queries {
			c.trace.Debug("Searching r/%s for %q", subreddit, query)
			outcome := domain.QueryOutcome{
				Query: fmt.Sprintf("r/%s: %s", subreddit, query),
			}

			posts, err := c.Search(ctx, subreddit, query)
			if err != nil {
				if ctx.Err() != nil {
					return records, report, ctx.Err()
				}
				c.trace.Warn("r/%s %q: %v", subreddit, query, err)
				outcome.Err = err
				report.Queries = append(report.Queries, outcome)
				continue
			}

			report.Fetched += len(posts)
			for _, post := range posts {
				if post.Score < c.config.MinScore {
					report.Filtered++
					continue
				}
				if _, ok := seen[post.URL]; ok {
					report.Deduplicated++
					continue
				}
				seen[post.URL] = struct{}{}
				records = append(records, ToRecord(post))
				outcome.Items++
			}
			report.Queries = append(report.Queries, outcome)
		}
	}
	return records, report, nil
}

// ToRecord converts a post into a single-chunk corpus record. The record
// ID is derived from the post ID segment of the permalink so refetching
// the same post overwrites rather than duplicates.
func ToRecord(post Post) domain.Record {
	body := post.Body
	if body == "" {
		body = "(Link post - no text content)"
	}

	text := strings.Join([]string{
		fmt.Sprintf("Reddit Discussion: %s", post.Title),
		fmt.Sprintf("Subreddit: r/%s | %d upvotes | %d comments",
			post.Subreddit, post.Score, post.NumComments),
		"",
		body,
	}, "\n")

	return domain.Record{
		ID:   "reddit_" + postID(post.URL),
		Text: text,
		Metadata: domain.Metadata{
			Source:     post.URL,
			DocType:    domain.DocTypeCommunityReddit,
			ChunkIndex: domain.NoChunkIndex,
			Extra: map[string]string{
				domain.MetaKeyTitle: post.Title,
				domain.MetaKeyScore: strconv.Itoa(post.Score),
				"subreddit":         post.Subreddit,
			},
		},
	}
}

// postID extracts the base36 post ID from a comments permalink; URLs in
// another shape fall back to their last 20 characters.
func postID(rawURL string) string {
	if strings.Contains(rawURL, "/comments/") {
		parts := strings.Split(strings.TrimSuffix(rawURL, "/"), "/")
		if len(parts) >= 2 {
			return parts[len(parts)-2]
		}
	}
	if len(rawURL) > 20 {
		return rawURL[len(rawURL)-20:]
	}
	return rawURL
}
