// Package semanticscholar discovers academic papers via the Semantic
// Scholar Graph API. Discovered papers are ingested as lightweight summary
// records; full PDFs are pulled from arXiv on demand by the paper upgrade
// workflow.
package semanticscholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/fetch"
	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PaperSource = (*Client)(nil)

const (
	defaultAPIBase   = "https://api.semanticscholar.org/graph/v1"
	defaultArxivBase = "https://arxiv.org/pdf"

	// defaultFields selects the paper attributes a summary record needs.
	defaultFields = "title,abstract,tldr,year,citationCount,externalIds,authors,fieldsOfStudy"
)

// Default fetch parameters.
const (
	DefaultPapersPerTopic = 5
	DefaultMinCitations   = 50
)

// DefaultTopics are the search topics used when none are configured.
var DefaultTopics = []string{
	"retrieval augmented generation",
	"dense passage retrieval",
	"vector database embedding",
	"chunking strategies NLP",
	"RAG evaluation metrics",
	"hybrid search retrieval",
	"reranking cross encoder",
}

// Paper is a single Semantic Scholar paper.
type Paper struct {
	PaperID       string `json:"paperId"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	Year          int    `json:"year"`
	CitationCount int    `json:"citationCount"`
	TLDR          *struct {
		Text string `json:"text"`
	} `json:"tldr"`
	ExternalIDs struct {
		ArXiv string `json:"ArXiv"`
	} `json:"externalIds"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// Config controls the client's discovery behavior.
type Config struct {
	Topics         []string
	PapersPerTopic int
	MinCitations   int

	// APIBase and ArxivBase override the API endpoints, for tests.
	APIBase   string
	ArxivBase string
}

func (c Config) withDefaults() Config {
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	if c.ArxivBase == "" {
		c.ArxivBase = defaultArxivBase
	}
	if len(c.Topics) == 0 {
		c.Topics = DefaultTopics
	}
	if c.PapersPerTopic <= 0 {
		c.PapersPerTopic = DefaultPapersPerTopic
	}
	if c.MinCitations < 0 {
		c.MinCitations = DefaultMinCitations
	}
	return c
}

// Client searches Semantic Scholar and downloads arXiv PDFs.
type Client struct {
	http   *fetch.Client
	config Config
	trace  logger.Tracer
}

// New creates a Semantic Scholar client. The Graph API rate-limits
// unauthenticated callers hard, so the client stays at two requests per
// second and relies on the shared 429 backoff.
func New(config Config) *Client {
	return &Client{
		http:   fetch.NewClient(2, nil),
		config: config.withDefaults(),
		trace:  logger.Pipeline("semantic_scholar"),
	}
}

// Source returns the provider name used in fetch reports.
func (c *Client) Source() string { return "semantic_scholar" }

// Topics returns the effective search topics.
func (c *Client) Topics() []string { return c.config.Topics }

type searchResponse struct {
	Data []Paper `json:"data"`
}

// Search finds papers matching query. No citation filtering happens here;
// Discover applies the minimum-citation filter so that fetch reports can
// count what was dropped.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Paper, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {defaultFields},
	}

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.config.APIBase+"/paper/search", params, &resp); err != nil {
		return nil, fmt.Errorf("search papers: %w", err)
	}
	return resp.Data, nil
}

// GetByArxiv looks up one paper by its arXiv ID. A 404 maps to
// domain.ErrNotFound.
func (c *Client) GetByArxiv(ctx context.Context, arxivID string) (*Paper, error) {
	params := url.Values{"fields": {defaultFields}}
	endpoint := fmt.Sprintf("%s/paper/arXiv:%s", c.config.APIBase, url.PathEscape(arxivID))

	var paper Paper
	if err := c.http.GetJSON(ctx, endpoint, params, &paper); err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: arXiv:%s", domain.ErrNotFound, arxivID)
		}
		return nil, err
	}
	return &paper, nil
}

// LookupArxiv resolves an arXiv id to the summary shape used by the paper
// upgrade workflow.
func (c *Client) LookupArxiv(ctx context.Context, arxivID string) (*driven.PaperSummary, error) {
	paper, err := c.GetByArxiv(ctx, arxivID)
	if err != nil {
		return nil, err
	}
	return &driven.PaperSummary{
		PaperID:   paper.PaperID,
		ArxivID:   paper.ExternalIDs.ArXiv,
		Title:     paper.Title,
		Citations: paper.CitationCount,
	}, nil
}

// Discover searches every configured topic and returns citation-filtered,
// deduplicated summary records plus the run's fetch report. Failures on
// individual topics are recorded in the report and skipped.
func (c *Client) Discover(ctx context.Context) ([]domain.Record, *domain.FetchReport, error) {
	seen := make(map[string]struct{})
	var records []domain.Record
	report := &domain.FetchReport{Source: c.Source()}

	for _, topic := range c.config.Topics {
		c.trace.Debug("Searching papers: %q", topic)
		outcome := domain.QueryOutcome{Query: topic}

		papers, err := c.Search(ctx, topic, c.config.PapersPerTopic)
		if err != nil {
			if ctx.Err() != nil {
				return records, report, ctx.Err()
			}
			c.trace.Warn("topic %q: %v", topic, err)
			outcome.Err = err
			report.Queries = append(report.Queries, outcome)
			continue
		}

		report.Fetched += len(papers)
		for _, paper := range papers {
			if paper.CitationCount < c.config.MinCitations {
				report.Filtered++
				continue
			}
			if _, ok := seen[paper.PaperID]; ok {
				report.Deduplicated++
				continue
			}
			seen[paper.PaperID] = struct{}{}
			records = append(records, ToRecord(paper))
			outcome.Items++
		}
		report.Queries = append(report.Queries, outcome)
	}
	return records, report, nil
}

// ToRecord converts a paper into a summary record combining its title,
// authors, TLDR, and abstract into one embeddable text block.
func ToRecord(paper Paper) domain.Record {
	title := paper.Title
	if title == "" {
		title = "Unknown Title"
	}

	parts := []string{fmt.Sprintf("Title: %s", title)}

	if len(paper.Authors) > 0 {
		names := make([]string, 0, 5)
		for i, a := range paper.Authors {
			if i == 5 {
				break
			}
			names = append(names, a.Name)
		}
		line := strings.Join(names, ", ")
		if len(paper.Authors) > 5 {
			line += fmt.Sprintf(" et al. (%d authors)", len(paper.Authors))
		}
		parts = append(parts, fmt.Sprintf("Authors: %s", line))
	}

	year := "N/A"
	if paper.Year != 0 {
		year = strconv.Itoa(paper.Year)
	}
	parts = append(parts, fmt.Sprintf("Year: %s | Citations: %d", year, paper.CitationCount))

	if paper.ExternalIDs.ArXiv != "" {
		parts = append(parts, fmt.Sprintf("ArXiv: %s", paper.ExternalIDs.ArXiv))
	}
	if paper.TLDR != nil && paper.TLDR.Text != "" {
		parts = append(parts, fmt.Sprintf("Summary: %s", paper.TLDR.Text))
	}
	if paper.Abstract != "" {
		parts = append(parts, fmt.Sprintf("Abstract: %s", paper.Abstract))
	}

	return domain.Record{
		ID:   domain.PaperSummaryID(paper.PaperID),
		Text: strings.Join(parts, "\n\n"),
		Metadata: domain.Metadata{
			Source:     "semantic_scholar:" + paper.PaperID,
			DocType:    domain.DocTypePaperSummary,
			ChunkIndex: domain.NoChunkIndex,
			Extra: map[string]string{
				domain.MetaKeyTitle:      title,
				domain.MetaKeyYear:       year,
				domain.MetaKeyCitations:  strconv.Itoa(paper.CitationCount),
				domain.MetaKeyArxivID:    paper.ExternalIDs.ArXiv,
				domain.MetaKeyHasFullPDF: "false",
			},
		},
	}
}

// PDFURL returns the arXiv download URL for a paper.
func (c *Client) PDFURL(arxivID string) string {
	return fmt.Sprintf("%s/%s.pdf", c.config.ArxivBase, arxivID)
}

// DownloadPDF fetches a paper's PDF from arXiv into dir and returns the
// saved path. Slashes in old-style arXiv IDs are flattened for the
// filename.
func (c *Client) DownloadPDF(ctx context.Context, arxivID, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create papers dir: %w", err)
	}

	name := strings.ReplaceAll(arxivID, "/", "_") + ".pdf"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create pdf file: %w", err)
	}

	if err := c.http.Download(ctx, c.PDFURL(arxivID), f); err != nil {
		f.Close()
		os.Remove(path) //nolint:errcheck
		return "", fmt.Errorf("download arXiv:%s: %w", arxivID, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close pdf file: %w", err)
	}
	return path, nil
}
