package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the text to find similar knowledge base chunks for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results []HitOutput `json:"results"`
	Count   int         `json:"count"`
}

// HitOutput represents a single retrieved chunk.
type HitOutput struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	DocType  string  `json:"doc_type"`
	Distance float64 `json:"distance"`
	Text     string  `json:"text"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the knowledge base"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of context chunks to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	Collection string `json:"collection"`
	Records    int    `json:"records"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "query_corpus",
		Description: "Retrieve the most relevant knowledge base chunks for a query",
	}, s.handleQuery)

	if s.ports.Asker != nil {
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        "ask_corpus",
			Description: "Answer a question grounded in the knowledge base",
		}, s.handleAsk)
	}

	if s.ports.Store != nil {
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        "corpus_stats",
			Description: "Report the size of the knowledge base",
		}, s.handleStats)
	}
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = 5
	}

	hits, err := s.ports.Retriever.Retrieve(ctx, input.Query, topK)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]HitOutput, len(hits)),
		Count:   len(hits),
	}
	for i := range hits {
		output.Results[i] = HitOutput{
			ID:       hits[i].ID,
			Source:   hits[i].Metadata.Source,
			DocType:  string(hits[i].Metadata.DocType),
			Distance: hits[i].Distance,
			Text:     hits[i].Text,
		}
	}
	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Asker == nil {
		return nil, AskOutput{}, errors.New("answer generation is not configured")
	}

	answer, err := s.ports.Asker.Ask(ctx, input.Question, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{Answer: answer.Text}
	seen := make(map[string]struct{})
	for _, hit := range answer.Hits {
		if _, ok := seen[hit.Metadata.Source]; ok {
			continue
		}
		seen[hit.Metadata.Source] = struct{}{}
		output.Sources = append(output.Sources, hit.Metadata.Source)
	}
	return nil, output, nil
}

// handleStats handles the stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Store.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{
		Collection: stats.Collection,
		Records:    stats.Records,
	}, nil
}
