package stackoverflow

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/advanced", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "votes", q.Get("sort"))
		assert.Equal(t, "stackoverflow", q.Get("site"))
		assert.Equal(t, "chromadb", q.Get("q"))
		assert.Equal(t, "python", q.Get("tagged"))
		assert.Equal(t, bodyFilter, q.Get("filter"))
		fmt.Fprint(w, `{"items":[
			{"question_id":101,"title":"How to use chromadb?","body":"<p>Need help</p>",
			 "score":12,"link":"https://stackoverflow.com/q/101","tags":["python","chromadb"],
			 "answer_count":2,"is_answered":true,"accepted_answer_id":555}
		]}`)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Tagged: "python"})
	questions, err := client.Search(context.Background(), "chromadb")
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, int64(101), questions[0].ID)
	assert.Equal(t, 12, questions[0].Score)
	assert.True(t, questions[0].IsAnswered)
	assert.Equal(t, int64(555), questions[0].AcceptedID)
}

func TestFetchAll_FiltersAndDeduplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"question_id":1,"title":"Keeper","body":"<p>good</p>","score":10,"tags":["python"]},
			{"question_id":2,"title":"Noise","body":"<p>bad</p>","score":0,"tags":["python"]}
		]}`)
	}))
	defer server.Close()

	client := New(Config{
		BaseURL:  server.URL,
		Queries:  []string{"first", "second"},
		MinScore: 1,
	})

	records, report, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "stackoverflow", report.Source)
	assert.Equal(t, 4, report.Fetched)
	assert.Equal(t, 2, report.Filtered)
	assert.Equal(t, 1, report.Deduplicated)
	require.Len(t, report.Queries, 2)
	assert.Equal(t, 1, report.Queries[0].Items)
	assert.Equal(t, 0, report.Queries[1].Items)

	assert.Equal(t, "so_1", records[0].ID)
}

func TestFetchAll_QueryFailureIsSoft(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "throttle violation", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"items":[{"question_id":7,"title":"Works","body":"<p>yes</p>","score":5}]}`)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Queries: []string{"broken", "working"}})

	records, report, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, report.Failures())
}

func TestToRecord(t *testing.T) {
	record := ToRecord(Question{
		ID:          4242,
		Title:       "How to split &amp; chunk documents?",
		Body:        "<p>I have <code>long</code> documents.</p><p>What now?</p>",
		Score:       33,
		Link:        "https://stackoverflow.com/q/4242",
		Tags:        []string{"python", "nlp", "rag", "langchain", "embedding", "extra"},
		AnswerCount: 4,
		IsAnswered:  true,
		AcceptedID:  999,
	})

	assert.Equal(t, "so_4242", record.ID)
	assert.Contains(t, record.Text, "StackOverflow Question: How to split & chunk documents?")
	assert.Contains(t, record.Text, "Tags: python, nlp, rag, langchain, embedding | 33 votes | 4 answers")
	assert.Contains(t, record.Text, "I have long documents. What now?")
	assert.Contains(t, record.Text, "[Has accepted answer]")
	assert.NotContains(t, record.Text, "extra")
	assert.NotContains(t, record.Text, "<p>")

	assert.Equal(t, "https://stackoverflow.com/q/4242", record.Metadata.Source)
	assert.Equal(t, domain.DocTypeCommunityStackOverflow, record.Metadata.DocType)
	assert.Equal(t, domain.NoChunkIndex, record.Metadata.ChunkIndex)
	assert.Equal(t, "33", record.Metadata.Extra[domain.MetaKeyScore])
	require.NoError(t, record.Validate())
}

func TestToRecord_Fallbacks(t *testing.T) {
	record := ToRecord(Question{ID: 5, Title: "Bare question", Score: 2})
	assert.Contains(t, record.Text, "(No body)")
	assert.Equal(t, "https://stackoverflow.com/q/5", record.Metadata.Source)

	// Answered without an accepted answer gets no marker line.
	record = ToRecord(Question{ID: 6, Title: "Open", Body: "<p>hm</p>", Score: 2, IsAnswered: true})
	assert.NotContains(t, record.Text, "[Has accepted answer]")
}

func TestToRecord_TruncatesLongBody(t *testing.T) {
	body := "<p>" + strings.Repeat("x", maxBodyChars+500) + "</p>"
	record := ToRecord(Question{ID: 9, Title: "Long", Body: body, Score: 3})

	// The body line is capped; the full record also carries header lines.
	assert.LessOrEqual(t, len(record.Text), maxBodyChars+200)
}

func TestTruncateBody_CutsOnRuneBoundary(t *testing.T) {
	// Three-byte runes never line up with the byte cap, so a naive slice
	// would leave a partial encoding at the end.
	body := strings.Repeat("€", maxBodyChars)
	got := truncateBody(body)

	assert.LessOrEqual(t, len(got), maxBodyChars)
	assert.True(t, utf8.ValidString(got))

	short := "небольшой текст"
	assert.Equal(t, short, truncateBody(short))
}

func TestWithDefaults_MinScore(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultMinScore, cfg.MinScore)

	cfg = Config{MinScore: math.MinInt}.withDefaults()
	assert.Equal(t, math.MinInt, cfg.MinScore)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", stripHTML("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "a b", stripHTML("  a\n\n  b  "))
	assert.Equal(t, "", stripHTML(""))
}
