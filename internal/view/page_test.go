package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, state *domain.SessionState) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewPageData(state)))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRenderEmptyState(t *testing.T) {
	doc := renderDoc(t, nil)

	assert.Equal(t, Title, doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("#generate-form").Length())
	assert.Equal(t, 1, doc.Find("#fetch-form").Length())
	assert.Equal(t, 0, doc.Find("#profile-card").Length())
	assert.Equal(t, 0, doc.Find("#error-banner").Length())
	assert.Equal(t, 0, doc.Find("#busy-indicator").Length())
	assert.Equal(t, 0, doc.Find(".card").Length())
	assert.Equal(t, 0, doc.Find(`meta[http-equiv="refresh"]`).Length())
}

func TestRenderCardsInOrder(t *testing.T) {
	state := &domain.SessionState{
		Bundle: &domain.SuggestionBundle{
			Hashtags: []domain.HashtagSuggestion{
				{Hashtag: "#zeta", Reason: "first"},
				{Hashtag: "#alpha", Reason: "second"},
				{Hashtag: "#mid", Reason: "third"},
			},
			GrowthIdeas: []domain.GrowthIdea{
				{Title: "Reels", Description: "short video"},
				{Title: "Collabs", Description: "partner up"},
			},
		},
	}
	doc := renderDoc(t, state)

	var tags []string
	doc.Find("#hashtags .card.hashtag h3").Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, s.Text())
	})
	assert.Equal(t, []string{"#zeta", "#alpha", "#mid"}, tags)

	var ideas []string
	doc.Find("#growth-ideas .card.idea h3").Each(func(_ int, s *goquery.Selection) {
		ideas = append(ideas, s.Text())
	})
	assert.Equal(t, []string{"Reels", "Collabs"}, ideas)

	html, err := doc.Html()
	require.NoError(t, err)
	assert.Less(t, strings.Index(html, `id="hashtags"`), strings.Index(html, `id="growth-ideas"`))
}

func TestRenderEmptyBundleShowsSections(t *testing.T) {
	state := &domain.SessionState{
		Bundle: &domain.SuggestionBundle{Hashtags: []domain.HashtagSuggestion{}, GrowthIdeas: []domain.GrowthIdea{}},
	}
	doc := renderDoc(t, state)

	assert.Equal(t, 1, doc.Find("#hashtags").Length())
	assert.Equal(t, 1, doc.Find("#growth-ideas").Length())
	assert.Equal(t, 0, doc.Find(".card").Length())
}

func TestRenderErrorAndBusy(t *testing.T) {
	state := &domain.SessionState{
		Error: "Failed to get suggestions: boom",
		Busy:  true,
	}
	doc := renderDoc(t, state)

	assert.Contains(t, doc.Find("#error-banner").Text(), "Failed to get suggestions: boom")
	assert.Equal(t, 1, doc.Find("#busy-indicator").Length())
	assert.Equal(t, 1, doc.Find(`meta[http-equiv="refresh"]`).Length())

	_, disabled := doc.Find("#generate-form button").Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, "Generating...", doc.Find("#generate-form button").Text())
}

func TestRenderProfileAndPrefill(t *testing.T) {
	state := &domain.SessionState{
		Profile: &domain.AccountProfile{
			Name:     "Demo Photographer",
			Handle:   "wanderlens",
			ImageURL: "https://avatar.vercel.sh/wanderlens.png?text=wa",
		},
		Input: domain.SuggestionInput{
			AccountDescription: "Travel <photos>",
			AccountGoals:       "Grow",
			TrainingData:       "Kyoto",
		},
		FormError: "Account description is required.",
	}
	doc := renderDoc(t, state)

	assert.Equal(t, "@wanderlens", doc.Find("#profile-card .profile-handle").Text())
	src, _ := doc.Find("#profile-card img").Attr("src")
	assert.Equal(t, "https://avatar.vercel.sh/wanderlens.png?text=wa", src)

	value, _ := doc.Find("#instagram-handle").Attr("value")
	assert.Equal(t, "wanderlens", value)

	assert.Equal(t, "Travel <photos>", doc.Find("#account-description").Text())
	assert.Equal(t, "Grow", doc.Find("#account-goals").Text())
	assert.Equal(t, "Kyoto", doc.Find("#training-data").Text())
	assert.Equal(t, "Account description is required.", doc.Find(".form-error").Text())
}

func TestRenderEscapesModelOutput(t *testing.T) {
	state := &domain.SessionState{
		Bundle: &domain.SuggestionBundle{
			Hashtags:    []domain.HashtagSuggestion{{Hashtag: "#x<script>alert(1)</script>", Reason: "r"}},
			GrowthIdeas: []domain.GrowthIdea{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewPageData(state)))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}
