// Package session holds the one-step conversational memory: the most recent
// article batch and the most recent assistant response. State is a value
// passed into and returned from every dispatch; there is no global copy and
// nothing survives process exit.
package session

import "news-assistant/internal/news"

// State carries at most one fetch batch and one response at a time. Each
// successful fetch or reply overwrites the previous one.
type State struct {
	Articles     []news.Article
	LastResponse string
}

// WithArticles returns a copy of s whose batch is fully replaced.
func (s State) WithArticles(batch []news.Article) State {
	s.Articles = batch
	return s
}

// WithResponse returns a copy of s with the latest assistant response.
func (s State) WithResponse(text string) State {
	s.LastResponse = text
	return s
}

// Article returns the 1-based article n from the current batch.
func (s State) Article(n int) (news.Article, bool) {
	if n < 1 || n > len(s.Articles) {
		return news.Article{}, false
	}
	return s.Articles[n-1], true
}
