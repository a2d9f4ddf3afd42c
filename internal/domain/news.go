package domain

// ArticleSource identifies the publisher of an Article.
type ArticleSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a headline reshaped from the external news feed.
type Article struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Source      ArticleSource `json:"source"`
	Category    string        `json:"category"`
}

// Headlines is one page of articles plus the feed's total result count.
type Headlines struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"totalResults"`
}
