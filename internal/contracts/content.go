package contracts

// NewsArticle is one slide of the home news carousel
type NewsArticle struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// NewsCount is the fixed length of the news carousel
const NewsCount = 5
