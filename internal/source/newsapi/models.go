package newsapi

// Response is the top-headlines envelope. Status is "ok" on success;
// otherwise Code/Message describe the rejection.
type Response struct {
	Status       string   `json:"status"`
	Code         string   `json:"code,omitempty"`
	Message      string   `json:"message,omitempty"`
	TotalResults int      `json:"totalResults"`
	Articles     []Record `json:"articles"`
}

// Record is one article as the provider ships it.
type Record struct {
	Source      *RecordSource `json:"source,omitempty"`
	Author      *string       `json:"author"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	URL         string        `json:"url"`
	URLToImage  *string       `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     *string       `json:"content"`
}

type RecordSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}
