// Package articles supplies article titles to the vocabulary builder. It
// defines the record model and the CSV, PostgreSQL and Kafka sources, plus
// the publisher that loads CSV titles into Kafka.
package articles

import "time"

// Record is one article row reduced to the fields the pipeline uses.
type Record struct {
	ID    string
	Title string
}

// TitleEvent is the Kafka message payload carrying one article title.
type TitleEvent struct {
	ArticleID   string    `json:"article_id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
}
