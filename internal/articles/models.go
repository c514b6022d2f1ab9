// Package articles manages blog articles. Publishing stamps the publish
// date; unpublishing clears it.
package articles

import "time"

type Article struct {
	ID          int64      `json:"id"`
	TitleEn     string     `json:"titleEn"`
	TitleAr     string     `json:"titleAr"`
	ContentEn   string     `json:"contentEn"`
	ContentAr   string     `json:"contentAr"`
	CategoryID  *int64     `json:"categoryId"`
	ImageURL    *string    `json:"imageUrl"`
	Published   bool       `json:"published"`
	PublishDate *time.Time `json:"publishDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListQuery narrows a listing. Search matches titles and content in both
// languages.
type ListQuery struct {
	Search    string
	Published *bool
	Offset    int
	Limit     int
}
