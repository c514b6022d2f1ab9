// Package faq manages frequently asked questions.
package faq

import "time"

type Question struct {
	ID        int64     `json:"id"`
	TitleEn   string    `json:"titleEn"`
	TitleAr   string    `json:"titleAr"`
	AnswerEn  string    `json:"answerEn"`
	AnswerAr  string    `json:"answerAr"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListQuery struct {
	Search string
	Offset int
	Limit  int
}
