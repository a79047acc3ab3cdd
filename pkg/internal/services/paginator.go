package services

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm"
)

const FeedPageSize = 10

type FeedPage struct {
	Items        []models.Post `json:"items"`
	Number       int           `json:"number"`
	TotalPages   int           `json:"total_pages"`
	Count        int64         `json:"count"`
	HasNext      bool          `json:"has_next"`
	HasPrevious  bool          `json:"has_previous"`
	NextPage     *int          `json:"next_page"`
	PreviousPage *int          `json:"previous_page"`
}

type Paginator struct {
	Count   int64
	PerPage int
}

// TotalPages never returns zero, an empty listing still has its first page.
func (v Paginator) TotalPages() int {
	if v.Count <= 0 {
		return 1
	}
	size := int64(v.PerPage)
	return int((v.Count + size - 1) / size)
}

func (v Paginator) Clamp(number int) int {
	return max(1, min(number, v.TotalPages()))
}

func (v Paginator) Offset(number int) int {
	return (v.Clamp(number) - 1) * v.PerPage
}

func (v Paginator) Page(number int, items []models.Post) FeedPage {
	number = v.Clamp(number)
	total := v.TotalPages()
	if items == nil {
		items = []models.Post{}
	}

	page := FeedPage{
		Items:       items,
		Number:      number,
		TotalPages:  total,
		Count:       max(v.Count, 0),
		HasNext:     number < total,
		HasPrevious: number > 1,
	}
	if page.HasNext {
		next := number + 1
		page.NextPage = &next
	}
	if page.HasPrevious {
		previous := number - 1
		page.PreviousPage = &previous
	}
	return page
}

// PaginatePost counts and lists on separate sessions so the filters of tx are reused without leaking between queries.
func PaginatePost(tx *gorm.DB, number int) (FeedPage, error) {
	count, err := CountPost(tx.Session(&gorm.Session{}))
	if err != nil {
		return FeedPage{}, err
	}

	paginator := Paginator{Count: count, PerPage: FeedPageSize}
	items, err := ListPost(tx.Session(&gorm.Session{}), FeedPageSize, paginator.Offset(number), PostListOrder)
	if err != nil {
		return FeedPage{}, err
	}

	return paginator.Page(number, items), nil
}
