package service

// ListQuery 是分页列表的统一入参。
type ListQuery struct {
	Search    string
	SortField string
	SortOrder string // asc / desc
	Page      int
	Limit     int
}

// normalize 兜底分页参数并把排序字段收敛到白名单，防止拼接进 SQL 的字段失控。
func (q ListQuery) normalize(sortable map[string]string, defaultField string) (ListQuery, string) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.SortOrder == "desc" || q.SortOrder == "DESC" {
		q.SortOrder = "DESC"
	} else {
		q.SortOrder = "ASC"
	}
	column, ok := sortable[q.SortField]
	if !ok {
		column = sortable[defaultField]
	}
	return q, column
}

// Paged 是分页列表的统一响应。
// totalPages = ceil(total/limit)，isLastPage = page >= totalPages。
type Paged[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int64 `json:"totalPages"`
	IsLastPage bool  `json:"isLastPage"`
}

func newPaged[T any](data []T, total int64, page, limit int) *Paged[T] {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	if data == nil {
		data = []T{}
	}
	return &Paged[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		IsLastPage: int64(page) >= totalPages,
	}
}
