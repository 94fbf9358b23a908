package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Page[T any](c *gin.Context, data []T, count int64, page, pageSize int) {
	totalPages := int(count) / pageSize
	if int(count)%pageSize != 0 {
		totalPages++
	}

	c.JSON(200, PageResponse[T]{
		Data:       data,
		Count:      count,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}
