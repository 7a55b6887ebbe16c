package model

// PageRequest is a 1-based page number and a page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo describes where a page sits in the full result set. Total is
// counted with the same filter as the page itself.
type PageInfo struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	HasMore    bool  `json:"hasMore"`
}

// NewPageInfo computes totalPages = ceil(total/limit) and whether pages after
// the requested one exist.
func NewPageInfo(req PageRequest, total int64) PageInfo {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return PageInfo{
		Total:      total,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
		HasMore:    req.Page < totalPages,
	}
}

// FeedPage is a page of posts.
type FeedPage struct {
	Posts []*PostView `json:"data"`
	PageInfo
}

// CommentPage is a page of comments of one post.
type CommentPage struct {
	Comments []*CommentView `json:"data"`
	PageInfo
}
