package server

import "socialfeed/internal/models"

// Mutation results are always answered with HTTP 200; Success tells the
// client whether the change was applied.

type PostResult struct {
	Post    *models.Post `json:"post"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
}

type CommentResult struct {
	Comment *models.Comment `json:"comment"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

type LikeResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Like    *models.Like `json:"like"`
}

type ShareResult struct {
	Share   *models.Share `json:"share"`
	Success bool          `json:"success"`
	Message string        `json:"message"`
}

type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CreatePostRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
}

// UpdatePostRequest fields are optional; an absent field is left unchanged.
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}
