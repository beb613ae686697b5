package handler

// Response messages shared by the article endpoints.
const (
	MsgValidationError = "Validation error"
	MsgArticleNotFound = "Article not found"
	MsgArticleDeleted  = "Article deleted successfully"
	MsgCleanupDone     = "Cleanup completed"

	// cleanupDescriptionFormat is the Vietnamese summary shown after a cleanup.
	cleanupDescriptionFormat = "Đã xóa %d bài viết chưa xuất bản khỏi hệ thống"
)

// MessageResponse is the generic {message} body.
type MessageResponse struct {
	Message string `json:"message"`
}
