package graph

type engagementResponse struct {
	ID         string            `json:"id"`
	Engagement *engagementFields `json:"engagement"`
	Error      *apiError         `json:"error"`
}

type engagementFields struct {
	ReactionCount      int64 `json:"reaction_count"`
	CommentCount       int64 `json:"comment_count"`
	ShareCount         int64 `json:"share_count"`
	CommentPluginCount int64 `json:"comment_plugin_count"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}
