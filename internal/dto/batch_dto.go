package dto

// Batch entry statuses.
const (
	BatchStatusPending   = "pending"
	BatchStatusUploading = "uploading"
	BatchStatusComplete  = "complete"
	BatchStatusError     = "error"
)

// BatchEntryResponse mirrors the per-file upload state machine.
type BatchEntryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MediaType    string `json:"media_type"`
	Progress     int    `json:"progress"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	MediaURL     string `json:"media_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// BatchResponse aggregates a batch run.
type BatchResponse struct {
	BatchID   string               `json:"batch_id"`
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Done      bool                 `json:"done"`
	Entries   []BatchEntryResponse `json:"entries"`
}
