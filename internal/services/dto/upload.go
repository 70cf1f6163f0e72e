package dto

type UploadResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Usage       string `json:"usage"`
	CreatedAt   string `json:"created_at"`
}

type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Icon          *string  `json:"icon,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
}
