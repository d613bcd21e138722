package metadata

// SiteMetadata متادیتای استخراج‌شده از یک لینک؛ همه‌ی فیلدها اختیاری‌اند
type SiteMetadata struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	EmbedVideoURL *string `json:"embed_video_url,omitempty"`
	ThumbnailURL  *string `json:"thumbnail_url,omitempty"`
}

func (m *SiteMetadata) Empty() bool {
	return m == nil || (m.Title == nil && m.Description == nil && m.EmbedVideoURL == nil && m.ThumbnailURL == nil)
}
