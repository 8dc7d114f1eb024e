package dto

// NewsItemDTO 列表页单条资讯
type NewsItemDTO struct {
	NewsID       uint64 `json:"news_id"`
	RedirectURL  string `json:"redirect_url"`
	Category     int    `json:"category"`
	Title        string `json:"title"`
	Introduction string `json:"introduction"`
	ImgURL       string `json:"img_url"`
	CreatedAt    string `json:"created_at"`
	PV           int64  `json:"pv"`
	ThumbUp      int64  `json:"thumb_up"`
	CommentNum   int64  `json:"comment_num"`
}

// NewsListDTO 列表页返回包装
type NewsListDTO struct {
	List      []*NewsItemDTO `json:"list"`
	TotalPage int64          `json:"total_page"`
}

// NewsDetailDTO 详情页返回
type NewsDetailDTO struct {
	NewsID       uint64        `json:"news_id"`
	Category     int           `json:"category"`
	Kind         int8          `json:"kind"`
	Title        string        `json:"title"`
	Introduction string        `json:"introduction"`
	Content      string        `json:"content"`
	ImgURL       string        `json:"img_url"`
	WriterName   string        `json:"writer_name"`
	CreatedAt    string        `json:"created_at"`
	PV           int64         `json:"pv"`
	ThumbUp      int64         `json:"thumb_up"`
	CommentNum   int64         `json:"comment_num"`
	IfThumb      bool          `json:"if_thumb"`
	CommentList  []*CommentDTO `json:"comment_list"`
	ShareLink    string        `json:"share_link"`
}
