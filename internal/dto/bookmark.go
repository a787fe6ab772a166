package dto

// ── 收藏模块 DTO ──

// BookmarkResponse 收藏响应
// 岗位快照字段在读取时联表计算，不做冗余存储
type BookmarkResponse struct {
	ID                 string `json:"id"`
	InternshipID       string `json:"internship_id"`
	InternshipTitle    string `json:"internship_title"`
	InternshipCompany  string `json:"internship_company"`
	InternshipLocation string `json:"internship_location"`
	BookmarkedOn       string `json:"bookmarked_on"`
}

// BookmarkCheckResponse 是否已收藏检查响应
type BookmarkCheckResponse struct {
	Bookmarked bool `json:"bookmarked"`
}
