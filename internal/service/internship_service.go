package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	pkgerrors "github.com/Hari-r31/internship-platform/pkg/errors"
)

// ── 岗位模块业务错误 ──

var (
	ErrInternshipNotFound = errors.New("岗位不存在")
	ErrNotInternshipOwner = errors.New("只有岗位发布者可以执行此操作")
	ErrInvalidExpiryDate  = errors.New("截止日期格式无效")
)

// FilterError 列表过滤参数解析错误，携带出错的参数名
type FilterError struct {
	Field   string
	Message string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// expiryDateLayouts 截止日期接受的输入格式，按此顺序尝试
var expiryDateLayouts = []string{
	"2006-01-02", // ISO
	"01/02/2006", // 美式 MM/DD/YYYY
	"02-01-2006", // 欧式 DD-MM-YYYY
}

// parseExpiryDate 多格式解析截止日期并规范化为日历日期
func parseExpiryDate(raw string) (time.Time, error) {
	for _, layout := range expiryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidExpiryDate
}

// InternshipService 实习岗位业务接口
type InternshipService interface {
	Create(ctx context.Context, recruiterID string, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error)
	// List 公开列表；actorID/actorRole 为可选的当前登录身份，
	// 学生身份时额外计算每条岗位的 bookmarked 标记
	List(ctx context.Context, req *dto.InternshipListRequest, actorID, actorRole string) ([]dto.InternshipResponse, int64, error)
	GetByID(ctx context.Context, id string, actorID, actorRole string) (*dto.InternshipResponse, error)
	ListMine(ctx context.Context, recruiterID string) ([]dto.InternshipResponse, error)
	Update(ctx context.Context, actorID, id string, req *dto.UpdateInternshipRequest) (*dto.InternshipResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type internshipService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInternshipService 创建 InternshipService 实例
func NewInternshipService(repo *repository.Repository, logger *zap.Logger) InternshipService {
	return &internshipService{repo: repo, logger: logger}
}

func (s *internshipService) Create(ctx context.Context, recruiterID string, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error) {
	internship := &model.Internship{
		Title:          req.Title,
		Description:    req.Description,
		Company:        req.Company,
		Location:       req.Location,
		Stipend:        req.Stipend,
		InternshipType: req.InternshipType,
		ApplyLink:      req.ApplyLink,
		Status:         model.InternshipStatusOpen,
		RecruiterID:    recruiterID,
	}

	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		date, err := parseExpiryDate(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		internship.ExpiryDate = &date
	}

	entry := &model.ActivityLog{
		UserID:  recruiterID,
		Action:  model.ActionInternshipPosted,
		Details: fmt.Sprintf("发布岗位 %s", req.Title),
	}
	if err := s.repo.Internship.Create(ctx, internship, entry); err != nil {
		s.logger.Error("创建岗位失败", zap.Error(err))
		return nil, err
	}

	return toInternshipResponse(internship, false), nil
}

func (s *internshipService) List(ctx context.Context, req *dto.InternshipListRequest, actorID, actorRole string) ([]dto.InternshipResponse, int64, error) {
	filter, err := buildInternshipFilter(req)
	if err != nil {
		return nil, 0, err
	}

	internships, total, err := s.repo.Internship.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询岗位列表失败", zap.Error(err))
		return nil, 0, err
	}

	bookmarked, err := s.bookmarkedSet(ctx, actorID, actorRole)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]dto.InternshipResponse, 0, len(internships))
	for i := range internships {
		resp = append(resp, *toInternshipResponse(&internships[i], bookmarked[internships[i].InternshipID]))
	}
	return resp, total, nil
}

func (s *internshipService) GetByID(ctx context.Context, id string, actorID, actorRole string) (*dto.InternshipResponse, error) {
	internship, err := s.repo.Internship.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}

	marked := false
	if actorID != "" && actorRole == model.RoleStudent {
		marked, err = s.repo.Bookmark.Exists(ctx, actorID, id)
		if err != nil {
			return nil, err
		}
	}
	return toInternshipResponse(internship, marked), nil
}

func (s *internshipService) ListMine(ctx context.Context, recruiterID string) ([]dto.InternshipResponse, error) {
	internships, err := s.repo.Internship.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		s.logger.Error("查询发布岗位失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.InternshipResponse, 0, len(internships))
	for i := range internships {
		resp = append(resp, *toInternshipResponse(&internships[i], false))
	}
	return resp, nil
}

func (s *internshipService) Update(ctx context.Context, actorID, id string, req *dto.UpdateInternshipRequest) (*dto.InternshipResponse, error) {
	internship, err := s.repo.Internship.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	if internship.RecruiterID != actorID {
		return nil, ErrNotInternshipOwner
	}

	if req.Title != nil {
		internship.Title = *req.Title
	}
	if req.Description != nil {
		internship.Description = *req.Description
	}
	if req.Company != nil {
		internship.Company = *req.Company
	}
	if req.Location != nil {
		internship.Location = *req.Location
	}
	if req.Stipend != nil {
		internship.Stipend = req.Stipend
	}
	if req.InternshipType != nil {
		internship.InternshipType = *req.InternshipType
	}
	if req.ApplyLink != nil {
		internship.ApplyLink = req.ApplyLink
	}
	if req.Status != nil {
		internship.Status = *req.Status
	}
	if req.ExpiryDate != nil {
		if *req.ExpiryDate == "" {
			internship.ExpiryDate = nil
		} else {
			date, err := parseExpiryDate(*req.ExpiryDate)
			if err != nil {
				return nil, err
			}
			internship.ExpiryDate = &date
		}
	}

	entry := &model.ActivityLog{
		UserID:          actorID,
		Action:          model.ActionInternshipUpdated,
		RelatedObjectID: &internship.InternshipID,
		Details:         fmt.Sprintf("更新岗位 %s", internship.Title),
	}
	if err := s.repo.Internship.Update(ctx, internship, entry); err != nil {
		s.logger.Error("更新岗位失败", zap.Error(err))
		return nil, err
	}

	return toInternshipResponse(internship, false), nil
}

func (s *internshipService) Delete(ctx context.Context, actorID, id string) error {
	internship, err := s.repo.Internship.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrInternshipNotFound
		}
		return err
	}
	if internship.RecruiterID != actorID {
		return ErrNotInternshipOwner
	}

	entry := &model.ActivityLog{
		UserID:          actorID,
		Action:          model.ActionInternshipDeleted,
		RelatedObjectID: &internship.InternshipID,
		Details:         fmt.Sprintf("删除岗位 %s", internship.Title),
	}
	if err := s.repo.Internship.Delete(ctx, id, entry); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrInternshipNotFound
		}
		s.logger.Error("删除岗位失败", zap.Error(err))
		return err
	}
	return nil
}

// bookmarkedSet 学生身份时取出其全部收藏的岗位 ID 集合，供列表打标
func (s *internshipService) bookmarkedSet(ctx context.Context, actorID, actorRole string) (map[string]bool, error) {
	if actorID == "" || actorRole != model.RoleStudent {
		return nil, nil
	}
	bookmarks, err := s.repo.Bookmark.ListByUser(ctx, actorID)
	if err != nil {
		s.logger.Error("查询收藏失败", zap.Error(err))
		return nil, err
	}
	set := make(map[string]bool, len(bookmarks))
	for i := range bookmarks {
		set[bookmarks[i].InternshipID] = true
	}
	return set, nil
}

// buildInternshipFilter 解析列表查询参数，非法取值返回字段级错误
func buildInternshipFilter(req *dto.InternshipListRequest) (*repository.InternshipFilter, error) {
	filter := &repository.InternshipFilter{
		Location:         req.Location,
		LocationContains: req.LocationContains,
		InternshipType:   req.InternshipType,
		Search:           req.Search,
		Ordering:         req.Ordering,
	}

	if req.StipendGTE != "" {
		d, err := decimal.NewFromString(req.StipendGTE)
		if err != nil {
			return nil, &FilterError{Field: "stipend_gte", Message: "必须是数字"}
		}
		filter.StipendGTE = &d
	}
	if req.StipendLTE != "" {
		d, err := decimal.NewFromString(req.StipendLTE)
		if err != nil {
			return nil, &FilterError{Field: "stipend_lte", Message: "必须是数字"}
		}
		filter.StipendLTE = &d
	}
	if req.PostedAfter != "" {
		t, err := parseBoundTime(req.PostedAfter)
		if err != nil {
			return nil, &FilterError{Field: "posted_after", Message: "必须是 RFC3339 时间或 YYYY-MM-DD 日期"}
		}
		filter.PostedAfter = &t
	}
	if req.PostedBefore != "" {
		t, err := parseBoundTime(req.PostedBefore)
		if err != nil {
			return nil, &FilterError{Field: "posted_before", Message: "必须是 RFC3339 时间或 YYYY-MM-DD 日期"}
		}
		filter.PostedBefore = &t
	}

	return filter, nil
}

// parseBoundTime 解析时间边界参数，接受 RFC3339 与纯日期两种形式
func parseBoundTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// toInternshipResponse 构造岗位响应
func toInternshipResponse(m *model.Internship, bookmarked bool) *dto.InternshipResponse {
	resp := &dto.InternshipResponse{
		ID:             m.InternshipID,
		Title:          m.Title,
		Description:    m.Description,
		Company:        m.Company,
		Location:       m.Location,
		Stipend:        m.Stipend,
		InternshipType: m.InternshipType,
		ApplyLink:      m.ApplyLink,
		PostedOn:       m.PostedOn.Format(time.RFC3339),
		Status:         m.Status,
		RecruiterID:    m.RecruiterID,
		Bookmarked:     bookmarked,
	}
	if m.ExpiryDate != nil {
		date := m.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &date
	}
	return resp
}
