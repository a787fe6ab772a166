package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	pkgerrors "github.com/Hari-r31/internship-platform/pkg/errors"
)

// ── 收藏模块业务错误 ──

var (
	ErrAlreadyBookmarked = errors.New("已收藏过该岗位")
	ErrBookmarkNotFound  = errors.New("收藏不存在")
)

// BookmarkService 收藏业务接口
type BookmarkService interface {
	Add(ctx context.Context, userID, internshipID string) (*dto.BookmarkResponse, error)
	Remove(ctx context.Context, userID, internshipID string) error
	List(ctx context.Context, userID string) ([]dto.BookmarkResponse, error)
	Check(ctx context.Context, userID, internshipID string) (bool, error)
	// Calendar 将收藏中设有截止日期的岗位导出为 iCalendar 订阅
	Calendar(ctx context.Context, userID string) (string, error)
}

type bookmarkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBookmarkService 创建 BookmarkService 实例
func NewBookmarkService(repo *repository.Repository, logger *zap.Logger) BookmarkService {
	return &bookmarkService{repo: repo, logger: logger}
}

func (s *bookmarkService) Add(ctx context.Context, userID, internshipID string) (*dto.BookmarkResponse, error) {
	internship, err := s.repo.Internship.GetByID(ctx, internshipID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}

	exists, err := s.repo.Bookmark.Exists(ctx, userID, internshipID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyBookmarked
	}

	bookmark := &model.Bookmark{
		UserID:       userID,
		InternshipID: internshipID,
	}
	entry := &model.ActivityLog{
		UserID:          userID,
		Action:          model.ActionBookmarkAdded,
		RelatedObjectID: &internship.InternshipID,
		Details:         fmt.Sprintf("收藏岗位 %s", internship.Title),
	}
	if err := s.repo.Bookmark.Create(ctx, bookmark, entry); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrAlreadyBookmarked
		}
		s.logger.Error("创建收藏失败", zap.Error(err))
		return nil, err
	}

	bookmark.Internship = internship
	return toBookmarkResponse(bookmark), nil
}

func (s *bookmarkService) Remove(ctx context.Context, userID, internshipID string) error {
	bookmark, err := s.repo.Bookmark.GetByUserAndInternship(ctx, userID, internshipID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrBookmarkNotFound
		}
		return err
	}

	details := "取消收藏"
	if bookmark.Internship != nil {
		details = fmt.Sprintf("取消收藏岗位 %s", bookmark.Internship.Title)
	}
	entry := &model.ActivityLog{
		UserID:          userID,
		Action:          model.ActionBookmarkRemoved,
		RelatedObjectID: &bookmark.InternshipID,
		Details:         details,
	}
	if err := s.repo.Bookmark.Delete(ctx, bookmark.BookmarkID, entry); err != nil {
		s.logger.Error("删除收藏失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *bookmarkService) List(ctx context.Context, userID string) ([]dto.BookmarkResponse, error) {
	bookmarks, err := s.repo.Bookmark.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询收藏列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.BookmarkResponse, 0, len(bookmarks))
	for i := range bookmarks {
		resp = append(resp, *toBookmarkResponse(&bookmarks[i]))
	}
	return resp, nil
}

func (s *bookmarkService) Check(ctx context.Context, userID, internshipID string) (bool, error) {
	return s.repo.Bookmark.Exists(ctx, userID, internshipID)
}

func (s *bookmarkService) Calendar(ctx context.Context, userID string) (string, error) {
	bookmarks, err := s.repo.Bookmark.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//internlink//bookmark-deadlines//CN")
	cal.SetName("收藏岗位截止日期")

	for i := range bookmarks {
		internship := bookmarks[i].Internship
		if internship == nil || internship.ExpiryDate == nil {
			continue
		}
		event := cal.AddEvent(fmt.Sprintf("bookmark-%s@internlink", bookmarks[i].BookmarkID))
		event.SetSummary(fmt.Sprintf("%s 申请截止", internship.Title))
		event.SetDescription(fmt.Sprintf("%s / %s", internship.Company, internship.Location))
		event.SetAllDayStartAt(*internship.ExpiryDate)
		event.SetAllDayEndAt(internship.ExpiryDate.AddDate(0, 0, 1))
		event.SetDtStampTime(time.Now())
	}

	return cal.Serialize(), nil
}

// toBookmarkResponse 构造收藏响应（含岗位快照字段）
func toBookmarkResponse(m *model.Bookmark) *dto.BookmarkResponse {
	resp := &dto.BookmarkResponse{
		ID:           m.BookmarkID,
		InternshipID: m.InternshipID,
		BookmarkedOn: m.BookmarkedOn.Format(time.RFC3339),
	}
	if m.Internship != nil {
		resp.InternshipTitle = m.Internship.Title
		resp.InternshipCompany = m.Internship.Company
		resp.InternshipLocation = m.Internship.Location
	}
	return resp
}
