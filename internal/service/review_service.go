package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	pkgerrors "github.com/Hari-r31/internship-platform/pkg/errors"
)

// ── 评价模块业务错误 ──

var (
	ErrMustApplyFirst  = errors.New("申请过该岗位后才能评价")
	ErrAlreadyReviewed = errors.New("已评价过该岗位")
	ErrReviewNotFound  = errors.New("评价不存在")
	ErrNotReviewOwner  = errors.New("只有评价作者可以执行此操作")
)

// ReviewService 岗位评价业务接口
type ReviewService interface {
	// Create 学生对申请过的岗位提交评价
	Create(ctx context.Context, userID, internshipID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByInternship(ctx context.Context, internshipID string) ([]dto.ReviewResponse, error)
	Update(ctx context.Context, actorID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actorID, reviewID string) error
}

type reviewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, logger *zap.Logger) ReviewService {
	return &reviewService{repo: repo, logger: logger}
}

func (s *reviewService) Create(ctx context.Context, userID, internshipID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.repo.Internship.GetByID(ctx, internshipID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}

	// 评价资格：必须申请过该岗位
	applied, err := s.repo.Application.Exists(ctx, userID, internshipID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrMustApplyFirst
	}

	reviewed, err := s.repo.Review.Exists(ctx, userID, internshipID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	review := &model.RatingReview{
		UserID:       userID,
		InternshipID: internshipID,
		Rating:       req.Rating,
		Review:       req.Review,
	}
	if err := s.repo.Review.Create(ctx, review); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrAlreadyReviewed
		}
		s.logger.Error("创建评价失败", zap.Error(err))
		return nil, err
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) ListByInternship(ctx context.Context, internshipID string) ([]dto.ReviewResponse, error) {
	if _, err := s.repo.Internship.GetByID(ctx, internshipID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}

	reviews, err := s.repo.Review.ListByInternship(ctx, internshipID)
	if err != nil {
		s.logger.Error("查询评价列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, *toReviewResponse(&reviews[i]))
	}
	return resp, nil
}

func (s *reviewService) Update(ctx context.Context, actorID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.repo.Review.GetByID(ctx, reviewID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != actorID {
		return nil, ErrNotReviewOwner
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Review != nil {
		review.Review = req.Review
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.logger.Error("更新评价失败", zap.Error(err))
		return nil, err
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, actorID, reviewID string) error {
	review, err := s.repo.Review.GetByID(ctx, reviewID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != actorID {
		return ErrNotReviewOwner
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		s.logger.Error("删除评价失败", zap.Error(err))
		return err
	}
	return nil
}

// toReviewResponse 构造评价响应
func toReviewResponse(m *model.RatingReview) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:           m.ReviewID,
		InternshipID: m.InternshipID,
		UserID:       m.UserID,
		Rating:       m.Rating,
		Review:       m.Review,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
	if m.User != nil {
		resp.Username = m.User.Username
	}
	return resp
}
