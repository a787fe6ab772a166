package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
)

// ActivityLogService 活动日志业务接口
// 日志只读：写入由各实体变更的事务内副作用完成
type ActivityLogService interface {
	List(ctx context.Context, userID string, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error)
}

type activityLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityLogService 创建 ActivityLogService 实例
func NewActivityLogService(repo *repository.Repository, logger *zap.Logger) ActivityLogService {
	return &activityLogService{repo: repo, logger: logger}
}

func (s *activityLogService) List(ctx context.Context, userID string, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error) {
	filter := &repository.ActivityLogFilter{}

	if req.Action != "" {
		if !model.ValidAction(req.Action) {
			return nil, 0, &FilterError{Field: "action", Message: "不是合法的动作取值"}
		}
		filter.Action = req.Action
	}
	if req.StartDate != "" {
		t, err := parseBoundTime(req.StartDate)
		if err != nil {
			return nil, 0, &FilterError{Field: "start_date", Message: "必须是 RFC3339 时间或 YYYY-MM-DD 日期"}
		}
		filter.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := parseBoundTime(req.EndDate)
		if err != nil {
			return nil, 0, &FilterError{Field: "end_date", Message: "必须是 RFC3339 时间或 YYYY-MM-DD 日期"}
		}
		filter.EndDate = &t
	}

	logs, total, err := s.repo.ActivityLog.ListByUser(ctx, userID, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询活动日志失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.ActivityLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, dto.ActivityLogResponse{
			ID:              logs[i].ActivityLogID,
			Action:          logs[i].Action,
			RelatedObjectID: logs[i].RelatedObjectID,
			Details:         logs[i].Details,
			Timestamp:       logs[i].Timestamp.Format(time.RFC3339),
		})
	}
	return resp, total, nil
}
