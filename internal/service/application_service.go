package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/config"
	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
	pkgerrors "github.com/Hari-r31/internship-platform/pkg/errors"
	"github.com/Hari-r31/internship-platform/pkg/storage"
)

// ── 申请模块业务错误 ──

var (
	ErrAlreadyApplied        = errors.New("已申请过该岗位")
	ErrApplicationNotFound   = errors.New("申请不存在")
	ErrNotApplicationOwner   = errors.New("只有申请人本人可以执行此操作")
	ErrApplicationFinalized  = errors.New("申请已处理，状态不可再变更")
	ErrWithdrawNotPending    = errors.New("只有待处理的申请可以撤回")
	ErrUnsupportedResumeType = errors.New("简历仅支持 PDF/DOC/DOCX 格式")
)

// ApplicationService 申请业务接口
type ApplicationService interface {
	// Apply 学生申请岗位；resume 非 nil 时同时上传简历
	Apply(ctx context.Context, userID, internshipID string, resume *Upload) (*dto.ApplicationResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.ApplicationResponse, error)
	// ListForInternship 岗位发布者查看收到的申请
	ListForInternship(ctx context.Context, actorID, internshipID string) ([]dto.ApplicationResponse, error)
	// UpdateStatus 岗位发布者流转申请状态，仅允许 pending 进入终态
	UpdateStatus(ctx context.Context, actorID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	// Withdraw 申请人撤回待处理申请
	Withdraw(ctx context.Context, actorID, applicationID string) error
	HasApplied(ctx context.Context, userID, internshipID string) (bool, error)
	// ExportApplicants 导出岗位申请人列表为 Excel 工作簿
	ExportApplicants(ctx context.Context, actorID, internshipID string) (*excelize.File, string, error)
}

type applicationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	store  storage.Uploader
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(cfg *config.Config, repo *repository.Repository, store storage.Uploader, logger *zap.Logger) ApplicationService {
	return &applicationService{cfg: cfg, repo: repo, store: store, logger: logger}
}

func (s *applicationService) Apply(ctx context.Context, userID, internshipID string, resume *Upload) (*dto.ApplicationResponse, error) {
	internship, err := s.repo.Internship.GetByID(ctx, internshipID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}

	// 重复申请预检查，并发竞争由唯一约束兜底
	applied, err := s.repo.Application.Exists(ctx, userID, internshipID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	application := &model.Application{
		UserID:       userID,
		InternshipID: internshipID,
		Status:       model.ApplicationStatusPending,
	}

	if resume != nil {
		if s.store == nil {
			return nil, ErrStorageUnavailable
		}
		url, err := s.uploadResume(ctx, userID, resume)
		if err != nil {
			return nil, err
		}
		application.ResumeURL = &url
	}

	entry := &model.ActivityLog{
		UserID:  userID,
		Action:  model.ActionApplicationSubmitted,
		Details: fmt.Sprintf("申请岗位 %s", internship.Title),
	}
	if err := s.repo.Application.Create(ctx, application, entry); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrAlreadyApplied
		}
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	application.Internship = internship
	return toApplicationResponse(application), nil
}

func (s *applicationService) ListMine(ctx context.Context, userID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.repo.Application.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, *toApplicationResponse(&applications[i]))
	}
	return resp, nil
}

func (s *applicationService) ListForInternship(ctx context.Context, actorID, internshipID string) ([]dto.ApplicationResponse, error) {
	if _, err := s.ownedInternship(ctx, actorID, internshipID); err != nil {
		return nil, err
	}

	applications, err := s.repo.Application.ListByInternship(ctx, internshipID)
	if err != nil {
		s.logger.Error("查询岗位申请失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, *toApplicationResponse(&applications[i]))
	}
	return resp, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, actorID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	application, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if application.Internship == nil || application.Internship.RecruiterID != actorID {
		return nil, ErrNotInternshipOwner
	}
	if application.Status != model.ApplicationStatusPending {
		return nil, ErrApplicationFinalized
	}

	application.Status = req.Status
	entry := &model.ActivityLog{
		UserID:          actorID,
		Action:          model.ActionApplicationStatusChanged,
		RelatedObjectID: &application.ApplicationID,
		Details:         fmt.Sprintf("岗位 %s 的申请状态变更为 %s", application.Internship.Title, req.Status),
	}
	if err := s.repo.Application.UpdateStatus(ctx, application, entry); err != nil {
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return nil, err
	}

	return toApplicationResponse(application), nil
}

func (s *applicationService) Withdraw(ctx context.Context, actorID, applicationID string) error {
	application, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrApplicationNotFound
		}
		return err
	}
	if application.UserID != actorID {
		return ErrNotApplicationOwner
	}
	if application.Status != model.ApplicationStatusPending {
		return ErrWithdrawNotPending
	}

	details := "撤回申请"
	if application.Internship != nil {
		details = fmt.Sprintf("撤回岗位 %s 的申请", application.Internship.Title)
	}
	entry := &model.ActivityLog{
		UserID:          actorID,
		Action:          model.ActionApplicationWithdrawn,
		RelatedObjectID: &application.ApplicationID,
		Details:         details,
	}
	if err := s.repo.Application.Delete(ctx, applicationID, entry); err != nil {
		s.logger.Error("撤回申请失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *applicationService) HasApplied(ctx context.Context, userID, internshipID string) (bool, error) {
	return s.repo.Application.Exists(ctx, userID, internshipID)
}

func (s *applicationService) ExportApplicants(ctx context.Context, actorID, internshipID string) (*excelize.File, string, error) {
	internship, err := s.ownedInternship(ctx, actorID, internshipID)
	if err != nil {
		return nil, "", err
	}

	applications, err := s.repo.Application.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "申请人"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"用户名", "邮箱", "姓名", "状态", "申请时间", "简历"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, app := range applications {
		username, email, name := "", "", ""
		if app.User != nil {
			username = app.User.Username
			email = app.User.Email
			if app.User.Profile != nil {
				name = joinName(app.User.Profile.FirstName, app.User.Profile.LastName)
			}
		}
		resume := ""
		if app.ResumeURL != nil {
			resume = *app.ResumeURL
		}
		values := []interface{}{username, email, name, app.Status, app.AppliedOn.Format(time.RFC3339), resume}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("%s-申请人-%s.xlsx", internship.Title, time.Now().Format("20060102"))
	return f, filename, nil
}

// ownedInternship 查询岗位并校验操作者是其发布者
func (s *applicationService) ownedInternship(ctx context.Context, actorID, internshipID string) (*model.Internship, error) {
	internship, err := s.repo.Internship.GetByID(ctx, internshipID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	if internship.RecruiterID != actorID {
		return nil, ErrNotInternshipOwner
	}
	return internship, nil
}

// uploadResume 上传简历到对象存储，返回可访问 URL
func (s *applicationService) uploadResume(ctx context.Context, userID string, resume *Upload) (string, error) {
	ext := strings.ToLower(path.Ext(resume.Filename))
	switch ext {
	case ".pdf", ".doc", ".docx":
	default:
		return "", ErrUnsupportedResumeType
	}

	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.New().String(), ext)
	url, err := s.store.Upload(ctx, s.cfg.Storage.ResumeBucket, objectName, resume.Reader, resume.Size, resume.ContentType)
	if err != nil {
		s.logger.Error("上传简历失败", zap.Error(err))
		return "", err
	}
	return url, nil
}

// joinName 拼接姓名，空白部分跳过
func joinName(first, last *string) string {
	parts := make([]string, 0, 2)
	if first != nil && *first != "" {
		parts = append(parts, *first)
	}
	if last != nil && *last != "" {
		parts = append(parts, *last)
	}
	return strings.Join(parts, " ")
}

// toApplicationResponse 构造申请响应
func toApplicationResponse(m *model.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:        m.ApplicationID,
		Status:    m.Status,
		AppliedOn: m.AppliedOn.Format(time.RFC3339),
		ResumeURL: m.ResumeURL,
	}
	if m.Internship != nil {
		resp.Internship = toInternshipResponse(m.Internship, false)
	}
	if m.User != nil {
		resp.User = toUserResponse(m.User)
	}
	return resp
}
