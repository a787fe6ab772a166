package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
)

func setupTestApplicationService(store *mockUploader) (ApplicationService, *mockUserRepo, *mockInternshipRepo, *mockApplicationRepo) {
	cfg := testConfig()
	repo, users, internships, applications, _, _, _ := testRepo()

	var svc ApplicationService
	if store != nil {
		svc = NewApplicationService(cfg, repo, store, zap.NewNop())
	} else {
		svc = NewApplicationService(cfg, repo, nil, zap.NewNop())
	}
	return svc, users, internships, applications
}

// ── 申请测试 ──

func TestApply_Success(t *testing.T) {
	svc, _, internships, applications := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	result, err := svc.Apply(context.Background(), "student-alice", "internship-1", nil)
	if err != nil {
		t.Fatalf("Apply 应成功: %v", err)
	}
	if result.Status != model.ApplicationStatusPending {
		t.Errorf("新申请状态应为 pending，实际=%s", result.Status)
	}
	if len(applications.logs) != 1 || applications.logs[0].Action != model.ActionApplicationSubmitted {
		t.Errorf("期望一条 application_submitted 日志，实际=%v", applications.logs)
	}
}

func TestApply_Duplicate(t *testing.T) {
	svc, _, internships, _ := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	if _, err := svc.Apply(context.Background(), "student-alice", "internship-1", nil); err != nil {
		t.Fatalf("首次 Apply 应成功: %v", err)
	}

	// 同一学生重复申请同一岗位
	_, err := svc.Apply(context.Background(), "student-alice", "internship-1", nil)
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Errorf("期望 ErrAlreadyApplied，实际: %v", err)
	}
}

func TestApply_InternshipNotFound(t *testing.T) {
	svc, _, _, _ := setupTestApplicationService(nil)

	_, err := svc.Apply(context.Background(), "student-alice", "no-such-internship", nil)
	if !errors.Is(err, ErrInternshipNotFound) {
		t.Errorf("期望 ErrInternshipNotFound，实际: %v", err)
	}
}

func TestApply_WithResume(t *testing.T) {
	store := &mockUploader{}
	svc, _, internships, _ := setupTestApplicationService(store)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	result, err := svc.Apply(context.Background(), "student-alice", "internship-1", &Upload{
		Reader:      strings.NewReader("fake-pdf"),
		Size:        8,
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
	})

	if err != nil {
		t.Fatalf("Apply(带简历) 应成功: %v", err)
	}
	if result.ResumeURL == nil || *result.ResumeURL == "" {
		t.Error("简历 URL 应写入申请")
	}
	if len(store.uploaded) != 1 || !strings.HasPrefix(store.uploaded[0], "resumes/") {
		t.Errorf("简历应上传到 resumes 桶，实际=%v", store.uploaded)
	}
}

func TestApply_UnsupportedResumeType(t *testing.T) {
	store := &mockUploader{}
	svc, _, internships, _ := setupTestApplicationService(store)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	_, err := svc.Apply(context.Background(), "student-alice", "internship-1", &Upload{
		Reader:   strings.NewReader("script"),
		Size:     6,
		Filename: "resume.sh",
	})

	if !errors.Is(err, ErrUnsupportedResumeType) {
		t.Errorf("期望 ErrUnsupportedResumeType，实际: %v", err)
	}
}

// ── 状态流转测试 ──

func TestUpdateStatus_Success(t *testing.T) {
	svc, _, internships, applications := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	created, err := svc.Apply(context.Background(), "student-alice", "internship-1", nil)
	if err != nil {
		t.Fatalf("Apply 应成功: %v", err)
	}
	applications.logs = nil

	result, err := svc.UpdateStatus(context.Background(), "recruiter-bob", created.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusAccepted,
	})
	if err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if result.Status != model.ApplicationStatusAccepted {
		t.Errorf("期望 Status=accepted，实际=%s", result.Status)
	}

	// 状态流转日志以操作者（招聘者）记账
	if len(applications.logs) != 1 || applications.logs[0].Action != model.ActionApplicationStatusChanged {
		t.Fatalf("期望一条 application_status_changed 日志，实际=%v", applications.logs)
	}
	if applications.logs[0].UserID != "recruiter-bob" {
		t.Errorf("状态流转日志应归属操作者，实际=%s", applications.logs[0].UserID)
	}
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	svc, _, internships, _ := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	created, _ := svc.Apply(context.Background(), "student-alice", "internship-1", nil)

	// 其他招聘者不能处理不属于自己岗位的申请
	_, err := svc.UpdateStatus(context.Background(), "recruiter-carol", created.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusAccepted,
	})
	if !errors.Is(err, ErrNotInternshipOwner) {
		t.Errorf("期望 ErrNotInternshipOwner，实际: %v", err)
	}
}

func TestUpdateStatus_AlreadyFinalized(t *testing.T) {
	svc, _, internships, _ := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	created, _ := svc.Apply(context.Background(), "student-alice", "internship-1", nil)
	if _, err := svc.UpdateStatus(context.Background(), "recruiter-bob", created.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusRejected,
	}); err != nil {
		t.Fatalf("首次流转应成功: %v", err)
	}

	// 终态不可再变更
	_, err := svc.UpdateStatus(context.Background(), "recruiter-bob", created.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusAccepted,
	})
	if !errors.Is(err, ErrApplicationFinalized) {
		t.Errorf("期望 ErrApplicationFinalized，实际: %v", err)
	}
}

// ── 撤回测试 ──

func TestWithdraw(t *testing.T) {
	svc, _, internships, applications := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	created, _ := svc.Apply(context.Background(), "student-alice", "internship-1", nil)

	// 非申请人撤回 → 403 语义
	if err := svc.Withdraw(context.Background(), "student-dave", created.ID); !errors.Is(err, ErrNotApplicationOwner) {
		t.Errorf("期望 ErrNotApplicationOwner，实际: %v", err)
	}

	applications.logs = nil
	if err := svc.Withdraw(context.Background(), "student-alice", created.ID); err != nil {
		t.Fatalf("Withdraw 应成功: %v", err)
	}
	if len(applications.logs) != 1 || applications.logs[0].Action != model.ActionApplicationWithdrawn {
		t.Fatalf("期望一条 application_withdrawn 日志，实际=%v", applications.logs)
	}
	if rid := applications.logs[0].RelatedObjectID; rid == nil || *rid != created.ID {
		t.Errorf("application_withdrawn 日志应关联申请 ID，实际=%v", rid)
	}

	// 撤回后可重新申请
	if _, err := svc.Apply(context.Background(), "student-alice", "internship-1", nil); err != nil {
		t.Errorf("撤回后重新申请应成功: %v", err)
	}
}

func TestWithdraw_NotPending(t *testing.T) {
	svc, _, internships, _ := setupTestApplicationService(nil)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	created, _ := svc.Apply(context.Background(), "student-alice", "internship-1", nil)
	if _, err := svc.UpdateStatus(context.Background(), "recruiter-bob", created.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusAccepted,
	}); err != nil {
		t.Fatalf("流转应成功: %v", err)
	}

	err := svc.Withdraw(context.Background(), "student-alice", created.ID)
	if !errors.Is(err, ErrWithdrawNotPending) {
		t.Errorf("期望 ErrWithdrawNotPending，实际: %v", err)
	}
}

// ── 申请人列表与导出测试 ──

func TestListForInternship_OwnerOnly(t *testing.T) {
	svc, users, internships, _ := setupTestApplicationService(nil)
	createTestUser(users, "alice", "password123", model.RoleStudent)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	if _, err := svc.Apply(context.Background(), "user-alice", "internship-1", nil); err != nil {
		t.Fatalf("Apply 应成功: %v", err)
	}

	list, err := svc.ListForInternship(context.Background(), "recruiter-bob", "internship-1")
	if err != nil {
		t.Fatalf("发布者查看申请应成功: %v", err)
	}
	if len(list) != 1 || list[0].User == nil || list[0].User.Username != "alice" {
		t.Errorf("申请列表应含申请人信息，实际=%v", list)
	}

	_, err = svc.ListForInternship(context.Background(), "recruiter-carol", "internship-1")
	if !errors.Is(err, ErrNotInternshipOwner) {
		t.Errorf("期望 ErrNotInternshipOwner，实际: %v", err)
	}
}

func TestExportApplicants(t *testing.T) {
	svc, users, internships, _ := setupTestApplicationService(nil)
	createTestUser(users, "alice", "password123", model.RoleStudent)
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	if _, err := svc.Apply(context.Background(), "user-alice", "internship-1", nil); err != nil {
		t.Fatalf("Apply 应成功: %v", err)
	}

	f, filename, err := svc.ExportApplicants(context.Background(), "recruiter-bob", "internship-1")
	if err != nil {
		t.Fatalf("ExportApplicants 应成功: %v", err)
	}
	defer f.Close()

	if filename == "" {
		t.Error("导出文件名不应为空")
	}

	// 表头 + 一行申请人
	cell, err := f.GetCellValue("申请人", "A2")
	if err != nil {
		t.Fatalf("读取导出内容失败: %v", err)
	}
	if cell != "alice" {
		t.Errorf("期望 A2=alice，实际=%s", cell)
	}

	// 非发布者不可导出
	if _, _, err := svc.ExportApplicants(context.Background(), "recruiter-carol", "internship-1"); !errors.Is(err, ErrNotInternshipOwner) {
		t.Errorf("期望 ErrNotInternshipOwner，实际: %v", err)
	}
}
