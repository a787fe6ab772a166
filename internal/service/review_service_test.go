package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/model"
)

func setupTestReviewService() (ReviewService, *mockInternshipRepo, *mockApplicationRepo, *mockReviewRepo) {
	repo, _, internships, applications, _, _, reviews := testRepo()
	svc := NewReviewService(repo, zap.NewNop())
	return svc, internships, applications, reviews
}

func addTestApplication(applications *mockApplicationRepo, userID, internshipID string) {
	applications.nextID++
	id := "application-" + userID
	applications.applications[id] = &model.Application{
		ApplicationID: id,
		UserID:        userID,
		InternshipID:  internshipID,
		Status:        model.ApplicationStatusPending,
	}
}

func TestCreateReview_MustApplyFirst(t *testing.T) {
	svc, internships, _, _ := setupTestReviewService()
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")

	_, err := svc.Create(context.Background(), "student-alice", "internship-1", &dto.CreateReviewRequest{
		Rating: 5,
	})
	if !errors.Is(err, ErrMustApplyFirst) {
		t.Errorf("期望 ErrMustApplyFirst，实际: %v", err)
	}
}

func TestCreateReview_Success(t *testing.T) {
	svc, internships, applications, _ := setupTestReviewService()
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")
	addTestApplication(applications, "student-alice", "internship-1")

	result, err := svc.Create(context.Background(), "student-alice", "internship-1", &dto.CreateReviewRequest{
		Rating: 4,
		Review: strptr("氛围不错"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Rating != 4 {
		t.Errorf("期望 Rating=4，实际=%d", result.Rating)
	}

	// 一人一岗一条评价
	_, err = svc.Create(context.Background(), "student-alice", "internship-1", &dto.CreateReviewRequest{
		Rating: 2,
	})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("期望 ErrAlreadyReviewed，实际: %v", err)
	}
}

func TestUpdateReview_OwnerOnly(t *testing.T) {
	svc, internships, applications, _ := setupTestReviewService()
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")
	addTestApplication(applications, "student-alice", "internship-1")

	created, err := svc.Create(context.Background(), "student-alice", "internship-1", &dto.CreateReviewRequest{Rating: 3})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	rating := 5
	if _, err := svc.Update(context.Background(), "student-dave", created.ID, &dto.UpdateReviewRequest{Rating: &rating}); !errors.Is(err, ErrNotReviewOwner) {
		t.Errorf("期望 ErrNotReviewOwner，实际: %v", err)
	}

	result, err := svc.Update(context.Background(), "student-alice", created.ID, &dto.UpdateReviewRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("作者更新应成功: %v", err)
	}
	if result.Rating != 5 {
		t.Errorf("期望 Rating=5，实际=%d", result.Rating)
	}
}

func TestDeleteReview(t *testing.T) {
	svc, internships, applications, reviews := setupTestReviewService()
	createTestInternship(internships, "internship-1", "后端实习生", "recruiter-bob")
	addTestApplication(applications, "student-alice", "internship-1")

	created, err := svc.Create(context.Background(), "student-alice", "internship-1", &dto.CreateReviewRequest{Rating: 3})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), "student-dave", created.ID); !errors.Is(err, ErrNotReviewOwner) {
		t.Errorf("期望 ErrNotReviewOwner，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), "student-alice", created.ID); err != nil {
		t.Fatalf("作者删除应成功: %v", err)
	}
	if len(reviews.reviews) != 0 {
		t.Error("评价应已删除")
	}
	if err := svc.Delete(context.Background(), "student-alice", created.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("期望 ErrReviewNotFound，实际: %v", err)
	}
}
