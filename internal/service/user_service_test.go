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

func strptr(s string) *string { return &s }

func setupTestUserService(store *mockUploader) (UserService, *mockUserRepo) {
	cfg := testConfig()
	repo, users, _, _, _, _, _ := testRepo()

	var svc UserService
	if store != nil {
		svc = NewUserService(cfg, repo, store, zap.NewNop())
	} else {
		svc = NewUserService(cfg, repo, nil, zap.NewNop())
	}
	return svc, users
}

func TestUpdateProfile_FieldsOnly(t *testing.T) {
	svc, users := setupTestUserService(nil)
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	result, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		FirstName: strptr("Alice"),
		Bio:       strptr("应届生"),
		Location:  strptr("上海"),
	}, nil)

	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}
	if result.Profile == nil || result.Profile.Bio != "应届生" {
		t.Errorf("Bio 应更新为 应届生，实际=%v", result.Profile)
	}
	if result.Profile.Location != "上海" {
		t.Errorf("期望 Location=上海，实际=%s", result.Profile.Location)
	}

	// 未上传头像时只记一条 profile_updated 日志
	if len(users.logs) != 1 || users.logs[0].Action != model.ActionProfileUpdated {
		t.Errorf("期望一条 profile_updated 日志，实际=%v", users.logs)
	}
}

func TestUpdateProfile_WithPicture(t *testing.T) {
	store := &mockUploader{}
	svc, users := setupTestUserService(store)
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	result, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		Bio: strptr("更新内容"),
	}, &Upload{
		Reader:      strings.NewReader("fake-image"),
		Size:        10,
		Filename:    "avatar.png",
		ContentType: "image/png",
	})

	if err != nil {
		t.Fatalf("UpdateProfile(带头像) 应成功: %v", err)
	}
	if result.Profile.ProfilePictureURL == nil || *result.Profile.ProfilePictureURL == "" {
		t.Error("头像 URL 应写入资料")
	}
	if len(store.uploaded) != 1 || !strings.HasPrefix(store.uploaded[0], "profile-pics/") {
		t.Errorf("头像应上传到 profile-pics 桶，实际=%v", store.uploaded)
	}

	// 带头像的更新只记一条 profile_picture_updated 日志
	if len(users.logs) != 1 || users.logs[0].Action != model.ActionProfilePictureUpdated {
		t.Errorf("期望一条 profile_picture_updated 日志，实际=%v", users.logs)
	}
}

func TestUpdateProfile_UnsupportedImage(t *testing.T) {
	store := &mockUploader{}
	svc, users := setupTestUserService(store)
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	_, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{}, &Upload{
		Reader:   strings.NewReader("not-an-image"),
		Size:     12,
		Filename: "avatar.exe",
	})

	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("期望 ErrUnsupportedImage，实际: %v", err)
	}
	if len(users.logs) != 0 {
		t.Error("上传失败不应记录日志")
	}
}

func TestUpdateProfile_StorageUnavailable(t *testing.T) {
	svc, users := setupTestUserService(nil)
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	_, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{}, &Upload{
		Reader:   strings.NewReader("fake-image"),
		Size:     10,
		Filename: "avatar.png",
	})

	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("期望 ErrStorageUnavailable，实际: %v", err)
	}
}

func TestUpdateAccount_Success(t *testing.T) {
	svc, users := setupTestUserService(nil)
	user := createTestUser(users, "alice", "password123", model.RoleStudent)

	result, err := svc.UpdateAccount(context.Background(), user.UserID, &dto.UpdateUserRequest{
		Username: strptr("alice_new"),
		Email:    strptr("alice_new@test.com"),
	})

	if err != nil {
		t.Fatalf("UpdateAccount 应成功: %v", err)
	}
	if result.Username != "alice_new" {
		t.Errorf("期望 Username=alice_new，实际=%s", result.Username)
	}
	if result.Profile == nil {
		t.Error("账号更新不应丢失资料")
	}
}

func TestUpdateAccount_DuplicateUsername(t *testing.T) {
	svc, users := setupTestUserService(nil)
	user := createTestUser(users, "alice", "password123", model.RoleStudent)
	createTestUser(users, "bob", "password123", model.RoleRecruiter)

	_, err := svc.UpdateAccount(context.Background(), user.UserID, &dto.UpdateUserRequest{
		Username: strptr("bob"),
	})

	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际: %v", err)
	}
}
