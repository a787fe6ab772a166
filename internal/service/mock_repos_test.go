package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
	"github.com/Hari-r31/internship-platform/internal/repository"
)

// ── Mock Repositories ──
// 基于 map 的内存实现，变更方法同时把日志条目记录到各自的 logs 切片，
// 供测试断言"实体变更必伴随日志"

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	logs  []model.ActivityLog
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateWithProfile(_ context.Context, user *model.User, profile *model.Profile) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	profile.UserID = user.UserID
	user.Profile = profile
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateUser(_ context.Context, user *model.User, entry *model.ActivityLog) error {
	if existing, ok := m.users[user.UserID]; ok && user.Profile == nil {
		user.Profile = existing.Profile
	}
	m.users[user.UserID] = user
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, profile *model.Profile, entry *model.ActivityLog) error {
	if u, ok := m.users[profile.UserID]; ok {
		u.Profile = profile
	}
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string, entry *model.ActivityLog) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	if entry != nil {
		m.logs = append(m.logs, *entry)
	}
	return nil
}

type mockInternshipRepo struct {
	internships map[string]*model.Internship
	nextID      int
	logs        []model.ActivityLog
}

func newMockInternshipRepo() *mockInternshipRepo {
	return &mockInternshipRepo{internships: make(map[string]*model.Internship)}
}

func (m *mockInternshipRepo) Create(_ context.Context, internship *model.Internship, entry *model.ActivityLog) error {
	if internship.InternshipID == "" {
		m.nextID++
		internship.InternshipID = fmt.Sprintf("internship-%d", m.nextID)
	}
	m.internships[internship.InternshipID] = internship
	entry.RelatedObjectID = &internship.InternshipID
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockInternshipRepo) GetByID(_ context.Context, id string) (*model.Internship, error) {
	if i, ok := m.internships[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternshipRepo) List(_ context.Context, filter *repository.InternshipFilter, offset, limit int) ([]model.Internship, int64, error) {
	var all []model.Internship
	for _, i := range m.internships {
		if filter != nil {
			if filter.Location != "" && i.Location != filter.Location {
				continue
			}
			if filter.InternshipType != "" && i.InternshipType != filter.InternshipType {
				continue
			}
			if filter.StipendGTE != nil && (i.Stipend == nil || i.Stipend.LessThan(*filter.StipendGTE)) {
				continue
			}
			if filter.StipendLTE != nil && (i.Stipend == nil || i.Stipend.GreaterThan(*filter.StipendLTE)) {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(i.Title+i.Description+i.Location+i.Company), strings.ToLower(filter.Search)) {
				continue
			}
		}
		all = append(all, *i)
	}
	// 默认按发布时间倒序
	sort.Slice(all, func(a, b int) bool { return all[a].PostedOn.After(all[b].PostedOn) })

	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockInternshipRepo) ListByRecruiter(_ context.Context, recruiterID string) ([]model.Internship, error) {
	var result []model.Internship
	for _, i := range m.internships {
		if i.RecruiterID == recruiterID {
			result = append(result, *i)
		}
	}
	return result, nil
}

func (m *mockInternshipRepo) Update(_ context.Context, internship *model.Internship, entry *model.ActivityLog) error {
	m.internships[internship.InternshipID] = internship
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockInternshipRepo) Delete(_ context.Context, id string, entry *model.ActivityLog) error {
	if _, ok := m.internships[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.internships, id)
	m.logs = append(m.logs, *entry)
	return nil
}

type mockApplicationRepo struct {
	applications map[string]*model.Application
	nextID       int
	logs         []model.ActivityLog

	// 模拟 Preload：GetByID / List* 时从这里取关联
	users       *mockUserRepo
	internships *mockInternshipRepo
}

func newMockApplicationRepo(users *mockUserRepo, internships *mockInternshipRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		applications: make(map[string]*model.Application),
		users:        users,
		internships:  internships,
	}
}

func (m *mockApplicationRepo) preload(app *model.Application) *model.Application {
	cp := *app
	if m.internships != nil {
		if i, ok := m.internships.internships[cp.InternshipID]; ok {
			cp.Internship = i
		}
	}
	if m.users != nil {
		if u, ok := m.users.users[cp.UserID]; ok {
			cp.User = u
		}
	}
	return &cp
}

func (m *mockApplicationRepo) Create(_ context.Context, application *model.Application, entry *model.ActivityLog) error {
	if application.ApplicationID == "" {
		m.nextID++
		application.ApplicationID = fmt.Sprintf("application-%d", m.nextID)
	}
	m.applications[application.ApplicationID] = application
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.applications[id]; ok {
		return m.preload(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) Exists(_ context.Context, userID, internshipID string) (bool, error) {
	for _, a := range m.applications {
		if a.UserID == userID && a.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) ListByUser(_ context.Context, userID string) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.applications {
		if a.UserID == userID {
			result = append(result, *m.preload(a))
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) ListByInternship(_ context.Context, internshipID string) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.applications {
		if a.InternshipID == internshipID {
			result = append(result, *m.preload(a))
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, application *model.Application, entry *model.ActivityLog) error {
	a, ok := m.applications[application.ApplicationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = application.Status
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string, entry *model.ActivityLog) error {
	if _, ok := m.applications[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.applications, id)
	m.logs = append(m.logs, *entry)
	return nil
}

type mockBookmarkRepo struct {
	bookmarks map[string]*model.Bookmark
	nextID    int
	logs      []model.ActivityLog

	internships *mockInternshipRepo
}

func newMockBookmarkRepo(internships *mockInternshipRepo) *mockBookmarkRepo {
	return &mockBookmarkRepo{
		bookmarks:   make(map[string]*model.Bookmark),
		internships: internships,
	}
}

func (m *mockBookmarkRepo) preload(b *model.Bookmark) *model.Bookmark {
	cp := *b
	if m.internships != nil {
		if i, ok := m.internships.internships[cp.InternshipID]; ok {
			cp.Internship = i
		}
	}
	return &cp
}

func (m *mockBookmarkRepo) Create(_ context.Context, bookmark *model.Bookmark, entry *model.ActivityLog) error {
	if bookmark.BookmarkID == "" {
		m.nextID++
		bookmark.BookmarkID = fmt.Sprintf("bookmark-%d", m.nextID)
	}
	m.bookmarks[bookmark.BookmarkID] = bookmark
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *mockBookmarkRepo) GetByUserAndInternship(_ context.Context, userID, internshipID string) (*model.Bookmark, error) {
	for _, b := range m.bookmarks {
		if b.UserID == userID && b.InternshipID == internshipID {
			return m.preload(b), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookmarkRepo) Exists(_ context.Context, userID, internshipID string) (bool, error) {
	for _, b := range m.bookmarks {
		if b.UserID == userID && b.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookmarkRepo) ListByUser(_ context.Context, userID string) ([]model.Bookmark, error) {
	var result []model.Bookmark
	for _, b := range m.bookmarks {
		if b.UserID == userID {
			result = append(result, *m.preload(b))
		}
	}
	return result, nil
}

func (m *mockBookmarkRepo) Delete(_ context.Context, bookmarkID string, entry *model.ActivityLog) error {
	if _, ok := m.bookmarks[bookmarkID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.bookmarks, bookmarkID)
	m.logs = append(m.logs, *entry)
	return nil
}

type mockActivityLogRepo struct {
	entries []model.ActivityLog
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Append(_ context.Context, entry *model.ActivityLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityLogRepo) ListByUser(_ context.Context, userID string, filter *repository.ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error) {
	var all []model.ActivityLog
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if filter != nil {
			if filter.Action != "" && e.Action != filter.Action {
				continue
			}
			if filter.StartDate != nil && e.Timestamp.Before(*filter.StartDate) {
				continue
			}
			if filter.EndDate != nil && e.Timestamp.After(*filter.EndDate) {
				continue
			}
		}
		all = append(all, e)
	}
	sort.Slice(all, func(a, b int) bool { return all[a].Timestamp.After(all[b].Timestamp) })

	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type mockReviewRepo struct {
	reviews map[string]*model.RatingReview
	nextID  int
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*model.RatingReview)}
}

func (m *mockReviewRepo) Create(_ context.Context, review *model.RatingReview) error {
	if review.ReviewID == "" {
		m.nextID++
		review.ReviewID = fmt.Sprintf("review-%d", m.nextID)
	}
	m.reviews[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id string) (*model.RatingReview, error) {
	if r, ok := m.reviews[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) Exists(_ context.Context, userID, internshipID string) (bool, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewRepo) ListByInternship(_ context.Context, internshipID string) ([]model.RatingReview, error) {
	var result []model.RatingReview
	for _, r := range m.reviews {
		if r.InternshipID == internshipID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) Update(_ context.Context, review *model.RatingReview) error {
	m.reviews[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.reviews, id)
	return nil
}

// ── 外部协作方 Mock ──

// mockUploader storage.Uploader 的内存实现
type mockUploader struct {
	uploaded []string // bucket/objectName
	fail     bool
}

func (m *mockUploader) Upload(_ context.Context, bucket, objectName string, _ io.Reader, _ int64, _ string) (string, error) {
	if m.fail {
		return "", fmt.Errorf("上传失败")
	}
	m.uploaded = append(m.uploaded, bucket+"/"+objectName)
	return "https://storage.test/" + bucket + "/" + objectName, nil
}

// mockMailer mailer.Sender 的内存实现
type mockMailer struct {
	sent []string // 收件人
	fail bool
}

func (m *mockMailer) Send(to, _, _ string) error {
	if m.fail {
		return fmt.Errorf("SMTP 投递失败")
	}
	m.sent = append(m.sent, to)
	return nil
}
