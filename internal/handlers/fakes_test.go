package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/openhaven/haven-backend/internal/models"
	"github.com/openhaven/haven-backend/internal/repositories"
)

// In-memory repository fakes. Each fake counts storage calls so tests can
// assert that identifier validation short-circuits before any storage access.

type fakePostRepository struct {
	posts      map[string]*models.Post
	calls      int
	updateDone bool
	deleteDone bool
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: map[string]*models.Post{}}
}

func (f *fakePostRepository) CreatePost(_ context.Context, post *models.Post) error {
	f.calls++
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	f.calls++
	stored, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	post := *stored
	return &post, nil
}

func (f *fakePostRepository) ListPosts(_ context.Context, filter repositories.PostFilter) ([]models.Post, error) {
	f.calls++
	posts := []models.Post{}
	for _, p := range f.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (f *fakePostRepository) UpdatePost(_ context.Context, post *models.Post) error {
	f.calls++
	f.updateDone = true
	stored, ok := f.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.Category = post.Category
	stored.IsAnonymous = post.IsAnonymous
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakePostRepository) UpdatePostStatus(_ context.Context, id, status string) error {
	f.calls++
	stored, ok := f.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = status
	return nil
}

func (f *fakePostRepository) DeletePost(_ context.Context, id string) error {
	f.calls++
	f.deleteDone = true
	if _, ok := f.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepository) ListPostsWithAuthorRole(_ context.Context, filter repositories.PostFilter) ([]models.AdminPost, error) {
	f.calls++
	posts := []models.AdminPost{}
	for _, p := range f.posts {
		posts = append(posts, models.AdminPost{Post: *p, AuthorRole: "user"})
	}
	return posts, nil
}

type fakeCommentRepository struct {
	comments   map[string]*models.Comment
	calls      int
	deleteDone bool
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{comments: map[string]*models.Comment{}}
}

func (f *fakeCommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	f.calls++
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now()
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepository) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	f.calls++
	stored, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	comment := *stored
	return &comment, nil
}

func (f *fakeCommentRepository) GetCommentsByPostID(_ context.Context, postID string, limit, offset int) ([]models.Comment, error) {
	f.calls++
	comments := []models.Comment{}
	for _, c := range f.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (f *fakeCommentRepository) UpdateComment(_ context.Context, comment *models.Comment) error {
	f.calls++
	stored, ok := f.comments[comment.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Content = comment.Content
	stored.IsAnonymous = comment.IsAnonymous
	return nil
}

func (f *fakeCommentRepository) DeleteComment(_ context.Context, id string) error {
	f.calls++
	f.deleteDone = true
	if _, ok := f.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.comments, id)
	return nil
}

// fakeUpvoteRepository mirrors the toggle contract: existence map plus a
// counter that moves with it.
type fakeUpvoteRepository struct {
	upvotes map[string]bool
	counts  map[string]int
}

func newFakeUpvoteRepository() *fakeUpvoteRepository {
	return &fakeUpvoteRepository{upvotes: map[string]bool{}, counts: map[string]int{}}
}

func (f *fakeUpvoteRepository) ToggleUpvote(_ context.Context, commentID, userID string) (bool, error) {
	key := commentID + "/" + userID
	if f.upvotes[key] {
		delete(f.upvotes, key)
		f.counts[commentID]--
		return false, nil
	}
	f.upvotes[key] = true
	f.counts[commentID]++
	return true, nil
}

func (f *fakeUpvoteRepository) HasUserUpvoted(_ context.Context, commentID, userID string) (bool, error) {
	return f.upvotes[commentID+"/"+userID], nil
}

type fakeReactionRepository struct {
	reactions map[string]models.Reaction
}

func newFakeReactionRepository() *fakeReactionRepository {
	return &fakeReactionRepository{reactions: map[string]models.Reaction{}}
}

func reactionKey(target repositories.ReactionTarget, userID, reactionType string) string {
	return target.PostID + "/" + target.CommentID + "/" + userID + "/" + reactionType
}

func (f *fakeReactionRepository) ToggleReaction(_ context.Context, target repositories.ReactionTarget, userID, reactionType string) (bool, error) {
	key := reactionKey(target, userID, reactionType)
	if _, ok := f.reactions[key]; ok {
		delete(f.reactions, key)
		return false, nil
	}
	reaction := models.Reaction{ID: uuid.NewString(), UserID: userID, Type: reactionType}
	if target.PostID != "" {
		postID := target.PostID
		reaction.PostID = &postID
	} else {
		commentID := target.CommentID
		reaction.CommentID = &commentID
	}
	f.reactions[key] = reaction
	return true, nil
}

func (f *fakeReactionRepository) ListReactions(_ context.Context, target repositories.ReactionTarget) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	for _, r := range f.reactions {
		if target.PostID != "" && (r.PostID == nil || *r.PostID != target.PostID) {
			continue
		}
		if target.CommentID != "" && (r.CommentID == nil || *r.CommentID != target.CommentID) {
			continue
		}
		reactions = append(reactions, r)
	}
	return reactions, nil
}

func (f *fakeReactionRepository) DeleteReaction(_ context.Context, target repositories.ReactionTarget, userID, reactionType string) error {
	key := reactionKey(target, userID, reactionType)
	if _, ok := f.reactions[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.reactions, key)
	return nil
}

// fakeRoleRepository simulates both a populated role table and a failing
// role store.
type fakeRoleRepository struct {
	roles map[string]string
	err   error
}

func newFakeRoleRepository() *fakeRoleRepository {
	return &fakeRoleRepository{roles: map[string]string{}}
}

func (f *fakeRoleRepository) GetRoleByUserID(_ context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeRoleRepository) ListModeratorIDs(_ context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := []string{}
	for id, role := range f.roles {
		if role == "moderator" || role == "admin" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeNotificationRepository struct {
	created []models.Notification
}

func (f *fakeNotificationRepository) CreateNotification(_ context.Context, notification *models.Notification) error {
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeNotificationRepository) GetNotificationsByUserID(_ context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	for _, n := range f.created {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

type fakeReportRepository struct {
	reports map[string]*models.Report
	order   []string
	calls   int
}

func newFakeReportRepository() *fakeReportRepository {
	return &fakeReportRepository{reports: map[string]*models.Report{}}
}

func (f *fakeReportRepository) CreateReport(_ context.Context, report *models.Report) error {
	f.calls++
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusOpen
	}
	report.CreatedAt = time.Now()
	stored := *report
	f.reports[report.ID] = &stored
	f.order = append(f.order, report.ID)
	return nil
}

func (f *fakeReportRepository) GetReportByID(_ context.Context, id string) (*models.Report, error) {
	f.calls++
	stored, ok := f.reports[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	report := *stored
	return &report, nil
}

func (f *fakeReportRepository) ListReports(_ context.Context, filter repositories.ReportFilter) ([]models.Report, error) {
	f.calls++
	reports := []models.Report{}
	for i := len(f.order) - 1; i >= 0; i-- {
		r := f.reports[f.order[i]]
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.PostID != "" && (r.PostID == nil || *r.PostID != filter.PostID) {
			continue
		}
		if filter.CommentID != "" && (r.CommentID == nil || *r.CommentID != filter.CommentID) {
			continue
		}
		reports = append(reports, *r)
	}
	return reports, nil
}

func (f *fakeReportRepository) UpdateReportStatus(_ context.Context, id, status string) error {
	f.calls++
	stored, ok := f.reports[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	stored.Status = status
	return nil
}
