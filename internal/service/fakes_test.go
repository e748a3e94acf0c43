package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/repository"
)

// In-memory repository fakes. They mirror the Mongo implementations'
// contracts: ids assigned on create, mongo.ErrNoDocuments for misses, set
// semantics on like membership.

type fakeUserRepo struct {
	users          map[primitive.ObjectID]*domain.User
	saveTokenCalls int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) SaveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.Token = token
	r.saveTokenCalls++
	return nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error) {
	out := make(map[primitive.ObjectID]*domain.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

// fakeBlogRepo mimics the driver's contracts closely enough for the
// like-toggle invariants: reads return decoded copies, never the stored
// document, and every operation is safe under concurrent callers.
type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs map[primitive.ObjectID]*domain.Blog
}

func newFakeBlogRepo(blogs ...*domain.Blog) *fakeBlogRepo {
	repo := &fakeBlogRepo{blogs: make(map[primitive.ObjectID]*domain.Blog)}
	for _, blog := range blogs {
		repo.blogs[blog.ID] = blog
	}
	return repo
}

func snapshotBlog(blog *domain.Blog) *domain.Blog {
	out := *blog
	out.Likes = append([]primitive.ObjectID(nil), blog.Likes...)
	out.Tags = append([]string(nil), blog.Tags...)
	out.Comments = make([]domain.Comment, len(blog.Comments))
	for i, comment := range blog.Comments {
		out.Comments[i] = comment
		out.Comments[i].Likes = append([]primitive.ObjectID(nil), comment.Likes...)
	}
	return &out
}

func (r *fakeBlogRepo) Create(ctx context.Context, blog *domain.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if blog.ID.IsZero() {
		blog.ID = primitive.NewObjectID()
	}
	blog.CreatedAt = now
	blog.UpdatedAt = now
	if blog.Likes == nil {
		blog.Likes = []primitive.ObjectID{}
	}
	if blog.Comments == nil {
		blog.Comments = []domain.Comment{}
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	r.blogs[blog.ID] = blog
	return nil
}

func (r *fakeBlogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return snapshotBlog(blog), nil
}

func (r *fakeBlogRepo) List(ctx context.Context, filter repository.BlogListFilter) ([]*domain.Blog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		all = append(all, blog)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeBlogRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.BlogUpdate) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if update.Title != nil {
		blog.Title = *update.Title
	}
	if update.Content != nil {
		blog.Content = *update.Content
	}
	if update.CoverImage != nil {
		blog.CoverImage = *update.CoverImage
	}
	if update.Tags != nil {
		blog.Tags = *update.Tags
	}
	blog.UpdatedAt = time.Now()
	return snapshotBlog(blog), nil
}

func (r *fakeBlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.blogs, id)
	return nil
}

func (r *fakeBlogRepo) AddLike(ctx context.Context, blogID, userID primitive.ObjectID) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[blogID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if !blog.HasLike(userID) {
		blog.Likes = append(blog.Likes, userID)
	}
	return snapshotBlog(blog), nil
}

func (r *fakeBlogRepo) RemoveLike(ctx context.Context, blogID, userID primitive.ObjectID) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[blogID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	blog.Likes = removeID(blog.Likes, userID)
	return snapshotBlog(blog), nil
}

func (r *fakeBlogRepo) AddComment(ctx context.Context, blogID primitive.ObjectID, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[blogID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Likes == nil {
		comment.Likes = []primitive.ObjectID{}
	}
	blog.Comments = append(blog.Comments, *comment)
	return nil
}

func (r *fakeBlogRepo) AddCommentLike(ctx context.Context, blogID, commentID, userID primitive.ObjectID) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[blogID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	comment := blog.CommentByID(commentID)
	if comment == nil {
		return nil, mongo.ErrNoDocuments
	}
	if !comment.HasLike(userID) {
		comment.Likes = append(comment.Likes, userID)
	}
	return snapshotBlog(blog), nil
}

func (r *fakeBlogRepo) RemoveCommentLike(ctx context.Context, blogID, commentID, userID primitive.ObjectID) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[blogID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	comment := blog.CommentByID(commentID)
	if comment == nil {
		return nil, mongo.ErrNoDocuments
	}
	comment.Likes = removeID(comment.Likes, userID)
	return snapshotBlog(blog), nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

type fakeLeadRepo struct {
	leads map[primitive.ObjectID]*domain.Lead
}

func newFakeLeadRepo(leads ...*domain.Lead) *fakeLeadRepo {
	repo := &fakeLeadRepo{leads: make(map[primitive.ObjectID]*domain.Lead)}
	for _, lead := range leads {
		repo.leads[lead.ID] = lead
	}
	return repo
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	now := time.Now()
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Steps == nil {
		lead.Steps = []domain.LeadStep{}
	}
	if lead.Reminders == nil {
		lead.Reminders = []primitive.ObjectID{}
	}
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return lead, nil
}

func (r *fakeLeadRepo) List(ctx context.Context) ([]*domain.Lead, error) {
	out := make([]*domain.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeLeadRepo) ListByUpdatedDesc(ctx context.Context) ([]*domain.Lead, error) {
	out := make([]*domain.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *fakeLeadRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Lead, error) {
	out := make(map[primitive.ObjectID]*domain.Lead, len(ids))
	for _, id := range ids {
		if lead, ok := r.leads[id]; ok {
			out[id] = lead
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.LeadUpdate) (*domain.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if update.ClientName != nil {
		lead.ClientName = *update.ClientName
	}
	if update.ContactInfo != nil {
		lead.ContactInfo = *update.ContactInfo
	}
	if update.Email != nil {
		lead.Email = *update.Email
	}
	if update.ProjectTitle != nil {
		lead.ProjectTitle = *update.ProjectTitle
	}
	if update.ProjectDetails != nil {
		lead.ProjectDetails = *update.ProjectDetails
	}
	if update.ProjectStatus != nil {
		lead.ProjectStatus = *update.ProjectStatus
	}
	if update.StatusComment != nil {
		lead.StatusComment = *update.StatusComment
	}
	if update.AssignedTo != nil {
		lead.AssignedTo = *update.AssignedTo
	}
	if update.Checkboxes != nil {
		lead.Checkboxes = *update.Checkboxes
	}
	lead.UpdatedAt = time.Now()
	return lead, nil
}

func (r *fakeLeadRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.leads[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) AppendStep(ctx context.Context, id primitive.ObjectID, step domain.LeadStep) error {
	lead, ok := r.leads[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	lead.Steps = append(lead.Steps, step)
	lead.UpdatedAt = time.Now()
	return nil
}

func (r *fakeLeadRepo) AppendReminder(ctx context.Context, id, reminderID primitive.ObjectID) error {
	lead, ok := r.leads[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	lead.Reminders = append(lead.Reminders, reminderID)
	return nil
}

type fakeReminderRepo struct {
	reminders []*domain.Reminder
}

func (r *fakeReminderRepo) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder.ID.IsZero() {
		reminder.ID = primitive.NewObjectID()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	r.reminders = append(r.reminders, reminder)
	return nil
}

func (r *fakeReminderRepo) List(ctx context.Context, day *time.Time) ([]*domain.Reminder, error) {
	out := make([]*domain.Reminder, 0, len(r.reminders))
	for _, reminder := range r.reminders {
		if day != nil {
			start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
			end := start.AddDate(0, 0, 1)
			if reminder.Datetime.Before(start) || !reminder.Datetime.Before(end) {
				continue
			}
		}
		out = append(out, reminder)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Datetime.Before(out[j].Datetime)
	})
	return out, nil
}

func (r *fakeReminderRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Reminder, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []*domain.Reminder{}
	for _, reminder := range r.reminders {
		if want[reminder.ID] {
			out = append(out, reminder)
		}
	}
	return out, nil
}

type fakeEnquiryRepo struct {
	enquiries []*domain.Enquiry
}

func (r *fakeEnquiryRepo) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	if enquiry.ID.IsZero() {
		enquiry.ID = primitive.NewObjectID()
	}
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now()
	}
	r.enquiries = append(r.enquiries, enquiry)
	return nil
}
