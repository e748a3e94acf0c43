package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// BlogListFilter narrows the public blog listing.
type BlogListFilter struct {
	Page   int
	Limit  int
	Search string
	Tag    string
}

// BlogUpdate carries the updatable blog fields; nil means leave unchanged.
type BlogUpdate struct {
	Title      *string
	Content    *string
	CoverImage *string
	Tags       *[]string
}

// BlogRepository defines persistence access for blog posts and their
// embedded comments. Like operations use $addToSet/$pull so membership
// stays a set even under concurrent toggles.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error)
	List(ctx context.Context, filter BlogListFilter) ([]*domain.Blog, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update BlogUpdate) (*domain.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	AddLike(ctx context.Context, blogID, userID primitive.ObjectID) (*domain.Blog, error)
	RemoveLike(ctx context.Context, blogID, userID primitive.ObjectID) (*domain.Blog, error)

	AddComment(ctx context.Context, blogID primitive.ObjectID, comment *domain.Comment) error
	AddCommentLike(ctx context.Context, blogID, commentID, userID primitive.ObjectID) (*domain.Blog, error)
	RemoveCommentLike(ctx context.Context, blogID, commentID, userID primitive.ObjectID) (*domain.Blog, error)
}

type blogRepository struct {
	col *mongo.Collection
}

// NewBlogRepository returns a Mongo-backed implementation.
func NewBlogRepository(col *mongo.Collection) BlogRepository {
	return &blogRepository{col: col}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
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
	_, err := r.col.InsertOne(ctx, blog)
	return err
}

func (r *blogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, filter BlogListFilter) ([]*domain.Blog, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"content": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}
	if filter.Tag != "" {
		query["tags"] = bson.M{"$in": bson.A{filter.Tag}}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	blogs := []*domain.Blog{}
	for cur.Next(ctx) {
		var blog domain.Blog
		if err := cur.Decode(&blog); err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, &blog)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, id primitive.ObjectID, update BlogUpdate) (*domain.Blog, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.CoverImage != nil {
		set["coverImage"] = *update.CoverImage
	}
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (r *blogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *blogRepository) AddLike(ctx context.Context, blogID, userID primitive.ObjectID) (*domain.Blog, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": blogID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
}

func (r *blogRepository) RemoveLike(ctx context.Context, blogID, userID primitive.ObjectID) (*domain.Blog, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": blogID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
}

func (r *blogRepository) AddComment(ctx context.Context, blogID primitive.ObjectID, comment *domain.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Likes == nil {
		comment.Likes = []primitive.ObjectID{}
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": blogID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *blogRepository) AddCommentLike(ctx context.Context, blogID, commentID, userID primitive.ObjectID) (*domain.Blog, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": blogID, "comments._id": commentID},
		bson.M{"$addToSet": bson.M{"comments.$.likes": userID}},
	)
}

func (r *blogRepository) RemoveCommentLike(ctx context.Context, blogID, commentID, userID primitive.ObjectID) (*domain.Blog, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": blogID, "comments._id": commentID},
		bson.M{"$pull": bson.M{"comments.$.likes": userID}},
	)
}

func (r *blogRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Blog, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog domain.Blog
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&blog); err != nil {
		return nil, err
	}
	return &blog, nil
}
