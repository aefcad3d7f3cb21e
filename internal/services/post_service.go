package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"moodlog/internal/models/db_models"
	"moodlog/internal/models/response_models"
	"moodlog/internal/repositories"
	"moodlog/internal/storage"
	"moodlog/pkg/utils"
)

// priorContextPosts is how many earlier posts the mood analyzer sees.
const priorContextPosts = 3

type CreatePostInput struct {
	Image   io.Reader
	Caption string
	Tags    []string
}

type PostServiceInterface interface {
	List(ctx context.Context, accountID uuid.UUID) ([]response_models.PostResponse, error)
	Get(ctx context.Context, accountID, postID uuid.UUID) (*response_models.PostResponse, error)
	Create(ctx context.Context, accountID uuid.UUID, in CreatePostInput) (*response_models.PostResponse, error)
	Delete(ctx context.Context, accountID, postID uuid.UUID) error
	Timeline(ctx context.Context, accountID uuid.UUID) ([]response_models.TimelineDay, error)
}

type PostService struct {
	postRepo       repositories.PostRepository
	tags           TagServiceInterface
	mood           MoodServiceInterface
	suggestions    SuggestionServiceInterface
	store          storage.ObjectStore
	maxUploadBytes int64
	loc            *time.Location
	log            *zap.Logger
}

func NewPostService(
	postRepo repositories.PostRepository,
	tags TagServiceInterface,
	mood MoodServiceInterface,
	suggestions SuggestionServiceInterface,
	store storage.ObjectStore,
	maxUploadBytes int64,
	loc *time.Location,
	log *zap.Logger,
) PostServiceInterface {
	return &PostService{
		postRepo:       postRepo,
		tags:           tags,
		mood:           mood,
		suggestions:    suggestions,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		loc:            loc,
		log:            log,
	}
}

func (p *PostService) List(ctx context.Context, accountID uuid.UUID) ([]response_models.PostResponse, error) {
	posts, err := p.postRepo.ListByAccount(ctx, accountID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, p.toPostResponse(&posts[i]))
	}
	return out, nil
}

func (p *PostService) Get(ctx context.Context, accountID, postID uuid.UUID) (*response_models.PostResponse, error) {
	post, err := p.postRepo.FindByID(ctx, accountID, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if post == nil {
		return nil, utils.ErrPostNotFound
	}
	resp := p.toPostResponse(post)
	return &resp, nil
}

func (p *PostService) Create(ctx context.Context, accountID uuid.UUID, in CreatePostInput) (*response_models.PostResponse, error) {
	if in.Image == nil {
		return nil, utils.ErrMissingImage
	}
	caption := strings.TrimSpace(in.Caption)
	if caption == "" {
		return nil, utils.ErrMissingCaption
	}
	tags, err := p.tags.NormalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	img, err := storage.ReadImage(in.Image, p.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	key := storage.NewObjectKey("posts", accountID, img.Ext)
	url, err := p.store.Put(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}

	prior, err := p.postRepo.ListByAccount(ctx, accountID, priorContextPosts)
	if err != nil {
		p.deleteObject(ctx, key)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	mood := p.mood.Analyze(ctx, MoodInput{
		Image:    img.Data,
		MimeType: img.ContentType,
		Caption:  caption,
		Tags:     tags,
		Prior:    prior,
	})

	post := &db_models.Post{
		AccountID:        accountID,
		ImageURL:         url,
		ImageKey:         key,
		Caption:          caption,
		Tags:             datatypes.NewJSONType(tags),
		Scores:           mood.Scores,
		MoodCategory:     mood.Category,
		ShortDescription: mood.ShortDescription,
		Description:      mood.Description,
		Suggestions:      datatypes.NewJSONType(db_models.EmptySuggestionBundle()),
	}
	// a new post must list before every earlier one even within one millisecond
	if len(prior) > 0 && time.Now().UnixMilli() <= prior[0].CreatedAt {
		post.CreatedAt = prior[0].CreatedAt + 1
	}
	if err := p.postRepo.Insert(ctx, post); err != nil {
		p.deleteObject(ctx, key)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	// the newest-three set just changed, so this always regenerates
	result, err := p.suggestions.GetSuggestions(ctx, accountID)
	switch {
	case err != nil:
		p.log.Warn("suggestion refresh after post failed", zap.String("post_id", post.ID.String()), zap.Error(err))
	case result.Persistable():
		if err := p.postRepo.UpdateSuggestions(ctx, post.ID, result.Bundle); err != nil {
			p.log.Warn("failed to snapshot suggestions on post", zap.String("post_id", post.ID.String()), zap.Error(err))
		} else {
			post.Suggestions = datatypes.NewJSONType(result.Bundle)
			post.HasSuggestions = true
		}
	}

	resp := p.toPostResponse(post)
	return &resp, nil
}

func (p *PostService) Delete(ctx context.Context, accountID, postID uuid.UUID) error {
	post, err := p.postRepo.FindByID(ctx, accountID, postID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if post == nil {
		return utils.ErrPostNotFound
	}

	deleted, err := p.postRepo.Delete(ctx, accountID, postID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrPostNotFound
	}

	if err := p.suggestions.Invalidate(ctx, accountID); err != nil {
		p.log.Warn("failed to invalidate suggestions after delete", zap.String("account_id", accountID.String()), zap.Error(err))
	}
	if post.ImageKey != "" {
		p.deleteObject(ctx, post.ImageKey)
	}
	return nil
}

func (p *PostService) Timeline(ctx context.Context, accountID uuid.UUID) ([]response_models.TimelineDay, error) {
	posts, err := p.postRepo.ListByAccount(ctx, accountID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	days := make([]response_models.TimelineDay, 0)
	for i := range posts {
		day := utils.DayKey(posts[i].CreatedAt, p.loc)
		if n := len(days); n == 0 || days[n-1].Date != day {
			days = append(days, response_models.TimelineDay{Date: day})
		}
		last := &days[len(days)-1]
		last.Posts = append(last.Posts, p.toPostResponse(&posts[i]))
	}
	return days, nil
}

func (p *PostService) deleteObject(ctx context.Context, key string) {
	if err := p.store.Delete(ctx, key); err != nil {
		p.log.Warn("failed to delete stored object", zap.String("key", key), zap.Error(err))
	}
}

func (p *PostService) toPostResponse(post *db_models.Post) response_models.PostResponse {
	tags := post.Tags.Data()
	if tags == nil {
		tags = []string{}
	}

	resp := response_models.PostResponse{
		ID:               post.ID.String(),
		ImageURL:         post.ImageURL,
		Caption:          post.Caption,
		Tags:             tags,
		Scores:           post.Scores,
		MoodCategory:     post.MoodCategory,
		ShortDescription: post.ShortDescription,
		Description:      post.Description,
		CreatedAt:        utils.FromUnixMillis(post.CreatedAt, p.loc),
	}
	if post.HasSuggestions {
		bundle := post.Suggestions.Data().Normalized()
		resp.Suggestions = &bundle
	}
	return resp
}
