package comment

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crowdsage/crowdsage/domain"
)

// service implements the comment thread logic once; it is instantiated once
// for question comments and once for answer comments, each with its own
// repository and parent checker. Parent existence is validated on every
// create, for both variants.
type service struct {
	commentRepo domain.CommentRepository
	parents     domain.ParentChecker
	userRepo    domain.UserRepository
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, parents domain.ParentChecker, userRepo domain.UserRepository) *service {
	return &service{
		commentRepo: commentRepo,
		parents:     parents,
		userRepo:    userRepo,
	}
}

func (s *service) fillAuthor(ctx context.Context, c *domain.Comment) {
	user, err := s.userRepo.GetByID(ctx, c.AuthorID)
	if err != nil {
		logrus.Warnf("author %s not resolved for comment %s: %v", c.AuthorID, c.ID, err)
		return
	}
	author := user.AsAuthor()
	c.Author = &author
}

func (s *service) Add(ctx context.Context, parentID, authorID, content string) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, domain.ErrBadParamInput
	}

	exists, err := s.parents.Exists(ctx, parentID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !exists {
		return domain.Comment{}, domain.ErrNotFound
	}

	now := time.Now()
	c := domain.Comment{
		ParentID:  parentID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Store(ctx, &c); err != nil {
		return domain.Comment{}, err
	}

	s.fillAuthor(ctx, &c)
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	s.fillAuthor(ctx, &c)
	return c, nil
}

// Edit updates content and updated_at only; created_at and the author are
// never touched.
func (s *service) Edit(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.ErrBadParamInput
	}

	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	return s.commentRepo.Update(ctx, &c)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.commentRepo.Delete(ctx, id)
}

func (s *service) FetchByParent(ctx context.Context, parentID string) ([]domain.Comment, error) {
	comments, err := s.commentRepo.FetchByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []domain.Comment{}, nil
	}

	seen := make(map[string]struct{}, len(comments))
	ids := make([]string, 0, len(comments))
	for i := range comments {
		if _, ok := seen[comments[i].AuthorID]; ok {
			continue
		}
		seen[comments[i].AuthorID] = struct{}{}
		ids = append(ids, comments[i].AuthorID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]domain.Author, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].AsAuthor()
	}

	for i := range comments {
		if author, ok := authors[comments[i].AuthorID]; ok {
			a := author
			comments[i].Author = &a
		}
	}
	return comments, nil
}
