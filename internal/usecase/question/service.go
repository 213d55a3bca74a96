package question

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/crowdsage/crowdsage/domain"
)

type Service struct {
	questionRepo domain.QuestionRepository
	userRepo     domain.UserRepository
	voteRepo     domain.VoteRepository
	bookmarkRepo domain.BookmarkRepository
	syncVotes    domain.SyncVotesWorker
}

var _ domain.QuestionUsecase = (*Service)(nil)

// NewService will create a new question service object
func NewService(q domain.QuestionRepository, u domain.UserRepository, v domain.VoteRepository, b domain.BookmarkRepository, w domain.SyncVotesWorker) *Service {
	return &Service{
		questionRepo: q,
		userRepo:     u,
		voteRepo:     v,
		bookmarkRepo: b,
		syncVotes:    w,
	}
}

// project merges the viewer-relative fields (vote count, own vote, bookmark
// flag) and the author projection into a single question.
func (s *Service) project(ctx context.Context, q *domain.Question, viewerID string) error {
	votes, err := s.voteRepo.CountUpvotes(ctx, q.ID)
	if err != nil {
		return err
	}
	q.Votes = votes

	if viewerID != "" {
		viewerVote, err := s.voteRepo.GetByParentAndUser(ctx, q.ID, viewerID)
		if err != nil {
			return err
		}
		q.ViewerVote = viewerVote

		bookmarked, err := s.bookmarkRepo.Exists(ctx, q.ID, viewerID)
		if err != nil {
			return err
		}
		q.Bookmarked = bookmarked
	}

	user, err := s.userRepo.GetByID(ctx, q.AuthorID)
	if err != nil {
		// The author row may be gone; keep the bare ID instead of failing
		// the whole read.
		logrus.Warnf("author %s not resolved for question %s: %v", q.AuthorID, q.ID, err)
		return nil
	}
	q.Author = user.AsAuthor()
	return nil
}

// projectAll merges the viewer-relative fields into a page of questions with
// three batched lookups running concurrently.
func (s *Service) projectAll(ctx context.Context, questions []domain.Question, viewerID string) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]string, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
	}

	var (
		counts     map[string]int64
		viewerVote map[string]domain.VoteValue
		bookmarked map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.voteRepo.CountUpvotesByParents(gctx, ids)
		return
	})
	if viewerID != "" {
		g.Go(func() (err error) {
			viewerVote, err = s.voteRepo.GetByParentsAndUser(gctx, ids, viewerID)
			return
		})
		g.Go(func() (err error) {
			bookmarked, err = s.bookmarkRepo.ExistsByParents(gctx, ids, viewerID)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	authors, err := s.fetchAuthors(ctx, questions)
	if err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		q.Votes = counts[q.ID]
		q.ViewerVote = viewerVote[q.ID]
		q.Bookmarked = bookmarked[q.ID]
		if author, ok := authors[q.AuthorID]; ok {
			q.Author = author
		}
	}
	return nil
}

func (s *Service) fetchAuthors(ctx context.Context, questions []domain.Question) (map[string]domain.Author, error) {
	seen := make(map[string]struct{}, len(questions))
	ids := make([]string, 0, len(questions))
	for i := range questions {
		if _, ok := seen[questions[i].AuthorID]; ok {
			continue
		}
		seen[questions[i].AuthorID] = struct{}{}
		ids = append(ids, questions[i].AuthorID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]domain.Author, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].AsAuthor()
	}
	return authors, nil
}

func (s *Service) GetByID(ctx context.Context, id, viewerID string) (domain.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Question{}, err
	}
	if err := s.project(ctx, &q, viewerID); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

func (s *Service) FetchNew(ctx context.Context, viewerID string, take, offset int) ([]domain.Question, error) {
	questions, err := s.questionRepo.FetchNew(ctx, take, offset)
	if err != nil {
		return nil, err
	}
	if err := s.projectAll(ctx, questions, viewerID); err != nil {
		return nil, err
	}
	return questions, nil
}

// Store creates the question and casts the author's own upvote: every fresh
// question starts at one vote, cast by its creator.
func (s *Service) Store(ctx context.Context, q *domain.Question) error {
	if q == nil || strings.TrimSpace(q.Title) == "" || strings.TrimSpace(q.Content) == "" {
		return domain.ErrBadParamInput
	}

	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	if err := s.questionRepo.Store(ctx, q); err != nil {
		return err
	}

	if err := s.voteRepo.Upsert(ctx, &domain.Vote{
		ParentID: q.ID,
		UserID:   q.AuthorID,
		Value:    domain.VoteUpvote,
	}); err != nil {
		return err
	}
	s.syncVotes.Send(q.ID)

	q.Votes = 1
	q.ViewerVote = domain.VoteUpvote
	q.Bookmarked = false

	user, err := s.userRepo.GetByID(ctx, q.AuthorID)
	if err == nil {
		q.Author = user.AsAuthor()
	}
	return nil
}

func (s *Service) Edit(ctx context.Context, id, title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return domain.ErrBadParamInput
	}

	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	q.Title = title
	q.Content = content
	q.UpdatedAt = time.Now()
	return s.questionRepo.Update(ctx, &q)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.syncVotes.Send(id)
	return nil
}

// Vote upserts the viewer's vote row. The parent check runs on both the
// insert and the update path.
func (s *Service) Vote(ctx context.Context, id, viewerID string, value domain.VoteValue) error {
	exists, err := s.questionRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := s.voteRepo.Upsert(ctx, &domain.Vote{
		ParentID: id,
		UserID:   viewerID,
		Value:    value,
	}); err != nil {
		return err
	}
	s.syncVotes.Send(id)
	return nil
}

// Bookmark inserts unconditionally; bookmarking twice leaves two rows.
func (s *Service) Bookmark(ctx context.Context, id, viewerID string) error {
	return s.bookmarkRepo.Store(ctx, &domain.Bookmark{
		ParentID: id,
		UserID:   viewerID,
	})
}

// RemoveBookmark deletes exactly one matching row per call.
func (s *Service) RemoveBookmark(ctx context.Context, id, viewerID string) error {
	return s.bookmarkRepo.DeleteOne(ctx, id, viewerID)
}

func (s *Service) FetchBookmarked(ctx context.Context, viewerID string, take, offset int) ([]domain.Question, error) {
	questions, err := s.questionRepo.FetchBookmarkedByUser(ctx, viewerID, take, offset)
	if err != nil {
		return nil, err
	}
	if err := s.projectAll(ctx, questions, viewerID); err != nil {
		return nil, err
	}
	return questions, nil
}
