package answer

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/crowdsage/crowdsage/domain"
)

type Service struct {
	answerRepo   domain.AnswerRepository
	questionRepo domain.QuestionRepository
	userRepo     domain.UserRepository
	voteRepo     domain.VoteRepository
	bookmarkRepo domain.BookmarkRepository
	syncVotes    domain.SyncVotesWorker
}

var _ domain.AnswerUsecase = (*Service)(nil)

// NewService will create a new answer service object
func NewService(a domain.AnswerRepository, q domain.QuestionRepository, u domain.UserRepository, v domain.VoteRepository, b domain.BookmarkRepository, w domain.SyncVotesWorker) *Service {
	return &Service{
		answerRepo:   a,
		questionRepo: q,
		userRepo:     u,
		voteRepo:     v,
		bookmarkRepo: b,
		syncVotes:    w,
	}
}

func (s *Service) project(ctx context.Context, a *domain.Answer, viewerID string) error {
	votes, err := s.voteRepo.CountUpvotes(ctx, a.ID)
	if err != nil {
		return err
	}
	a.Votes = votes

	if viewerID != "" {
		viewerVote, err := s.voteRepo.GetByParentAndUser(ctx, a.ID, viewerID)
		if err != nil {
			return err
		}
		a.ViewerVote = viewerVote

		bookmarked, err := s.bookmarkRepo.Exists(ctx, a.ID, viewerID)
		if err != nil {
			return err
		}
		a.Bookmarked = bookmarked
	}

	user, err := s.userRepo.GetByID(ctx, a.AuthorID)
	if err != nil {
		logrus.Warnf("author %s not resolved for answer %s: %v", a.AuthorID, a.ID, err)
		return nil
	}
	a.Author = user.AsAuthor()
	return nil
}

func (s *Service) projectAll(ctx context.Context, answers []domain.Answer, viewerID string) error {
	if len(answers) == 0 {
		return nil
	}

	ids := make([]string, len(answers))
	for i := range answers {
		ids[i] = answers[i].ID
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

	authors, err := s.fetchAuthors(ctx, answers)
	if err != nil {
		return err
	}

	for i := range answers {
		a := &answers[i]
		a.Votes = counts[a.ID]
		a.ViewerVote = viewerVote[a.ID]
		a.Bookmarked = bookmarked[a.ID]
		if author, ok := authors[a.AuthorID]; ok {
			a.Author = author
		}
	}
	return nil
}

func (s *Service) fetchAuthors(ctx context.Context, answers []domain.Answer) (map[string]domain.Author, error) {
	seen := make(map[string]struct{}, len(answers))
	ids := make([]string, 0, len(answers))
	for i := range answers {
		if _, ok := seen[answers[i].AuthorID]; ok {
			continue
		}
		seen[answers[i].AuthorID] = struct{}{}
		ids = append(ids, answers[i].AuthorID)
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

func (s *Service) GetByID(ctx context.Context, id, viewerID string) (domain.Answer, error) {
	a, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Answer{}, err
	}
	if err := s.project(ctx, &a, viewerID); err != nil {
		return domain.Answer{}, err
	}
	return a, nil
}

func (s *Service) FetchByQuestion(ctx context.Context, questionID, viewerID string) ([]domain.Answer, error) {
	answers, err := s.answerRepo.FetchByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if err := s.projectAll(ctx, answers, viewerID); err != nil {
		return nil, err
	}
	return answers, nil
}

// Store validates the parent question, creates the answer and casts the
// author's own upvote.
func (s *Service) Store(ctx context.Context, a *domain.Answer) error {
	if a == nil || strings.TrimSpace(a.Content) == "" {
		return domain.ErrBadParamInput
	}

	exists, err := s.questionRepo.Exists(ctx, a.QuestionID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.answerRepo.Store(ctx, a); err != nil {
		return err
	}

	if err := s.voteRepo.Upsert(ctx, &domain.Vote{
		ParentID: a.ID,
		UserID:   a.AuthorID,
		Value:    domain.VoteUpvote,
	}); err != nil {
		return err
	}
	s.syncVotes.Send(a.ID)

	a.Votes = 1
	a.ViewerVote = domain.VoteUpvote
	a.Bookmarked = false

	user, err := s.userRepo.GetByID(ctx, a.AuthorID)
	if err == nil {
		a.Author = user.AsAuthor()
	}
	return nil
}

func (s *Service) Edit(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.ErrBadParamInput
	}

	a, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Content = content
	a.UpdatedAt = time.Now()
	return s.answerRepo.Update(ctx, &a)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.answerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.syncVotes.Send(id)
	return nil
}

func (s *Service) Vote(ctx context.Context, id, viewerID string, value domain.VoteValue) error {
	exists, err := s.answerRepo.Exists(ctx, id)
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

func (s *Service) Bookmark(ctx context.Context, id, viewerID string) error {
	return s.bookmarkRepo.Store(ctx, &domain.Bookmark{
		ParentID: id,
		UserID:   viewerID,
	})
}

func (s *Service) RemoveBookmark(ctx context.Context, id, viewerID string) error {
	return s.bookmarkRepo.DeleteOne(ctx, id, viewerID)
}

func (s *Service) FetchBookmarked(ctx context.Context, viewerID string, take, offset int) ([]domain.Answer, error) {
	answers, err := s.answerRepo.FetchBookmarkedByUser(ctx, viewerID, take, offset)
	if err != nil {
		return nil, err
	}
	if err := s.projectAll(ctx, answers, viewerID); err != nil {
		return nil, err
	}
	return answers, nil
}
