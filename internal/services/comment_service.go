package services

import (
	"context"
	"errors"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/validate"
)

type CommentInput struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Text      string `json:"text" validate:"notblank"`
}

func CommentInputOf(c domain.Comment) CommentInput {
	return CommentInput{ProductID: c.ProductID, Text: c.Text}
}

type ReplyInput struct {
	CommentID int64  `json:"comment_id" validate:"required"`
	Text      string `json:"text" validate:"notblank"`
}

func ReplyInputOf(r domain.Reply) ReplyInput {
	return ReplyInput{CommentID: r.CommentID, Text: r.Text}
}

// CommentService handles comments on products and replies to comments.
// Anyone may read; only the author may change or remove an entry.
type CommentService struct {
	Comments *repos.CommentRepo
	Replies  *repos.ReplyRepo
	Prods    *repos.ProductRepo
}

func NewCommentService(comments *repos.CommentRepo, replies *repos.ReplyRepo, prods *repos.ProductRepo) *CommentService {
	return &CommentService{Comments: comments, Replies: replies, Prods: prods}
}

func (s *CommentService) checkComment(ctx context.Context, in CommentInput) error {
	verr := &validate.Error{}
	if err := validate.Struct(in); err != nil && !errors.As(err, &verr) {
		return err
	}
	if in.ProductID != 0 {
		if _, err := s.Prods.Get(ctx, in.ProductID); err != nil {
			if !errors.Is(notFound(err), ErrNotFound) {
				return err
			}
			verr.Add("product_id", invalidPK(in.ProductID))
		}
	}
	return verr.Err()
}

func (s *CommentService) checkReply(ctx context.Context, in ReplyInput) error {
	verr := &validate.Error{}
	if err := validate.Struct(in); err != nil && !errors.As(err, &verr) {
		return err
	}
	if in.CommentID != 0 {
		exists, err := s.Comments.Exists(ctx, in.CommentID)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add("comment_id", invalidPK(in.CommentID))
		}
	}
	return verr.Err()
}

func (s *CommentService) ListComments(ctx context.Context, productID *int64) ([]domain.Comment, error) {
	return s.Comments.List(ctx, productID)
}

func (s *CommentService) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	c, err := s.Comments.Get(ctx, id)
	return c, notFound(err)
}

func (s *CommentService) CreateComment(ctx context.Context, actor *domain.User, in CommentInput) (domain.Comment, error) {
	if err := s.checkComment(ctx, in); err != nil {
		return domain.Comment{}, err
	}
	return s.Comments.Create(ctx, actor.ID, in.ProductID, in.Text)
}

// ownComment loads the comment and fails with ErrForbidden for anyone but its author.
func (s *CommentService) ownComment(ctx context.Context, actor *domain.User, id int64) (domain.Comment, error) {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if c.UserID != actor.ID {
		return domain.Comment{}, ErrForbidden
	}
	return c, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actor *domain.User, id int64, in CommentInput) (domain.Comment, error) {
	c, err := s.ownComment(ctx, actor, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := s.checkComment(ctx, in); err != nil {
		return domain.Comment{}, err
	}
	c.ProductID, c.Text = in.ProductID, in.Text
	if err := s.Comments.Update(ctx, c); err != nil {
		return domain.Comment{}, notFound(err)
	}
	return c, nil
}

// DeleteComment removes the comment and its replies.
func (s *CommentService) DeleteComment(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.ownComment(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Comments.Delete(ctx, id))
}

func (s *CommentService) ListReplies(ctx context.Context, commentID *int64) ([]domain.Reply, error) {
	return s.Replies.List(ctx, commentID)
}

func (s *CommentService) GetReply(ctx context.Context, id int64) (domain.Reply, error) {
	r, err := s.Replies.Get(ctx, id)
	return r, notFound(err)
}

func (s *CommentService) CreateReply(ctx context.Context, actor *domain.User, in ReplyInput) (domain.Reply, error) {
	if err := s.checkReply(ctx, in); err != nil {
		return domain.Reply{}, err
	}
	return s.Replies.Create(ctx, actor.ID, in.CommentID, in.Text)
}

func (s *CommentService) ownReply(ctx context.Context, actor *domain.User, id int64) (domain.Reply, error) {
	r, err := s.GetReply(ctx, id)
	if err != nil {
		return domain.Reply{}, err
	}
	if r.UserID != actor.ID {
		return domain.Reply{}, ErrForbidden
	}
	return r, nil
}

func (s *CommentService) UpdateReply(ctx context.Context, actor *domain.User, id int64, in ReplyInput) (domain.Reply, error) {
	r, err := s.ownReply(ctx, actor, id)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := s.checkReply(ctx, in); err != nil {
		return domain.Reply{}, err
	}
	r.CommentID, r.Text = in.CommentID, in.Text
	if err := s.Replies.Update(ctx, r); err != nil {
		return domain.Reply{}, notFound(err)
	}
	return r, nil
}

func (s *CommentService) DeleteReply(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.ownReply(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Replies.Delete(ctx, id))
}
