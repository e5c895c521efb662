package itemrequest

import (
	"context"
	"strings"

	"github.com/DokPlay/ShareIt/internal/user"
)

type Service interface {
	Create(ctx context.Context, requestorID, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requestorID string) ([]*Details, error)
	ListOthers(ctx context.Context, requesterID string, from, size int) ([]*Details, error)
	GetByID(ctx context.Context, requesterID, requestID string) (*Details, error)
}

type service struct {
	repo  Repository
	users user.Repository
}

func NewService(repo Repository, users user.Repository) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, requestorID, description string) (*ItemRequest, error) {
	if err := s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		RequestorID: requestorID,
		Description: description,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requestorID string) ([]*Details, error) {
	if err := s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requesterID string, from, size int) ([]*Details, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, requesterID, from, size)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requesterID, requestID string) (*Details, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	details, err := s.withReplies(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *service) withReplies(ctx context.Context, requests []*ItemRequest) ([]*Details, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	replies, err := s.repo.ListReplies(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[string][]*Reply)
	for _, rep := range replies {
		byRequest[rep.RequestID] = append(byRequest[rep.RequestID], rep)
	}

	details := make([]*Details, len(requests))
	for i, req := range requests {
		details[i] = &Details{ItemRequest: *req, Items: byRequest[req.ID]}
	}
	return details, nil
}

func (s *service) requireUser(ctx context.Context, id string) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return user.ErrNotFound
	}
	return nil
}
