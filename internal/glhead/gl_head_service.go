package glhead

import (
	"context"
	"errors"

	glheaderrors "eduledger/internal/glhead/errors"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateGLHeadRequest) (GLHeadResponse, error)
	GetAll(ctx context.Context) ([]GLHeadResponse, error)
	GetByID(ctx context.Context, id string) (GLHeadResponse, error)
	GetTree(ctx context.Context) ([]GLHeadNode, error)
	Update(ctx context.Context, id string, req UpdateGLHeadRequest) (GLHeadResponse, error)
	Delete(ctx context.Context, id string) error
	ResolvePaymentMode(ctx context.Context, label string) (GLHeadResponse, error)
}

type service struct {
	repo     Repository
	resolver *Resolver

	// Collapses concurrent tree reads into one query; the chart changes
	// rarely but is rendered on nearly every accounting screen.
	treeGroup singleflight.Group
}

func NewService(repo Repository, resolver *Resolver) Service {
	return &service{repo: repo, resolver: resolver}
}

func (s *service) Create(ctx context.Context, req CreateGLHeadRequest) (GLHeadResponse, error) {
	parentID, err := parseOptionalParent(req.ParentID)
	if err != nil {
		return GLHeadResponse{}, err
	}

	head := &GLHead{
		ID:          uuid.New(),
		Name:        req.Name,
		Type:        req.Type,
		Code:        req.Code,
		ParentID:    parentID,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, head); err != nil {
		return GLHeadResponse{}, err
	}

	return mapToResponse(*head), nil
}

func (s *service) GetAll(ctx context.Context) ([]GLHeadResponse, error) {
	heads, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]GLHeadResponse, len(heads))
	for i, head := range heads {
		resp[i] = mapToResponse(head)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (GLHeadResponse, error) {
	head, err := s.findHead(ctx, id)
	if err != nil {
		return GLHeadResponse{}, err
	}

	return mapToResponse(*head), nil
}

func (s *service) GetTree(ctx context.Context) ([]GLHeadNode, error) {
	result, err, _ := s.treeGroup.Do("gl-head-tree", func() (any, error) {
		heads, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return buildTree(heads), nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]GLHeadNode), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateGLHeadRequest) (GLHeadResponse, error) {
	head, err := s.findHead(ctx, id)
	if err != nil {
		return GLHeadResponse{}, err
	}

	parentID, err := parseOptionalParent(req.ParentID)
	if err != nil {
		return GLHeadResponse{}, err
	}

	head.Name = req.Name
	head.Type = req.Type
	head.Code = req.Code
	head.ParentID = parentID
	head.Description = req.Description

	if err := s.repo.Update(ctx, head); err != nil {
		return GLHeadResponse{}, err
	}

	return mapToResponse(*head), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findHead(ctx, id); err != nil {
		return err
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return glheaderrors.ErrGLHeadInUse
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ResolvePaymentMode(ctx context.Context, label string) (GLHeadResponse, error) {
	head, err := s.resolver.PaymentModeHead(ctx, label)
	if err != nil {
		return GLHeadResponse{}, err
	}

	return mapToResponse(*head), nil
}

func (s *service) findHead(ctx context.Context, id string) (*GLHead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, glheaderrors.ErrInvalidGLHeadID
	}

	head, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, glheaderrors.ErrGLHeadNotFound
		}
		return nil, err
	}
	return head, nil
}

func parseOptionalParent(id *string) (*uuid.UUID, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*id)
	if err != nil {
		return nil, glheaderrors.ErrInvalidParentID
	}
	return &parsed, nil
}

func buildTree(heads []GLHead) []GLHeadNode {
	byParent := make(map[uuid.UUID][]GLHead)
	var roots []GLHead
	for _, head := range heads {
		if head.ParentID == nil {
			roots = append(roots, head)
			continue
		}
		byParent[*head.ParentID] = append(byParent[*head.ParentID], head)
	}

	var build func(head GLHead) GLHeadNode
	build = func(head GLHead) GLHeadNode {
		node := GLHeadNode{GLHeadResponse: mapToResponse(head), Children: []GLHeadNode{}}
		for _, child := range byParent[head.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	nodes := make([]GLHeadNode, len(roots))
	for i, root := range roots {
		nodes[i] = build(root)
	}
	return nodes
}

func mapToResponse(head GLHead) GLHeadResponse {
	resp := GLHeadResponse{
		ID:          head.ID.String(),
		Name:        head.Name,
		Type:        head.Type,
		Code:        head.Code,
		Description: head.Description,
	}
	if head.ParentID != nil {
		v := head.ParentID.String()
		resp.ParentID = &v
	}
	return resp
}
