package services

import (
	"context"
	"errors"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/validate"
)

type CategoryInput struct {
	Name        string  `json:"name" validate:"notblank,max=40"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// ProductInput.Price is required; a nil price is reported as missing.
type ProductInput struct {
	Name        string  `json:"name" validate:"notblank,max=255"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"required,gte=0"`
	Category    int64   `json:"category" validate:"required"`
	Image       *string `json:"image" validate:"omitempty,max=255"`
}

// ProductInputOf returns the editable fields of p, the base a partial update
// is merged over.
func ProductInputOf(p domain.Product) ProductInput {
	price := p.Price
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       &price,
		Category:    p.CategoryID,
		Image:       p.Image,
	}
}

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	c, err := s.Cats.Get(ctx, id)
	return c, notFound(err)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Category{}, err
	}
	id, err := s.Cats.Create(ctx, in.Name, in.Description)
	if err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: id, Name: in.Name, Description: in.Description}, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (domain.Category, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Category{}, err
	}
	c := domain.Category{ID: id, Name: in.Name, Description: in.Description}
	if err := s.Cats.Update(ctx, c); err != nil {
		return domain.Category{}, notFound(err)
	}
	return c, nil
}

// DeleteCategory also removes the products filed under it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return notFound(s.Cats.Delete(ctx, id))
}

func (s *CatalogService) ListProducts(ctx context.Context, f repos.ProductFilter) ([]domain.Product, error) {
	return s.Prods.List(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	return p, notFound(err)
}

func (s *CatalogService) checkProduct(ctx context.Context, in ProductInput) error {
	verr := &validate.Error{}
	if err := validate.Struct(in); err != nil && !errors.As(err, &verr) {
		return err
	}
	if in.Category != 0 {
		exists, err := s.Cats.Exists(ctx, in.Category)
		if err != nil {
			return err
		}
		if !exists {
			return validate.Merge(verr, missingPK("category", in.Category))
		}
	}
	return verr.Err()
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := s.checkProduct(ctx, in); err != nil {
		return domain.Product{}, err
	}
	p := productOf(0, in)
	id, err := s.Prods.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (domain.Product, error) {
	if err := s.checkProduct(ctx, in); err != nil {
		return domain.Product{}, err
	}
	p := productOf(id, in)
	if err := s.Prods.Update(ctx, p); err != nil {
		return domain.Product{}, notFound(err)
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return notFound(s.Prods.Delete(ctx, id))
}

func productOf(id int64, in ProductInput) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		CategoryID:  in.Category,
		Image:       in.Image,
	}
}
