package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotiza-api/internal/application/dto"
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/domain/repository"
)

// maxCategoryDepth corta el recorrido de ancestros; ninguna jerarquía real
// del catálogo se acerca a esta profundidad.
const maxCategoryDepth = 32

// CatalogUseCase gestiona productos y categorías.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProduct crea una entrada del catálogo (montos en centavos).
func (uc *CatalogUseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.PriceCents < 0 || in.InternalCostCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	p := &entity.Product{
		ID:                uuid.New().String(),
		CategoryID:        in.CategoryID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		InternalCostCents: in.InternalCostCents,
		PriceCents:        in.PriceCents,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// UpdateProduct actualiza campos de un producto existente.
func (uc *CatalogUseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
		}
		p.CategoryID = *in.CategoryID
	}
	if in.InternalCostCents != nil {
		if *in.InternalCostCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.InternalCostCents = *in.InternalCostCents
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.PriceCents = *in.PriceCents
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts lista el catálogo con paginación.
func (uc *CatalogUseCase) ListProducts(limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// DeleteProduct elimina un producto.
func (uc *CatalogUseCase) DeleteProduct(id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategory crea una categoría, validando el padre si se indica.
func (uc *CatalogUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		Code:      in.Code,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// UpdateCategory actualiza una categoría. Cada escritura de ParentID valida
// aciclicidad completa: no basta con rechazar la auto-referencia directa,
// también A→B→A y cadenas más largas.
func (uc *CatalogUseCase) UpdateCategory(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.ParentID != nil {
		if err := uc.validateParent(id, *in.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = *in.ParentID
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Status != "" {
		if in.Status != "active" && in.Status != "inactive" {
			return nil, domain.ErrInvalidInput
		}
		c.Status = in.Status
	}
	c.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// validateParent recorre la cadena de ancestros del padre propuesto y rechaza
// si en algún punto reaparece la categoría que se está editando.
func (uc *CatalogUseCase) validateParent(categoryID, parentID string) error {
	if parentID == "" {
		return nil // pasar a raíz siempre es válido
	}
	if parentID == categoryID {
		return domain.ErrCategoryCycle
	}
	current := parentID
	for depth := 0; current != ""; depth++ {
		if depth >= maxCategoryDepth {
			return fmt.Errorf("jerarquía de categorías demasiado profunda: %w", domain.ErrInvalidInput)
		}
		ancestor, err := uc.categoryRepo.GetByID(current)
		if err != nil {
			return err
		}
		if ancestor == nil {
			return domain.ErrNotFound
		}
		if ancestor.ParentID == categoryID {
			return domain.ErrCategoryCycle
		}
		current = ancestor.ParentID
	}
	return nil
}

// ListCategories lista todas las categorías.
func (uc *CatalogUseCase) ListCategories() ([]*dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// DeleteCategory elimina una categoría.
func (uc *CatalogUseCase) DeleteCategory(id string) error {
	c, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		InternalCostCents: p.InternalCostCents,
		PriceCents:        p.PriceCents,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		Code:     c.Code,
		Status:   c.Status,
	}
}
