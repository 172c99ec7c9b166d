package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// multipartMemory is how much of an upload is kept in memory before
// spilling to temp files.
const multipartMemory = 1 << 20

type CategoryService interface {
	Create(ctx context.Context, name string) (models.CategorySummary, error)
	List(ctx context.Context) ([]models.CategorySummary, error)
}

type ProductService interface {
	Create(ctx context.Context, in services.NewProduct) (*models.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
}

type CategoryController struct {
	categories CategoryService
}

func NewCategoryController(categories CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryInput struct {
	Name string `json:"name"`
}

// Create handles POST /category.
func (cc *CategoryController) Create(c *ctx.Context) (any, error) {
	var in categoryInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return cc.categories.Create(c.Context(), in.Name)
}

// List handles GET /category.
func (cc *CategoryController) List(c *ctx.Context) (any, error) {
	return cc.categories.List(c.Context())
}

type ProductController struct {
	products  ProductService
	maxUpload int64
}

// NewProductController builds the controller. maxUpload caps the multipart
// request size in bytes.
func NewProductController(products ProductService, maxUpload int64) *ProductController {
	return &ProductController{products: products, maxUpload: maxUpload}
}

type productInput struct {
	Name        string `json:"name"        validate:"required"`
	Price       string `json:"price"       validate:"required,numeric"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id" validate:"required"`
}

// Create handles the multipart POST /product. The banner arrives in the
// "file" part.
func (pc *ProductController) Create(c *ctx.Context) (any, error) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, pc.maxUpload)
	if err := c.R.ParseMultipartForm(multipartMemory); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "error upload file")
	}
	defer func() { _ = c.R.MultipartForm.RemoveAll() }()

	file, header, err := c.R.FormFile("file")
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "error upload file")
	}
	defer file.Close()

	in := productInput{
		Name:        c.R.FormValue("name"),
		Price:       c.R.FormValue("price"),
		Description: c.R.FormValue("description"),
		CategoryID:  c.R.FormValue("category_id"),
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.New(apperr.InvalidInput, validate.First(errs))
	}

	return pc.products.Create(c.Context(), services.NewProduct{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Filename:    header.Filename,
		File:        file,
	})
}

type categoryQuery struct {
	CategoryID string `json:"category_id" validate:"required"`
}

// ListByCategory handles GET /category/product?category_id=.
func (pc *ProductController) ListByCategory(c *ctx.Context) (any, error) {
	var in categoryQuery
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return pc.products.ListByCategory(c.Context(), in.CategoryID)
}
