package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/api/responses"
	"github.com/mcastellon/shopora-backend/api/validators"
	"github.com/mcastellon/shopora-backend/internal/products"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/logger"
)

type productRequest struct {
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	RegularPrice     decimal.Decimal `json:"regular_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	SKU              string          `json:"sku"`
	StockStatus      string          `json:"stock_status"`
	Featured         bool            `json:"featured"`
	Quantity         int             `json:"quantity"`
	Image            string          `json:"image"`
	GalleryImages    []string        `json:"gallery_images"`
	CategoryID       uuid.UUID       `json:"category_id"`
	BrandID          uuid.UUID       `json:"brand_id"`
}

// ProductsList handles the paginated admin product listing.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, total, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessList(w, rows, params.MetaFor(total))
	}
}

// ShopList handles the storefront listing with size and sort controls.
func ShopList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sort, err := validators.ParseQueryEnum(r, "sort", string(products.SortDefault),
			string(products.SortDefault),
			string(products.SortDate),
			string(products.SortPrice),
			string(products.SortPriceDesc),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, total, err := svc.ListShop(r.Context(), products.ShopSort(sort), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessList(w, rows, params.MetaFor(total))
	}
}

// ShopProductDetail returns a product by slug with its gallery and related
// products.
func ShopProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		detail, err := svc.GetDetail(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ProductsShow returns a single product by id.
func ProductsShow(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// ProductsCreate persists a new product.
func ProductsCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Create(r.Context(), products.CreateInput{
			Name:             payload.Name,
			ShortDescription: payload.ShortDescription,
			Description:      payload.Description,
			RegularPrice:     payload.RegularPrice,
			SalePrice:        payload.SalePrice,
			SKU:              payload.SKU,
			StockStatus:      payload.StockStatus,
			Featured:         payload.Featured,
			Quantity:         payload.Quantity,
			Image:            payload.Image,
			GalleryImages:    payload.GalleryImages,
			CategoryID:       payload.CategoryID,
			BrandID:          payload.BrandID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

// ProductsUpdate changes an existing product.
func ProductsUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), id, products.UpdateInput{
			Name:             payload.Name,
			ShortDescription: payload.ShortDescription,
			Description:      payload.Description,
			RegularPrice:     payload.RegularPrice,
			SalePrice:        payload.SalePrice,
			SKU:              payload.SKU,
			StockStatus:      payload.StockStatus,
			Featured:         payload.Featured,
			Quantity:         payload.Quantity,
			Image:            payload.Image,
			GalleryImages:    payload.GalleryImages,
			CategoryID:       payload.CategoryID,
			BrandID:          payload.BrandID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// ProductsDelete removes a product.
func ProductsDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, "product deleted")
	}
}
