package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mcastellon/shopora-backend/api/middleware"
	"github.com/mcastellon/shopora-backend/api/responses"
	"github.com/mcastellon/shopora-backend/api/validators"
	cartsvc "github.com/mcastellon/shopora-backend/internal/cart"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/logger"
)

func sessionFromRequest(r *http.Request) (string, error) {
	sid := middleware.SessionIDFromContext(r.Context())
	if sid == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return sid, nil
}

// CartContent returns the session cart with its pricing snapshot.
func CartContent(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		content, err := svc.Content(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content)
	}
}

// CartAdd puts a product into the session cart, merging quantities for a
// product already present.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			ProductID uuid.UUID `json:"product_id"`
			Qty       int       `json:"qty"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Qty <= 0 {
			payload.Qty = 1
		}

		content, err := svc.AddItem(r.Context(), sid, payload.ProductID, payload.Qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content)
	}
}

// CartIncrease bumps a line quantity by one.
func CartIncrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineMutation(svc, logg, svcIncrease)
}

// CartDecrease lowers a line quantity by one, removing the line at zero.
func CartDecrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineMutation(svc, logg, svcDecrease)
}

// CartRemove drops a line from the cart regardless of quantity.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineMutation(svc, logg, svcRemove)
}

type lineMutation func(svc cartsvc.Service, r *http.Request, sid string, productID uuid.UUID) (*cartsvc.Content, error)

func svcIncrease(svc cartsvc.Service, r *http.Request, sid string, productID uuid.UUID) (*cartsvc.Content, error) {
	return svc.IncreaseItem(r.Context(), sid, productID)
}

func svcDecrease(svc cartsvc.Service, r *http.Request, sid string, productID uuid.UUID) (*cartsvc.Content, error) {
	return svc.DecreaseItem(r.Context(), sid, productID)
}

func svcRemove(svc cartsvc.Service, r *http.Request, sid string, productID uuid.UUID) (*cartsvc.Content, error) {
	return svc.RemoveItem(r.Context(), sid, productID)
}

func cartLineMutation(svc cartsvc.Service, logg *logger.Logger, mutate lineMutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		content, err := mutate(svc, r, sid, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content)
	}
}

// CartEmpty drops the whole cart and its pricing state.
func CartEmpty(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Empty(r.Context(), sid); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, "cart emptied")
	}
}

// CartApplyCoupon applies a coupon code to the session cart.
func CartApplyCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Code string `json:"code"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyCoupon(r.Context(), sid, payload.Code, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemoveCoupon clears the applied coupon and reprices the cart.
func CartRemoveCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amounts, err := svc.RemoveCoupon(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, amounts)
	}
}

// CartCheckout freezes the current pricing for order placement.
func CartCheckout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amounts, err := svc.SetCheckoutAmounts(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if amounts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty"))
			return
		}
		responses.WriteSuccess(w, amounts)
	}
}
