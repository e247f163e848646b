package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mcastellon/shopora-backend/api/middleware"
	"github.com/mcastellon/shopora-backend/api/responses"
	"github.com/mcastellon/shopora-backend/api/validators"
	"github.com/mcastellon/shopora-backend/internal/address"
	"github.com/mcastellon/shopora-backend/internal/checkout"
	"github.com/mcastellon/shopora-backend/internal/orders"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/logger"
)

type placeOrderRequest struct {
	Mode    string              `json:"mode"`
	Address *addressFormRequest `json:"address,omitempty"`
}

type addressFormRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Locality string `json:"locality"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Landmark string `json:"landmark"`
	Zip      string `json:"zip"`
}

func (r *addressFormRequest) toInput() *address.Input {
	if r == nil {
		return nil
	}
	return &address.Input{
		Name:     r.Name,
		Phone:    r.Phone,
		Locality: r.Locality,
		Address:  r.Address,
		City:     r.City,
		State:    r.State,
		Country:  r.Country,
		Landmark: r.Landmark,
		Zip:      r.Zip,
	}
}

func userFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// PlaceOrder turns the session cart into a persisted order for the
// authenticated user.
func PlaceOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), userID, sid, checkout.PlaceOrderInput{
			Address:     payload.Address.toInput(),
			PaymentMode: payload.Mode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderConfirmation returns the order most recently placed by this session.
func OrderConfirmation(svc checkout.Service, ordersSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := svc.ConfirmationOrderID(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := ordersSvc.Detail(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
