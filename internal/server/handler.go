package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	cartapp "github.com/Samod99/NourishFoods-sub000/internal/cart/application"
	catalogapp "github.com/Samod99/NourishFoods-sub000/internal/catalog/application"
	catalogdomain "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/delivery"
	"github.com/Samod99/NourishFoods-sub000/internal/geo"
	healthapp "github.com/Samod99/NourishFoods-sub000/internal/health/application"
	healthdomain "github.com/Samod99/NourishFoods-sub000/internal/health/domain"
	orderapp "github.com/Samod99/NourishFoods-sub000/internal/order/application"
	orderdomain "github.com/Samod99/NourishFoods-sub000/internal/order/domain"
	"github.com/Samod99/NourishFoods-sub000/pkg/idempotency"
)

type Handler struct {
	log     *slog.Logger
	tracer  trace.Tracer
	catalog catalogapp.Store
	cart    *cartapp.Service
	orders  *orderapp.Assembler
	health  *healthapp.Engine
	sim     *delivery.Simulator
	idem    *idempotency.Guard
}

func NewHandler(log *slog.Logger, catalog catalogapp.Store, cart *cartapp.Service, orders *orderapp.Assembler, health *healthapp.Engine, sim *delivery.Simulator, idem *idempotency.Guard) *Handler {
	return &Handler{
		log:     log,
		tracer:  otel.Tracer("nourish-http"),
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		health:  health,
		sim:     sim,
		idem:    idem,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.logRequests)

	r.Get("/products", h.listProducts)
	r.Get("/vendors", h.listVendors)
	r.Post("/vendors/{vendorID}/ratings", h.rateVendor)

	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addCartItem)
	r.Put("/cart/items/{productID}", h.setCartQuantity)
	r.Delete("/cart/items/{productID}", h.removeCartItem)
	r.Post("/cart/items/{productID}/increment", h.incrementCartItem)
	r.Post("/cart/items/{productID}/decrement", h.decrementCartItem)
	r.Delete("/cart", h.clearCart)

	r.With(h.idem.Middleware).Post("/checkout", h.checkout)
	r.Get("/orders", h.listOrders)
	r.Post("/orders/{orderID}/status", h.updateOrderStatus)
	r.Post("/orders/{orderID}/cancel", h.cancelOrder)

	r.Put("/health/profile", h.setProfile)
	r.Post("/health/entries", h.addHealthEntry)
	r.Get("/health/summary", h.healthSummary)
	r.Get("/health/recommendations", h.healthRecommendations)
	r.Get("/health/insights", h.healthInsights)
	r.Get("/health/weekly", h.healthWeekly)

	r.Post("/delivery/start", h.startDelivery)
	r.Get("/delivery", h.deliveryState)
	r.Post("/delivery/pause", h.pauseDelivery)
	r.Post("/delivery/resume", h.resumeDelivery)
	r.Post("/delivery/cancel", h.cancelDelivery)

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Info("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrPersistence):
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()
	products, err := h.catalog.Products(ctx)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

type vendorResp struct {
	catalogdomain.Vendor
	EstimatedMinutes int `json:"estimatedMinutes,omitempty"`
}

// listVendors returns the vendor directory. When the caller supplies a
// destination via ?lat=&lng=, each vendor carries a delivery-time estimate
// from its prep time plus travel at courier speed.
func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListVendors")
	defer span.End()
	vendors, err := h.catalog.Vendors(ctx)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	withEstimate := latErr == nil && lngErr == nil

	resp := make([]vendorResp, 0, len(vendors))
	for _, v := range vendors {
		item := vendorResp{Vendor: v}
		if withEstimate {
			dest := geo.Point{Lat: lat, Lng: lng}
			item.EstimatedMinutes = v.EstimatedDeliveryMinutes(dest, delivery.SpeedMetersPerSecond)
		}
		resp = append(resp, item)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type rateVendorReq struct {
	Value float64 `json:"value"`
}

func (h *Handler) rateVendor(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RateVendor")
	defer span.End()
	var req rateVendorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	v, err := h.catalog.RateVendor(ctx, chi.URLParam(r, "vendorID"), req.Value)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

type cartLineResp struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

type cartResp struct {
	Lines       []cartLineResp `json:"lines"`
	ItemCount   int            `json:"itemCount"`
	Subtotal    string         `json:"subtotal"`
	DeliveryFee string         `json:"deliveryFee"`
	Total       string         `json:"total"`
	MultiVendor bool           `json:"multiVendor"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()
	cart := h.cart.Cart()
	resp := cartResp{
		Lines:       []cartLineResp{},
		ItemCount:   cart.ItemCount(),
		Subtotal:    cart.Subtotal().StringFixed(2),
		DeliveryFee: cart.DeliveryFee().StringFixed(2),
		Total:       cart.Total().StringFixed(2),
		MultiVendor: cart.MultiVendor(),
	}
	for _, l := range cart.Lines() {
		resp.Lines = append(resp.Lines, cartLineResp{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Price:       l.Product.Price.StringFixed(2),
			Quantity:    l.Quantity,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type addItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddCartItem")
	defer span.End()

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if err := h.cart.Add(ctx, p, req.Quantity); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SetCartQuantity")
	defer span.End()
	var req setQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	if err := h.cart.SetQuantity(ctx, chi.URLParam(r, "productID"), req.Quantity); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveCartItem")
	defer span.End()
	if err := h.cart.Remove(ctx, chi.URLParam(r, "productID")); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) incrementCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "IncrementCartItem")
	defer span.End()
	if err := h.cart.Increment(ctx, chi.URLParam(r, "productID")); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decrementCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DecrementCartItem")
	defer span.End()
	if err := h.cart.Decrement(ctx, chi.URLParam(r, "productID")); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClearCart")
	defer span.End()
	if err := h.cart.Clear(ctx); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutReq struct {
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	o, err := h.orders.Checkout(ctx, req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListOrders")
	defer span.End()
	orders, err := h.orders.History(ctx)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if orders == nil {
		orders = []orderdomain.Order{}
	}
	h.writeJSON(w, http.StatusOK, orders)
}

type statusReq struct {
	Status orderdomain.Status `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()
	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	o, err := h.orders.UpdateStatus(ctx, chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CancelOrder")
	defer span.End()
	o, err := h.orders.Cancel(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) setProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SetHealthProfile")
	defer span.End()
	var p healthdomain.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	if err := h.health.SetProfile(ctx, p); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addEntryReq struct {
	ProductID string                `json:"productId"`
	Quantity  int                   `json:"quantity"`
	MealType  healthdomain.MealType `json:"mealType"`
}

func (h *Handler) addHealthEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddHealthEntry")
	defer span.End()
	var req addEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if err := h.health.AddEntry(ctx, p, req.Quantity, req.MealType); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthSummaryResp struct {
	TodayCalories int                  `json:"todayCalories"`
	Target        int                  `json:"target,omitempty"`
	BMI           float64              `json:"bmi,omitempty"`
	BMICategory   string               `json:"bmiCategory,omitempty"`
	Alert         *healthdomain.Alert  `json:"alert,omitempty"`
	Entries       []healthdomain.Entry `json:"entries"`
}

func (h *Handler) healthSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HealthSummary")
	defer span.End()
	resp := healthSummaryResp{
		TodayCalories: h.health.TodayCalories(ctx),
		Alert:         h.health.Alert(ctx),
		Entries:       h.health.Entries(ctx),
	}
	if p := h.health.Profile(); p != nil {
		resp.Target = p.DailyCalorieTarget()
		resp.BMI = p.RoundedBMI()
		resp.BMICategory = p.BMICategory()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) healthRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HealthRecommendations")
	defer span.End()
	h.writeJSON(w, http.StatusOK, h.health.Recommendations(ctx))
}

func (h *Handler) healthInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HealthInsights")
	defer span.End()
	insights := h.health.Insights(ctx)
	if insights == nil {
		insights = []healthdomain.Insight{}
	}
	h.writeJSON(w, http.StatusOK, insights)
}

func (h *Handler) healthWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HealthWeekly")
	defer span.End()
	h.writeJSON(w, http.StatusOK, h.health.WeeklySeries(ctx))
}

type startDeliveryReq struct {
	VendorID    string    `json:"vendorId"`
	Destination geo.Point `json:"destination"`
}

func (h *Handler) startDelivery(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "StartDelivery")
	defer span.End()
	var req startDeliveryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErr(w, core.ErrValidation)
		return
	}
	v, err := h.catalog.Vendor(ctx, req.VendorID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.sim.Start(v.Location, req.Destination)
	go h.sim.Run(context.WithoutCancel(ctx))
	h.writeJSON(w, http.StatusOK, h.sim.Snapshot())
}

func (h *Handler) deliveryState(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "DeliveryState")
	defer span.End()
	h.writeJSON(w, http.StatusOK, h.sim.Snapshot())
}

func (h *Handler) pauseDelivery(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "PauseDelivery")
	defer span.End()
	h.sim.Pause()
	h.writeJSON(w, http.StatusOK, h.sim.Snapshot())
}

func (h *Handler) resumeDelivery(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "ResumeDelivery")
	defer span.End()
	h.sim.Resume()
	h.writeJSON(w, http.StatusOK, h.sim.Snapshot())
}

func (h *Handler) cancelDelivery(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "CancelDelivery")
	defer span.End()
	h.sim.Reset()
	h.writeJSON(w, http.StatusOK, h.sim.Snapshot())
}
